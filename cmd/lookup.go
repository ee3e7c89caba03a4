package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdb/tmdb"
)

var (
	castLimit  int
	findSource string
)

// movieCmd shows a movie
var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runMovie,
}

// showCmd shows a TV show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a TV show",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// personCmd shows a person
var personCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "Show a person and their best known roles",
	Args:  cobra.ExactArgs(1),
	RunE:  runPerson,
}

// companyCmd shows a production company
var companyCmd = &cobra.Command{
	Use:   "company <id>",
	Short: "Show a production company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompany,
}

// findCmd looks up entities by an external ID
var findCmd = &cobra.Command{
	Use:   "find <external-id>",
	Short: "Find movies, shows and people by an IMDb, TVDB or other external ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	movieCmd.Flags().IntVar(&castLimit, "cast", 5, "number of cast members to show")
	showCmd.Flags().IntVar(&castLimit, "cast", 5, "number of cast members to show")
	personCmd.Flags().IntVar(&castLimit, "cast", 5, "number of roles to show")
	findCmd.Flags().StringVar(&findSource, "source", "imdb_id", "external ID source, e.g. imdb_id or tvdb_id")

	rootCmd.AddCommand(movieCmd, showCmd, personCmd, companyCmd, findCmd)
}

func parseID(arg string) (int, error) {
	id, err := cast.ToIntE(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id '%s': must be a positive integer", arg)
	}
	return id, nil
}

func runMovie(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	movie, err := client.Movie(id)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	title, err := movie.Title(ctx)
	if err != nil {
		return fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	year, err := movie.Year(ctx)
	if err != nil {
		return err
	}
	overview, err := movie.Overview(ctx)
	if err != nil {
		return err
	}
	genres, err := movie.Genres(ctx)
	if err != nil {
		return err
	}
	vote, err := movie.Vote(ctx)
	if err != nil {
		return err
	}
	runtime, err := movie.Runtime(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s%s\n", title["default"], formatYear(year))
	if title["original"] != title["default"] {
		fmt.Fprintf(out, "  Original title: %s\n", title["original"])
	}
	fmt.Fprintf(out, "  Rating: %s (%d votes)\n", vote, vote.Count)
	fmt.Fprintf(out, "  Runtime: %d min\n", runtime)
	fmt.Fprintf(out, "  Genres: %s\n", joinNames(genres))
	printOverview(out, overview["default"])

	credits, err := movie.Cast(ctx)
	if err != nil {
		return err
	}
	if err := printCast(cmd, credits); err != nil {
		return err
	}

	logger.Debug().Int("id", id).Int("requests", movie.Requests()).Msg("Movie resolved")
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	show, err := client.Show(id)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	title, err := show.Title(ctx)
	if err != nil {
		return fmt.Errorf("failed to get show %d: %w", id, err)
	}
	year, err := show.Year(ctx)
	if err != nil {
		return err
	}
	status, err := show.Status(ctx)
	if err != nil {
		return err
	}
	seasons, err := show.NumberOfSeasons(ctx)
	if err != nil {
		return err
	}
	episodes, err := show.NumberOfEpisodes(ctx)
	if err != nil {
		return err
	}
	genres, err := show.Genres(ctx)
	if err != nil {
		return err
	}
	overview, err := show.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s%s\n", title["default"], formatYear(year))
	fmt.Fprintf(out, "  Status: %s\n", status)
	fmt.Fprintf(out, "  Seasons: %d (%d episodes)\n", seasons, episodes)
	fmt.Fprintf(out, "  Genres: %s\n", joinNames(genres))
	printOverview(out, overview["default"])

	credits, err := show.Cast(ctx)
	if err != nil {
		return err
	}
	if err := printCast(cmd, credits); err != nil {
		return err
	}

	logger.Debug().Int("id", id).Int("requests", show.Requests()).Msg("Show resolved")
	return nil
}

func runPerson(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	person, err := client.Person(id)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	name, err := person.Name(ctx)
	if err != nil {
		return fmt.Errorf("failed to get person %d: %w", id, err)
	}
	department, err := person.KnownForDepartment(ctx)
	if err != nil {
		return err
	}
	birthday, err := person.Birthday(ctx)
	if err != nil {
		return err
	}
	deathday, err := person.Deathday(ctx)
	if err != nil {
		return err
	}
	biography, err := person.Biography(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, name)
	fmt.Fprintf(out, "  Known for: %s\n", department)
	if birthday != "" {
		fmt.Fprintf(out, "  Born: %s\n", birthday)
	}
	if deathday != "" {
		fmt.Fprintf(out, "  Died: %s\n", deathday)
	}
	printOverview(out, biography["default"])

	roles, err := person.MovieCast(ctx)
	if err != nil {
		return err
	}
	if len(roles) > castLimit {
		roles = roles[:castLimit]
	}
	if len(roles) > 0 {
		fmt.Fprintln(out, "\nMovies:")
	}
	for _, role := range roles {
		title, err := role.Movie.Title(ctx)
		if err != nil {
			return err
		}
		character, err := role.Credit.Character(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  • %s as %s\n", title["default"], character)
	}

	logger.Debug().Int("id", id).Int("requests", person.Requests()).Msg("Person resolved")
	return nil
}

func runCompany(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	company, err := client.Company(id)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	name, err := company.Name(ctx)
	if err != nil {
		return fmt.Errorf("failed to get company %d: %w", id, err)
	}
	headquarters, err := company.Headquarters(ctx)
	if err != nil {
		return err
	}
	country, err := company.OriginCountry(ctx)
	if err != nil {
		return err
	}
	parent, err := company.ParentCompany(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, name)
	if headquarters != "" {
		fmt.Fprintf(out, "  Headquarters: %s\n", headquarters)
	}
	if country != "" {
		fmt.Fprintf(out, "  Country: %s\n", country)
	}
	if parent != nil {
		parentName, err := parent.Name(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  Parent: %s\n", parentName)
	}
	return nil
}

func runFind(cmd *cobra.Command, args []string) error {
	result, err := client.Find(cmd.Context(), args[0], findSource)
	if err != nil {
		return err
	}

	var entities []tmdb.Entity
	for _, movie := range result.Movies {
		entities = append(entities, movie)
	}
	for _, show := range result.Shows {
		entities = append(entities, show)
	}
	for _, person := range result.People {
		entities = append(entities, person)
	}
	for _, season := range result.Seasons {
		entities = append(entities, season)
	}
	for _, episode := range result.Episodes {
		entities = append(entities, episode)
	}

	logger.Debug().Str("source", findSource).Int("found", len(entities)).Msg("External ID resolved")
	return printMatches(cmd, entities)
}

func printCast(cmd *cobra.Command, credits []tmdb.PersonCredit) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(credits) > castLimit {
		credits = credits[:castLimit]
	}
	if len(credits) > 0 {
		fmt.Fprintln(out, "\nCast:")
	}
	for _, credit := range credits {
		name, err := credit.Person.Name(ctx)
		if err != nil {
			return err
		}
		character, err := credit.Credit.Character(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  • %s as %s\n", name, character)
	}
	return nil
}

func printOverview(out io.Writer, text string) {
	if text != "" {
		fmt.Fprintf(out, "\n%s\n", text)
	}
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d)", year)
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.String())
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
