package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/tmdb/filter"
	"github.com/s0up4200/tmdb/tmdb"
)

var (
	searchType   string
	searchYear   int
	resultLimit  int
	filterExpr   string
	preset       string
	trendWindow  string
	includeAdult bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies, shows and people",
	Long: `Search TMDB and optionally narrow the results with a filter expression, e.g.

  tmdb search "blade runner" --filter 'Year < 2000 and Rating >= 7'
  tmdb search alien --type movie --preset classics`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// trendingCmd represents the trending command
var trendingCmd = &cobra.Command{
	Use:   "trending [all|movie|tv|person]",
	Short: "List what is trending today or this week",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrending,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, trendingCmd} {
		c.Flags().IntVarP(&resultLimit, "limit", "n", 20, "maximum number of results to fetch")
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
		c.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	}
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "multi", "result type: multi, movie, tv or person")
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "only match this release year")
	searchCmd.Flags().BoolVar(&includeAdult, "adult", false, "include adult results")
	trendingCmd.Flags().StringVarP(&trendWindow, "window", "w", "day", "time window: day or week")

	rootCmd.AddCommand(searchCmd, trendingCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := tmdb.SearchOptions{
		Query:        strings.Join(args, " "),
		Year:         searchYear,
		IncludeAdult: includeAdult,
	}

	logger.Info().Str("query", opts.Query).Str("type", searchType).Msg("Searching")

	var (
		entities []tmdb.Entity
		err      error
	)
	switch searchType {
	case "multi":
		entities, err = searchAll(ctx, opts, client.SearchMulti)
	case tmdb.KindMovie:
		entities, err = searchAll(ctx, opts, client.SearchMovies)
	case tmdb.KindShow:
		entities, err = searchAll(ctx, opts, client.SearchShows)
	case tmdb.KindPerson:
		entities, err = searchAll(ctx, opts, client.SearchPeople)
	default:
		return fmt.Errorf("invalid search type: %s (must be multi, movie, tv or person)", searchType)
	}
	if err != nil {
		return err
	}

	return printMatches(cmd, entities)
}

func runTrending(cmd *cobra.Command, args []string) error {
	mediaType := "all"
	if len(args) == 1 {
		mediaType = args[0]
	}

	results, err := client.Trending(cmd.Context(), mediaType, trendWindow)
	if err != nil {
		return err
	}
	entities, err := results.Collect(resultLimit)
	if err != nil {
		return err
	}
	return printMatches(cmd, entities)
}

func searchAll[T tmdb.Entity](ctx context.Context, opts tmdb.SearchOptions, search func(context.Context, tmdb.SearchOptions) (*tmdb.Results[T], error)) ([]tmdb.Entity, error) {
	results, err := search(ctx, opts)
	if err != nil {
		return nil, err
	}
	items, err := results.Collect(resultLimit)
	if err != nil {
		return nil, err
	}
	entities := make([]tmdb.Entity, 0, len(items))
	for _, item := range items {
		entities = append(entities, item)
	}
	return entities, nil
}

// printMatches applies the selected filter to the results and lists the matches
func printMatches(cmd *cobra.Command, entities []tmdb.Entity) error {
	records := make([]filter.Record, 0, len(entities))
	for _, e := range entities {
		records = append(records, filter.NewRecord(e.Kind(), e.Data()))
	}

	matches := records
	f, err := selectFilter()
	if err != nil {
		return err
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Int("results", len(records)).Msg("Filtering results")
		if matches, err = filters.Apply(cmd.Context(), f, records); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d results:\n", len(matches))
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, record := range matches {
		fmt.Fprintf(out, "• %s", record)
		if record.Rating > 0 {
			fmt.Fprintf(out, " ★ %.1f", record.Rating)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// selectFilter determines the filter to use: command line filter > preset > default
func selectFilter() (filter.CompiledFilter, error) {
	if filterExpr != "" {
		f, err := filters.Compile(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return f, nil
	}

	if preset != "" {
		return filters.Preset(preset)
	}

	if cfg.Filter.Default != "" {
		return filters.Compile(cfg.Filter.Default)
	}

	return nil, nil
}
