package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

const showAppend = "alternative_titles,changes,content_ratings,credits,external_ids,images,keywords,videos,translations"

// Show is a lazily resolved TV series
type Show struct {
	entity
}

// Network is a broadcaster or streaming service airing a show
type Network struct {
	ID            int
	Name          string
	LogoPath      string
	OriginCountry string
}

func (n Network) String() string { return n.Name }

// Show returns a show that resolves its fields on first access
func (c *Client) Show(id int) (*Show, error) {
	return newShow(c, map[string]any{"id": id})
}

// ShowFromJSON wraps partial show data. data must carry an id.
func (c *Client) ShowFromJSON(data map[string]any) (*Show, error) {
	return newShow(c, data)
}

func newShow(c *Client, data map[string]any) (*Show, error) {
	base, err := newEntity(c, KindShow, data, numericID("id"))
	if err != nil {
		return nil, err
	}
	s := &Show{entity: base}
	s.resolve = func(ctx context.Context, _ string) error {
		_, err := s.FetchAll(ctx)
		return err
	}
	return s, nil
}

// ID returns the TMDB show ID
func (s *Show) ID() int { return s.intID("id") }

// MediaType returns "tv"
func (s *Show) MediaType() string { return KindShow }

// Equal reports whether both values refer to the same show
func (s *Show) Equal(other *Show) bool {
	return other != nil && s.ID() == other.ID()
}

func (s *Show) path(suffix string) string {
	return fmt.Sprintf("/tv/%d%s", s.ID(), suffix)
}

// FetchAll fetches the details and every appended resource in one request
func (s *Show) FetchAll(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path(""), url.Values{"append_to_response": {showAppend}}, "")
}

// FetchDetails fetches the primary details only
func (s *Show) FetchDetails(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path(""), nil, "")
}

func (s *Show) FetchAlternativeTitles(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/alternative_titles"), nil, "alternative_titles")
}

func (s *Show) FetchChanges(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/changes"), nil, "changes")
}

func (s *Show) FetchContentRatings(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/content_ratings"), nil, "content_ratings")
}

func (s *Show) FetchCredits(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/credits"), nil, "credits")
}

func (s *Show) FetchExternalIDs(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/external_ids"), nil, "external_ids")
}

func (s *Show) FetchImages(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/images"), nil, "images")
}

func (s *Show) FetchKeywords(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/keywords"), nil, "keywords")
}

func (s *Show) FetchVideos(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/videos"), nil, "videos")
}

func (s *Show) FetchTranslations(ctx context.Context) (map[string]any, error) {
	return s.fetch(ctx, s.path("/translations"), nil, "translations")
}

// Title returns the name keyed by country, plus "default" and "original"
func (s *Show) Title(ctx context.Context) (map[string]string, error) {
	titles, err := s.translated(ctx, "name", "name")
	if err != nil {
		return nil, err
	}
	original, err := s.getString(ctx, "original_name")
	if err != nil {
		return nil, err
	}
	titles["original"] = original
	return titles, nil
}

func (s *Show) Overview(ctx context.Context) (map[string]string, error) {
	return s.translated(ctx, "overview", "overview")
}

func (s *Show) Homepage(ctx context.Context) (map[string]string, error) {
	return s.translated(ctx, "homepage", "homepage")
}

// Status is the production status, e.g. "Returning Series" or "Ended"
func (s *Show) Status(ctx context.Context) (string, error) {
	return s.getString(ctx, "status")
}

// Type is the format, e.g. "Scripted" or "Miniseries"
func (s *Show) Type(ctx context.Context) (string, error) {
	return s.getString(ctx, "type")
}

func (s *Show) FirstAirDate(ctx context.Context) (string, error) {
	return s.optionalString(ctx, "first_air_date")
}

func (s *Show) LastAirDate(ctx context.Context) (string, error) {
	return s.optionalString(ctx, "last_air_date")
}

// Year of the first air date, or 0 when the show has not aired
func (s *Show) Year(ctx context.Context) (int, error) {
	return s.year(ctx, "first_air_date")
}

func (s *Show) InProduction(ctx context.Context) (bool, error) {
	return s.getBool(ctx, "in_production")
}

func (s *Show) NumberOfSeasons(ctx context.Context) (int, error) {
	return s.getInt(ctx, "number_of_seasons")
}

func (s *Show) NumberOfEpisodes(ctx context.Context) (int, error) {
	return s.getInt(ctx, "number_of_episodes")
}

// EpisodeRunTime lists the typical episode lengths in minutes
func (s *Show) EpisodeRunTime(ctx context.Context) ([]int, error) {
	value, err := s.get(ctx, "episode_run_time")
	if err != nil {
		return nil, err
	}
	items, ok := value.([]any)
	if !ok && value != nil {
		return nil, &ShapeError{Kind: s.kind, Field: "episode_run_time"}
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, err := asInt(s.kind, "episode_run_time", item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Show) Popularity(ctx context.Context) (float64, error) {
	return s.getFloat(ctx, "popularity")
}

func (s *Show) Vote(ctx context.Context) (Vote, error) {
	return s.vote(ctx)
}

func (s *Show) OriginalLanguage(ctx context.Context) (string, error) {
	return s.getString(ctx, "original_language")
}

func (s *Show) Genres(ctx context.Context) ([]Genre, error) {
	return s.genres(ctx)
}

// Countries returns the origin countries
func (s *Show) Countries(ctx context.Context) ([]Country, error) {
	items, err := s.getObjects(ctx, "production_countries")
	if err != nil {
		return nil, err
	}
	return parseCountries(s.kind, "production_countries", items)
}

func (s *Show) Languages(ctx context.Context) ([]Language, error) {
	items, err := s.getObjects(ctx, "spoken_languages")
	if err != nil {
		return nil, err
	}
	return parseLanguages(s.kind, "spoken_languages", items)
}

func (s *Show) Companies(ctx context.Context) ([]*Company, error) {
	return s.companies(ctx, "production_companies")
}

func (s *Show) Networks(ctx context.Context) ([]Network, error) {
	items, err := s.getObjects(ctx, "networks")
	if err != nil {
		return nil, err
	}
	out := make([]Network, 0, len(items))
	for _, item := range items {
		r := newRecord(s.kind, "networks", item)
		network := Network{
			ID:            r.integer("id"),
			Name:          r.str("name"),
			LogoPath:      r.optStr("logo_path"),
			OriginCountry: r.optStr("origin_country"),
		}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, network)
	}
	return out, nil
}

// CreatedBy returns the creators of the show
func (s *Show) CreatedBy(ctx context.Context) ([]*Person, error) {
	items, err := s.getObjects(ctx, "created_by")
	if err != nil {
		return nil, err
	}
	out := make([]*Person, 0, len(items))
	for _, item := range items {
		person, err := newPerson(s.client, pick(item, personFields...))
		if err != nil {
			return nil, &ShapeError{Kind: s.kind, Field: "created_by", Err: err}
		}
		out = append(out, person)
	}
	return out, nil
}

// Seasons returns the seasons, each seeded with its summary and this show's ID
func (s *Show) Seasons(ctx context.Context) ([]*Season, error) {
	items, err := s.getObjects(ctx, "seasons")
	if err != nil {
		return nil, err
	}
	out := make([]*Season, 0, len(items))
	for _, item := range items {
		item["show_id"] = s.ID()
		season, err := newSeason(s.client, item)
		if err != nil {
			return nil, &ShapeError{Kind: s.kind, Field: "seasons", Err: err}
		}
		out = append(out, season)
	}
	return out, nil
}

// Season returns one season of this show without fetching it
func (s *Show) Season(number int) (*Season, error) {
	return s.client.Season(s.ID(), number)
}

// ContentRatings returns the age ratings per country
func (s *Show) ContentRatings(ctx context.Context) ([]ContentRating, error) {
	items, err := s.getObjects(ctx, "content_ratings", "results")
	if err != nil {
		return nil, err
	}
	out := make([]ContentRating, 0, len(items))
	for _, item := range items {
		r := newRecord(s.kind, "content_ratings.results", item)
		rating := ContentRating{Country: r.str("iso_3166_1"), Rating: r.str("rating")}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, rating)
	}
	return out, nil
}

func (s *Show) Keywords(ctx context.Context) ([]Keyword, error) {
	return s.keywords(ctx, "results")
}

func (s *Show) AlternativeTitles(ctx context.Context) ([]AlternativeTitle, error) {
	return s.alternativeTitles(ctx, "results")
}

func (s *Show) Videos(ctx context.Context) ([]Video, error) {
	return s.videos(ctx)
}

func (s *Show) Posters(ctx context.Context) ([]*Image, error) {
	return s.images(ctx, ImagePoster, "images", "posters")
}

func (s *Show) Backdrops(ctx context.Context) ([]*Image, error) {
	return s.images(ctx, ImageBackdrop, "images", "backdrops")
}

func (s *Show) Logos(ctx context.Context) ([]*Image, error) {
	return s.images(ctx, ImageLogo, "images", "logos")
}

func (s *Show) ExternalIDs(ctx context.Context) (map[string]string, error) {
	return s.externalIDs(ctx)
}

// Cast pairs each cast member with a credit that already knows this show
func (s *Show) Cast(ctx context.Context) ([]PersonCredit, error) {
	items, err := s.getObjects(ctx, "credits", "cast")
	if err != nil {
		return nil, err
	}
	return personCredits(s.client, s, "cast", items)
}

// Crew pairs each crew member with a credit that already knows this show
func (s *Show) Crew(ctx context.Context) ([]PersonCredit, error) {
	items, err := s.getObjects(ctx, "credits", "crew")
	if err != nil {
		return nil, err
	}
	return personCredits(s.client, s, "crew", items)
}

func (s *Show) Recommendations(ctx context.Context) *Results[*Show] {
	return newResults(s.paginate(ctx, s.path("/recommendations"), nil), s.client.ShowFromJSON)
}

func (s *Show) Similar(ctx context.Context) *Results[*Show] {
	return newResults(s.paginate(ctx, s.path("/similar"), nil), s.client.ShowFromJSON)
}

func (s *Show) Reviews(ctx context.Context) *Results[Review] {
	return newResults(s.paginate(ctx, s.path("/reviews"), nil), func(item map[string]any) (Review, error) {
		return parseReview(s.kind, item)
	})
}
