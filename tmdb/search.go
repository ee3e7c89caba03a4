package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SearchOptions narrow a search
type SearchOptions struct {
	Query        string
	Year         int
	IncludeAdult bool
	// Region is an ISO 3166-1 code
	Region string
}

// Validate checks the options before any request is made
func (o SearchOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Query, validation.Required),
		validation.Field(&o.Year, validation.Min(0)),
		validation.Field(&o.Region, validation.Length(2, 2), is.UpperCase),
	)
}

func (o SearchOptions) params() url.Values {
	params := url.Values{"query": {o.Query}}
	if o.Year > 0 {
		params.Set("year", strconv.Itoa(o.Year))
	}
	if o.IncludeAdult {
		params.Set("include_adult", "true")
	}
	if o.Region != "" {
		params.Set("region", o.Region)
	}
	return params
}

func search[T any](ctx context.Context, c *Client, path string, opts SearchOptions, convert func(map[string]any) (T, error)) (*Results[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return newResults(c.pages(ctx, path, opts.params()), convert), nil
}

// SearchMovies walks the movies matching opts.Query
func (c *Client) SearchMovies(ctx context.Context, opts SearchOptions) (*Results[*Movie], error) {
	return search(ctx, c, "/search/movie", opts, c.MovieFromJSON)
}

// SearchShows walks the TV shows matching opts.Query
func (c *Client) SearchShows(ctx context.Context, opts SearchOptions) (*Results[*Show], error) {
	return search(ctx, c, "/search/tv", opts, c.ShowFromJSON)
}

// SearchPeople walks the people matching opts.Query
func (c *Client) SearchPeople(ctx context.Context, opts SearchOptions) (*Results[*Person], error) {
	return search(ctx, c, "/search/person", opts, c.PersonFromJSON)
}

// SearchCompanies walks the companies matching opts.Query
func (c *Client) SearchCompanies(ctx context.Context, opts SearchOptions) (*Results[*Company], error) {
	return search(ctx, c, "/search/company", opts, c.CompanyFromJSON)
}

// SearchKeywords walks the keywords matching opts.Query
func (c *Client) SearchKeywords(ctx context.Context, opts SearchOptions) (*Results[Keyword], error) {
	return search(ctx, c, "/search/keyword", opts, func(item map[string]any) (Keyword, error) {
		r := newRecord("keyword", "results", item)
		keyword := Keyword{ID: r.integer("id"), Name: r.str("name")}
		return keyword, r.err
	})
}

// SearchMulti walks movies, shows and people matching opts.Query in one sequence
func (c *Client) SearchMulti(ctx context.Context, opts SearchOptions) (*Results[Entity], error) {
	return search(ctx, c, "/search/multi", opts, func(item map[string]any) (Entity, error) {
		return entityFromJSON(c, item, "")
	})
}

// DiscoverMovies walks movies matching the discover filters in params,
// e.g. "with_genres" or "primary_release_year"
func (c *Client) DiscoverMovies(ctx context.Context, params url.Values) *Results[*Movie] {
	return newResults(c.pages(ctx, "/discover/movie", params), c.MovieFromJSON)
}

// DiscoverShows walks shows matching the discover filters in params
func (c *Client) DiscoverShows(ctx context.Context, params url.Values) *Results[*Show] {
	return newResults(c.pages(ctx, "/discover/tv", params), c.ShowFromJSON)
}

func (c *Client) PopularMovies(ctx context.Context) *Results[*Movie] {
	return newResults(c.pages(ctx, "/movie/popular", nil), c.MovieFromJSON)
}

func (c *Client) TopRatedMovies(ctx context.Context) *Results[*Movie] {
	return newResults(c.pages(ctx, "/movie/top_rated", nil), c.MovieFromJSON)
}

func (c *Client) UpcomingMovies(ctx context.Context) *Results[*Movie] {
	return newResults(c.pages(ctx, "/movie/upcoming", nil), c.MovieFromJSON)
}

func (c *Client) NowPlayingMovies(ctx context.Context) *Results[*Movie] {
	return newResults(c.pages(ctx, "/movie/now_playing", nil), c.MovieFromJSON)
}

func (c *Client) PopularShows(ctx context.Context) *Results[*Show] {
	return newResults(c.pages(ctx, "/tv/popular", nil), c.ShowFromJSON)
}

func (c *Client) TopRatedShows(ctx context.Context) *Results[*Show] {
	return newResults(c.pages(ctx, "/tv/top_rated", nil), c.ShowFromJSON)
}

// Trending walks what is trending for mediaType ("all", "movie", "tv" or
// "person") over window ("day" or "week")
func (c *Client) Trending(ctx context.Context, mediaType, window string) (*Results[Entity], error) {
	err := validation.Errors{
		"media_type": validation.Validate(mediaType, validation.Required, validation.In("all", KindMovie, KindShow, KindPerson)),
		"window":     validation.Validate(window, validation.Required, validation.In("day", "week")),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	fallback := mediaType
	if fallback == "all" {
		fallback = ""
	}
	path := fmt.Sprintf("/trending/%s/%s", mediaType, window)
	return newResults(c.pages(ctx, path, nil), func(item map[string]any) (Entity, error) {
		return entityFromJSON(c, item, fallback)
	}), nil
}

// External ID sources accepted by Find
var findSources = []any{
	"imdb_id", "tvdb_id", "freebase_mid", "freebase_id", "tvrage_id",
	"facebook_id", "instagram_id", "twitter_id", "tiktok_id", "wikidata_id", "youtube_id",
}

// FindResult groups the entities matching an external ID
type FindResult struct {
	Movies   []*Movie
	Shows    []*Show
	People   []*Person
	Seasons  []*Season
	Episodes []*Episode
}

// Find looks up entities by an ID on another service, e.g. an IMDb ID with source "imdb_id"
func (c *Client) Find(ctx context.Context, externalID, source string) (*FindResult, error) {
	err := validation.Errors{
		"external_id": validation.Validate(externalID, validation.Required),
		"source":      validation.Validate(source, validation.Required, validation.In(findSources...)),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	payload, err := c.transport.Get(ctx, "/find/"+url.PathEscape(externalID), url.Values{"external_source": {source}})
	if err != nil {
		return nil, err
	}

	result := &FindResult{}
	if result.Movies, err = findAll(payload, "movie_results", c.MovieFromJSON); err != nil {
		return nil, err
	}
	if result.Shows, err = findAll(payload, "tv_results", c.ShowFromJSON); err != nil {
		return nil, err
	}
	if result.People, err = findAll(payload, "person_results", c.PersonFromJSON); err != nil {
		return nil, err
	}
	if result.Seasons, err = findAll(payload, "tv_season_results", c.SeasonFromJSON); err != nil {
		return nil, err
	}
	if result.Episodes, err = findAll(payload, "tv_episode_results", c.EpisodeFromJSON); err != nil {
		return nil, err
	}
	return result, nil
}

func findAll[T any](payload map[string]any, key string, convert func(map[string]any) (T, error)) ([]T, error) {
	items, err := asObjects("find", key, payload[key])
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		value, err := convert(item)
		if err != nil {
			return nil, &ShapeError{Kind: "find", Field: key, Err: err}
		}
		out = append(out, value)
	}
	return out, nil
}

// MovieGenres lists the official movie genres
func (c *Client) MovieGenres(ctx context.Context) ([]Genre, error) {
	return c.genreList(ctx, "/genre/movie/list")
}

// ShowGenres lists the official TV genres
func (c *Client) ShowGenres(ctx context.Context) ([]Genre, error) {
	return c.genreList(ctx, "/genre/tv/list")
}

func (c *Client) genreList(ctx context.Context, path string) ([]Genre, error) {
	payload, err := c.transport.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	items, err := asObjects("genre", "genres", payload["genres"])
	if err != nil {
		return nil, err
	}
	return parseGenres("genre", "genres", items)
}

// Countries lists every country TMDB knows
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	payload, err := c.transport.Get(ctx, "/configuration/countries", nil)
	if err != nil {
		return nil, err
	}
	items, err := asObjects("configuration", "countries", payload["results"])
	if err != nil {
		return nil, err
	}
	return parseCountries("configuration", "countries", items)
}

// Languages lists every language TMDB knows
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	payload, err := c.transport.Get(ctx, "/configuration/languages", nil)
	if err != nil {
		return nil, err
	}
	items, err := asObjects("configuration", "languages", payload["results"])
	if err != nil {
		return nil, err
	}
	return parseLanguages("configuration", "languages", items)
}
