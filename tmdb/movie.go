package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

const movieAppend = "alternative_titles,changes,credits,external_ids,images,keywords,release_dates,videos,translations"

// Movie is a lazily resolved movie. Its bulk resolver fetches the details
// with every secondary resource appended, so reading any field costs at most
// one request.
type Movie struct {
	entity
}

// Movie returns a movie that resolves its fields on first access
func (c *Client) Movie(id int) (*Movie, error) {
	return newMovie(c, map[string]any{"id": id})
}

// MovieFromJSON wraps partial movie data, such as a search result. data must carry an id.
func (c *Client) MovieFromJSON(data map[string]any) (*Movie, error) {
	return newMovie(c, data)
}

func newMovie(c *Client, data map[string]any) (*Movie, error) {
	base, err := newEntity(c, KindMovie, data, numericID("id"))
	if err != nil {
		return nil, err
	}
	m := &Movie{entity: base}
	m.resolve = func(ctx context.Context, _ string) error {
		_, err := m.FetchAll(ctx)
		return err
	}
	return m, nil
}

// ID returns the TMDB movie ID
func (m *Movie) ID() int { return m.intID("id") }

// MediaType returns "movie"
func (m *Movie) MediaType() string { return KindMovie }

// Equal reports whether both values refer to the same movie
func (m *Movie) Equal(other *Movie) bool {
	return other != nil && m.ID() == other.ID()
}

func (m *Movie) path(suffix string) string {
	return fmt.Sprintf("/movie/%d%s", m.ID(), suffix)
}

// FetchAll fetches the details and every appended resource in one request
func (m *Movie) FetchAll(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path(""), url.Values{"append_to_response": {movieAppend}}, "")
}

// FetchDetails fetches the primary details only
func (m *Movie) FetchDetails(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path(""), nil, "")
}

// FetchAlternativeTitles fetches the titles the movie is known by per country
func (m *Movie) FetchAlternativeTitles(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/alternative_titles"), nil, "alternative_titles")
}

// FetchChanges fetches the recent edit history
func (m *Movie) FetchChanges(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/changes"), nil, "changes")
}

// FetchCredits fetches cast and crew
func (m *Movie) FetchCredits(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/credits"), nil, "credits")
}

// FetchExternalIDs fetches IDs on other services
func (m *Movie) FetchExternalIDs(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/external_ids"), nil, "external_ids")
}

// FetchImages fetches posters, backdrops and logos
func (m *Movie) FetchImages(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/images"), nil, "images")
}

// FetchKeywords fetches keywords
func (m *Movie) FetchKeywords(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/keywords"), nil, "keywords")
}

// FetchReleaseDates fetches per-country release dates and certifications
func (m *Movie) FetchReleaseDates(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/release_dates"), nil, "release_dates")
}

// FetchVideos fetches trailers and clips
func (m *Movie) FetchVideos(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/videos"), nil, "videos")
}

// FetchTranslations fetches localized titles and overviews
func (m *Movie) FetchTranslations(ctx context.Context) (map[string]any, error) {
	return m.fetch(ctx, m.path("/translations"), nil, "translations")
}

// Title returns the title keyed by country, plus "default" and "original"
func (m *Movie) Title(ctx context.Context) (map[string]string, error) {
	titles, err := m.translated(ctx, "title", "title")
	if err != nil {
		return nil, err
	}
	original, err := m.getString(ctx, "original_title")
	if err != nil {
		return nil, err
	}
	titles["original"] = original
	return titles, nil
}

// Overview returns the synopsis keyed by country, plus "default"
func (m *Movie) Overview(ctx context.Context) (map[string]string, error) {
	return m.translated(ctx, "overview", "overview")
}

// Homepage returns the homepage keyed by country, plus "default"
func (m *Movie) Homepage(ctx context.Context) (map[string]string, error) {
	return m.translated(ctx, "homepage", "homepage")
}

func (m *Movie) Tagline(ctx context.Context) (string, error) {
	return m.getString(ctx, "tagline")
}

// Status is the production status, e.g. "Released"
func (m *Movie) Status(ctx context.Context) (string, error) {
	return m.getString(ctx, "status")
}

// Runtime in minutes
func (m *Movie) Runtime(ctx context.Context) (int, error) {
	return m.getInt(ctx, "runtime")
}

func (m *Movie) Budget(ctx context.Context) (int, error) {
	return m.getInt(ctx, "budget")
}

func (m *Movie) Revenue(ctx context.Context) (int, error) {
	return m.getInt(ctx, "revenue")
}

// ReleaseDate is the primary release date as YYYY-MM-DD, or ""
func (m *Movie) ReleaseDate(ctx context.Context) (string, error) {
	return m.optionalString(ctx, "release_date")
}

// Year of the primary release, or 0 when there is no release date
func (m *Movie) Year(ctx context.Context) (int, error) {
	return m.year(ctx, "release_date")
}

func (m *Movie) Popularity(ctx context.Context) (float64, error) {
	return m.getFloat(ctx, "popularity")
}

func (m *Movie) Vote(ctx context.Context) (Vote, error) {
	return m.vote(ctx)
}

func (m *Movie) Adult(ctx context.Context) (bool, error) {
	return m.getBool(ctx, "adult")
}

// IMDbID returns the IMDb identifier, or "" when unknown
func (m *Movie) IMDbID(ctx context.Context) (string, error) {
	return m.optionalString(ctx, "imdb_id")
}

func (m *Movie) OriginalLanguage(ctx context.Context) (string, error) {
	return m.getString(ctx, "original_language")
}

func (m *Movie) Genres(ctx context.Context) ([]Genre, error) {
	return m.genres(ctx)
}

// Countries returns the production countries
func (m *Movie) Countries(ctx context.Context) ([]Country, error) {
	items, err := m.getObjects(ctx, "production_countries")
	if err != nil {
		return nil, err
	}
	return parseCountries(m.kind, "production_countries", items)
}

// Languages returns the spoken languages
func (m *Movie) Languages(ctx context.Context) ([]Language, error) {
	items, err := m.getObjects(ctx, "spoken_languages")
	if err != nil {
		return nil, err
	}
	return parseLanguages(m.kind, "spoken_languages", items)
}

// Companies returns the production companies, seeded with the data the movie already holds
func (m *Movie) Companies(ctx context.Context) ([]*Company, error) {
	return m.companies(ctx, "production_companies")
}

func (m *Movie) Keywords(ctx context.Context) ([]Keyword, error) {
	return m.keywords(ctx, "keywords")
}

// Releases returns the release dates grouped by country code
func (m *Movie) Releases(ctx context.Context) (map[string][]Release, error) {
	groups, err := m.getObjects(ctx, "release_dates", "results")
	if err != nil {
		return nil, err
	}

	releases := make(map[string][]Release, len(groups))
	for _, group := range groups {
		country, err := asString(m.kind, "release_dates.results.iso_3166_1", group["iso_3166_1"])
		if err != nil {
			return nil, err
		}
		dates, err := asObjects(m.kind, "release_dates.results.release_dates", group["release_dates"])
		if err != nil {
			return nil, err
		}
		for _, date := range dates {
			r := newRecord(m.kind, "release_dates.results.release_dates", date)
			release := Release{
				Certification: r.optStr("certification"),
				Date:          r.str("release_date"),
				Note:          r.optStr("note"),
				Type:          r.optInt("type"),
			}
			if r.err != nil {
				return nil, r.err
			}
			releases[country] = append(releases[country], release)
		}
	}
	return releases, nil
}

func (m *Movie) Videos(ctx context.Context) ([]Video, error) {
	return m.videos(ctx)
}

func (m *Movie) Posters(ctx context.Context) ([]*Image, error) {
	return m.images(ctx, ImagePoster, "images", "posters")
}

func (m *Movie) Backdrops(ctx context.Context) ([]*Image, error) {
	return m.images(ctx, ImageBackdrop, "images", "backdrops")
}

func (m *Movie) Logos(ctx context.Context) ([]*Image, error) {
	return m.images(ctx, ImageLogo, "images", "logos")
}

func (m *Movie) AlternativeTitles(ctx context.Context) ([]AlternativeTitle, error) {
	return m.alternativeTitles(ctx, "titles")
}

// ExternalIDs returns the non-empty IDs on other services, keyed like "imdb_id"
func (m *Movie) ExternalIDs(ctx context.Context) (map[string]string, error) {
	return m.externalIDs(ctx)
}

// Cast pairs each cast member with a credit that already knows this movie
func (m *Movie) Cast(ctx context.Context) ([]PersonCredit, error) {
	items, err := m.getObjects(ctx, "credits", "cast")
	if err != nil {
		return nil, err
	}
	return personCredits(m.client, m, "cast", items)
}

// Crew pairs each crew member with a credit that already knows this movie
func (m *Movie) Crew(ctx context.Context) ([]PersonCredit, error) {
	items, err := m.getObjects(ctx, "credits", "crew")
	if err != nil {
		return nil, err
	}
	return personCredits(m.client, m, "crew", items)
}

// Recommendations walks the recommended movies page by page
func (m *Movie) Recommendations(ctx context.Context) *Results[*Movie] {
	return newResults(m.paginate(ctx, m.path("/recommendations"), nil), m.client.MovieFromJSON)
}

// Similar walks movies with similar keywords and genres
func (m *Movie) Similar(ctx context.Context) *Results[*Movie] {
	return newResults(m.paginate(ctx, m.path("/similar"), nil), m.client.MovieFromJSON)
}

// Reviews walks the user reviews
func (m *Movie) Reviews(ctx context.Context) *Results[Review] {
	return newResults(m.paginate(ctx, m.path("/reviews"), nil), func(item map[string]any) (Review, error) {
		return parseReview(m.kind, item)
	})
}

// Lists walks the public lists that contain this movie
func (m *Movie) Lists(ctx context.Context) *Results[*List] {
	return newResults(m.paginate(ctx, m.path("/lists"), nil), m.client.ListFromJSON)
}
