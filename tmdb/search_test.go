package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    SearchOptions
		wantErr bool
	}{
		{name: "query only", opts: SearchOptions{Query: "fight club"}},
		{name: "full", opts: SearchOptions{Query: "fight club", Year: 1999, IncludeAdult: true, Region: "US"}},
		{name: "empty query", opts: SearchOptions{Year: 1999}, wantErr: true},
		{name: "negative year", opts: SearchOptions{Query: "x", Year: -1}, wantErr: true},
		{name: "long region", opts: SearchOptions{Query: "x", Region: "USA"}, wantErr: true},
		{name: "lowercase region", opts: SearchOptions{Query: "x", Region: "us"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSearchMovies(t *testing.T) {
	api := newFakeAPI(t)
	api.onPages("/search/movie", 2, 20)
	client := api.client()
	ctx := context.Background()

	_, err := client.SearchMovies(ctx, SearchOptions{})
	require.ErrorIs(t, err, ErrInvalidOptions)
	assert.Zero(t, api.count("/search/movie"))

	results, err := client.SearchMovies(ctx, SearchOptions{Query: "fight club", Year: 1999, Region: "US"})
	require.NoError(t, err)
	assert.Zero(t, api.count("/search/movie"))

	movies, err := results.Collect(0)
	require.NoError(t, err)
	assert.Len(t, movies, 40)

	query := api.query(http.MethodGet, "/search/movie")
	assert.Equal(t, "fight club", query.Get("query"))
	assert.Equal(t, "1999", query.Get("year"))
	assert.Equal(t, "US", query.Get("region"))
	assert.Empty(t, query.Get("include_adult"))
	assert.Equal(t, "2", query.Get("page"))
}

func TestSearchMulti(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/search/multi", map[string]any{
		"page":        1,
		"total_pages": 1,
		"results": []any{
			map[string]any{"id": 550, "media_type": "movie", "title": "Fight Club"},
			map[string]any{"id": 1399, "media_type": "tv", "name": "Game of Thrones"},
			map[string]any{"id": 287, "media_type": "person", "name": "Brad Pitt"},
		},
	})
	results, err := api.client().SearchMulti(context.Background(), SearchOptions{Query: "club"})
	require.NoError(t, err)

	entities, err := results.Collect(0)
	require.NoError(t, err)
	require.Len(t, entities, 3)
	assert.IsType(t, &Movie{}, entities[0])
	assert.IsType(t, &Show{}, entities[1])
	assert.IsType(t, &Person{}, entities[2])
	assert.Equal(t, "1399", entities[1].Identifier())
}

func TestSearchStopsOnBadItem(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/search/multi", map[string]any{
		"page":        1,
		"total_pages": 1,
		"results": []any{
			map[string]any{"id": 550, "media_type": "movie"},
			map[string]any{"id": 9, "media_type": "collection"},
			map[string]any{"id": 551, "media_type": "movie"},
		},
	})
	results, err := api.client().SearchMulti(context.Background(), SearchOptions{Query: "club"})
	require.NoError(t, err)

	entities, err := results.Collect(0)
	require.ErrorIs(t, err, ErrConstruction)
	assert.Len(t, entities, 1)
	assert.False(t, results.Next())
}

func TestSearchKeywords(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/search/keyword", map[string]any{
		"page":        1,
		"total_pages": 1,
		"results":     []any{map[string]any{"id": 825, "name": "support group"}},
	})
	results, err := api.client().SearchKeywords(context.Background(), SearchOptions{Query: "support"})
	require.NoError(t, err)

	keywords, err := results.Collect(0)
	require.NoError(t, err)
	assert.Equal(t, []Keyword{{ID: 825, Name: "support group"}}, keywords)
}

func TestDiscover(t *testing.T) {
	api := newFakeAPI(t)
	api.onPages("/discover/tv", 1, 4)
	client := api.client()

	params := url.Values{"with_genres": {"18"}, "first_air_date_year": {"2011"}}
	shows, err := client.DiscoverShows(context.Background(), params).Collect(0)
	require.NoError(t, err)
	assert.Len(t, shows, 4)

	query := api.query(http.MethodGet, "/discover/tv")
	assert.Equal(t, "18", query.Get("with_genres"))
	assert.Equal(t, "1", query.Get("page"))
	assert.Empty(t, params.Get("page"))
}

func TestTrending(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/trending/movie/week", map[string]any{
		"page":        1,
		"total_pages": 1,
		"results":     []any{map[string]any{"id": 550, "title": "Fight Club"}},
	})
	client := api.client()
	ctx := context.Background()

	for _, tc := range [][2]string{{"movies", "week"}, {"movie", "month"}, {"", ""}} {
		_, err := client.Trending(ctx, tc[0], tc[1])
		require.ErrorIs(t, err, ErrInvalidOptions, "%v", tc)
	}

	results, err := client.Trending(ctx, "movie", "week")
	require.NoError(t, err)
	entities, err := results.Collect(0)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, KindMovie, entities[0].Kind())
}

func TestFind(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/find/tt0944947", map[string]any{
		"movie_results":  []any{},
		"person_results": []any{},
		"tv_results": []any{
			map[string]any{"id": 1399, "name": "Game of Thrones", "media_type": "tv"},
		},
		"tv_season_results": []any{},
		"tv_episode_results": []any{
			map[string]any{"id": 63056, "show_id": 1399, "season_number": 1, "episode_number": 1, "name": "Winter Is Coming"},
		},
	})
	client := api.client()
	ctx := context.Background()

	_, err := client.Find(ctx, "tt0944947", "netflix_id")
	require.ErrorIs(t, err, ErrInvalidOptions)
	_, err = client.Find(ctx, "", "imdb_id")
	require.ErrorIs(t, err, ErrInvalidOptions)

	result, err := client.Find(ctx, "tt0944947", "imdb_id")
	require.NoError(t, err)
	assert.Equal(t, "imdb_id", api.query(http.MethodGet, "/find/tt0944947").Get("external_source"))
	assert.Empty(t, result.Movies)
	assert.Empty(t, result.People)
	require.Len(t, result.Shows, 1)
	assert.Equal(t, 1399, result.Shows[0].ID())
	require.Len(t, result.Episodes, 1)
	assert.Equal(t, "1399/1/1", result.Episodes[0].Identifier())
}

func TestReferenceLists(t *testing.T) {
	api := newFakeAPI(t)
	api.on("/genre/movie/list", map[string]any{"genres": []any{
		map[string]any{"id": 28, "name": "Action"},
		map[string]any{"id": 18, "name": "Drama"},
	}})
	api.on("/configuration/countries", []any{
		map[string]any{"iso_3166_1": "DE", "english_name": "Germany", "native_name": "Deutschland"},
	})
	api.on("/configuration/languages", []any{
		map[string]any{"iso_639_1": "de", "english_name": "German", "name": "Deutsch"},
	})
	client := api.client()
	ctx := context.Background()

	genres, err := client.MovieGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, genres)

	countries, err := client.Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Country{{Code: "DE", Name: "Deutschland", EnglishName: "Germany"}}, countries)

	languages, err := client.Languages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Language{{Code: "de", Name: "Deutsch", EnglishName: "German"}}, languages)

	_, err = client.ShowGenres(ctx)
	require.Error(t, err)
}
