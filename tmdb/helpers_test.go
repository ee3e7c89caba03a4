package tmdb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/s0up4200/tmdb/transport"
)

// fakeAPI serves canned JSON per path and counts the hits on each
type fakeAPI struct {
	t       *testing.T
	mu      sync.Mutex
	routes  map[string]func(r *http.Request) (int, any)
	hits    map[string]int
	queries map[string]url.Values
	bodies  map[string]map[string]any
	server  *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		t:       t,
		routes:  make(map[string]func(r *http.Request) (int, any)),
		hits:    make(map[string]int),
		queries: make(map[string]url.Values),
		bodies:  make(map[string]map[string]any),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.hits[key]++
	f.queries[key] = r.URL.Query()
	var body map[string]any
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}
	f.bodies[key] = body
	route, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"success":        false,
			"status_code":    34,
			"status_message": "The resource you requested could not be found.",
		})
		return
	}

	status, payload := route(r)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// on registers a JSON response for GET path
func (f *fakeAPI) on(path string, payload any) {
	f.onMethod(http.MethodGet, path, payload)
}

func (f *fakeAPI) onMethod(method, path string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = func(*http.Request) (int, any) { return http.StatusOK, payload }
}

func (f *fakeAPI) onStatus(method, path string, status int, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = func(*http.Request) (int, any) { return status, payload }
}

// onPages serves total pages of perPage results whose ids count up from 1
func (f *fakeAPI) onPages(path string, total, perPage int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[http.MethodGet+" "+path] = func(r *http.Request) (int, any) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			return http.StatusBadRequest, map[string]any{"status_message": "missing page"}
		}
		results := make([]map[string]any, 0, perPage)
		for i := 0; i < perPage; i++ {
			results = append(results, map[string]any{"id": (page-1)*perPage + i + 1, "title": "Movie"})
		}
		return http.StatusOK, map[string]any{"page": page, "total_pages": total, "results": results}
	}
}

func (f *fakeAPI) count(path string) int {
	return f.countMethod(http.MethodGet, path)
}

func (f *fakeAPI) countMethod(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeAPI) query(method, path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[method+" "+path]
}

func (f *fakeAPI) body(method, path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[method+" "+path]
}

func (f *fakeAPI) client() *Client {
	t := transport.NewClient("test-key", zerolog.Nop(), transport.WithBaseURL(f.server.URL))
	return NewClient(t, zerolog.Nop())
}

func movieFixture(id int) map[string]any {
	return map[string]any{
		"id":                id,
		"title":             "Fight Club",
		"original_title":    "Fight Club",
		"overview":          "A ticking-time-bomb insomniac...",
		"homepage":          nil,
		"tagline":           "Mischief. Mayhem. Soap.",
		"status":            "Released",
		"runtime":           139,
		"budget":            63000000,
		"revenue":           100853753,
		"release_date":      "1999-10-15",
		"popularity":        61.416,
		"vote_average":      8.433,
		"vote_count":        26280,
		"adult":             false,
		"imdb_id":           "tt0137523",
		"original_language": "en",
		"genres":            []any{map[string]any{"id": 18, "name": "Drama"}},
		"production_countries": []any{
			map[string]any{"iso_3166_1": "US", "name": "United States of America"},
		},
		"spoken_languages": []any{
			map[string]any{"english_name": "English", "iso_639_1": "en", "name": "English"},
		},
		"production_companies": []any{
			map[string]any{"id": 508, "logo_path": "/7cxRWzi4LsVm4Utfpr1hfARNurT.png", "name": "Regency Enterprises", "origin_country": "US"},
		},
		"alternative_titles": map[string]any{
			"titles": []any{map[string]any{"iso_3166_1": "FR", "title": "Le Club de combat", "type": ""}},
		},
		"changes": map[string]any{"changes": []any{}},
		"credits": map[string]any{
			"cast": []any{
				map[string]any{
					"id": 819, "name": "Edward Norton", "original_name": "Edward Norton", "gender": 2,
					"known_for_department": "Acting", "profile_path": "/8nytsqL59SFJTVYVrN72k6qkGgJ.jpg",
					"character": "Narrator", "credit_id": "52fe4250c3a36847f80149f3", "order": 0, "cast_id": 4,
				},
			},
			"crew": []any{
				map[string]any{
					"id": 7467, "name": "David Fincher", "gender": 2, "known_for_department": "Directing",
					"department": "Directing", "job": "Director", "credit_id": "631f0289568463007bbe28a7",
				},
			},
		},
		"external_ids": map[string]any{"id": id, "imdb_id": "tt0137523", "wikidata_id": "Q190050", "facebook_id": nil},
		"images": map[string]any{
			"posters":   []any{map[string]any{"file_path": "/poster.jpg", "width": 2000, "height": 3000, "aspect_ratio": 0.667, "iso_639_1": "en"}},
			"backdrops": []any{map[string]any{"file_path": "/backdrop.jpg", "width": 3840, "height": 2160}},
			"logos":     []any{},
		},
		"keywords": map[string]any{
			"keywords": []any{map[string]any{"id": 825, "name": "support group"}},
		},
		"release_dates": map[string]any{
			"results": []any{
				map[string]any{
					"iso_3166_1": "US",
					"release_dates": []any{
						map[string]any{"certification": "R", "iso_639_1": "", "release_date": "1999-10-15T00:00:00.000Z", "type": 3},
						map[string]any{"certification": "R", "iso_639_1": "", "note": "Blu-ray", "release_date": "2009-11-17T00:00:00.000Z", "type": 5},
					},
				},
			},
		},
		"videos": map[string]any{
			"results": []any{
				map[string]any{"id": "5c9294240e0a267cd516835f", "key": "BdJKm16Co6M", "name": "Trailer", "site": "YouTube", "type": "Trailer", "size": 1080, "official": true, "iso_639_1": "en", "iso_3166_1": "US"},
			},
		},
		"translations": map[string]any{
			"translations": []any{
				map[string]any{"iso_3166_1": "US", "iso_639_1": "en", "data": map[string]any{"title": "", "overview": "A ticking-time-bomb insomniac...", "homepage": ""}},
				map[string]any{"iso_3166_1": "DE", "iso_639_1": "de", "data": map[string]any{"title": "Fight Club", "overview": "Ein Yuppie...", "homepage": "https://www.foxfilm.de"}},
				map[string]any{"iso_3166_1": "FR", "iso_639_1": "fr", "data": map[string]any{"title": "Fight Club (FR)", "overview": "", "homepage": ""}},
			},
		},
	}
}

func configurationFixture() map[string]any {
	return map[string]any{
		"images": map[string]any{
			"base_url":        "http://image.tmdb.org/t/p/",
			"secure_base_url": "https://image.tmdb.org/t/p/",
			"backdrop_sizes":  []any{"w300", "w780", "w1280", "original"},
			"logo_sizes":      []any{"w45", "w92", "original"},
			"poster_sizes":    []any{"w92", "w154", "w500", "original"},
			"profile_sizes":   []any{"w45", "h632", "original"},
			"still_sizes":     []any{"w92", "w300", "original"},
		},
		"change_keys": []any{"adult", "title"},
	}
}
