package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, apiKey string, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	return NewClient(apiKey, zerolog.Nop(), opts...)
}

func TestNewClient(t *testing.T) {
	client := NewClient("  test-key ", zerolog.Nop())
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, "test-key", client.apiKey)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestClientOptions(t *testing.T) {
	t.Run("with base url", func(t *testing.T) {
		client := NewClient("key", zerolog.Nop(), WithBaseURL("http://localhost:8080/3/"))
		assert.Equal(t, "http://localhost:8080/3", client.BaseURL())
	})

	t.Run("with timeout", func(t *testing.T) {
		client := NewClient("key", zerolog.Nop(), WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient("key", zerolog.Nop(), WithHTTPClient(custom))
		assert.Same(t, custom, client.httpClient)
	})

	t.Run("timeout leaves a shared http client alone", func(t *testing.T) {
		shared := &http.Client{Timeout: 10 * time.Second}

		client := NewClient("key", zerolog.Nop(), WithHTTPClient(shared), WithTimeout(5*time.Second))
		assert.Equal(t, 10*time.Second, shared.Timeout)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
		assert.NotSame(t, shared, client.httpClient)

		client = NewClient("key", zerolog.Nop(), WithTimeout(5*time.Second), WithHTTPClient(shared))
		assert.Equal(t, 10*time.Second, shared.Timeout)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with language", func(t *testing.T) {
		client := NewClient("key", zerolog.Nop(), WithLanguage("de-DE"))
		assert.Equal(t, "de-DE", client.language)
	})
}

func TestGet(t *testing.T) {
	t.Run("sends api key and decodes object", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/movie/550", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
			assert.Equal(t, "en-US", r.URL.Query().Get("language"))
			json.NewEncoder(w).Encode(map[string]any{"id": 550, "title": "Fight Club"})
		}), "test-key", WithLanguage("en-US"))

		payload, err := client.Get(context.Background(), "/movie/550", map[string][]string{
			"append_to_response": {"credits"},
		})
		require.NoError(t, err)
		assert.Equal(t, float64(550), payload["id"])
		assert.Equal(t, "Fight Club", payload["title"])
	})

	t.Run("uses bearer auth for read access tokens", func(t *testing.T) {
		const token = "eyJhbGciOiJIUzI1NiJ9.payload.signature"
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
			assert.Empty(t, r.URL.Query().Get("api_key"))
			w.Write([]byte(`{}`))
		}), token)

		_, err := client.Get(context.Background(), "configuration", nil)
		require.NoError(t, err)
	})

	t.Run("explicit language wins over default", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fr-FR", r.URL.Query().Get("language"))
			w.Write([]byte(`{}`))
		}), "key", WithLanguage("en-US"))

		_, err := client.Get(context.Background(), "/movie/1", map[string][]string{"language": {"fr-FR"}})
		require.NoError(t, err)
	})

	t.Run("missing api key fails before any request", func(t *testing.T) {
		var hits atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}), "")

		_, err := client.Get(context.Background(), "/movie/1", nil)
		require.ErrorIs(t, err, ErrMissingAPIKey)
		assert.Zero(t, hits.Load())
	})

	t.Run("non-2xx becomes APIError", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"status_code":34,"status_message":"The resource you requested could not be found."}`))
		}), "key")

		_, err := client.Get(context.Background(), "/movie/0", nil)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsNotFound())
		assert.False(t, apiErr.IsUnauthorized())
		assert.Equal(t, 34, apiErr.Code)
		assert.Equal(t, "The resource you requested could not be found.", apiErr.Message)
	})

	t.Run("bare array is returned under results", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"iso_3166_1":"US"},{"iso_3166_1":"DE"}]`))
		}), "key")

		payload, err := client.Get(context.Background(), "/configuration/countries", nil)
		require.NoError(t, err)
		require.Len(t, payload["results"], 2)
	})

	t.Run("scalar body becomes decode error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`"ok"`))
		}), "key")

		_, err := client.Get(context.Background(), "/movie/1", nil)
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("malformed body becomes decode error", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id": `))
		}), "key")

		_, err := client.Get(context.Background(), "/movie/1", nil)
		require.ErrorIs(t, err, ErrDecode)
	})
}

func TestPostAndDelete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "application/json;charset=utf-8", r.Header.Get("Content-Type"))
			assert.JSONEq(t, `{"value": 8.5}`, string(body))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"status_code":1}`))
		case http.MethodDelete:
			assert.Empty(t, body)
			w.Write([]byte(`{"success":true,"status_code":13}`))
		}
	}), "key")

	ctx := context.Background()
	created, err := client.Post(ctx, "/movie/550/rating", nil, map[string]any{"value": 8.5})
	require.NoError(t, err)
	assert.Equal(t, true, created["success"])

	deleted, err := client.Delete(ctx, "/movie/550/rating", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(13), deleted["status_code"])
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{Method: "GET", Path: "/movie/1", StatusCode: 401, Code: 7, Message: "Invalid API key"}
		assert.Equal(t, "tmdb API error: GET /movie/1: status 401 (code 7): Invalid API key", err.Error())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}

func pagedHandler(t *testing.T, totalPages, perPage int, hits *atomic.Int32) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		assert.NoError(t, err)

		results := make([]map[string]any, 0, perPage)
		for i := 0; i < perPage; i++ {
			results = append(results, map[string]any{"id": (page-1)*perPage + i + 1})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"page":        page,
			"total_pages": totalPages,
			"results":     results,
		})
	})
}

func TestPages(t *testing.T) {
	t.Run("walks every page in order", func(t *testing.T) {
		var hits atomic.Int32
		client := newTestClient(t, pagedHandler(t, 3, 10, &hits), "key")

		pages := client.Pages(context.Background(), "/movie/550/similar", nil)
		var ids []int
		for pages.Next() {
			ids = append(ids, int(pages.Value()["id"].(float64)))
		}
		require.NoError(t, pages.Err())

		require.Len(t, ids, 30)
		for i, id := range ids {
			assert.Equal(t, i+1, id)
		}
		assert.Equal(t, int32(3), hits.Load())
		assert.Equal(t, 3, pages.Fetched())
		assert.False(t, pages.Next())
	})

	t.Run("fetches lazily", func(t *testing.T) {
		var hits atomic.Int32
		client := newTestClient(t, pagedHandler(t, 3, 10, &hits), "key")

		pages := client.Pages(context.Background(), "/movie/550/similar", nil)
		assert.Zero(t, hits.Load())

		for i := 0; i < 10; i++ {
			require.True(t, pages.Next())
		}
		assert.Equal(t, int32(1), hits.Load())

		require.True(t, pages.Next())
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("empty result set", func(t *testing.T) {
		var hits atomic.Int32
		client := newTestClient(t, pagedHandler(t, 0, 0, &hits), "key")

		pages := client.Pages(context.Background(), "/search/movie", nil)
		assert.False(t, pages.Next())
		require.NoError(t, pages.Err())
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("stops on error", func(t *testing.T) {
		fetches := 0
		pages := NewPages(context.Background(), func(ctx context.Context, page int) (map[string]any, error) {
			fetches++
			if page == 2 {
				return nil, fmt.Errorf("boom")
			}
			return map[string]any{
				"total_pages": float64(3),
				"results":     []any{map[string]any{"id": float64(page)}},
			}, nil
		})

		require.True(t, pages.Next())
		assert.False(t, pages.Next())
		require.EqualError(t, pages.Err(), "boom")
		assert.False(t, pages.Next())
		assert.Equal(t, 2, fetches)
	})

	t.Run("missing results is malformed", func(t *testing.T) {
		pages := NewPages(context.Background(), func(ctx context.Context, page int) (map[string]any, error) {
			return map[string]any{"total_pages": float64(1)}, nil
		})

		assert.False(t, pages.Next())
		require.ErrorIs(t, pages.Err(), ErrMalformedPage)
	})

	t.Run("missing total_pages is malformed", func(t *testing.T) {
		pages := NewPages(context.Background(), func(ctx context.Context, page int) (map[string]any, error) {
			return map[string]any{"results": []any{map[string]any{"id": float64(1)}}}, nil
		})

		assert.False(t, pages.Next())
		require.ErrorIs(t, pages.Err(), ErrMalformedPage)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		pages := NewPages(ctx, func(ctx context.Context, page int) (map[string]any, error) {
			t.Fatal("fetch must not be called")
			return nil, nil
		})
		assert.False(t, pages.Next())
		require.ErrorIs(t, pages.Err(), context.Canceled)
	})
}
