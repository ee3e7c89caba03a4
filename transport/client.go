package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the root of the TMDB v3 API
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds a single round trip
	DefaultTimeout = 30 * time.Second
)

// Client performs authenticated JSON requests against the TMDB API
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB transport client.
//
// An empty apiKey is accepted here; every request made without one fails
// with ErrMissingAPIKey.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout > 0 && client.timeout != client.httpClient.Timeout {
		httpClient := *client.httpClient
		httpClient.Timeout = client.timeout
		client.httpClient = &httpClient
	}

	return client
}

// BaseURL returns the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and decodes the JSON object in the response.
// A top-level array is returned under the "results" key.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST request with body encoded as JSON
func (c *Client) Post(ctx context.Context, path string, params url.Values, body any) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodPost, path, params, body)
}

// Delete performs a DELETE request, with body encoded as JSON when non-nil
func (c *Client) Delete(ctx context.Context, path string, params url.Values, body any) (map[string]any, error) {
	return c.doRequest(ctx, http.MethodDelete, path, params, body)
}

// Page fetches a single page of a paginated endpoint
func (c *Client) Page(ctx context.Context, path string, params url.Values, page int) (map[string]any, error) {
	query := cloneValues(params)
	query.Set("page", strconv.Itoa(page))
	return c.Get(ctx, path, query)
}

// Pages returns a lazy iterator over every result of a paginated endpoint
func (c *Client) Pages(ctx context.Context, path string, params url.Values) *Pages {
	return NewPages(ctx, func(ctx context.Context, page int) (map[string]any, error) {
		return c.Page(ctx, path, params, page)
	})
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, body any) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	query := cloneValues(params)
	if c.language != "" && query.Get("language") == "" {
		query.Set("language", c.language)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("TMDB API request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newAPIError(method, path, resp.StatusCode, raw)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return make(map[string]any), nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}

	// a few configuration endpoints answer with a bare array
	switch v := decoded.(type) {
	case map[string]any:
		return v, nil
	case []any:
		return map[string]any{"results": v}, nil
	default:
		return nil, fmt.Errorf("%w: %s %s: unexpected JSON %T", ErrDecode, method, path, decoded)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	// v4 read access tokens are JWTs and authenticate as a bearer token
	bearer := strings.HasPrefix(c.apiKey, "eyJ")
	if !bearer {
		query.Set("api_key", c.apiKey)
	}

	target := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

func newAPIError(method, path string, status int, raw []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    http.StatusText(status),
	}

	var body struct {
		StatusCode    int    `json:"status_code"`
		StatusMessage string `json:"status_message"`
	}
	err := json.Unmarshal(raw, &body)
	switch {
	case err == nil && body.StatusMessage != "":
		apiErr.Code = body.StatusCode
		apiErr.Message = body.StatusMessage
	case len(raw) > 0:
		apiErr.Body = string(raw)
	}

	return apiErr
}

func cloneValues(params url.Values) url.Values {
	query := make(url.Values, len(params)+2)
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	return query
}
