package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingAPIKey indicates a request was attempted without credentials
	ErrMissingAPIKey = errors.New("tmdb API key is required")
	// ErrDecode indicates the response body was not a JSON object
	ErrDecode = errors.New("failed to decode TMDB response")
	// ErrMalformedPage indicates a paginated response without a results list
	ErrMalformedPage = errors.New("malformed paginated response")
)

// APIError represents a non-2xx response from the TMDB API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Code is TMDB's own status_code from the error body, 0 when absent
	Code    int
	Message string
	Body    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("tmdb API error: %s %s: status %d (code %d): %s", e.Method, e.Path, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("tmdb API error: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
