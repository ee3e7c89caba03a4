// Package transport is the HTTP layer of the TMDB client.
//
// It knows nothing about movies or people: it authenticates requests, encodes
// query parameters and JSON bodies, turns non-2xx responses into *APIError
// values and decodes response bodies into generic JSON objects.
//
// # Usage
//
//	client := transport.NewClient(apiKey, logger,
//		transport.WithLanguage("en-US"),
//		transport.WithTimeout(10*time.Second),
//	)
//
//	movie, err := client.Get(ctx, "/movie/550", nil)
//
//	pages := client.Pages(ctx, "/movie/550/similar", nil)
//	for pages.Next() {
//		result := pages.Value()
//		...
//	}
//	if err := pages.Err(); err != nil {
//		...
//	}
//
// # Authentication
//
// v3 API keys are sent as the api_key query parameter. v4 read access tokens
// (JWTs) are sent as a bearer token.
package transport
