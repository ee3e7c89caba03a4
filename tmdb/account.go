package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// Account is the authenticated user. Every operation except the login flow
// needs a session and fails with a *SessionError without one.
type Account struct {
	entity
	sessionID      string
	requestToken   string
	tokenValidated bool
}

// NewAccount returns an account that still has to log in
func (c *Client) NewAccount() *Account {
	a := &Account{entity: entity{client: c, kind: KindAccount, cache: make(map[string]any)}}
	a.resolve = func(ctx context.Context, _ string) error {
		_, err := a.FetchDetails(ctx)
		return err
	}
	return a
}

// AccountWithSession returns an account bound to an existing session
func (c *Client) AccountWithSession(sessionID string) (*Account, error) {
	if err := validation.Validate(sessionID, validation.Required); err != nil {
		return nil, &ConstructionError{Kind: KindAccount, Field: "session_id", Err: err}
	}
	a := c.NewAccount()
	a.sessionID = sessionID
	return a, nil
}

// Identifier is the session ID, or "" before login
func (a *Account) Identifier() string { return a.sessionID }

// SessionID returns the current session, or "" before login
func (a *Account) SessionID() string { return a.sessionID }

// LoggedIn reports whether the account holds a session
func (a *Account) LoggedIn() bool { return a.sessionID != "" }

// Equal reports whether both accounts share a session
func (a *Account) Equal(other *Account) bool {
	return other != nil && a.sessionID != "" && a.sessionID == other.sessionID
}

func (a *Account) session(operation string) (url.Values, error) {
	if a.sessionID == "" {
		return nil, &SessionError{Operation: operation}
	}
	return url.Values{"session_id": {a.sessionID}}, nil
}

// NewRequestToken asks for a fresh request token, replacing any previous one
func (a *Account) NewRequestToken(ctx context.Context) (string, error) {
	payload, err := a.request(ctx, http.MethodGet, "/authentication/token/new", nil, nil)
	if err != nil {
		return "", err
	}
	token := cast.ToString(payload["request_token"])
	if token == "" {
		return "", &ShapeError{Kind: a.kind, Field: "request_token"}
	}
	a.requestToken = token
	a.tokenValidated = false
	return token, nil
}

// ValidateToken authorizes the request token with the user's credentials
func (a *Account) ValidateToken(ctx context.Context, username, password string) error {
	if a.requestToken == "" {
		return &TokenError{Operation: "validate token", Reason: "request a token first"}
	}
	body := map[string]any{
		"username":      username,
		"password":      password,
		"request_token": a.requestToken,
	}
	if _, err := a.request(ctx, http.MethodPost, "/authentication/token/validate_with_login", nil, body); err != nil {
		return err
	}
	a.tokenValidated = true
	return nil
}

// CreateSession exchanges the validated request token for a session
func (a *Account) CreateSession(ctx context.Context) (string, error) {
	if a.requestToken == "" || !a.tokenValidated {
		return "", &TokenError{Operation: "create session", Reason: "validate a request token first"}
	}
	payload, err := a.request(ctx, http.MethodPost, "/authentication/session/new", nil,
		map[string]any{"request_token": a.requestToken})
	if err != nil {
		return "", err
	}
	sessionID := cast.ToString(payload["session_id"])
	if sessionID == "" {
		return "", &ShapeError{Kind: a.kind, Field: "session_id"}
	}
	a.sessionID = sessionID
	a.requestToken = ""
	a.tokenValidated = false
	return sessionID, nil
}

// Login runs the whole token flow and leaves the account with a session
func (a *Account) Login(ctx context.Context, username, password string) error {
	if _, err := a.NewRequestToken(ctx); err != nil {
		return fmt.Errorf("failed to request token: %w", err)
	}
	if err := a.ValidateToken(ctx, username, password); err != nil {
		return fmt.Errorf("failed to validate token: %w", err)
	}
	if _, err := a.CreateSession(ctx); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	a.client.logger.Debug().Str("username", username).Msg("Logged in")
	return nil
}

// Logout deletes the session on the server and forgets the cached account details
func (a *Account) Logout(ctx context.Context) error {
	if _, err := a.session("logout"); err != nil {
		return err
	}
	if _, err := a.request(ctx, http.MethodDelete, "/authentication/session", nil,
		map[string]any{"session_id": a.sessionID}); err != nil {
		return err
	}
	a.sessionID = ""
	a.cache = make(map[string]any)
	return nil
}

// FetchDetails fetches the account details
func (a *Account) FetchDetails(ctx context.Context) (map[string]any, error) {
	params, err := a.session("account details")
	if err != nil {
		return nil, err
	}
	return a.fetch(ctx, "/account", params, "")
}

func (a *Account) ID(ctx context.Context) (int, error) {
	return a.getInt(ctx, "id")
}

func (a *Account) Username(ctx context.Context) (string, error) {
	return a.getString(ctx, "username")
}

func (a *Account) Name(ctx context.Context) (string, error) {
	return a.getString(ctx, "name")
}

func (a *Account) IncludeAdult(ctx context.Context) (bool, error) {
	return a.getBool(ctx, "include_adult")
}

func (a *Account) Country(ctx context.Context) (string, error) {
	return a.getString(ctx, "iso_3166_1")
}

func (a *Account) Language(ctx context.Context) (string, error) {
	return a.getString(ctx, "iso_639_1")
}

// accountPath needs the account ID, which may cost one request
func (a *Account) accountPath(ctx context.Context, operation, suffix string) (string, url.Values, error) {
	params, err := a.session(operation)
	if err != nil {
		return "", nil, err
	}
	id, err := a.ID(ctx)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("/account/%d%s", id, suffix), params, nil
}

func accountMovies(ctx context.Context, a *Account, operation, suffix string) (*Results[*Movie], error) {
	path, params, err := a.accountPath(ctx, operation, suffix)
	if err != nil {
		return nil, err
	}
	return newResults(a.paginate(ctx, path, params), a.client.MovieFromJSON), nil
}

func accountShows(ctx context.Context, a *Account, operation, suffix string) (*Results[*Show], error) {
	path, params, err := a.accountPath(ctx, operation, suffix)
	if err != nil {
		return nil, err
	}
	return newResults(a.paginate(ctx, path, params), a.client.ShowFromJSON), nil
}

// RatedMovies walks the movies the user rated; each carries its "rating"
func (a *Account) RatedMovies(ctx context.Context) (*Results[*Movie], error) {
	return accountMovies(ctx, a, "rated movies", "/rated/movies")
}

func (a *Account) RatedShows(ctx context.Context) (*Results[*Show], error) {
	return accountShows(ctx, a, "rated shows", "/rated/tv")
}

func (a *Account) FavoriteMovies(ctx context.Context) (*Results[*Movie], error) {
	return accountMovies(ctx, a, "favorite movies", "/favorite/movies")
}

func (a *Account) FavoriteShows(ctx context.Context) (*Results[*Show], error) {
	return accountShows(ctx, a, "favorite shows", "/favorite/tv")
}

func (a *Account) WatchlistMovies(ctx context.Context) (*Results[*Movie], error) {
	return accountMovies(ctx, a, "watchlist movies", "/watchlist/movies")
}

func (a *Account) WatchlistShows(ctx context.Context) (*Results[*Show], error) {
	return accountShows(ctx, a, "watchlist shows", "/watchlist/tv")
}

// Lists walks the lists the user created
func (a *Account) Lists(ctx context.Context) (*Results[*List], error) {
	path, params, err := a.accountPath(ctx, "lists", "/lists")
	if err != nil {
		return nil, err
	}
	return newResults(a.paginate(ctx, path, params), a.client.ListFromJSON), nil
}

// mutate performs a state-changing call; its response is never cached
func (a *Account) mutate(ctx context.Context, operation, method, path string, extra url.Values, body any) error {
	params, err := a.session(operation)
	if err != nil {
		return err
	}
	for key, values := range extra {
		params[key] = values
	}
	if _, err := a.request(ctx, method, path, params, body); err != nil {
		return fmt.Errorf("%s failed: %w", operation, err)
	}
	return nil
}

func validateRating(value float64) error {
	return validation.Validate(value, validation.Required, validation.Min(0.5), validation.Max(10.0))
}

// RateMovie rates a movie from 0.5 to 10
func (a *Account) RateMovie(ctx context.Context, m *Movie, value float64) error {
	if err := validateRating(value); err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}
	return a.mutate(ctx, "rate movie", http.MethodPost, m.path("/rating"), nil, map[string]any{"value": value})
}

func (a *Account) DeleteMovieRating(ctx context.Context, m *Movie) error {
	return a.mutate(ctx, "delete movie rating", http.MethodDelete, m.path("/rating"), nil, nil)
}

// RateShow rates a show from 0.5 to 10
func (a *Account) RateShow(ctx context.Context, s *Show, value float64) error {
	if err := validateRating(value); err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}
	return a.mutate(ctx, "rate show", http.MethodPost, s.path("/rating"), nil, map[string]any{"value": value})
}

func (a *Account) DeleteShowRating(ctx context.Context, s *Show) error {
	return a.mutate(ctx, "delete show rating", http.MethodDelete, s.path("/rating"), nil, nil)
}

// RateEpisode rates an episode from 0.5 to 10
func (a *Account) RateEpisode(ctx context.Context, e *Episode, value float64) error {
	if err := validateRating(value); err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}
	return a.mutate(ctx, "rate episode", http.MethodPost, e.path("/rating"), nil, map[string]any{"value": value})
}

// MarkFavorite adds media to, or with favorite false removes it from, the favorites
func (a *Account) MarkFavorite(ctx context.Context, media Media, favorite bool) error {
	path, _, err := a.accountPath(ctx, "mark favorite", "/favorite")
	if err != nil {
		return err
	}
	return a.mutate(ctx, "mark favorite", http.MethodPost, path, nil, map[string]any{
		"media_type": media.MediaType(),
		"media_id":   media.ID(),
		"favorite":   favorite,
	})
}

// AddToWatchlist adds media to, or with watchlist false removes it from, the watchlist
func (a *Account) AddToWatchlist(ctx context.Context, media Media, watchlist bool) error {
	path, _, err := a.accountPath(ctx, "watchlist", "/watchlist")
	if err != nil {
		return err
	}
	return a.mutate(ctx, "watchlist", http.MethodPost, path, nil, map[string]any{
		"media_type": media.MediaType(),
		"media_id":   media.ID(),
		"watchlist":  watchlist,
	})
}

// CreateList creates an empty list owned by the user
func (a *Account) CreateList(ctx context.Context, name, description, language string) (*List, error) {
	params, err := a.session("create list")
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(name, validation.Required); err != nil {
		return nil, fmt.Errorf("invalid list name: %w", err)
	}
	payload, err := a.request(ctx, http.MethodPost, "/list", params, map[string]any{
		"name":        name,
		"description": description,
		"language":    language,
	})
	if err != nil {
		return nil, fmt.Errorf("create list failed: %w", err)
	}
	list, err := a.client.List(cast.ToString(payload["list_id"]))
	if err != nil {
		return nil, &ShapeError{Kind: a.kind, Field: "list_id", Err: err}
	}
	return list, nil
}

func (a *Account) AddToList(ctx context.Context, l *List, m *Movie) error {
	defer l.markDirty()
	return a.mutate(ctx, "add to list", http.MethodPost, l.path("/add_item"), nil, map[string]any{"media_id": m.ID()})
}

func (a *Account) RemoveFromList(ctx context.Context, l *List, m *Movie) error {
	defer l.markDirty()
	return a.mutate(ctx, "remove from list", http.MethodPost, l.path("/remove_item"), nil, map[string]any{"media_id": m.ID()})
}

// ClearList removes every item from the list
func (a *Account) ClearList(ctx context.Context, l *List) error {
	defer l.markDirty()
	return a.mutate(ctx, "clear list", http.MethodPost, l.path("/clear"), url.Values{"confirm": {"true"}}, nil)
}

func (a *Account) DeleteList(ctx context.Context, l *List) error {
	defer l.markDirty()
	return a.mutate(ctx, "delete list", http.MethodDelete, l.path(""), nil, nil)
}
