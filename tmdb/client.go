package tmdb

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

// Entity kinds, as reported by Entity.Kind
const (
	KindMovie   = "movie"
	KindShow    = "tv"
	KindSeason  = "season"
	KindEpisode = "episode"
	KindPerson  = "person"
	KindCompany = "company"
	KindCredit  = "credit"
	KindAccount = "account"
	KindList    = "list"
)

// Transport performs the JSON requests entities are resolved with.
// *transport.Client satisfies it.
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) (map[string]any, error)
	Post(ctx context.Context, path string, params url.Values, body any) (map[string]any, error)
	Delete(ctx context.Context, path string, params url.Values, body any) (map[string]any, error)
}

// Client builds entities bound to a transport and owns the image configuration they share
type Client struct {
	transport Transport
	logger    zerolog.Logger
	images    imageConfiguration
}

// NewClient creates a new TMDB client on top of t
func NewClient(t Transport, logger zerolog.Logger) *Client {
	return &Client{
		transport: t,
		logger:    logger,
	}
}
