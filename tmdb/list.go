package tmdb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// List is a user-curated list of movies and shows. The list can change
// server-side through Account mutations, which mark it dirty; the next read
// of a dirty list refetches it.
type List struct {
	entity
}

// List returns a list that resolves its fields on first access
func (c *Client) List(id string) (*List, error) {
	return newList(c, map[string]any{"id": id})
}

// ListFromJSON wraps partial list data. data must carry an id.
func (c *Client) ListFromJSON(data map[string]any) (*List, error) {
	return newList(c, data)
}

func newList(c *Client, data map[string]any) (*List, error) {
	base, err := newEntity(c, KindList, data, textID("id"))
	if err != nil {
		return nil, err
	}
	l := &List{entity: base}
	l.resolve = func(ctx context.Context, _ string) error {
		_, err := l.FetchDetails(ctx)
		return err
	}
	return l, nil
}

// ID returns the list ID
func (l *List) ID() string { return l.Identifier() }

// Equal reports whether both values refer to the same list
func (l *List) Equal(other *List) bool {
	return other != nil && l.ID() == other.ID()
}

// Dirty reports whether the next read will refetch the list
func (l *List) Dirty() bool { return l.dirty }

func (l *List) markDirty() { l.dirty = true }

func (l *List) path(suffix string) string {
	return "/list/" + l.ID() + suffix
}

// FetchDetails fetches the list with its items and clears the dirty flag
func (l *List) FetchDetails(ctx context.Context) (map[string]any, error) {
	payload, err := l.fetch(ctx, l.path(""), nil, "")
	if err != nil {
		return nil, err
	}
	l.dirty = false
	return payload, nil
}

func (l *List) Name(ctx context.Context) (string, error) {
	return l.getString(ctx, "name")
}

func (l *List) Description(ctx context.Context) (string, error) {
	return l.getString(ctx, "description")
}

func (l *List) ItemCount(ctx context.Context) (int, error) {
	return l.getInt(ctx, "item_count")
}

func (l *List) FavoriteCount(ctx context.Context) (int, error) {
	return l.getInt(ctx, "favorite_count")
}

// CreatedBy is the username of the list owner
func (l *List) CreatedBy(ctx context.Context) (string, error) {
	return l.getString(ctx, "created_by")
}

func (l *List) Language(ctx context.Context) (string, error) {
	return l.getString(ctx, "iso_639_1")
}

// Items returns the movies and shows on the list
func (l *List) Items(ctx context.Context) ([]Media, error) {
	items, err := l.getObjects(ctx, "items")
	if err != nil {
		return nil, err
	}
	out := make([]Media, 0, len(items))
	for _, item := range items {
		if _, ok := item["media_type"]; !ok {
			item["media_type"] = KindMovie
		}
		media, err := mediaFromJSON(l.client, item)
		if err != nil {
			return nil, &ShapeError{Kind: l.kind, Field: "items", Err: err}
		}
		out = append(out, media)
	}
	return out, nil
}

// Contains asks the server whether the movie is on the list. The answer is not cached.
func (l *List) Contains(ctx context.Context, movieID int) (bool, error) {
	params := url.Values{"movie_id": {strconv.Itoa(movieID)}}
	payload, err := l.request(ctx, http.MethodGet, l.path("/item_status"), params, nil)
	if err != nil {
		return false, err
	}
	present, ok := payload["item_present"]
	if !ok {
		return false, &ShapeError{Kind: l.kind, Field: "item_present"}
	}
	return asBool(l.kind, "item_present", present)
}
