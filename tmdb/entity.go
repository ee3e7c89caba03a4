package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/s0up4200/tmdb/transport"
)

// Entity is a remote resource whose fields are fetched on first access
type Entity interface {
	// Kind names the resource type, one of the Kind* constants
	Kind() string
	// Identifier is the resource ID, or the "/"-joined composite for seasons and episodes
	Identifier() string
	// Requests counts the network calls this entity has made
	Requests() int
	// Data returns a copy of everything cached so far without touching the network
	Data() map[string]any
}

// identity describes one identifying field required at construction
type identity struct {
	key  string
	min  int
	text bool
}

func numericID(key string) identity { return identity{key: key, min: 1} }
func ordinalID(key string) identity { return identity{key: key} }
func textID(key string) identity    { return identity{key: key, text: true} }

// resolver populates the cache for key with the fewest requests the entity knows
type resolver func(ctx context.Context, key string) error

// entity is the lazy cache embedded by every wrapper
type entity struct {
	client   *Client
	kind     string
	ids      []string
	cache    map[string]any
	requests int
	// resolved holds keys the resolver already ran for, present or not
	resolved map[string]bool
	// dirty forces the next get to resolve even when the key is cached
	dirty   bool
	resolve resolver
}

func newEntity(c *Client, kind string, data map[string]any, ids ...identity) (entity, error) {
	cache, err := normalizeJSON(data)
	if err != nil {
		return entity{}, &ConstructionError{Kind: kind, Err: err}
	}

	if len(ids) > 0 {
		keys := make([]*validation.KeyRules, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, validation.Key(id.key, validation.NotNil))
		}
		if err := validation.Validate(cache, validation.Map(keys...).AllowExtraKeys()); err != nil {
			return entity{}, &ConstructionError{Kind: kind, Err: err}
		}
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		value, err := id.normalize(cache[id.key])
		if err != nil {
			return entity{}, &ConstructionError{Kind: kind, Field: id.key, Err: err}
		}
		cache[id.key] = value
		names = append(names, id.key)
	}

	return entity{
		client: c,
		kind:   kind,
		ids:    names,
		cache:  cache,
	}, nil
}

func (id identity) normalize(raw any) (any, error) {
	if id.text {
		s, err := cast.ToStringE(raw)
		if err != nil {
			return nil, err
		}
		return s, validation.Validate(s, validation.Required)
	}

	n, err := integral(raw)
	if err != nil {
		return nil, err
	}
	rules := []validation.Rule{validation.Min(id.min)}
	if id.min > 0 {
		rules = append([]validation.Rule{validation.Required}, rules...)
	}
	return n, validation.Validate(n, rules...)
}

// integral accepts whole JSON numbers and numeric strings only
func integral(raw any) (int, error) {
	switch v := raw.(type) {
	case int, int32, int64, string:
		return cast.ToIntE(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("unexpected %T", raw)
	}
}

// Kind returns the entity kind
func (e *entity) Kind() string {
	return e.kind
}

// Identifier returns the identifying field values joined with "/"
func (e *entity) Identifier() string {
	parts := make([]string, 0, len(e.ids))
	for _, key := range e.ids {
		parts = append(parts, cast.ToString(e.cache[key]))
	}
	return strings.Join(parts, "/")
}

// Requests returns the number of network calls made by this entity
func (e *entity) Requests() int {
	return e.requests
}

// Data returns a deep copy of the cache
func (e *entity) Data() map[string]any {
	return copyObject(e.cache)
}

// get returns a copy of cache[key], resolving it first when missing
func (e *entity) get(ctx context.Context, key string) (any, error) {
	if err := e.ensure(ctx, key); err != nil {
		return nil, err
	}
	value, ok := e.cache[key]
	if !ok {
		return nil, &ShapeError{Kind: e.kind, Field: key}
	}
	return deepCopy(value), nil
}

// lookup is get for fields the API documents as optional: absence after
// resolution is recorded as null instead of failing.
func (e *entity) lookup(ctx context.Context, key string) (any, error) {
	if err := e.ensure(ctx, key); err != nil {
		return nil, err
	}
	value, ok := e.cache[key]
	if !ok {
		e.cache[key] = nil
		return nil, nil
	}
	return deepCopy(value), nil
}

// ensure runs the resolver at most once per key until the entity is marked dirty
func (e *entity) ensure(ctx context.Context, key string) error {
	if e.dirty {
		e.resolved = nil
	} else if _, ok := e.cache[key]; ok || e.resolved[key] {
		return nil
	}

	e.client.logger.Debug().
		Str("kind", e.kind).
		Str("id", e.Identifier()).
		Str("field", key).
		Msg("Resolving field")

	if err := e.resolve(ctx, key); err != nil {
		return err
	}
	if e.resolved == nil {
		e.resolved = make(map[string]bool)
	}
	e.resolved[key] = true
	return nil
}

// getPath walks nested objects below a top-level field
func (e *entity) getPath(ctx context.Context, path ...string) (any, error) {
	value, err := e.get(ctx, path[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(path); i++ {
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, &ShapeError{Kind: e.kind, Field: strings.Join(path[:i], ".")}
		}
		if value, ok = obj[path[i]]; !ok {
			return nil, &ShapeError{Kind: e.kind, Field: strings.Join(path[:i+1], ".")}
		}
	}
	return value, nil
}

func (e *entity) getString(ctx context.Context, key string) (string, error) {
	value, err := e.get(ctx, key)
	if err != nil {
		return "", err
	}
	return asString(e.kind, key, value)
}

func (e *entity) optionalString(ctx context.Context, key string) (string, error) {
	value, err := e.lookup(ctx, key)
	if err != nil {
		return "", err
	}
	return asString(e.kind, key, value)
}

func (e *entity) getInt(ctx context.Context, key string) (int, error) {
	value, err := e.get(ctx, key)
	if err != nil {
		return 0, err
	}
	return asInt(e.kind, key, value)
}

func (e *entity) getFloat(ctx context.Context, key string) (float64, error) {
	value, err := e.get(ctx, key)
	if err != nil {
		return 0, err
	}
	return asFloat(e.kind, key, value)
}

func (e *entity) getBool(ctx context.Context, key string) (bool, error) {
	value, err := e.get(ctx, key)
	if err != nil {
		return false, err
	}
	return asBool(e.kind, key, value)
}

func (e *entity) getStrings(ctx context.Context, key string) ([]string, error) {
	value, err := e.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return asStrings(e.kind, key, value)
}

// getObjects returns the list of JSON objects at path
func (e *entity) getObjects(ctx context.Context, path ...string) ([]map[string]any, error) {
	value, err := e.getPath(ctx, path...)
	if err != nil {
		return nil, err
	}
	return asObjects(e.kind, strings.Join(path, "."), value)
}

// request performs exactly one network call and counts it
func (e *entity) request(ctx context.Context, method, path string, params url.Values, body any) (map[string]any, error) {
	e.requests++

	switch method {
	case http.MethodPost:
		return e.client.transport.Post(ctx, path, params, body)
	case http.MethodDelete:
		return e.client.transport.Delete(ctx, path, params, body)
	default:
		return e.client.transport.Get(ctx, path, params)
	}
}

// fetch performs one GET and caches the payload. An empty into merges the
// payload's keys into the cache; otherwise the payload is stored under into.
// The caller receives its own copy.
func (e *entity) fetch(ctx context.Context, path string, params url.Values, into string) (map[string]any, error) {
	payload, err := e.request(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	e.store(payload, into)
	return copyObject(payload), nil
}

func (e *entity) store(payload map[string]any, into string) {
	if into != "" {
		e.cache[into] = payload
		return
	}

	keep := make(map[string]any, len(e.ids))
	for _, key := range e.ids {
		keep[key] = e.cache[key]
	}
	for key, value := range payload {
		e.cache[key] = value
	}
	for key, value := range keep {
		e.cache[key] = value
	}
}

// paginate walks a paginated endpoint, counting every page against this entity
func (e *entity) paginate(ctx context.Context, path string, params url.Values) *transport.Pages {
	return transport.NewPages(ctx, func(ctx context.Context, page int) (map[string]any, error) {
		query := cloneParams(params)
		query.Set("page", strconv.Itoa(page))
		return e.request(ctx, http.MethodGet, path, query, nil)
	})
}

// Equal reports whether a and b identify the same remote resource.
// Entities of different kinds are not comparable and yield ErrIncomparable.
// An entity without an identifier, such as a logged-out Account, equals nothing.
func Equal(a, b Entity) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, fmt.Errorf("%w: %s and %s", ErrIncomparable, a.Kind(), b.Kind())
	}
	if a.Identifier() == "" {
		return false, nil
	}
	return a.Identifier() == b.Identifier(), nil
}

// Results is a lazy, single-pass sequence over a paginated endpoint.
// Only Next may perform a network call.
type Results[T any] struct {
	pages   *transport.Pages
	convert func(map[string]any) (T, error)
	current T
	err     error
}

func newResults[T any](pages *transport.Pages, convert func(map[string]any) (T, error)) *Results[T] {
	return &Results[T]{pages: pages, convert: convert}
}

// Next advances to the next result, fetching the following page when needed
func (r *Results[T]) Next() bool {
	if r.err != nil || !r.pages.Next() {
		return false
	}

	value, err := r.convert(r.pages.Value())
	if err != nil {
		r.err = err
		return false
	}
	r.current = value
	return true
}

// Value returns the current result
func (r *Results[T]) Value() T {
	return r.current
}

// Err returns the error that stopped iteration, if any
func (r *Results[T]) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.pages.Err()
}

// Collect drains up to limit results; limit <= 0 drains everything
func (r *Results[T]) Collect(limit int) ([]T, error) {
	var out []T
	for (limit <= 0 || len(out) < limit) && r.Next() {
		out = append(out, r.Value())
	}
	return out, r.Err()
}

// pages walks a paginated endpoint on behalf of a free function
func (c *Client) pages(ctx context.Context, path string, params url.Values) *transport.Pages {
	return transport.NewPages(ctx, func(ctx context.Context, page int) (map[string]any, error) {
		query := cloneParams(params)
		query.Set("page", strconv.Itoa(page))
		return c.transport.Get(ctx, path, query)
	})
}

// normalizeJSON round-trips caller data through encoding/json so the cache
// only ever holds decoded JSON values.
func normalizeJSON(data map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(data))
	if len(data) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("data is not JSON-encodable: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("data is not JSON-encodable: %w", err)
	}
	return out, nil
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return copyObject(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func copyObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = deepCopy(value)
	}
	return out
}

func cloneParams(params url.Values) url.Values {
	query := make(url.Values, len(params)+1)
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	return query
}
