package tmdb

import (
	"strconv"

	"github.com/spf13/cast"
)

// Present-but-null values decode to the zero value. Values of the wrong JSON
// type are a *ShapeError.

func asString(kind, field string, value any) (string, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", &ShapeError{Kind: kind, Field: field, Err: err}
	}
	return s, nil
}

func asInt(kind, field string, value any) (int, error) {
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, &ShapeError{Kind: kind, Field: field, Err: err}
	}
	return n, nil
}

func asFloat(kind, field string, value any) (float64, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, &ShapeError{Kind: kind, Field: field, Err: err}
	}
	return f, nil
}

func asBool(kind, field string, value any) (bool, error) {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return false, &ShapeError{Kind: kind, Field: field, Err: err}
	}
	return b, nil
}

func asStrings(kind, field string, value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, &ShapeError{Kind: kind, Field: field}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := asString(kind, field, item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func asObject(kind, field string, value any) (map[string]any, error) {
	if value == nil {
		return nil, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &ShapeError{Kind: kind, Field: field}
	}
	return obj, nil
}

func asObjects(kind, field string, value any) ([]map[string]any, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, &ShapeError{Kind: kind, Field: field}
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &ShapeError{Kind: kind, Field: field}
		}
		out = append(out, obj)
	}
	return out, nil
}

// record reads the fields of one JSON object and keeps the first shape failure,
// so a value can be assembled field by field and checked once.
type record struct {
	kind  string
	field string
	obj   map[string]any
	err   error
}

func newRecord(kind, field string, obj map[string]any) *record {
	return &record{kind: kind, field: field, obj: obj}
}

func (r *record) value(key string, required bool) any {
	if r.err != nil {
		return nil
	}
	value, ok := r.obj[key]
	if !ok && required {
		r.err = &ShapeError{Kind: r.kind, Field: r.field + "." + key}
	}
	return value
}

func (r *record) fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *record) str(key string) string {
	s, err := asString(r.kind, r.field+"."+key, r.value(key, true))
	r.fail(err)
	return s
}

func (r *record) optStr(key string) string {
	s, err := asString(r.kind, r.field+"."+key, r.value(key, false))
	r.fail(err)
	return s
}

func (r *record) integer(key string) int {
	n, err := asInt(r.kind, r.field+"."+key, r.value(key, true))
	r.fail(err)
	return n
}

func (r *record) optInt(key string) int {
	n, err := asInt(r.kind, r.field+"."+key, r.value(key, false))
	r.fail(err)
	return n
}

func (r *record) float(key string) float64 {
	f, err := asFloat(r.kind, r.field+"."+key, r.value(key, true))
	r.fail(err)
	return f
}

func (r *record) optFloat(key string) float64 {
	f, err := asFloat(r.kind, r.field+"."+key, r.value(key, false))
	r.fail(err)
	return f
}

func (r *record) optBool(key string) bool {
	b, err := asBool(r.kind, r.field+"."+key, r.value(key, false))
	r.fail(err)
	return b
}

// yearOf parses the year of an ISO date; empty or malformed dates have no year
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// pick copies the listed keys of obj that are present
func pick(obj map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if value, ok := obj[key]; ok {
			out[key] = value
		}
	}
	return out
}
