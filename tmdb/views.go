package tmdb

import (
	"context"
	"strings"

	"github.com/spf13/cast"
)

// translated merges a default-locale field with the per-country entries of
// translations.translations[].data[dataKey]. Empty translations are left out.
func (e *entity) translated(ctx context.Context, base, dataKey string) (map[string]string, error) {
	value, err := e.getString(ctx, base)
	if err != nil {
		return nil, err
	}
	out := map[string]string{"default": value}

	items, err := e.getObjects(ctx, "translations", "translations")
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		country := cast.ToString(item["iso_3166_1"])
		data, _ := item["data"].(map[string]any)
		if text := cast.ToString(data[dataKey]); country != "" && text != "" {
			out[country] = text
		}
	}
	return out, nil
}

func (e *entity) images(ctx context.Context, kind ImageKind, path ...string) ([]*Image, error) {
	items, err := e.getObjects(ctx, path...)
	if err != nil {
		return nil, err
	}
	out := make([]*Image, 0, len(items))
	for _, item := range items {
		image, err := NewImage(e.client, item, kind)
		if err != nil {
			return nil, &ShapeError{Kind: e.kind, Field: strings.Join(path, "."), Err: err}
		}
		out = append(out, image)
	}
	return out, nil
}

func (e *entity) videos(ctx context.Context) ([]Video, error) {
	items, err := e.getObjects(ctx, "videos", "results")
	if err != nil {
		return nil, err
	}
	return parseVideos(e.kind, "videos.results", items)
}

func (e *entity) externalIDs(ctx context.Context) (map[string]string, error) {
	value, err := e.get(ctx, "external_ids")
	if err != nil {
		return nil, err
	}
	obj, err := asObject(e.kind, "external_ids", value)
	if err != nil {
		return nil, err
	}
	return externalIDs(obj), nil
}

func (e *entity) genres(ctx context.Context) ([]Genre, error) {
	items, err := e.getObjects(ctx, "genres")
	if err != nil {
		return nil, err
	}
	return parseGenres(e.kind, "genres", items)
}

func (e *entity) keywords(ctx context.Context, listKey string) ([]Keyword, error) {
	items, err := e.getObjects(ctx, "keywords", listKey)
	if err != nil {
		return nil, err
	}
	return parseKeywords(e.kind, "keywords."+listKey, items)
}

func (e *entity) vote(ctx context.Context) (Vote, error) {
	average, err := e.getFloat(ctx, "vote_average")
	if err != nil {
		return Vote{}, err
	}
	count, err := e.getInt(ctx, "vote_count")
	if err != nil {
		return Vote{}, err
	}
	return Vote{Average: average, Count: count}, nil
}

func (e *entity) year(ctx context.Context, key string) (int, error) {
	date, err := e.optionalString(ctx, key)
	if err != nil {
		return 0, err
	}
	return yearOf(date), nil
}

func (e *entity) companies(ctx context.Context, key string) ([]*Company, error) {
	items, err := e.getObjects(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make([]*Company, 0, len(items))
	for _, item := range items {
		company, err := newCompany(e.client, item)
		if err != nil {
			return nil, &ShapeError{Kind: e.kind, Field: key, Err: err}
		}
		out = append(out, company)
	}
	return out, nil
}

func (e *entity) alternativeTitles(ctx context.Context, listKey string) ([]AlternativeTitle, error) {
	items, err := e.getObjects(ctx, "alternative_titles", listKey)
	if err != nil {
		return nil, err
	}
	out := make([]AlternativeTitle, 0, len(items))
	for _, item := range items {
		r := newRecord(e.kind, "alternative_titles."+listKey, item)
		title := AlternativeTitle{Country: r.str("iso_3166_1"), Title: r.str("title"), Type: r.optStr("type")}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, title)
	}
	return out, nil
}

// intID returns a numeric identifying field; identifying fields are normalized at construction
func (e *entity) intID(key string) int {
	n, _ := e.cache[key].(int)
	return n
}
