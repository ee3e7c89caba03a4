package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Company is a production company. Unlike the other entities its alternative
// names and logos come from dedicated endpoints, so reading them does not
// refetch the details and vice versa.
type Company struct {
	entity
}

// Company returns a company that resolves its fields on first access
func (c *Client) Company(id int) (*Company, error) {
	return newCompany(c, map[string]any{"id": id})
}

// CompanyFromJSON wraps partial company data. data must carry an id.
func (c *Client) CompanyFromJSON(data map[string]any) (*Company, error) {
	return newCompany(c, data)
}

func newCompany(c *Client, data map[string]any) (*Company, error) {
	base, err := newEntity(c, KindCompany, data, numericID("id"))
	if err != nil {
		return nil, err
	}
	co := &Company{entity: base}
	co.resolve = co.dispatch
	return co, nil
}

func (co *Company) dispatch(ctx context.Context, key string) error {
	var err error
	switch key {
	case "alternative_names":
		_, err = co.FetchAlternativeNames(ctx)
	case "logos":
		_, err = co.FetchImages(ctx)
	default:
		_, err = co.FetchDetails(ctx)
	}
	return err
}

// ID returns the TMDB company ID
func (co *Company) ID() int { return co.intID("id") }

// Equal reports whether both values refer to the same company
func (co *Company) Equal(other *Company) bool {
	return other != nil && co.ID() == other.ID()
}

func (co *Company) path(suffix string) string {
	return fmt.Sprintf("/company/%d%s", co.ID(), suffix)
}

// FetchDetails fetches the company details
func (co *Company) FetchDetails(ctx context.Context) (map[string]any, error) {
	return co.fetch(ctx, co.path(""), nil, "")
}

// FetchAlternativeNames fetches the other names of the company
func (co *Company) FetchAlternativeNames(ctx context.Context) (map[string]any, error) {
	payload, err := co.request(ctx, http.MethodGet, co.path("/alternative_names"), nil, nil)
	if err != nil {
		return nil, err
	}
	if results, ok := payload["results"]; ok {
		co.cache["alternative_names"] = results
	}
	return copyObject(payload), nil
}

// FetchImages fetches the logos
func (co *Company) FetchImages(ctx context.Context) (map[string]any, error) {
	return co.fetch(ctx, co.path("/images"), nil, "")
}

func (co *Company) Name(ctx context.Context) (string, error) {
	return co.getString(ctx, "name")
}

func (co *Company) Description(ctx context.Context) (string, error) {
	return co.getString(ctx, "description")
}

func (co *Company) Headquarters(ctx context.Context) (string, error) {
	return co.getString(ctx, "headquarters")
}

func (co *Company) Homepage(ctx context.Context) (string, error) {
	return co.optionalString(ctx, "homepage")
}

func (co *Company) OriginCountry(ctx context.Context) (string, error) {
	return co.getString(ctx, "origin_country")
}

// ParentCompany returns the parent, or nil for independent companies
func (co *Company) ParentCompany(ctx context.Context) (*Company, error) {
	value, err := co.lookup(ctx, "parent_company")
	if err != nil {
		return nil, err
	}
	data, err := asObject(co.kind, "parent_company", value)
	if err != nil || data == nil {
		return nil, err
	}
	parent, err := newCompany(co.client, data)
	if err != nil {
		return nil, &ShapeError{Kind: co.kind, Field: "parent_company", Err: err}
	}
	return parent, nil
}

func (co *Company) Logos(ctx context.Context) ([]*Image, error) {
	return co.images(ctx, ImageLogo, "logos")
}

func (co *Company) AlternativeNames(ctx context.Context) ([]string, error) {
	items, err := co.getObjects(ctx, "alternative_names")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		r := newRecord(co.kind, "alternative_names", item)
		name := r.str("name")
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, name)
	}
	return out, nil
}

// Movies walks the movies the company produced
func (co *Company) Movies(ctx context.Context) *Results[*Movie] {
	params := url.Values{"with_companies": {strconv.Itoa(co.ID())}}
	return newResults(co.paginate(ctx, "/discover/movie", params), co.client.MovieFromJSON)
}
