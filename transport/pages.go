package transport

import (
	"context"
	"fmt"

	"github.com/spf13/cast"
)

// PageFunc fetches one page of a paginated endpoint. Pages are numbered from 1.
type PageFunc func(ctx context.Context, page int) (map[string]any, error)

// Pages is a forward-only iterator over the results of a paginated endpoint.
//
// Next is the only method that performs requests: page N+1 is fetched when
// the results buffered from page N are exhausted, until total_pages is
// reached. A Pages value cannot be rewound; call the producing method again
// for a fresh walk.
type Pages struct {
	ctx        context.Context
	fetch      PageFunc
	page       int
	totalPages int
	buffer     []map[string]any
	current    map[string]any
	err        error
	done       bool
}

// NewPages creates an iterator that pulls pages through fetch
func NewPages(ctx context.Context, fetch PageFunc) *Pages {
	return &Pages{
		ctx:   ctx,
		fetch: fetch,
	}
}

// Next advances to the next result, fetching another page when needed.
// It returns false when the results are exhausted or a request failed.
func (p *Pages) Next() bool {
	if p.err != nil || p.done {
		return false
	}

	for len(p.buffer) == 0 {
		if p.page > 0 && p.page >= p.totalPages {
			p.done = true
			p.current = nil
			return false
		}
		if err := p.fetchNext(); err != nil {
			p.err = err
			p.current = nil
			return false
		}
	}

	p.current = p.buffer[0]
	p.buffer = p.buffer[1:]
	return true
}

// Value returns the result Next advanced to
func (p *Pages) Value() map[string]any {
	return p.current
}

// Err returns the error that stopped iteration, if any
func (p *Pages) Err() error {
	return p.err
}

// Fetched returns the number of pages requested so far
func (p *Pages) Fetched() int {
	return p.page
}

func (p *Pages) fetchNext() error {
	if err := p.ctx.Err(); err != nil {
		return err
	}

	next := p.page + 1
	payload, err := p.fetch(p.ctx, next)
	if err != nil {
		return err
	}

	rawTotal, ok := payload["total_pages"]
	if !ok || rawTotal == nil {
		return fmt.Errorf("%w: page %d has no total_pages", ErrMalformedPage, next)
	}
	total, err := cast.ToIntE(rawTotal)
	if err != nil {
		return fmt.Errorf("%w: page %d: total_pages: %v", ErrMalformedPage, next, err)
	}

	raw, ok := payload["results"].([]any)
	if !ok {
		return fmt.Errorf("%w: page %d has no results list", ErrMalformedPage, next)
	}

	results := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		result, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: page %d result %d is not an object", ErrMalformedPage, next, i)
		}
		results = append(results, result)
	}

	p.page = next
	p.totalPages = total
	p.buffer = results
	return nil
}
