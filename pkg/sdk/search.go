package yatra

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/yatra/internal/domain/search/mode"
	"github.com/kailas-cloud/yatra/internal/domain/search/request"
)

// SearchBuilder is a fluent builder for place searches.
type SearchBuilder struct {
	c *Client

	query   string
	limit   int
	source  Source
	explain bool
}

// Query sets the free-text query. An empty query returns popular places.
func (b *SearchBuilder) Query(q string) *SearchBuilder {
	b.query = q
	return b
}

// Limit sets the maximum number of results. Default 10, capped at 50.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Source selects the backends consulted. Default: SourceHybrid.
func (b *SearchBuilder) Source(s Source) *SearchBuilder {
	b.source = s
	return b
}

// Local restricts the search to the compiled-in catalog.
func (b *SearchBuilder) Local() *SearchBuilder {
	return b.Source(SourceLocal)
}

// Explain ranks the catalog only and fills Place.Score.
func (b *SearchBuilder) Explain() *SearchBuilder {
	b.explain = true
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (_ []Place, err error) {
	op := "search"
	if b.explain {
		op = "explain"
	}
	start := time.Now()
	defer func() { b.c.obs.observe(op, start, err) }()

	req, err := request.New(b.query, b.limit, mode.Mode(b.source))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if b.explain {
		scored := b.c.searchSvc.Explain(req.Query(), req.Limit())
		b.c.obs.observeResults(op, len(scored))
		out := make([]Place, len(scored))
		for i := range scored {
			out[i] = placeFromDomain(scored[i].Place())
			out[i].Score = scored[i].Score()
		}
		return out, nil
	}

	places, err := b.c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	b.c.obs.observeResults(op, len(places))
	return placesFromDomain(places), nil
}
