package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 256
	DefaultLimit   = 10
	MaxLimit       = 50
)

// Request is a validated place search.
type Request struct {
	query      string
	searchMode mode.Mode
	limit      int
}

// New validates and normalizes search parameters.
// Defaults: mode=hybrid, limit=10. Limit is clamped to MaxLimit.
// An empty query is valid and yields the popular places list.
func New(query string, limit int, m mode.Mode) (Request, error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidQuery)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("search source %q: %w", m, domain.ErrInvalidQuery)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{query: query, searchMode: m, limit: limit}, nil
}

// Query returns the raw search text.
func (r *Request) Query() string { return r.query }

// Mode returns the source selection.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
