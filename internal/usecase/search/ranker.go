package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/yatra/internal/catalog"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/domain/search/result"
	"github.com/kailas-cloud/yatra/internal/domain/text"
)

// Relevance bonuses. They are additive: an exact match also collects the
// starts-with and contains bonuses, and every matching query token adds tokenBonus.
const (
	exactBonus    = 100
	prefixBonus   = 50
	containsBonus = 25
	tokenBonus    = 10
	categoryBonus = 15
	districtBonus = 20

	// minTokenRunes is the exclusive lower bound on token length for tokenBonus.
	minTokenRunes = 2
)

// DistrictFunc resolves the district a place name belongs to.
type DistrictFunc func(name string) string

// Ranker scores a fixed place list against free-text queries.
// It holds no mutable state and is safe for concurrent use.
type Ranker struct {
	places   []place.Place
	district DistrictFunc
}

// NewRanker creates a ranker over places. A nil district func uses the catalog table.
func NewRanker(places []place.Place, district DistrictFunc) *Ranker {
	if district == nil {
		district = catalog.District
	}
	cp := make([]place.Place, len(places))
	copy(cp, places)
	return &Ranker{places: cp, district: district}
}

// Search returns up to limit places ordered by relevance to query.
// A blank query returns the most important places instead.
func (r *Ranker) Search(query string, limit int) []place.Place {
	scored := r.Rank(query, limit)
	out := make([]place.Place, len(scored))
	for i := range scored {
		out[i] = scored[i].Place()
	}
	return out
}

// Rank is Search with scores attached. Popular fallback entries carry score 0.
func (r *Ranker) Rank(query string, limit int) []result.Scored {
	if limit <= 0 {
		return []result.Scored{}
	}

	q := text.Normalize(query)
	if q == "" {
		popular := r.Popular(limit)
		out := make([]result.Scored, len(popular))
		for i, p := range popular {
			out[i] = result.NewScored(p, 0)
		}
		return out
	}

	tokens := text.Tokens(q, minTokenRunes)
	out := make([]result.Scored, 0, len(r.places))
	for _, p := range r.places {
		if s := r.score(q, tokens, p); s > 0 {
			out = append(out, result.NewScored(p, s))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score() > out[j].Score()
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Popular returns up to limit places by importance descending, catalog order on ties.
func (r *Ranker) Popular(limit int) []place.Place {
	if limit <= 0 {
		return []place.Place{}
	}
	out := make([]place.Place, len(r.places))
	copy(out, r.places)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance() > out[j].Importance()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Places returns the ranked place list in its original order.
func (r *Ranker) Places() []place.Place {
	out := make([]place.Place, len(r.places))
	copy(out, r.places)
	return out
}

// Score returns the relevance score of p for query. Exposed for diagnostics.
func (r *Ranker) Score(query string, p place.Place) int {
	q := text.Normalize(query)
	if q == "" {
		return 0
	}
	return r.score(q, text.Tokens(q, minTokenRunes), p)
}

func (r *Ranker) score(q string, tokens []string, p place.Place) int {
	name := text.Normalize(p.Name())
	s := 0
	if name == q {
		s += exactBonus
	}
	if strings.HasPrefix(name, q) {
		s += prefixBonus
	}
	if strings.Contains(name, q) {
		s += containsBonus
	}
	for _, t := range tokens {
		if strings.Contains(name, t) {
			s += tokenBonus
		}
	}
	if strings.Contains(string(p.Category()), q) {
		s += categoryBonus
	}
	if strings.Contains(text.Normalize(r.district(p.Name())), q) {
		s += districtBonus
	}
	return s
}
