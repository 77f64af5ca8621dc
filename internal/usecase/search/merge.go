package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/domain/text"
)

// MergeAndFilter combines local and remote candidates for query.
// Local entries come first so they win DedupKey collisions. Places outside bounds
// are dropped. The result is ordered exact match first, then prefix match, then
// importance; remaining ties keep insertion order. remote may be nil.
func MergeAndFilter(query string, local, remote []place.Place, bounds geo.Bounds) []place.Place {
	seen := make(map[string]struct{}, len(local)+len(remote))
	out := make([]place.Place, 0, len(local)+len(remote))

	add := func(ps []place.Place) {
		for _, p := range ps {
			key := p.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if !bounds.Contains(p.Point()) {
				continue
			}
			out = append(out, p)
		}
	}
	add(local)
	add(remote)

	q := text.Normalize(query)
	rank := func(p place.Place) int {
		if q == "" {
			return 0
		}
		name := text.Normalize(p.Name())
		switch {
		case name == q:
			return 2
		case strings.HasPrefix(name, q):
			return 1
		default:
			return 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri > rj
		}
		return out[i].Importance() > out[j].Importance()
	})
	return out
}
