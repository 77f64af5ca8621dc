package result

import "github.com/kailas-cloud/yatra/internal/domain/place"

// Nearby is a place paired with its distance from a search center.
type Nearby struct {
	place      place.Place
	distanceKm float64
}

// NewNearby creates a proximity result.
func NewNearby(p place.Place, distanceKm float64) Nearby {
	return Nearby{place: p, distanceKm: distanceKm}
}

// Place returns the matched place.
func (n *Nearby) Place() place.Place { return n.place }

// DistanceKm returns the great-circle distance from the center.
func (n *Nearby) DistanceKm() float64 { return n.distanceKm }

// Scored is a place with its relevance score, returned by diagnostic ranking.
type Scored struct {
	place place.Place
	score int
}

// NewScored creates a scored result.
func NewScored(p place.Place, score int) Scored {
	return Scored{place: p, score: score}
}

// Place returns the ranked place.
func (s *Scored) Place() place.Place { return s.place }

// Score returns the additive relevance score.
func (s *Scored) Score() int { return s.score }
