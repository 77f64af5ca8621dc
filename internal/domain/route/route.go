// Package route holds route planning value objects.
package route

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
)

// Profile is the routing preference.
type Profile string

// Profile constants.
const (
	Optimal Profile = "optimal"
	Fastest Profile = "fastest"
	Safest  Profile = "safest"
)

// IsValid checks if the profile is one of the supported values.
func (p Profile) IsValid() bool {
	return p == Optimal || p == Fastest || p == Safest
}

// Request is a validated route query.
type Request struct {
	from    geo.Point
	to      geo.Point
	profile Profile
}

// NewRequest validates endpoints and defaults the profile to optimal.
func NewRequest(from, to geo.Point, profile Profile) (Request, error) {
	if !from.Valid() {
		return Request{}, fmt.Errorf("origin (%f, %f): %w", from.Latitude, from.Longitude, domain.ErrInvalidCoordinates)
	}
	if !to.Valid() {
		return Request{}, fmt.Errorf("destination (%f, %f): %w", to.Latitude, to.Longitude, domain.ErrInvalidCoordinates)
	}
	if profile == "" {
		profile = Optimal
	}
	if !profile.IsValid() {
		return Request{}, fmt.Errorf("route profile %q: %w", profile, domain.ErrInvalidQuery)
	}
	return Request{from: from, to: to, profile: profile}, nil
}

// From returns the origin.
func (r Request) From() geo.Point { return r.from }

// To returns the destination.
func (r Request) To() geo.Point { return r.to }

// Profile returns the routing preference.
func (r Request) Profile() Profile { return r.profile }

// Plan is a computed route.
type Plan struct {
	ID         string        `json:"id"`
	Strategy   string        `json:"strategy"`
	Profile    Profile       `json:"profile"`
	DistanceKm float64       `json:"distance_km"`
	Duration   time.Duration `json:"-"`
	Geometry   []geo.Point   `json:"geometry"`
	// Estimated marks a straight-line approximation rather than a road route.
	Estimated bool `json:"estimated"`
}

// DurationSeconds returns Duration rounded down to whole seconds.
func (p Plan) DurationSeconds() int64 { return int64(p.Duration / time.Second) }
