package yatra

import "time"

// Point is a WGS-84 coordinate pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Bounds is a geofence rectangle in degrees.
type Bounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Source selects which backends a search may consult.
type Source string

// Source constants.
const (
	// SourceHybrid ranks the catalog and asks the geocoder when local matches are weak.
	SourceHybrid Source = "hybrid"
	// SourceLocal ranks the compiled-in catalog only.
	SourceLocal Source = "local"
)

// Origin marks where a place came from.
type Origin string

// Origin constants.
const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Profile is the routing preference.
type Profile string

// Profile constants.
const (
	ProfileOptimal Profile = "optimal"
	ProfileFastest Profile = "fastest"
	ProfileSafest  Profile = "safest"
)

// Place is a named location returned by searches.
type Place struct {
	Name     string
	Point    Point
	Category string
	Origin   Origin
	// District is set for catalog places.
	District string
	// Score is the relevance score when the search was explained.
	Score int
	// DistanceKm is set by Nearby.
	DistanceKm float64
}

// Route is a planned route.
type Route struct {
	ID         string
	Strategy   string
	Profile    Profile
	DistanceKm float64
	Duration   time.Duration
	Geometry   []Point
	// Estimated is true for straight-line approximations.
	Estimated bool
}
