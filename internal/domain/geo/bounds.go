package geo

import "fmt"

// Bounds is a rectangular lat/lng box. It does not handle antimeridian wrap.
type Bounds struct {
	North float64 `yaml:"north" json:"north"`
	South float64 `yaml:"south" json:"south"`
	East  float64 `yaml:"east" json:"east"`
	West  float64 `yaml:"west" json:"west"`
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.Latitude >= b.South && p.Latitude <= b.North &&
		p.Longitude >= b.West && p.Longitude <= b.East
}

// IsZero reports whether b is the zero value.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Validate checks that b describes a non-empty box within WGS-84 ranges.
func (b Bounds) Validate() error {
	if !ValidateCoordinates(b.North, b.East) || !ValidateCoordinates(b.South, b.West) {
		return fmt.Errorf("bounds out of range: %+v", b)
	}
	if b.South > b.North {
		return fmt.Errorf("bounds south %.4f is above north %.4f", b.South, b.North)
	}
	if b.West > b.East {
		return fmt.Errorf("bounds west %.4f is east of east %.4f", b.West, b.East)
	}
	return nil
}

// Viewbox renders b as "west,north,east,south", the order Nominatim expects.
func (b Bounds) Viewbox() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.West, b.North, b.East, b.South)
}
