package place

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
)

// Place is a named location (immutable value object).
type Place struct {
	name       string
	point      geo.Point
	category   Category
	provenance Provenance
}

// New validates and creates a Place.
func New(name string, point geo.Point, category Category, provenance Provenance) (Place, error) {
	if strings.TrimSpace(name) == "" {
		return Place{}, fmt.Errorf("place name is required")
	}
	if !point.Valid() {
		return Place{}, fmt.Errorf("place %q: invalid coordinates (%f, %f)", name, point.Latitude, point.Longitude)
	}
	if !category.IsValid() {
		category = General
	}
	if provenance != Remote {
		provenance = Local
	}
	return Place{name: name, point: point, category: category, provenance: provenance}, nil
}

// MustLocal creates a local place and panics on invalid input. Used for compiled-in tables.
func MustLocal(name string, lat, lng float64, category Category) Place {
	p, err := New(name, geo.Point{Latitude: lat, Longitude: lng}, category, Local)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the display name.
func (p Place) Name() string { return p.name }

// Point returns the coordinates.
func (p Place) Point() geo.Point { return p.point }

// Category returns the place category.
func (p Place) Category() Category { return p.category }

// Importance returns the category-derived weight.
func (p Place) Importance() float64 { return p.category.Importance() }

// Provenance returns local or remote.
func (p Place) Provenance() Provenance { return p.provenance }

// DedupKey identifies a place across sources: lowercase name and coordinates rounded to 3 decimals.
func (p Place) DedupKey() string {
	return fmt.Sprintf("%s|%.3f|%.3f", strings.ToLower(p.name), p.point.Latitude, p.point.Longitude)
}
