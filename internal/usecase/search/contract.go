package search

import (
	"context"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
)

// Geocoder supplies remote place candidates for a free-text query.
// Implementations return places with remote provenance; the result may extend past bounds.
type Geocoder interface {
	Geocode(ctx context.Context, query string, bounds geo.Bounds, limit int) ([]place.Place, error)
}
