package yatra

import (
	"github.com/kailas-cloud/yatra/internal/catalog"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

func pointToDomain(p Point) geo.Point {
	return geo.Point{Latitude: p.Lat, Longitude: p.Lng}
}

func pointFromDomain(p geo.Point) Point {
	return Point{Lat: p.Latitude, Lng: p.Longitude}
}

func boundsToDomain(b Bounds) geo.Bounds {
	return geo.Bounds{North: b.North, South: b.South, East: b.East, West: b.West}
}

func boundsFromDomain(b geo.Bounds) Bounds {
	return Bounds{North: b.North, South: b.South, East: b.East, West: b.West}
}

func placeFromDomain(p place.Place) Place {
	out := Place{
		Name:     p.Name(),
		Point:    pointFromDomain(p.Point()),
		Category: string(p.Category()),
		Origin:   Origin(p.Provenance()),
	}
	if p.Provenance() == place.Local {
		out.District = catalog.District(p.Name())
	}
	return out
}

func placesFromDomain(places []place.Place) []Place {
	out := make([]Place, len(places))
	for i, p := range places {
		out[i] = placeFromDomain(p)
	}
	return out
}

func routeFromDomain(p *domroute.Plan) Route {
	geometry := make([]Point, len(p.Geometry))
	for i, g := range p.Geometry {
		geometry[i] = pointFromDomain(g)
	}
	return Route{
		ID:         p.ID,
		Strategy:   p.Strategy,
		Profile:    Profile(p.Profile),
		DistanceKm: p.DistanceKm,
		Duration:   p.Duration,
		Geometry:   geometry,
		Estimated:  p.Estimated,
	}
}
