package yatra

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

// Geocoder resolves free text to candidate places.
// Returned places are marked remote; Category may be any catalog category name or empty.
type Geocoder interface {
	Geocode(ctx context.Context, query string, bounds Bounds, limit int) ([]Place, error)
}

// Router plans a route between two points. Return an error to fall through to the next strategy.
type Router interface {
	Name() string
	Route(ctx context.Context, from, to Point, profile Profile) (Route, error)
}

// geocoderAdapter wraps public Geocoder to satisfy the internal search.Geocoder.
type geocoderAdapter struct {
	inner Geocoder
}

func (a *geocoderAdapter) Geocode(
	ctx context.Context, query string, bounds geo.Bounds, limit int,
) ([]place.Place, error) {
	got, err := a.inner.Geocode(ctx, query, boundsFromDomain(bounds), limit)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	out := make([]place.Place, 0, len(got))
	for _, p := range got {
		dp, err := place.New(p.Name, pointToDomain(p.Point), place.ParseCategory(p.Category), place.Remote)
		if err != nil {
			// Skip unnamed or off-globe candidates.
			continue
		}
		out = append(out, dp)
	}
	return out, nil
}

// routerAdapter wraps public Router to satisfy the internal route.Strategy.
type routerAdapter struct {
	inner Router
}

func (a *routerAdapter) Name() string { return a.inner.Name() }

func (a *routerAdapter) Attempt(ctx context.Context, req domroute.Request) (domroute.Plan, error) {
	r, err := a.inner.Route(ctx, pointFromDomain(req.From()), pointFromDomain(req.To()), Profile(req.Profile()))
	if err != nil {
		return domroute.Plan{}, fmt.Errorf("router %s: %w", a.inner.Name(), err)
	}
	geometry := make([]geo.Point, len(r.Geometry))
	for i, p := range r.Geometry {
		geometry[i] = pointToDomain(p)
	}
	return domroute.Plan{
		ID:         r.ID,
		DistanceKm: r.DistanceKm,
		Duration:   r.Duration,
		Geometry:   geometry,
		Estimated:  r.Estimated,
	}, nil
}
