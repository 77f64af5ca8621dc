package route

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

// EstimateName is the strategy name of the straight-line fallback.
const EstimateName = "estimate"

type pace struct {
	detour       float64
	minutesPerKm float64
}

// Walking paces with crowds, per profile.
var paces = map[domroute.Profile]pace{
	domroute.Optimal: {detour: 1.1, minutesPerKm: 12},
	domroute.Fastest: {detour: 0.95, minutesPerKm: 8},
	domroute.Safest:  {detour: 1.3, minutesPerKm: 10},
}

// Estimate approximates a route from the great-circle distance. It never needs the network.
type Estimate struct{}

// NewEstimate creates the straight-line fallback strategy.
func NewEstimate() Estimate { return Estimate{} }

// Name implements Strategy.
func (Estimate) Name() string { return EstimateName }

// Attempt implements Strategy.
func (Estimate) Attempt(_ context.Context, req domroute.Request) (domroute.Plan, error) {
	pc, ok := paces[req.Profile()]
	if !ok {
		return domroute.Plan{}, fmt.Errorf("no pace for profile %q", req.Profile())
	}

	from, to := req.From(), req.To()
	km := geo.DistanceKm(from, to) * pc.detour
	minutes := km * pc.minutesPerKm

	geometry := []geo.Point{from, geo.Midpoint(from, to), to}
	if req.Profile() == domroute.Fastest {
		geometry = []geo.Point{from, to}
	}

	return domroute.Plan{
		DistanceKm: km,
		Duration:   time.Duration(minutes * float64(time.Minute)),
		Geometry:   geometry,
		Estimated:  true,
	}, nil
}
