package route

import (
	"context"

	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

// Strategy is one way of producing a route plan. Planner tries strategies in order.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, req domroute.Request) (domroute.Plan, error)
}
