package route

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/domain"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
	"github.com/kailas-cloud/yatra/internal/metrics"
	"github.com/kailas-cloud/yatra/internal/tracing"
)

// Planner tries an ordered list of strategies and returns the first plan produced.
type Planner struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewPlanner creates a planner. Strategies are attempted in the given order.
func NewPlanner(logger *zap.Logger, strategies ...Strategy) *Planner {
	return &Planner{strategies: strategies, logger: logger}
}

// Strategies returns strategy names in attempt order.
func (p *Planner) Strategies() []string {
	out := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		out[i] = s.Name()
	}
	return out
}

// Plan returns the first successful strategy's plan. When every strategy fails
// the error wraps domain.ErrNoRoute joined with one RouteAttemptError per attempt.
func (p *Planner) Plan(ctx context.Context, req domroute.Request) (plan domroute.Plan, err error) {
	ctx, end := tracing.StartSpan(ctx, "route.plan",
		attribute.String("route.profile", string(req.Profile())),
		attribute.Int("route.strategies", len(p.strategies)),
	)
	defer func() { end(err) }()

	errs := []error{domain.ErrNoRoute}
	for _, s := range p.strategies {
		if ctxErr := ctx.Err(); ctxErr != nil {
			errs = append(errs, ctxErr)
			break
		}

		name := s.Name()
		start := time.Now()
		got, attemptErr := s.Attempt(ctx, req)
		metrics.RouteAttemptDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if attemptErr != nil {
			metrics.RouteAttemptsTotal.WithLabelValues(name, "error").Inc()
			p.logger.Warn("Route strategy failed",
				zap.String("strategy", name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(attemptErr),
			)
			errs = append(errs, domain.NewRouteAttemptError(name, attemptErr))
			continue
		}

		metrics.RouteAttemptsTotal.WithLabelValues(name, "success").Inc()
		if got.ID == "" {
			got.ID = uuid.NewString()
		}
		got.Strategy = name
		got.Profile = req.Profile()
		p.logger.Debug("Route planned",
			zap.String("strategy", name),
			zap.String("plan_id", got.ID),
			zap.Float64("distance_km", got.DistanceKm),
			zap.Bool("estimated", got.Estimated),
		)
		return got, nil
	}

	metrics.RouteFailuresTotal.Inc()
	return domroute.Plan{}, errors.Join(errs...)
}
