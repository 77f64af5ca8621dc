package geocoding

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/metrics"
	"github.com/kailas-cloud/yatra/internal/tracing"
)

// Geocoder is the decorated provider.
type Geocoder interface {
	Geocode(ctx context.Context, query string, bounds geo.Bounds, limit int) ([]place.Place, error)
}

// QuotaChecker is the local interface for quota enforcement.
type QuotaChecker interface {
	Check(ctx context.Context) error
	Record(n int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedGeocoder wraps a Geocoder with quota enforcement, tracing and logging.
// Transport metrics (requests, duration) are recorded in transport/nominatim.
type InstrumentedGeocoder struct {
	inner    Geocoder
	provider string
	quota    QuotaChecker
	logger   *zap.Logger
}

// NewInstrumentedGeocoder wraps a geocoder. quota may be nil.
func NewInstrumentedGeocoder(
	inner Geocoder, provider string, quota QuotaChecker, logger *zap.Logger,
) *InstrumentedGeocoder {
	return &InstrumentedGeocoder{
		inner:    inner,
		provider: provider,
		quota:    quota,
		logger:   logger,
	}
}

// Geocode checks the quota, delegates to the inner geocoder and records usage.
func (g *InstrumentedGeocoder) Geocode(
	ctx context.Context, query string, bounds geo.Bounds, limit int,
) (places []place.Place, err error) {
	ctx, end := tracing.StartSpan(ctx, "geocode",
		attribute.String("geocoder.provider", g.provider),
		attribute.Int("geocoder.limit", limit),
	)
	defer func() { end(err) }()

	if g.quota != nil {
		if err := g.quota.Check(ctx); err != nil {
			g.logger.Error("Geocoder quota exceeded",
				zap.String("provider", g.provider),
				zap.Error(err),
			)
			return nil, fmt.Errorf("quota check: %w", err)
		}
	}

	start := time.Now()
	places, err = g.inner.Geocode(ctx, query, bounds, limit)
	duration := time.Since(start)

	// The upstream request counts against the quota whether or not it succeeded.
	g.recordQuota()

	if err != nil {
		g.logger.Error("Geocoder request failed",
			zap.String("provider", g.provider),
			zap.String("query", query),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("geocode: %w", err)
	}

	g.logger.Debug("Geocoder request completed",
		zap.String("provider", g.provider),
		zap.String("query", query),
		zap.Duration("duration", duration),
		zap.Int("results", len(places)),
	)
	return places, nil
}

func (g *InstrumentedGeocoder) recordQuota() {
	if g.quota == nil {
		return
	}
	g.quota.Record(1)
	gauge := metrics.GeocoderQuotaRemaining
	gauge.WithLabelValues(g.provider, "daily").Set(float64(g.quota.RemainingDaily()))
	gauge.WithLabelValues(g.provider, "monthly").Set(float64(g.quota.RemainingMonthly()))
}
