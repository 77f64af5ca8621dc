package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/domain/search/request"
	"github.com/kailas-cloud/yatra/internal/domain/search/result"
	"github.com/kailas-cloud/yatra/internal/domain/text"
	"github.com/kailas-cloud/yatra/internal/logger"
	"github.com/kailas-cloud/yatra/internal/metrics"
)

// Search service defaults.
const (
	// StrongMatchScore is the minimum score for a local hit to count as strong.
	StrongMatchScore        = containsBonus
	DefaultMinStrongMatches = 3
	DefaultNearbyRadiusKm   = 5.0
)

// Config tunes the search service.
type Config struct {
	Bounds           geo.Bounds
	MinStrongMatches int
	// NearbyRadiusKm is the Nearby radius used when the caller passes none.
	NearbyRadiusKm float64
}

// Service answers place searches over the local catalog with an optional remote geocoder.
type Service struct {
	ranker       *Ranker
	geocoder     Geocoder
	bounds       geo.Bounds
	minStrong    int
	nearbyRadius float64
}

// New creates a search service. geocoder may be nil for local-only operation.
func New(ranker *Ranker, geocoder Geocoder, cfg Config) *Service {
	if cfg.MinStrongMatches <= 0 {
		cfg.MinStrongMatches = DefaultMinStrongMatches
	}
	if cfg.NearbyRadiusKm <= 0 {
		cfg.NearbyRadiusKm = DefaultNearbyRadiusKm
	}
	return &Service{
		ranker:       ranker,
		geocoder:     geocoder,
		bounds:       cfg.Bounds,
		minStrong:    cfg.MinStrongMatches,
		nearbyRadius: cfg.NearbyRadiusKm,
	}
}

// Search ranks the catalog and, for hybrid requests with too few strong matches,
// merges in geocoder candidates. Geocoder failures degrade to local results.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]place.Place, error) {
	scored := s.ranker.Rank(req.Query(), req.Limit())
	local := make([]place.Place, len(scored))
	strong := 0
	for i := range scored {
		local[i] = scored[i].Place()
		if scored[i].Score() >= StrongMatchScore {
			strong++
		}
	}

	var remote []place.Place
	if s.shouldGeocode(req, strong) {
		var err error
		remote, err = s.geocoder.Geocode(ctx, req.Query(), s.bounds, req.Limit())
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("geocode: %w", ctxErr)
			}
			reason := "unavailable"
			if errors.Is(err, domain.ErrGeocoderQuotaExceeded) {
				reason = "quota"
			}
			metrics.SearchDegradedTotal.WithLabelValues(reason).Inc()
			logger.FromContext(ctx).Warn("Geocoder failed, serving local results",
				zap.String("query", req.Query()),
				zap.String("reason", reason),
				zap.Int("local_results", len(local)),
				zap.Error(err),
			)
			remote = nil
		}
	}

	results := MergeAndFilter(req.Query(), local, remote, s.bounds)
	if len(results) > req.Limit() {
		results = results[:req.Limit()]
	}
	return results, nil
}

func (s *Service) shouldGeocode(req *request.Request, strong int) bool {
	if s.geocoder == nil || !req.Mode().AllowsRemote() {
		return false
	}
	if text.Normalize(req.Query()) == "" {
		return false
	}
	return strong < s.minStrong
}

// Popular returns the most important catalog places.
func (s *Service) Popular(limit int) []place.Place {
	return s.ranker.Popular(clampLimit(limit))
}

// Explain returns the local ranking with scores, without consulting the geocoder.
func (s *Service) Explain(query string, limit int) []result.Scored {
	return s.ranker.Rank(query, limit)
}

// Nearby returns catalog places within radiusKm of center, nearest first.
// radiusKm <= 0 uses the configured default radius.
func (s *Service) Nearby(center geo.Point, radiusKm float64, limit int) ([]result.Nearby, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("%w: center (%f, %f)", domain.ErrInvalidCoordinates, center.Latitude, center.Longitude)
	}
	if radiusKm <= 0 {
		radiusKm = s.nearbyRadius
	}
	limit = clampLimit(limit)

	var out []result.Nearby
	for _, p := range s.ranker.Places() {
		d := geo.DistanceKm(center, p.Point())
		if d <= radiusKm {
			out = append(out, result.NewNearby(p, d))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm() < out[j].DistanceKm()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []result.Nearby{}
	}
	return out, nil
}

// Hubs returns catalog transport hubs in catalog order.
func (s *Service) Hubs(limit int) []place.Place {
	limit = clampLimit(limit)
	out := []place.Place{}
	for _, p := range s.ranker.Places() {
		if p.Category().IsTransportHub() {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// NearestHubs returns catalog transport hubs ordered by distance from center, with no radius cut.
func (s *Service) NearestHubs(center geo.Point, limit int) ([]result.Nearby, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("%w: center (%f, %f)", domain.ErrInvalidCoordinates, center.Latitude, center.Longitude)
	}
	hubs := s.Hubs(request.MaxLimit)
	out := make([]result.Nearby, len(hubs))
	for i, p := range hubs {
		out[i] = result.NewNearby(p, geo.DistanceKm(center, p.Point()))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm() < out[j].DistanceKm()
	})
	if limit = clampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return request.DefaultLimit
	}
	return min(limit, request.MaxLimit)
}

// Distance validates both points and returns the great-circle distance in km.
func (s *Service) Distance(from, to geo.Point) (float64, error) {
	if !from.Valid() || !to.Valid() {
		return 0, fmt.Errorf("%w: from (%f, %f) to (%f, %f)", domain.ErrInvalidCoordinates,
			from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	}
	return geo.DistanceKm(from, to), nil
}

// Bounds returns the geofence applied to results.
func (s *Service) Bounds() geo.Bounds { return s.bounds }
