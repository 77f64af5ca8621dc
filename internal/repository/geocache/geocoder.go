package geocache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/db"
	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/domain/text"
)

var cacheKeyPrefix = domain.KeyPrefix + "geo_cache:"

// geocoder is the decorated provider.
type geocoder interface {
	Geocode(ctx context.Context, query string, bounds geo.Bounds, limit int) ([]place.Place, error)
}

// store is the consumer interface for the geocode cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedGeocoder caches geocoder answers in a key-value store.
type CachedGeocoder struct {
	inner      geocoder
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner geocoder,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGeocoder {
	return &CachedGeocoder{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Geocode returns cached places or calls the inner geocoder.
// Empty answers are cached too. Store failures are logged and bypassed.
func (c *CachedGeocoder) Geocode(
	ctx context.Context, query string, bounds geo.Bounds, limit int,
) ([]place.Place, error) {
	key := cacheKey(query, bounds, limit)

	if places, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return places, nil
	}

	c.incCache("miss")

	places, err := c.inner.Geocode(ctx, query, bounds, limit)
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}

	c.putToCache(ctx, key, places)
	return places, nil
}

func (c *CachedGeocoder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(query string, bounds geo.Bounds, limit int) string {
	h := sha256.New()
	h.Write([]byte(text.Normalize(query)))
	h.Write([]byte{0})
	h.Write([]byte(bounds.Viewbox()))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(limit)))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedGeocoder) getFromCache(ctx context.Context, key string) ([]place.Place, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached geocode", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	places, err := decodePlaces(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached geocode", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return places, true
}

func (c *CachedGeocoder) putToCache(ctx context.Context, key string, places []place.Place) {
	data, err := encodePlaces(places)
	if err != nil {
		c.logger.Warn("Failed to encode geocode for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache geocode", zap.String("key", key), zap.Error(err))
	}
}
