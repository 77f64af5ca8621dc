package yatra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/catalog"
	"github.com/kailas-cloud/yatra/internal/db"
	dbRedis "github.com/kailas-cloud/yatra/internal/db/redis"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
	"github.com/kailas-cloud/yatra/internal/domain/search/request"
	"github.com/kailas-cloud/yatra/internal/domain/search/result"
	"github.com/kailas-cloud/yatra/internal/metrics"
	"github.com/kailas-cloud/yatra/internal/repository/geocache"
	quotarepo "github.com/kailas-cloud/yatra/internal/repository/quota"
	"github.com/kailas-cloud/yatra/internal/transport/nominatim"
	"github.com/kailas-cloud/yatra/internal/transport/osrm"
	geocodinguc "github.com/kailas-cloud/yatra/internal/usecase/geocoding"
	healthuc "github.com/kailas-cloud/yatra/internal/usecase/health"
	notifyuc "github.com/kailas-cloud/yatra/internal/usecase/notify"
	routeuc "github.com/kailas-cloud/yatra/internal/usecase/route"
	searchuc "github.com/kailas-cloud/yatra/internal/usecase/search"
	usageuc "github.com/kailas-cloud/yatra/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultCacheTTL         = 24 * time.Hour
)

// Internal interfaces, swapped for mocks in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]place.Place, error)
	Explain(query string, limit int) []result.Scored
	Popular(limit int) []place.Place
	Nearby(center geo.Point, radiusKm float64, limit int) ([]result.Nearby, error)
	Hubs(limit int) []place.Place
	NearestHubs(center geo.Point, limit int) ([]result.Nearby, error)
	Distance(from, to geo.Point) (float64, error)
}

type routeUseCase interface {
	Plan(ctx context.Context, req domroute.Request) (domroute.Plan, error)
	Strategies() []string
}

type notifyUseCase interface {
	Allow(session, id string) bool
	Drop(session string)
}

// Client is the yatra SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	routeSvc  routeUseCase
	notifySvc notifyUseCase
	healthSvc healthUseCase
	usageSvc  usageUseCase
	obs       *observer
}

// New creates a Client. Without options it works fully offline over the compiled-in catalog.
// The provided context is used for the initial cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{cacheTTL: defaultCacheTTL}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.bounds != nil {
		if err := boundsToDomain(*cfg.bounds).Validate(); err != nil {
			return nil, fmt.Errorf("yatra: %w: %w", ErrInvalidCoordinates, err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("yatra: cache not ready: %w", err)
		}
	}

	return wireClient(ctx, store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		// Both speak RESP, one client serves either.
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("yatra: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("yatra: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) *Client {
	bounds := catalog.DefaultBounds
	if cfg.bounds != nil {
		bounds = boundsToDomain(*cfg.bounds)
	}

	geocoder, quota, checker := buildGeocoder(ctx, store, cfg)

	searchSvc := searchuc.New(searchuc.NewRanker(catalog.Places(), nil), geocoder, searchuc.Config{
		Bounds:           bounds,
		MinStrongMatches: cfg.minStrongMatches,
		NearbyRadiusKm:   cfg.nearbyRadiusKm,
	})

	strategies := make([]routeuc.Strategy, 0, len(cfg.osrm)+len(cfg.routers)+1)
	for _, e := range cfg.osrm {
		strategies = append(strategies, osrm.NewStrategy(osrm.Config{BaseURL: e.baseURL, Profile: e.profile}))
	}
	for _, r := range cfg.routers {
		strategies = append(strategies, &routerAdapter{inner: r})
	}
	strategies = append(strategies, routeuc.NewEstimate())

	// Pass nil interfaces (not typed nil pointers) when a component is absent.
	var quotaReader usageuc.QuotaReader
	if quota != nil {
		quotaReader = quota
	}
	var pinger healthuc.CachePinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		routeSvc:  routeuc.NewPlanner(zap.NewNop(), strategies...),
		notifySvc: notifyuc.NewRegistry(cfg.cooldown, nil),
		healthSvc: healthuc.New(pinger, checker),
		usageSvc:  usageuc.New(quotaReader),
		obs:       obs,
	}
}

// buildGeocoder assembles provider -> quota -> cache. All results are nil when no geocoder is configured.
func buildGeocoder(
	ctx context.Context, store db.Store, cfg *clientConfig,
) (searchuc.Geocoder, *geocodinguc.QuotaTracker, healthuc.GeocoderChecker) {
	var (
		base     geocodinguc.Geocoder
		provider string
		checker  healthuc.GeocoderChecker
	)
	switch {
	case cfg.geocoder != nil:
		base, provider = &geocoderAdapter{inner: cfg.geocoder}, "custom"
	case cfg.nominatim != nil:
		n := cfg.nominatim
		codes := n.CountryCodes
		if len(codes) == 0 {
			codes = []string{"in"}
		}
		g := nominatim.NewGeocoder(&nominatim.Config{
			BaseURL:           n.BaseURL,
			UserAgent:         n.UserAgent,
			Email:             n.Email,
			CountryCodes:      codes,
			Timeout:           n.Timeout,
			RequestsPerSecond: n.RequestsPerSecond,
		})
		base, provider, checker = g, g.Provider(), g
	default:
		return nil, nil, nil
	}

	var quota *geocodinguc.QuotaTracker
	var quotaChecker geocodinguc.QuotaChecker
	if cfg.dailyQuota > 0 || cfg.monthlyQuota > 0 {
		action := geocodinguc.QuotaActionWarn
		if cfg.rejectOnQuota {
			action = geocodinguc.QuotaActionReject
		}
		quota = geocodinguc.NewQuotaTracker(provider, cfg.dailyQuota, cfg.monthlyQuota, action, zap.NewNop())
		if store != nil {
			quota.WithStore(ctx, quotarepo.New(store, 48*time.Hour, 62*24*time.Hour))
		}
		quotaChecker = quota
	}

	instrumented := geocodinguc.NewInstrumentedGeocoder(base, provider, quotaChecker, zap.NewNop())
	if store == nil {
		return instrumented, quota, checker
	}
	// Cache hits skip the quota.
	return geocache.New(instrumented, store, cfg.cacheTTL, metrics.GeocoderCacheTotal, zap.NewNop()), quota, checker
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache connectivity. Without a cache it always succeeds.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns a fluent place search builder.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{c: c, source: SourceHybrid}
}

// Popular returns up to limit catalog places by importance. limit <= 0 means 10.
func (c *Client) Popular(limit int) []Place {
	start := time.Now()
	places := c.searchSvc.Popular(limit)
	c.obs.observe("popular", start, nil)
	c.obs.observeResults("popular", len(places))
	return placesFromDomain(places)
}

// Nearby returns catalog places within radiusKm of center, nearest first.
// radiusKm <= 0 uses the configured default radius.
func (c *Client) Nearby(center Point, radiusKm float64, limit int) (_ []Place, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nearby", start, err) }()

	nearby, err := c.searchSvc.Nearby(pointToDomain(center), radiusKm, limit)
	if err != nil {
		return nil, fmt.Errorf("nearby: %w", err)
	}
	c.obs.observeResults("nearby", len(nearby))

	out := make([]Place, len(nearby))
	for i := range nearby {
		out[i] = placeFromDomain(nearby[i].Place())
		out[i].DistanceKm = nearby[i].DistanceKm()
	}
	return out, nil
}

// Hubs lists catalog railway stations and airports. With a non-nil near they are
// ordered by distance and carry DistanceKm.
func (c *Client) Hubs(near *Point, limit int) (_ []Place, err error) {
	start := time.Now()
	defer func() { c.obs.observe("hubs", start, err) }()

	if near == nil {
		hubs := c.searchSvc.Hubs(limit)
		c.obs.observeResults("hubs", len(hubs))
		return placesFromDomain(hubs), nil
	}

	nearest, err := c.searchSvc.NearestHubs(pointToDomain(*near), limit)
	if err != nil {
		return nil, fmt.Errorf("hubs: %w", err)
	}
	c.obs.observeResults("hubs", len(nearest))

	out := make([]Place, len(nearest))
	for i := range nearest {
		out[i] = placeFromDomain(nearest[i].Place())
		out[i].DistanceKm = nearest[i].DistanceKm()
	}
	return out, nil
}

// Distance returns the great-circle distance in kilometers.
func (c *Client) Distance(from, to Point) (float64, error) {
	km, err := c.searchSvc.Distance(pointToDomain(from), pointToDomain(to))
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	return km, nil
}

// Route plans a route through the configured strategy chain. An empty profile means optimal.
// The straight-line estimate is always last, so only invalid input fails in practice.
func (c *Client) Route(ctx context.Context, from, to Point, profile Profile) (_ Route, err error) {
	start := time.Now()
	defer func() { c.obs.observe("route", start, err) }()

	req, err := domroute.NewRequest(pointToDomain(from), pointToDomain(to), domroute.Profile(profile))
	if err != nil {
		return Route{}, fmt.Errorf("route: %w", err)
	}
	plan, err := c.routeSvc.Plan(ctx, req)
	if err != nil {
		return Route{}, fmt.Errorf("route: %w", err)
	}
	return routeFromDomain(&plan), nil
}

// RouteStrategies lists strategy names in attempt order.
func (c *Client) RouteStrategies() []string {
	return c.routeSvc.Strategies()
}

// Notify reports whether notification id should be shown for session.
// A delivered id is suppressed for the cooldown window.
func (c *Client) Notify(session, id string) bool {
	return c.notifySvc.Allow(session, id)
}

// ResetNotifications forgets every delivered id for session.
func (c *Client) ResetNotifications(session string) {
	c.notifySvc.Drop(session)
}
