package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/catalog"
	"github.com/kailas-cloud/yatra/internal/config"
	"github.com/kailas-cloud/yatra/internal/db"
	dbRedis "github.com/kailas-cloud/yatra/internal/db/redis"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	logpkg "github.com/kailas-cloud/yatra/internal/logger"
	"github.com/kailas-cloud/yatra/internal/metrics"
	"github.com/kailas-cloud/yatra/internal/repository/geocache"
	quotarepo "github.com/kailas-cloud/yatra/internal/repository/quota"
	"github.com/kailas-cloud/yatra/internal/tracing"
	chiTransport "github.com/kailas-cloud/yatra/internal/transport/chi"
	"github.com/kailas-cloud/yatra/internal/transport/nominatim"
	"github.com/kailas-cloud/yatra/internal/transport/osrm"
	geocodinguc "github.com/kailas-cloud/yatra/internal/usecase/geocoding"
	healthuc "github.com/kailas-cloud/yatra/internal/usecase/health"
	notifyuc "github.com/kailas-cloud/yatra/internal/usecase/notify"
	routeuc "github.com/kailas-cloud/yatra/internal/usecase/route"
	searchuc "github.com/kailas-cloud/yatra/internal/usecase/search"
	usageuc "github.com/kailas-cloud/yatra/internal/usecase/usage"
	"github.com/kailas-cloud/yatra/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting yatra API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Bool("geocoder_enabled", cfg.Geocoder.Enabled),
		zap.Int("catalog_size", catalog.Len()),
	)

	ctx := context.Background()

	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    logpkg.ServiceName,
		ServiceVersion: version.Version,
		Environment:    env,
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SamplingRate:   cfg.Tracing.SamplingRate,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to start tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Tracing shutdown failed", zap.Error(err))
		}
	}()

	// Redis and Valkey speak the same protocol, one client serves both drivers.
	var store db.Store
	if cfg.Cache.Enabled() {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer redisStore.Close()

		if err := redisStore.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		store = redisStore
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register metrics explicitly (no init())
	metrics.RegisterGeocoderMetrics()
	metrics.RegisterRouteMetrics()

	bounds := geo.Bounds{
		North: cfg.Search.Bounds.North,
		South: cfg.Search.Bounds.South,
		East:  cfg.Search.Bounds.East,
		West:  cfg.Search.Bounds.West,
	}

	// Geocoder chain: Nominatim -> Cached -> Instrumented (quota)
	var (
		geocoder      searchuc.Geocoder
		quota         *geocodinguc.QuotaTracker
		geocoderCheck healthuc.GeocoderChecker
	)
	if cfg.Geocoder.Enabled {
		base := nominatim.NewGeocoder(&nominatim.Config{
			BaseURL:           cfg.Geocoder.BaseURL,
			UserAgent:         cfg.Geocoder.UserAgent,
			Email:             cfg.Geocoder.Email,
			CountryCodes:      cfg.Geocoder.CountryCodes,
			Timeout:           time.Duration(cfg.Geocoder.TimeoutSec) * time.Second,
			RequestsPerSecond: cfg.Geocoder.RequestsPerSecond,
			Logger:            logger,
		})
		geocoderCheck = base
		geocoder, quota = buildGeocoder(ctx, base, store, cfg, logger)
		logger.Info("Geocoder configured",
			zap.String("provider", base.Provider()),
			zap.String("base_url", cfg.Geocoder.BaseURL),
			zap.Bool("cached", store != nil),
		)
	}

	searchSvc := searchuc.New(searchuc.NewRanker(catalog.Places(), nil), geocoder, searchuc.Config{
		Bounds:           bounds,
		MinStrongMatches: cfg.Search.MinStrongMatches,
		NearbyRadiusKm:   cfg.Search.NearbyRadiusKm,
	})

	planner := routeuc.NewPlanner(logger, buildStrategies(cfg.Routing)...)
	logger.Info("Route planner configured", zap.Strings("strategies", planner.Strategies()))

	notifySvc := notifyuc.NewRegistry(time.Duration(cfg.Notify.CooldownSec)*time.Second, nil)

	// Pass nil interface (not typed nil pointer!) if quota is not configured.
	var quotaReader usageuc.QuotaReader
	if quota != nil {
		quotaReader = quota
	}
	usageSvc := usageuc.New(quotaReader)

	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cachePinger, geocoderCheck)

	server := chiTransport.NewServer(searchSvc, planner, notifySvc, usageSvc, healthSvc, logger).
		WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:     cfg.Auth.APIKeys,
		ServiceName: logpkg.ServiceName,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildGeocoder assembles the decorator chain: Nominatim -> Instrumented -> Cached.
// The returned tracker is nil when no quota is configured.
func buildGeocoder(
	ctx context.Context,
	base *nominatim.Geocoder,
	store db.Store,
	cfg config.Config,
	logger *zap.Logger,
) (searchuc.Geocoder, *geocodinguc.QuotaTracker) {
	var quota *geocodinguc.QuotaTracker
	q := cfg.Geocoder.Quota
	if q.DailyLimit > 0 || q.MonthlyLimit > 0 {
		action := geocodinguc.QuotaActionWarn
		if q.Action == "reject" {
			action = geocodinguc.QuotaActionReject
		}
		quota = geocodinguc.NewQuotaTracker(base.Provider(), q.DailyLimit, q.MonthlyLimit, action, logger)
		if store != nil {
			// Loads current counters so restarts keep the budget.
			quota.WithStore(ctx, quotarepo.New(store, 48*time.Hour, 62*24*time.Hour))
		}
	}

	// Go gotcha: (*QuotaTracker)(nil) wrapped in QuotaChecker != nil.
	var checker geocodinguc.QuotaChecker
	if quota != nil {
		checker = quota
	}
	instrumented := geocodinguc.NewInstrumentedGeocoder(base, base.Provider(), checker, logger)

	// Cache sits outside the quota so hits never reach Nominatim or spend budget.
	if store == nil {
		return instrumented, quota
	}
	return geocache.New(instrumented, store, time.Duration(cfg.Cache.TTLSec)*time.Second,
		metrics.GeocoderCacheTotal, logger), quota
}

// buildStrategies returns the OSRM endpoints in declaration order followed by the offline estimate.
func buildStrategies(cfg config.RoutingConfig) []routeuc.Strategy {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	strategies := make([]routeuc.Strategy, 0, len(cfg.Providers)+1)
	for _, p := range cfg.Providers {
		strategies = append(strategies, osrm.NewStrategy(osrm.Config{
			Name:    p.Name,
			BaseURL: p.BaseURL,
			Profile: p.Profile,
			Timeout: timeout,
		}))
	}
	return append(strategies, routeuc.NewEstimate())
}
