package yatra

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// NominatimConfig configures the built-in OpenStreetMap Nominatim geocoder.
type NominatimConfig struct {
	BaseURL   string // default https://nominatim.openstreetmap.org
	UserAgent string // required by the Nominatim usage policy
	Email     string
	// CountryCodes restricts results (ISO 3166-1 alpha-2). Default: in.
	CountryCodes      []string
	Timeout           time.Duration
	RequestsPerSecond float64 // default 1
}

type osrmEndpoint struct {
	baseURL string
	profile string
}

type clientConfig struct {
	driver   string // "valkey" or "redis"; empty means no cache
	addrs    []string
	password string
	cacheTTL time.Duration

	nominatim     *NominatimConfig
	geocoder      Geocoder
	dailyQuota    int64
	monthlyQuota  int64
	rejectOnQuota bool

	osrm    []osrmEndpoint
	routers []Router

	bounds           *Bounds
	minStrongMatches int
	nearbyRadiusKm   float64
	cooldown         time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey caches geocoder answers and quota counters in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches geocoder answers and quota counters in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets the geocode cache entry lifetime. Default: 24h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithNominatim enables remote geocoding through Nominatim.
func WithNominatim(cfg NominatimConfig) Option {
	return optionFunc(func(c *clientConfig) {
		c.nominatim = &cfg
	})
}

// WithGeocoder sets a custom remote geocoder. It takes precedence over WithNominatim.
func WithGeocoder(g Geocoder) Option {
	return optionFunc(func(c *clientConfig) {
		c.geocoder = g
	})
}

// WithGeocoderQuota caps upstream geocoder requests per UTC day and month.
// A limit of 0 means unlimited. With reject=false exhaustion is only logged.
func WithGeocoderQuota(daily, monthly int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyQuota = daily
		c.monthlyQuota = monthly
		c.rejectOnQuota = reject
	})
}

// WithOSRM adds an OSRM endpoint to the route strategy chain.
// Endpoints are tried in the order given, before custom routers and the estimate.
func WithOSRM(baseURL, profile string) Option {
	return optionFunc(func(c *clientConfig) {
		c.osrm = append(c.osrm, osrmEndpoint{baseURL: baseURL, profile: profile})
	})
}

// WithRouter adds a custom route strategy after the OSRM endpoints.
func WithRouter(r Router) Option {
	return optionFunc(func(c *clientConfig) {
		c.routers = append(c.routers, r)
	})
}

// WithBounds overrides the geofence applied to search results.
// Defaults to the Madhya Pradesh rectangle. New rejects inverted or out-of-range bounds.
func WithBounds(b Bounds) Option {
	return optionFunc(func(c *clientConfig) {
		c.bounds = &b
	})
}

// WithMinStrongMatches sets how many strong local matches suppress the geocoder. Default: 3.
func WithMinStrongMatches(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.minStrongMatches = n
	})
}

// WithNearbyRadius sets the default Nearby radius in kilometers. Default: 5.
func WithNearbyRadius(km float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.nearbyRadiusKm = km
	})
}

// WithNotificationCooldown sets how long a delivered notification id stays suppressed.
// Default: 30s.
func WithNotificationCooldown(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cooldown = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
