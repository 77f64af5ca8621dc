package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the yatra API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Cache    CacheConfig    `yaml:"cache"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Routing  RoutingConfig  `yaml:"routing"`
	Search   SearchConfig   `yaml:"search"`
	Notify   NotifyConfig   `yaml:"notify"`
	Auth     AuthConfig     `yaml:"auth"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CacheConfig holds the shared KV store settings.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey, none (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	TTLSec           int      `yaml:"ttl_sec"` // geocode cache entry lifetime
}

// Enabled reports whether a KV store should be connected.
func (c CacheConfig) Enabled() bool { return c.Driver != "none" }

// GeocoderConfig holds remote geocoder settings.
type GeocoderConfig struct {
	Enabled           bool        `yaml:"enabled"`
	BaseURL           string      `yaml:"base_url"`
	UserAgent         string      `yaml:"user_agent"`
	Email             string      `yaml:"email"`
	CountryCodes      []string    `yaml:"country_codes"`
	TimeoutSec        int         `yaml:"timeout_sec"`
	RequestsPerSecond float64     `yaml:"requests_per_second"`
	Quota             QuotaConfig `yaml:"quota"`
}

// QuotaConfig holds geocoder request caps.
type QuotaConfig struct {
	DailyLimit   int64  `yaml:"daily_limit"`   // 0 = unlimited
	MonthlyLimit int64  `yaml:"monthly_limit"` // 0 = unlimited
	Action       string `yaml:"action"`        // "reject" | "warn" (default)
}

// RoutingConfig holds route planner settings.
type RoutingConfig struct {
	Providers  []RouteProviderConfig `yaml:"providers"`
	TimeoutSec int                   `yaml:"timeout_sec"`
}

// RouteProviderConfig is one OSRM endpoint, tried in declaration order.
type RouteProviderConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	Profile string `yaml:"profile"` // OSRM profile: driving, foot, bike
}

// SearchConfig holds ranking and geofence settings.
type SearchConfig struct {
	Bounds           BoundsConfig `yaml:"bounds"`
	MinStrongMatches int          `yaml:"min_strong_matches"`
	DefaultLimit     int          `yaml:"default_limit"`
	MaxLimit         int          `yaml:"max_limit"`
	NearbyRadiusKm   float64      `yaml:"nearby_radius_km"`
}

// BoundsConfig is the geofence rectangle in degrees.
type BoundsConfig struct {
	North float64 `yaml:"north"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	West  float64 `yaml:"west"`
}

// IsZero reports whether no bounds were configured.
func (b BoundsConfig) IsZero() bool { return b == BoundsConfig{} }

// NotifyConfig holds notification de-duplication settings.
type NotifyConfig struct {
	CooldownSec int `yaml:"cooldown_sec"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Endpoint     string  `yaml:"endpoint"`
	Insecure     bool    `yaml:"insecure"`
	SamplingRate float64 `yaml:"sampling_rate"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML with env substitution, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "redis"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 86400
	}
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = "yatra/1.0"
	}
	if len(c.Geocoder.CountryCodes) == 0 {
		c.Geocoder.CountryCodes = []string{"in"}
	}
	if c.Geocoder.TimeoutSec <= 0 {
		c.Geocoder.TimeoutSec = 10
	}
	if c.Geocoder.RequestsPerSecond <= 0 {
		c.Geocoder.RequestsPerSecond = 1
	}
	if c.Geocoder.Quota.Action == "" {
		c.Geocoder.Quota.Action = "warn"
	}
	if c.Routing.TimeoutSec <= 0 {
		c.Routing.TimeoutSec = 5
	}
	if c.Search.Bounds.IsZero() {
		c.Search.Bounds = BoundsConfig{North: 26.9, South: 21.0, East: 82.9, West: 74.0}
	}
	if c.Search.MinStrongMatches <= 0 {
		c.Search.MinStrongMatches = 3
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 10
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 50
	}
	if c.Search.NearbyRadiusKm <= 0 {
		c.Search.NearbyRadiusKm = 5
	}
	if c.Notify.CooldownSec <= 0 {
		c.Notify.CooldownSec = 30
	}
	if c.Tracing.SamplingRate <= 0 {
		c.Tracing.SamplingRate = 1
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case "redis", "valkey":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
	case "none":
	default:
		return fmt.Errorf("cache.driver must be \"redis\", \"valkey\" or \"none\", got %q", c.Cache.Driver)
	}
	switch c.Geocoder.Quota.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf("geocoder.quota.action must be \"warn\" or \"reject\", got %q", c.Geocoder.Quota.Action)
	}
	b := c.Search.Bounds
	if b.South >= b.North || b.West >= b.East {
		return fmt.Errorf("search.bounds must have south < north and west < east")
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit %d exceeds search.max_limit %d", c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	seen := make(map[string]bool, len(c.Routing.Providers))
	for i, p := range c.Routing.Providers {
		if p.BaseURL == "" {
			return fmt.Errorf("routing.providers[%d].base_url is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("routing.providers[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}
	if c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("tracing.sampling_rate must be within (0, 1], got %g", c.Tracing.SamplingRate)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
