package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/metrics"
)

const (
	// DefaultBaseURL is the public OSM Nominatim instance.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultRequestsPerSecond follows the public instance usage policy.
	DefaultRequestsPerSecond = 1.0

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Geocoder is a remote geocoding provider backed by the Nominatim JSON API.
type Geocoder struct {
	client       *http.Client
	baseURL      string
	userAgent    string
	email        string
	countryCodes string
	provider     string
	limiter      *rate.Limiter
	logger       *zap.Logger
}

// Config holds the Nominatim provider settings.
type Config struct {
	BaseURL           string
	UserAgent         string
	Email             string
	CountryCodes      []string
	Timeout           time.Duration
	RequestsPerSecond float64
	Provider          string
	Logger            *zap.Logger
	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// NewGeocoder creates a Nominatim geocoder.
func NewGeocoder(cfg *Config) *Geocoder {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "nominatim"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Geocoder{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		baseURL:      baseURL,
		userAgent:    cfg.UserAgent,
		email:        cfg.Email,
		countryCodes: strings.ToLower(strings.Join(cfg.CountryCodes, ",")),
		provider:     provider,
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		logger:       logger,
	}
}

// Provider returns the provider label used in metrics.
func (g *Geocoder) Provider() string { return g.provider }

// Geocode implements search.Geocoder. Results are biased to bounds and carry remote provenance.
func (g *Geocoder) Geocode(ctx context.Context, query string, bounds geo.Bounds, limit int) ([]place.Place, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		g.fail("rate_limited")
		return nil, fmt.Errorf("nominatim: %w", errors.Join(domain.ErrRateLimited, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.searchURL(query, bounds, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	g.setHeaders(req)

	start := time.Now()
	resp, err := g.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		g.fail("transport")
		return nil, fmt.Errorf("nominatim request failed: %v: %w", err, domain.ErrGeocoderUnavailable)
	}
	defer resp.Body.Close()

	metrics.GeocoderRequestDuration.WithLabelValues(g.provider).Observe(duration.Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			g.fail("rate_limited")
			return nil, fmt.Errorf("nominatim API error %d: %w",
				resp.StatusCode, errors.Join(domain.ErrRateLimited, domain.ErrGeocoderUnavailable))
		}
		g.fail("api_error")
		return nil, fmt.Errorf("nominatim API error %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrGeocoderUnavailable)
	}

	var raw []apiPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		g.fail("decode")
		return nil, fmt.Errorf("decode nominatim response: %v: %w", err, domain.ErrGeocoderUnavailable)
	}

	places := make([]place.Place, 0, len(raw))
	for _, r := range raw {
		p, ok := r.toPlace()
		if !ok {
			g.logger.Debug("Skipping unparseable geocoder result",
				zap.String("provider", g.provider),
				zap.String("display_name", r.DisplayName),
			)
			continue
		}
		places = append(places, p)
	}

	metrics.GeocoderRequestsTotal.WithLabelValues(g.provider, "success").Inc()
	metrics.GeocoderResultsTotal.WithLabelValues(g.provider).Add(float64(len(places)))

	return places, nil
}

// HealthCheck verifies API availability via the /status endpoint (not rate limited upstream).
func (g *Geocoder) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/status?format=json", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim status: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim status %d: %w", resp.StatusCode, domain.ErrGeocoderUnavailable)
	}
	return nil
}

func (g *Geocoder) searchURL(query string, bounds geo.Bounds, limit int) string {
	v := url.Values{}
	v.Set("format", "jsonv2")
	v.Set("q", query)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if !bounds.IsZero() {
		v.Set("viewbox", bounds.Viewbox())
		v.Set("bounded", "1")
	}
	if g.countryCodes != "" {
		v.Set("countrycodes", g.countryCodes)
	}
	if g.email != "" {
		v.Set("email", g.email)
	}
	return g.baseURL + "/search?" + v.Encode()
}

func (g *Geocoder) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}
}

func (g *Geocoder) fail(errorType string) {
	metrics.GeocoderRequestsTotal.WithLabelValues(g.provider, "error").Inc()
	metrics.GeocoderErrorsTotal.WithLabelValues(g.provider, errorType).Inc()
}
