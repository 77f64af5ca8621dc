// Package osrm implements a route strategy backed by an OSRM HTTP endpoint.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

const (
	// DefaultProfile is the OSRM routing profile used when none is configured.
	DefaultProfile = "foot"

	defaultTimeout = 5 * time.Second
	maxErrorBody   = 512
	okCode         = "Ok"
)

// Config holds one OSRM endpoint.
type Config struct {
	Name    string
	BaseURL string
	// Profile is the OSRM profile segment (driving, foot, bike).
	Profile string
	Timeout time.Duration
	// Transport overrides the base round tripper (tests).
	Transport http.RoundTripper
}

// Strategy asks an OSRM server for a road route.
type Strategy struct {
	client  *http.Client
	name    string
	baseURL string
	profile string
}

// NewStrategy creates an OSRM route strategy.
func NewStrategy(cfg Config) *Strategy {
	profile := cfg.Profile
	if profile == "" {
		profile = DefaultProfile
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	name := cfg.Name
	if name == "" {
		name = profile
	}
	return &Strategy{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		name:    "osrm-" + name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: profile,
	}
}

// Name implements route.Strategy.
func (s *Strategy) Name() string { return s.name }

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Attempt implements route.Strategy.
func (s *Strategy) Attempt(ctx context.Context, req domroute.Request) (domroute.Plan, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.routeURL(req.From(), req.To()), nil)
	if err != nil {
		return domroute.Plan{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return domroute.Plan{}, fmt.Errorf("osrm request failed: %v: %w", err, domain.ErrRouteProviderError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domroute.Plan{}, fmt.Errorf("osrm API error %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrRouteProviderError)
	}

	var parsed routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domroute.Plan{}, fmt.Errorf("decode osrm response: %v: %w", err, domain.ErrRouteProviderError)
	}
	if parsed.Code != okCode {
		return domroute.Plan{}, fmt.Errorf("osrm code %s: %s: %w", parsed.Code, parsed.Message, domain.ErrRouteProviderError)
	}
	if len(parsed.Routes) == 0 {
		return domroute.Plan{}, fmt.Errorf("osrm returned no routes: %w", domain.ErrRouteProviderError)
	}

	r := parsed.Routes[0]
	geometry := make([]geo.Point, 0, len(r.Geometry.Coordinates))
	for _, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		geometry = append(geometry, geo.Point{Latitude: c[1], Longitude: c[0]})
	}

	return domroute.Plan{
		DistanceKm: r.Distance / 1000,
		Duration:   time.Duration(r.Duration * float64(time.Second)),
		Geometry:   geometry,
	}, nil
}

func (s *Strategy) routeURL(from, to geo.Point) string {
	return fmt.Sprintf("%s/route/v1/%s/%s;%s?overview=full&geometries=geojson",
		s.baseURL, s.profile, lngLat(from), lngLat(to))
}

func lngLat(p geo.Point) string {
	return strconv.FormatFloat(p.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Latitude, 'f', -1, 64)
}
