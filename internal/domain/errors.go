package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidCoordinates signals latitude/longitude outside WGS-84 ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrGeocoderUnavailable signals a geocoding provider failure.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
	// ErrGeocoderQuotaExceeded signals an exhausted geocoder request budget.
	ErrGeocoderQuotaExceeded = errors.New("geocoder quota exceeded")
	// ErrRouteProviderError signals a routing provider failure.
	ErrRouteProviderError = errors.New("route provider error")
	// ErrNoRoute signals that no routing strategy produced a plan.
	ErrNoRoute = errors.New("no route found")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// RouteAttemptError records which strategy failed while planning a route.
type RouteAttemptError struct {
	Strategy string
	Err      error
}

func (e *RouteAttemptError) Error() string {
	return fmt.Sprintf("strategy %s: %s", e.Strategy, e.Err.Error())
}

func (e *RouteAttemptError) Unwrap() error { return e.Err }

// NewRouteAttemptError wraps a strategy failure.
func NewRouteAttemptError(strategy string, err error) error {
	return &RouteAttemptError{Strategy: strategy, Err: err}
}
