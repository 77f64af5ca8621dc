package yatra

import "github.com/kailas-cloud/yatra/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery          = domain.ErrInvalidQuery
	ErrInvalidCoordinates    = domain.ErrInvalidCoordinates
	ErrGeocoderUnavailable   = domain.ErrGeocoderUnavailable
	ErrGeocoderQuotaExceeded = domain.ErrGeocoderQuotaExceeded
	ErrRateLimited           = domain.ErrRateLimited
	ErrNoRoute               = domain.ErrNoRoute
	ErrRouteProviderError    = domain.ErrRouteProviderError
)
