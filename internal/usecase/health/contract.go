package health

import "context"

// CachePinger checks shared cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// GeocoderChecker checks remote geocoder availability.
type GeocoderChecker interface {
	HealthCheck(ctx context.Context) error
}
