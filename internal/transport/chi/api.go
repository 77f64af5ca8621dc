package chi

import "time"

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorResponseCodeBadRequest            ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized          ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed      ErrorResponseCode = "validation_failed"
	ErrorResponseCodeInvalidCoordinates    ErrorResponseCode = "invalid_coordinates"
	ErrorResponseCodeRateLimited           ErrorResponseCode = "rate_limited"
	ErrorResponseCodeGeocoderQuotaExceeded ErrorResponseCode = "geocoder_quota_exceeded"
	ErrorResponseCodeGeocoderUnavailable   ErrorResponseCode = "geocoder_unavailable"
	ErrorResponseCodeNoRoute               ErrorResponseCode = "no_route"
	ErrorResponseCodeRouteProviderError    ErrorResponseCode = "route_provider_error"
	ErrorResponseCodeInternalError         ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// Point is a WGS-84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceItem is one place in a list response.
type PlaceItem struct {
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Category   string   `json:"category"`
	Source     string   `json:"source"`
	District   string   `json:"district,omitempty"`
	Score      *int     `json:"score,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// PlaceListResponse wraps place lists.
type PlaceListResponse struct {
	Items []PlaceItem `json:"items"`
	Total int         `json:"total"`
	Limit int         `json:"limit"`
}

// DistanceResponse is the GET /distance body.
type DistanceResponse struct {
	From       Point   `json:"from"`
	To         Point   `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	DistanceM  float64 `json:"distance_m"`
}

// RouteRequest is the POST /routes body.
type RouteRequest struct {
	From    *Point `json:"from"`
	To      *Point `json:"to"`
	Profile string `json:"profile,omitempty"`
}

// RouteResponse is a planned route.
type RouteResponse struct {
	ID          string  `json:"id"`
	Strategy    string  `json:"strategy"`
	Profile     string  `json:"profile"`
	DistanceKm  float64 `json:"distance_km"`
	DurationSec int64   `json:"duration_sec"`
	Geometry    []Point `json:"geometry"`
	Estimated   bool    `json:"estimated"`
}

// NotificationRequest is the POST /sessions/{session}/notifications body.
type NotificationRequest struct {
	ID string `json:"id"`
}

// NotificationResponse reports whether a notification should be shown.
type NotificationResponse struct {
	Session   string `json:"session"`
	ID        string `json:"id"`
	Delivered bool   `json:"delivered"`
}

// QuotaStatus is the geocoder quota state.
type QuotaStatus struct {
	RequestsLimit     int64      `json:"requests_limit"`
	RequestsUsed      int64      `json:"requests_used"`
	RequestsRemaining int64      `json:"requests_remaining"`
	IsExhausted       bool       `json:"is_exhausted"`
	ResetsAt          *time.Time `json:"resets_at,omitempty"`
}

// UsageResponse is the GET /usage body.
type UsageResponse struct {
	Period        string      `json:"period"`
	Provider      string      `json:"provider,omitempty"`
	PeriodStartAt *time.Time  `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time  `json:"period_end_at,omitempty"`
	Quota         QuotaStatus `json:"quota"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
