package metrics

import "github.com/prometheus/client_golang/prometheus"

// Geocoder Prometheus metrics.
var (
	GeocoderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "geocoder_requests_total",
			Help:      "Total number of remote geocoder requests",
		},
		[]string{"provider", "status"},
	)

	GeocoderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yatra",
			Name:      "geocoder_request_duration_seconds",
			Help:      "Remote geocoder request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	GeocoderResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "geocoder_results_total",
			Help:      "Total places returned by the remote geocoder",
		},
		[]string{"provider"},
	)

	GeocoderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "geocoder_errors_total",
			Help:      "Total remote geocoder errors",
		},
		[]string{"provider", "error_type"},
	)

	GeocoderQuotaRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yatra",
			Name:      "geocoder_quota_requests_remaining",
			Help:      "Remaining geocoder request quota",
		},
		[]string{"provider", "period"},
	)

	GeocoderCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "geocoder_cache_total",
			Help:      "Geocoder cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "search_degraded_total",
			Help:      "Searches that fell back to local-only results",
		},
		[]string{"reason"},
	)
)

var geoMetricsRegistered bool

// RegisterGeocoderMetrics registers Prometheus geocoder metrics. Must be called once from main.
func RegisterGeocoderMetrics() {
	if geoMetricsRegistered {
		return
	}
	prometheus.MustRegister(GeocoderRequestsTotal)
	prometheus.MustRegister(GeocoderRequestDuration)
	prometheus.MustRegister(GeocoderResultsTotal)
	prometheus.MustRegister(GeocoderErrorsTotal)
	prometheus.MustRegister(GeocoderQuotaRemaining)
	prometheus.MustRegister(GeocoderCacheTotal)
	prometheus.MustRegister(SearchDegradedTotal)
	geoMetricsRegistered = true
}
