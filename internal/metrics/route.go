package metrics

import "github.com/prometheus/client_golang/prometheus"

// Routing and notification Prometheus metrics.
var (
	RouteAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "route_attempts_total",
			Help:      "Route strategy attempts by outcome",
		},
		[]string{"strategy", "outcome"}, // "success" / "error"
	)

	RouteAttemptDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yatra",
			Name:      "route_attempt_duration_seconds",
			Help:      "Route strategy attempt duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"strategy"},
	)

	RouteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "route_failures_total",
			Help:      "Route requests where every strategy failed",
		},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "notifications_total",
			Help:      "Notification delivery decisions",
		},
		[]string{"outcome"}, // "delivered" / "suppressed"
	)
)

var routeMetricsRegistered bool

// RegisterRouteMetrics registers routing and notification metrics. Must be called once from main.
func RegisterRouteMetrics() {
	if routeMetricsRegistered {
		return
	}
	prometheus.MustRegister(RouteAttemptsTotal)
	prometheus.MustRegister(RouteAttemptDuration)
	prometheus.MustRegister(RouteFailuresTotal)
	prometheus.MustRegister(NotificationsTotal)
	routeMetricsRegistered = true
}
