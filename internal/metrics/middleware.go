package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Route groups used as a low-cardinality label. Anything else is "other".
const (
	GroupPlaces   = "places"
	GroupRouting  = "routing"
	GroupSessions = "sessions"
	GroupOps      = "ops"
	GroupOther    = "other"
)

var groupBySegment = map[string]string{
	"places":   GroupPlaces,
	"distance": GroupRouting,
	"routes":   GroupRouting,
	"sessions": GroupSessions,
	"usage":    GroupOps,
	"health":   GroupOps,
	"metrics":  GroupOps,
}

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yatra",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"group", "method", "route", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yatra",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"group", "method", "route", "status"},
	)

	httpInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "yatra",
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served",
		},
		[]string{"group"},
	)

	// PlacesReturned observes how many places a list endpoint answered with.
	PlacesReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yatra",
			Name:      "http_places_returned",
			Help:      "Number of places in list responses",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 50},
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal, httpInFlight, PlacesReturned)
}

// Middleware records HTTP request duration, count and in-flight requests per route group.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// The route pattern is only known after routing, so in-flight uses the raw path.
			inFlight := httpInFlight.WithLabelValues(routeGroup(r.URL.Path))
			inFlight.Inc()
			defer inFlight.Dec()

			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			route := normalizePath(chi.RouteContext(r.Context()).RoutePattern())
			group := routeGroup(route)
			status := strconv.Itoa(ww.status)

			httpRequestDuration.WithLabelValues(group, r.Method, route, status).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(group, r.Method, route, status).Inc()
		})
	}
}

// ObservePlaces records the size of a place list served on r's route.
func ObservePlaces(r *http.Request, n int) {
	route := "unknown"
	if rc := chi.RouteContext(r.Context()); rc != nil {
		route = normalizePath(rc.RoutePattern())
	}
	PlacesReturned.WithLabelValues(route).Observe(float64(n))
}

// normalizePath keeps unmatched requests under one label.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}

// routeGroup maps a path or route pattern to its API group by first segment.
func routeGroup(path string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if g, ok := groupBySegment[seg]; ok {
		return g
	}
	return GroupOther
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b) //nolint:wrapcheck // delegating to underlying ResponseWriter
}
