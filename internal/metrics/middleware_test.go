package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/places/search", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	req := httptest.NewRequest("GET", "/places/search?q=ujjain", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	requestsVal := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(GroupPlaces, "GET", "/places/search", "200"))
	if requestsVal < 1 {
		t.Errorf("expected http_requests_total >= 1, got %f", requestsVal)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/sessions/{session}/notifications", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, session := range []string{"a", "b", "c"} {
		req := httptest.NewRequest("POST", "/sessions/"+session+"/notifications", http.NoBody)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(GroupSessions, "POST", "/sessions/{session}/notifications", "202"))
	if val != 3 {
		t.Errorf("expected 3 requests under the route pattern, got %f", val)
	}
}

func TestMiddleware_DifferentStatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/distance", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("from_lat") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("{}"))
	})
	r.Post("/routes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	tests := []struct {
		method         string
		target         string
		pattern        string
		expectedStatus string
	}{
		{"GET", "/distance?from_lat=1", "/distance", "200"},
		{"GET", "/distance", "/distance", "400"},
		{"POST", "/routes", "/routes", "502"},
	}

	for _, tc := range tests {
		t.Run(tc.target, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(GroupRouting, tc.method, tc.pattern, tc.expectedStatus))
			if val < 1 {
				t.Errorf("expected requests_total for %s with status %s >= 1, got %f", tc.pattern, tc.expectedStatus, val)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/places/nearby", "/places/nearby"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRouteGroup(t *testing.T) {
	tests := map[string]string{
		"/places/search":                    GroupPlaces,
		"/places/hubs":                      GroupPlaces,
		"/distance":                         GroupRouting,
		"/routes":                           GroupRouting,
		"/sessions/{session}/notifications": GroupSessions,
		"/sessions/abc/notifications":       GroupSessions,
		"/health":                           GroupOps,
		"/usage":                            GroupOps,
		"unknown":                           GroupOther,
		"/wp-admin/setup.php":               GroupOther,
	}
	for path, want := range tests {
		if got := routeGroup(path); got != want {
			t.Errorf("routeGroup(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	var during float64
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpInFlight.WithLabelValues(GroupOps))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", http.NoBody))

	if during != 1 {
		t.Errorf("in-flight during request = %f, want 1", during)
	}
	if got := testutil.ToFloat64(httpInFlight.WithLabelValues(GroupOps)); got != 0 {
		t.Errorf("in-flight after request = %f, want 0", got)
	}
}

func TestObservePlaces(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/places/popular", func(w http.ResponseWriter, r *http.Request) {
		ObservePlaces(r, 7)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/places/popular", http.NoBody))

	if testutil.CollectAndCount(PlacesReturned, "yatra_http_places_returned") == 0 {
		t.Error("expected an observation under yatra_http_places_returned")
	}

	// Outside a chi router the route is unknown but the call must not panic.
	ObservePlaces(httptest.NewRequest("GET", "/x", http.NoBody), 0)
}

func TestRegisterFunctions_Idempotent(t *testing.T) {
	RegisterGeocoderMetrics()
	RegisterGeocoderMetrics()
	RegisterRouteMetrics()
	RegisterRouteMetrics()

	RouteAttemptsTotal.WithLabelValues("estimate", "success").Inc()
	if got := testutil.ToFloat64(RouteAttemptsTotal.WithLabelValues("estimate", "success")); got < 1 {
		t.Errorf("expected route_attempts_total >= 1, got %f", got)
	}
}
