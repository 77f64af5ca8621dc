package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/catalog"
	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
	"github.com/kailas-cloud/yatra/internal/domain/search/mode"
	"github.com/kailas-cloud/yatra/internal/domain/search/request"
	domusage "github.com/kailas-cloud/yatra/internal/domain/usage"
	"github.com/kailas-cloud/yatra/internal/logger"
	"github.com/kailas-cloud/yatra/internal/metrics"
	healthuc "github.com/kailas-cloud/yatra/internal/usecase/health"
	notifyuc "github.com/kailas-cloud/yatra/internal/usecase/notify"
	routeuc "github.com/kailas-cloud/yatra/internal/usecase/route"
	searchuc "github.com/kailas-cloud/yatra/internal/usecase/search"
	usageuc "github.com/kailas-cloud/yatra/internal/usecase/usage"
)

const maxNotificationIDLength = 128

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the yatra HTTP API.
type Server struct {
	search        *searchuc.Service
	routes        *routeuc.Planner
	notify        *notifyuc.Registry
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler

	defaultLimit int
	maxLimit     int
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	routes *routeuc.Planner,
	notify *notifyuc.Registry,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		routes: routes,
		notify: notify,
		usage:  usage,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, ErrorResponseCodeInvalidCoordinates),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorResponseCodeRateLimited),
		sentinelHandler(domain.ErrGeocoderQuotaExceeded,
			http.StatusPaymentRequired, ErrorResponseCodeGeocoderQuotaExceeded),
		sentinelHandler(domain.ErrGeocoderUnavailable, http.StatusBadGateway, ErrorResponseCodeGeocoderUnavailable),
		sentinelHandler(domain.ErrNoRoute, http.StatusBadGateway, ErrorResponseCodeNoRoute),
		sentinelHandler(domain.ErrRouteProviderError, http.StatusBadGateway, ErrorResponseCodeRouteProviderError),
	}
	return s
}

// WithLimits overrides the result limit applied when a request omits one and the cap on explicit limits.
func (s *Server) WithLimits(defaultLimit, maxLimit int) *Server {
	s.defaultLimit = defaultLimit
	s.maxLimit = maxLimit
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/places/search", s.SearchPlaces)
	r.Get("/places/popular", s.PopularPlaces)
	r.Get("/places/nearby", s.NearbyPlaces)
	r.Get("/places/hubs", s.TransportHubs)
	r.Get("/distance", s.Distance)
	r.Post("/routes", s.PlanRoute)
	r.Post("/sessions/{session}/notifications", s.Notify)
	r.Delete("/sessions/{session}/notifications", s.ResetNotifications)
	r.Get("/usage", s.GetUsage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchPlaces handles GET /places/search.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	var (
		q       *string
		limit   *int
		source  *string
		explain *bool
	)
	if !bindQuery(w, r, "q", false, &q) ||
		!bindQuery(w, r, "limit", false, &limit) ||
		!bindQuery(w, r, "source", false, &source) ||
		!bindQuery(w, r, "explain", false, &explain) {
		return
	}

	req, err := request.New(deref(q), s.limit(limit), mode.Mode(deref(source)))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if deref(explain) {
		scored := s.search.Explain(req.Query(), req.Limit())
		items := make([]PlaceItem, len(scored))
		for i := range scored {
			score := scored[i].Score()
			items[i] = placeToItem(scored[i].Place())
			items[i].Score = &score
		}
		writePlaceList(w, r, PlaceListResponse{Items: items, Total: len(items), Limit: req.Limit()})
		return
	}

	places, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writePlaceList(w, r, placesToResponse(places, req.Limit()))
}

// PopularPlaces handles GET /places/popular.
func (s *Server) PopularPlaces(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if !bindQuery(w, r, "limit", false, &limit) {
		return
	}
	places := s.search.Popular(s.limit(limit))
	writePlaceList(w, r, placesToResponse(places, len(places)))
}

// NearbyPlaces handles GET /places/nearby.
func (s *Server) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	var (
		lat, lng float64
		radiusKm *float64
		limit    *int
	)
	if !bindQuery(w, r, "lat", true, &lat) ||
		!bindQuery(w, r, "lng", true, &lng) ||
		!bindQuery(w, r, "radius_km", false, &radiusKm) ||
		!bindQuery(w, r, "limit", false, &limit) {
		return
	}

	nearby, err := s.search.Nearby(geo.Point{Latitude: lat, Longitude: lng}, deref(radiusKm), s.limit(limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]PlaceItem, len(nearby))
	for i := range nearby {
		d := nearby[i].DistanceKm()
		items[i] = placeToItem(nearby[i].Place())
		items[i].DistanceKm = &d
	}
	writePlaceList(w, r, PlaceListResponse{Items: items, Total: len(items), Limit: len(items)})
}

// TransportHubs handles GET /places/hubs. With lat and lng the hubs are ordered by distance.
func (s *Server) TransportHubs(w http.ResponseWriter, r *http.Request) {
	var (
		lat, lng *float64
		limit    *int
	)
	if !bindQuery(w, r, "lat", false, &lat) ||
		!bindQuery(w, r, "lng", false, &lng) ||
		!bindQuery(w, r, "limit", false, &limit) {
		return
	}

	if lat == nil && lng == nil {
		hubs := s.search.Hubs(s.limit(limit))
		writePlaceList(w, r, placesToResponse(hubs, len(hubs)))
		return
	}
	if lat == nil || lng == nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: lat and lng must be given together", domain.ErrInvalidCoordinates))
		return
	}

	nearest, err := s.search.NearestHubs(geo.Point{Latitude: *lat, Longitude: *lng}, s.limit(limit))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := make([]PlaceItem, len(nearest))
	for i := range nearest {
		d := nearest[i].DistanceKm()
		items[i] = placeToItem(nearest[i].Place())
		items[i].DistanceKm = &d
	}
	writePlaceList(w, r, PlaceListResponse{Items: items, Total: len(items), Limit: len(items)})
}

// Distance handles GET /distance.
func (s *Server) Distance(w http.ResponseWriter, r *http.Request) {
	var from, to Point
	if !bindQuery(w, r, "from_lat", true, &from.Lat) ||
		!bindQuery(w, r, "from_lng", true, &from.Lng) ||
		!bindQuery(w, r, "to_lat", true, &to.Lat) ||
		!bindQuery(w, r, "to_lng", true, &to.Lng) {
		return
	}

	km, err := s.search.Distance(pointFromAPI(from), pointFromAPI(to))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DistanceResponse{From: from, To: to, DistanceKm: km, DistanceM: km * 1000})
}

// PlanRoute handles POST /routes.
func (s *Server) PlanRoute(w http.ResponseWriter, r *http.Request) {
	var body RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.From == nil || body.To == nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "from and to are required")
		return
	}

	req, err := domroute.NewRequest(pointFromAPI(*body.From), pointFromAPI(*body.To), domroute.Profile(body.Profile))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	plan, err := s.routes.Plan(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, planToResponse(&plan))
}

// Notify handles POST /sessions/{session}/notifications.
func (s *Server) Notify(w http.ResponseWriter, r *http.Request) {
	session, ok := bindSession(w, r)
	if !ok {
		return
	}

	var body NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.ID == "" || len(body.ID) > maxNotificationIDLength {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
			fmt.Sprintf("id must be between 1 and %d bytes", maxNotificationIDLength))
		return
	}

	delivered := s.notify.Allow(session, body.ID)
	if !delivered {
		logger.FromContext(r.Context()).Debug("Notification suppressed",
			zap.String("session", session),
			zap.String("notification_id", body.ID),
		)
	}

	writeJSON(w, http.StatusOK, NotificationResponse{Session: session, ID: body.ID, Delivered: delivered})
}

// ResetNotifications handles DELETE /sessions/{session}/notifications.
func (s *Server) ResetNotifications(w http.ResponseWriter, r *http.Request) {
	session, ok := bindSession(w, r)
	if !ok {
		return
	}
	s.notify.Drop(session)
	w.WriteHeader(http.StatusNoContent)
}

// GetUsage handles GET /usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	var raw *string
	if !bindQuery(w, r, "period", false, &raw) {
		return
	}
	period, err := domusage.ParsePeriod(deref(raw))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	report := s.usage.GetReport(r.Context(), period)
	q := report.Quota()

	resp := UsageResponse{
		Period:   string(report.Period()),
		Provider: report.Provider(),
		Quota: QuotaStatus{
			RequestsLimit:     q.Limit(),
			RequestsUsed:      q.Used(),
			RequestsRemaining: q.Remaining(),
			IsExhausted:       q.IsExhausted(),
		},
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}
	if q.ResetsAt() > 0 && !q.Unlimited() {
		resetsAt := time.UnixMilli(q.ResetsAt()).UTC()
		resp.Quota.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// bindQuery binds a form-style query parameter, writing a 400 on failure.
// Optional parameters bind into a pointer, so dest is **T for them and *T for required ones.
func bindQuery(w http.ResponseWriter, r *http.Request, name string, required bool, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, required, name, r.URL.Query(), dest); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest,
			fmt.Sprintf("Invalid query parameter %s", name))
		return false
	}
	return true
}

// limit resolves an optional limit parameter. Zero is left for the domain default.
func (s *Server) limit(p *int) int {
	v := deref(p)
	if v <= 0 {
		v = s.defaultLimit
	}
	if s.maxLimit > 0 && v > s.maxLimit {
		v = s.maxLimit
	}
	return v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func bindSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	var session string
	err := runtime.BindStyledParameterWithOptions("simple", "session", chirouter.URLParam(r, "session"), &session,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || session == "" {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid path parameter session")
		return "", false
	}
	return session, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrInvalidCoordinates,
		domain.ErrRateLimited,
		domain.ErrGeocoderQuotaExceeded,
		domain.ErrGeocoderUnavailable,
		domain.ErrNoRoute,
		domain.ErrRouteProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", chimiddleware.GetReqID(r.Context())))
	log.Warn("Domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("Internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func placeToItem(p place.Place) PlaceItem {
	item := PlaceItem{
		Name:     p.Name(),
		Lat:      p.Point().Latitude,
		Lng:      p.Point().Longitude,
		Category: string(p.Category()),
		Source:   string(p.Provenance()),
	}
	if p.Provenance() == place.Local {
		item.District = catalog.District(p.Name())
	}
	return item
}

// writePlaceList writes a place list and records its size.
func writePlaceList(w http.ResponseWriter, r *http.Request, resp PlaceListResponse) {
	metrics.ObservePlaces(r, len(resp.Items))
	writeJSON(w, http.StatusOK, resp)
}

func placesToResponse(places []place.Place, limit int) PlaceListResponse {
	items := make([]PlaceItem, len(places))
	for i, p := range places {
		items[i] = placeToItem(p)
	}
	return PlaceListResponse{Items: items, Total: len(items), Limit: limit}
}

func planToResponse(p *domroute.Plan) RouteResponse {
	geometry := make([]Point, len(p.Geometry))
	for i, g := range p.Geometry {
		geometry[i] = Point{Lat: g.Latitude, Lng: g.Longitude}
	}
	return RouteResponse{
		ID:          p.ID,
		Strategy:    p.Strategy,
		Profile:     string(p.Profile),
		DistanceKm:  p.DistanceKm,
		DurationSec: p.DurationSeconds(),
		Geometry:    geometry,
		Estimated:   p.Estimated,
	}
}

func pointFromAPI(p Point) geo.Point {
	return geo.Point{Latitude: p.Lat, Longitude: p.Lng}
}
