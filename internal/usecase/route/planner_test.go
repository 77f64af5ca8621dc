package route

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

// --- Mocks ---

type mockStrategy struct {
	name   string
	plan   domroute.Plan
	err    error
	calls  int
	cancel context.CancelFunc
}

func (m *mockStrategy) Name() string { return m.name }

func (m *mockStrategy) Attempt(_ context.Context, _ domroute.Request) (domroute.Plan, error) {
	m.calls++
	if m.cancel != nil {
		m.cancel()
	}
	return m.plan, m.err
}

func ujjainRequest(t *testing.T, profile domroute.Profile) domroute.Request {
	t.Helper()
	req, err := domroute.NewRequest(
		geo.Point{Latitude: 23.1765, Longitude: 75.7885},
		geo.Point{Latitude: 23.1828, Longitude: 75.7681},
		profile,
	)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return req
}

// --- Tests ---

func TestPlanner_FirstSuccessWins(t *testing.T) {
	first := &mockStrategy{name: "osrm-primary", plan: domroute.Plan{DistanceKm: 2.4, Duration: 5 * time.Minute}}
	second := &mockStrategy{name: "osrm-backup"}
	p := NewPlanner(zap.NewNop(), first, second)

	plan, err := p.Plan(context.Background(), ujjainRequest(t, domroute.Fastest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Strategy != "osrm-primary" {
		t.Errorf("Strategy = %q", plan.Strategy)
	}
	if plan.Profile != domroute.Fastest {
		t.Errorf("Profile = %q", plan.Profile)
	}
	if plan.ID == "" {
		t.Error("expected generated plan id")
	}
	if second.calls != 0 {
		t.Error("later strategies should not run after a success")
	}
}

func TestPlanner_FallsThroughToEstimate(t *testing.T) {
	failing := &mockStrategy{name: "osrm-primary", err: domain.ErrRouteProviderError}
	p := NewPlanner(zap.NewNop(), failing, NewEstimate())

	plan, err := p.Plan(context.Background(), ujjainRequest(t, domroute.Optimal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failing.calls != 1 {
		t.Errorf("failing strategy calls = %d", failing.calls)
	}
	if plan.Strategy != EstimateName || !plan.Estimated {
		t.Errorf("expected estimate plan, got %+v", plan)
	}
}

func TestPlanner_AllFail(t *testing.T) {
	a := &mockStrategy{name: "a", err: errors.New("timeout")}
	b := &mockStrategy{name: "b", err: domain.ErrRouteProviderError}
	p := NewPlanner(zap.NewNop(), a, b)

	_, err := p.Plan(context.Background(), ujjainRequest(t, domroute.Optimal))
	if !errors.Is(err, domain.ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
	if !errors.Is(err, domain.ErrRouteProviderError) {
		t.Error("expected attempt errors to be joined")
	}

	var attempt *domain.RouteAttemptError
	if !errors.As(err, &attempt) {
		t.Fatal("expected RouteAttemptError in chain")
	}
	if attempt.Strategy != "a" {
		t.Errorf("first attempt strategy = %q, want a", attempt.Strategy)
	}
}

func TestPlanner_NoStrategies(t *testing.T) {
	p := NewPlanner(zap.NewNop())
	_, err := p.Plan(context.Background(), ujjainRequest(t, domroute.Optimal))
	if !errors.Is(err, domain.ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestPlanner_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &mockStrategy{name: "a", err: errors.New("fail"), cancel: cancel}
	b := &mockStrategy{name: "b"}
	p := NewPlanner(zap.NewNop(), a, b)

	_, err := p.Plan(ctx, ujjainRequest(t, domroute.Optimal))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if b.calls != 0 {
		t.Error("no strategy should run after cancellation")
	}
}

func TestPlanner_KeepsStrategyPlanID(t *testing.T) {
	s := &mockStrategy{name: "osrm", plan: domroute.Plan{ID: "fixed"}}
	plan, err := NewPlanner(zap.NewNop(), s).Plan(context.Background(), ujjainRequest(t, domroute.Safest))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.ID != "fixed" {
		t.Errorf("ID = %q, want fixed", plan.ID)
	}
}

func TestPlanner_Strategies(t *testing.T) {
	p := NewPlanner(zap.NewNop(), &mockStrategy{name: "osrm"}, NewEstimate())
	got := p.Strategies()
	if len(got) != 2 || got[0] != "osrm" || got[1] != EstimateName {
		t.Errorf("Strategies() = %v", got)
	}
}
