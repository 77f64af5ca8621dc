package route

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/yatra/internal/domain/geo"
	domroute "github.com/kailas-cloud/yatra/internal/domain/route"
)

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestEstimate_Profiles(t *testing.T) {
	from := geo.Point{Latitude: 23.1765, Longitude: 75.7885}
	to := geo.Point{Latitude: 23.1828, Longitude: 75.7681}
	base := geo.DistanceKm(from, to)

	tests := []struct {
		profile      domroute.Profile
		detour       float64
		minutesPerKm float64
		waypoints    int
	}{
		{domroute.Optimal, 1.1, 12, 3},
		{domroute.Fastest, 0.95, 8, 2},
		{domroute.Safest, 1.3, 10, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.profile), func(t *testing.T) {
			req, err := domroute.NewRequest(from, to, tt.profile)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			plan, err := NewEstimate().Attempt(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			wantKm := base * tt.detour
			if !almost(plan.DistanceKm, wantKm, 1e-9) {
				t.Errorf("DistanceKm = %f, want %f", plan.DistanceKm, wantKm)
			}
			wantDur := time.Duration(wantKm * tt.minutesPerKm * float64(time.Minute))
			if plan.Duration != wantDur {
				t.Errorf("Duration = %v, want %v", plan.Duration, wantDur)
			}
			if len(plan.Geometry) != tt.waypoints {
				t.Errorf("waypoints = %d, want %d", len(plan.Geometry), tt.waypoints)
			}
			if plan.Geometry[0] != from || plan.Geometry[len(plan.Geometry)-1] != to {
				t.Error("geometry should start at origin and end at destination")
			}
			if !plan.Estimated {
				t.Error("expected Estimated=true")
			}
		})
	}
}

func TestEstimate_SamePoint(t *testing.T) {
	p := geo.Point{Latitude: 23.1765, Longitude: 75.7885}
	req, _ := domroute.NewRequest(p, p, domroute.Optimal)
	plan, err := NewEstimate().Attempt(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.DistanceKm != 0 || plan.Duration != 0 {
		t.Errorf("expected zero route, got %f km %v", plan.DistanceKm, plan.Duration)
	}
}

func TestEstimate_UnknownProfile(t *testing.T) {
	// Zero-value request bypasses validation and carries no profile.
	if _, err := NewEstimate().Attempt(context.Background(), domroute.Request{}); err == nil {
		t.Fatal("expected error for missing profile")
	}
}
