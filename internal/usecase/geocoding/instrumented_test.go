package geocoding

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/db"
	"github.com/kailas-cloud/yatra/internal/domain"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
	"github.com/kailas-cloud/yatra/internal/metrics"
	"github.com/kailas-cloud/yatra/internal/repository/geocache"
)

func TestMain(m *testing.M) {
	metrics.RegisterGeocoderMetrics()
	os.Exit(m.Run())
}

type mockGeocoder struct {
	places []place.Place
	err    error
	calls  int
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string, _ geo.Bounds, _ int) ([]place.Place, error) {
	m.calls++
	return m.places, m.err
}

var mpBounds = geo.Bounds{North: 26.9, South: 21.0, East: 82.9, West: 74.0}

func TestInstrumentedGeocoder_Success(t *testing.T) {
	p, _ := place.New("Harsiddhi Mata Mandir", geo.Point{Latitude: 23.1819, Longitude: 75.7664}, place.Temple, place.Remote)
	inner := &mockGeocoder{places: []place.Place{p}}
	g := NewInstrumentedGeocoder(inner, "test-success", nil, zap.NewNop())

	got, err := g.Geocode(context.Background(), "harsiddhi", mpBounds, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 place, got %d", len(got))
	}
}

func TestInstrumentedGeocoder_Error(t *testing.T) {
	inner := &mockGeocoder{err: domain.ErrGeocoderUnavailable}
	g := NewInstrumentedGeocoder(inner, "test-error", nil, zap.NewNop())

	_, err := g.Geocode(context.Background(), "x", mpBounds, 5)
	if !errors.Is(err, domain.ErrGeocoderUnavailable) {
		t.Fatalf("expected ErrGeocoderUnavailable, got %v", err)
	}
}

func TestInstrumentedGeocoder_QuotaRejection(t *testing.T) {
	quota := NewQuotaTracker("test-reject", 1, 0, QuotaActionReject, zap.NewNop())
	quota.Record(1)
	inner := &mockGeocoder{}
	g := NewInstrumentedGeocoder(inner, "test-reject", quota, zap.NewNop())

	_, err := g.Geocode(context.Background(), "x", mpBounds, 5)
	if !errors.Is(err, domain.ErrGeocoderQuotaExceeded) {
		t.Fatalf("expected ErrGeocoderQuotaExceeded, got %v", err)
	}
	if inner.calls != 0 {
		t.Error("inner geocoder should not be called when quota is exhausted")
	}
}

func TestInstrumentedGeocoder_RecordsQuotaAndGauge(t *testing.T) {
	quota := NewQuotaTracker("test-record", 100, 1000, QuotaActionReject, zap.NewNop())
	g := NewInstrumentedGeocoder(&mockGeocoder{}, "test-record", quota, zap.NewNop())

	if _, err := g.Geocode(context.Background(), "x", mpBounds, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quota.RemainingDaily() != 99 {
		t.Errorf("daily remaining = %d, want 99", quota.RemainingDaily())
	}
	if got := testutil.ToFloat64(metrics.GeocoderQuotaRemaining.WithLabelValues("test-record", "daily")); got != 99 {
		t.Errorf("quota gauge = %v, want 99", got)
	}
}

func TestInstrumentedGeocoder_FailedRequestStillCounts(t *testing.T) {
	quota := NewQuotaTracker("test-failcount", 100, 0, QuotaActionReject, zap.NewNop())
	g := NewInstrumentedGeocoder(&mockGeocoder{err: errors.New("503")}, "test-failcount", quota, zap.NewNop())

	_, _ = g.Geocode(context.Background(), "x", mpBounds, 5)
	if quota.DailyUsed() != 1 {
		t.Errorf("daily used = %d, want 1", quota.DailyUsed())
	}
}

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func TestInstrumentedGeocoder_CacheHitsSkipQuota(t *testing.T) {
	p, _ := place.New("Gadkalika Temple", geo.Point{Latitude: 23.2043, Longitude: 75.7681}, place.Temple, place.Remote)
	upstream := &mockGeocoder{places: []place.Place{p}}
	quota := NewQuotaTracker("test-cached", 2, 0, QuotaActionReject, zap.NewNop())
	instrumented := NewInstrumentedGeocoder(upstream, "test-cached", quota, zap.NewNop())
	g := geocache.New(instrumented, &memKV{data: make(map[string][]byte)}, time.Hour, nil, zap.NewNop())

	for i := 0; i < 4; i++ {
		got, err := g.Geocode(context.Background(), "gadkalika", mpBounds, 5)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if len(got) != 1 {
			t.Fatalf("call %d: expected 1 place, got %d", i, len(got))
		}
	}
	if upstream.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", upstream.calls)
	}
	if quota.DailyUsed() != 1 {
		t.Errorf("daily used = %d, want 1", quota.DailyUsed())
	}
}
