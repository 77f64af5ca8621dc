package geocache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/domain/place"
)

func TestGeocode_MissThenHit(t *testing.T) {
	inner := &mockGeocoder{places: []place.Place{
		remote(t, "Kal Bhairav Mandir", 23.2123, 75.7694, place.Temple),
	}}
	cg := newTestCachedGeocoder(t, inner, newMemStore())
	ctx := context.Background()

	first, err := cg.Geocode(ctx, "Kal Bhairav", mpBounds, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cg.Geocode(ctx, "  kal   BHAIRAV ", mpBounds, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1 (normalized query should hit cache)", inner.calls)
	}
	if len(second) != 1 || second[0].Name() != first[0].Name() {
		t.Fatalf("cached result mismatch: %v", second)
	}
	if second[0].Provenance() != place.Remote {
		t.Errorf("cached place provenance = %q, want remote", second[0].Provenance())
	}
	if second[0].Category() != place.Temple {
		t.Errorf("cached place category = %q", second[0].Category())
	}
	if second[0].Point() != first[0].Point() {
		t.Errorf("cached point %v != %v", second[0].Point(), first[0].Point())
	}
}

func TestGeocode_KeyIncludesLimitAndBounds(t *testing.T) {
	inner := &mockGeocoder{}
	cg := newTestCachedGeocoder(t, inner, newMemStore())
	ctx := context.Background()

	_, _ = cg.Geocode(ctx, "ujjain", mpBounds, 5)
	_, _ = cg.Geocode(ctx, "ujjain", mpBounds, 10)
	wider := mpBounds
	wider.North = 30
	_, _ = cg.Geocode(ctx, "ujjain", wider, 5)

	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
}

func TestGeocode_EmptyResultCached(t *testing.T) {
	inner := &mockGeocoder{places: []place.Place{}}
	cg := newTestCachedGeocoder(t, inner, newMemStore())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cg.Geocode(ctx, "xyznonexistent", mpBounds, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty, got %v", got)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestGeocode_InnerErrorNotCached(t *testing.T) {
	inner := &mockGeocoder{err: errors.New("upstream 503")}
	var setCalled bool
	ms := &mockKVStore{setFn: func(context.Context, string, []byte, time.Duration) error {
		setCalled = true
		return nil
	}}
	cg := newTestCachedGeocoder(t, inner, ms)

	if _, err := cg.Geocode(context.Background(), "ujjain", mpBounds, 5); err == nil {
		t.Fatal("expected error")
	}
	if setCalled {
		t.Error("errors must not be cached")
	}
}

func TestGeocode_StoreFailuresBypassed(t *testing.T) {
	inner := &mockGeocoder{places: []place.Place{remote(t, "Dewas Tekri", 22.97, 76.05, place.Temple)}}
	ms := &mockKVStore{
		getFn: func(context.Context, string) ([]byte, error) { return nil, errors.New("connection reset") },
		setFn: func(context.Context, string, []byte, time.Duration) error { return errors.New("connection reset") },
	}
	cg := newTestCachedGeocoder(t, inner, ms)

	got, err := cg.Geocode(context.Background(), "dewas", mpBounds, 5)
	if err != nil {
		t.Fatalf("store failures should not surface: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected inner result, got %v", got)
	}
}

func TestGeocode_CorruptCacheEntry(t *testing.T) {
	inner := &mockGeocoder{places: []place.Place{}}
	ms := &mockKVStore{getFn: func(context.Context, string) ([]byte, error) { return []byte("{not json"), nil }}
	cg := newTestCachedGeocoder(t, inner, ms)

	if _, err := cg.Geocode(context.Background(), "x", mpBounds, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Error("corrupt entry should fall through to inner geocoder")
	}
}

func TestGeocode_TTLPassedToStore(t *testing.T) {
	var gotTTL time.Duration
	ms := &mockKVStore{setFn: func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		gotTTL = ttl
		return nil
	}}
	cg := New(&mockGeocoder{}, ms, 6*time.Hour, nil, zap.NewNop())
	_, _ = cg.Geocode(context.Background(), "x", mpBounds, 5)
	if gotTTL != 6*time.Hour {
		t.Errorf("ttl = %v, want 6h", gotTTL)
	}
}

func TestGeocode_CacheCounter(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_geo_cache_total"}, []string{"result"})
	cg := New(&mockGeocoder{}, newMemStore(), time.Hour, counter, zap.NewNop())
	ctx := context.Background()

	_, _ = cg.Geocode(ctx, "indore", mpBounds, 5)
	_, _ = cg.Geocode(ctx, "indore", mpBounds, 5)

	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 1 {
		t.Errorf("miss = %v, want 1", got)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("hit")); got != 1 {
		t.Errorf("hit = %v, want 1", got)
	}
}

func TestCacheKey_Prefix(t *testing.T) {
	k := cacheKey("ujjain", mpBounds, 5)
	if len(k) != len(cacheKeyPrefix)+64 || k[:len(cacheKeyPrefix)] != cacheKeyPrefix {
		t.Errorf("unexpected key %q", k)
	}
}
