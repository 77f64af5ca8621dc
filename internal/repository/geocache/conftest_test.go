package geocache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/yatra/internal/db"
	"github.com/kailas-cloud/yatra/internal/domain/geo"
	"github.com/kailas-cloud/yatra/internal/domain/place"
)

type mockGeocoder struct {
	places []place.Place
	err    error
	calls  int
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string, _ geo.Bounds, _ int) ([]place.Place, error) {
	m.calls++
	return m.places, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

// memStore is a map-backed store for round-trip tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

var mpBounds = geo.Bounds{North: 26.9, South: 21.0, East: 82.9, West: 74.0}

func remote(t *testing.T, name string, lat, lng float64, c place.Category) place.Place {
	t.Helper()
	p, err := place.New(name, geo.Point{Latitude: lat, Longitude: lng}, c, place.Remote)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	return p
}

func newTestCachedGeocoder(t *testing.T, inner *mockGeocoder, s store) *CachedGeocoder {
	t.Helper()
	return New(inner, s, time.Hour, nil, zap.NewNop())
}
