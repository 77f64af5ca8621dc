package yatra

import (
	"context"
	"errors"
	"sync"
)

// --- public Geocoder mock ---

type mockGeocoder struct {
	mu     sync.Mutex
	places []Place
	err    error
	calls  int
	bounds Bounds
}

func (m *mockGeocoder) Geocode(_ context.Context, _ string, bounds Bounds, _ int) ([]Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.bounds = bounds
	return m.places, m.err
}

func (m *mockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- public Router mock ---

type mockRouter struct {
	name  string
	route Route
	err   error
}

func (m *mockRouter) Name() string { return m.name }

func (m *mockRouter) Route(_ context.Context, _, _ Point, profile Profile) (Route, error) {
	if m.err != nil {
		return Route{}, m.err
	}
	r := m.route
	r.Profile = profile
	return r, nil
}

var errRouterDown = errors.New("router down")
