package notify

import (
	"sync"
	"time"
)

// Registry owns one Manager per session id.
// Sessions with nothing left inside the cooldown are evicted, at most once per cooldown.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Manager
	cooldown  time.Duration
	now       Clock
	lastSweep time.Time
}

// NewRegistry creates an empty registry whose managers share cooldown and clock.
func NewRegistry(cooldown time.Duration, now Clock) *Registry {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions:  make(map[string]*Manager),
		cooldown:  cooldown,
		now:       now,
		lastSweep: now(),
	}
}

// Allow reports whether id may be delivered to session and records the delivery if so.
func (r *Registry) Allow(session, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep()
	m, ok := r.sessions[session]
	if !ok {
		m = NewManager(r.cooldown, r.now)
		r.sessions[session] = m
	}
	return m.Allow(id)
}

// Drop forgets session entirely.
func (r *Registry) Drop(session string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, session)
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep evicts idle sessions. Caller holds mu.
func (r *Registry) sweep() {
	t := r.now()
	if t.Sub(r.lastSweep) < r.cooldown {
		return
	}
	r.lastSweep = t
	for id, m := range r.sessions {
		if m.Len() == 0 {
			delete(r.sessions, id)
		}
	}
}
