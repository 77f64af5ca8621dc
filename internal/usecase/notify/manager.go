// Package notify suppresses repeated notifications within a cooldown window.
package notify

import (
	"sync"
	"time"

	"github.com/kailas-cloud/yatra/internal/metrics"
)

// DefaultCooldown is the window during which a repeated id is suppressed.
const DefaultCooldown = 30 * time.Second

// Clock returns the current time.
type Clock func() time.Time

// Manager remembers when each notification id was last delivered.
// Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	last     map[string]time.Time
	cooldown time.Duration
	now      Clock
}

// NewManager creates a manager. A nil clock uses time.Now; cooldown <= 0 uses DefaultCooldown.
func NewManager(cooldown time.Duration, now Clock) *Manager {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{last: make(map[string]time.Time), cooldown: cooldown, now: now}
}

// Allow reports whether id may be delivered now and records the delivery if so.
func (m *Manager) Allow(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.now()
	if prev, ok := m.last[id]; ok && t.Sub(prev) < m.cooldown {
		metrics.NotificationsTotal.WithLabelValues("suppressed").Inc()
		return false
	}
	m.last[id] = t
	m.prune(t)
	metrics.NotificationsTotal.WithLabelValues("delivered").Inc()
	return true
}

// Reset forgets all delivery history.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = make(map[string]time.Time)
}

// Len returns the number of ids currently inside their cooldown.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune(m.now())
	return len(m.last)
}

// prune drops entries whose cooldown has expired. Caller holds mu.
func (m *Manager) prune(t time.Time) {
	for id, prev := range m.last {
		if t.Sub(prev) >= m.cooldown {
			delete(m.last, id)
		}
	}
}
