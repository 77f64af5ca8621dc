package notify

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestManager_SuppressesWithinCooldown(t *testing.T) {
	clk := newFakeClock()
	m := NewManager(30*time.Second, clk.Now)

	if !m.Allow("crowd-alert") {
		t.Fatal("first delivery should be allowed")
	}
	clk.Advance(10 * time.Second)
	if m.Allow("crowd-alert") {
		t.Error("repeat within cooldown should be suppressed")
	}
	if !m.Allow("route-update") {
		t.Error("different id should be allowed")
	}
}

func TestManager_AllowsAfterCooldown(t *testing.T) {
	clk := newFakeClock()
	m := NewManager(30*time.Second, clk.Now)

	m.Allow("crowd-alert")
	clk.Advance(30 * time.Second)
	if !m.Allow("crowd-alert") {
		t.Error("delivery at exactly the cooldown should be allowed")
	}
}

func TestManager_SuppressedDoesNotExtendWindow(t *testing.T) {
	clk := newFakeClock()
	m := NewManager(30*time.Second, clk.Now)

	m.Allow("a")
	clk.Advance(20 * time.Second)
	m.Allow("a") // suppressed
	clk.Advance(10 * time.Second)
	if !m.Allow("a") {
		t.Error("window should run from the last delivery, not the last attempt")
	}
}

func TestManager_Reset(t *testing.T) {
	clk := newFakeClock()
	m := NewManager(time.Minute, clk.Now)

	m.Allow("a")
	m.Allow("b")
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	m.Reset()
	if m.Len() != 0 {
		t.Fatalf("Len() = %d after reset, want 0", m.Len())
	}
	if !m.Allow("a") {
		t.Error("reset should forget history")
	}
}

func TestManager_PrunesExpired(t *testing.T) {
	clk := newFakeClock()
	m := NewManager(time.Second, clk.Now)

	m.Allow("a")
	clk.Advance(2 * time.Second)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expiry", m.Len())
	}
}

func TestManager_Defaults(t *testing.T) {
	m := NewManager(0, nil)
	if m.cooldown != DefaultCooldown {
		t.Errorf("cooldown = %v, want %v", m.cooldown, DefaultCooldown)
	}
	if !m.Allow("x") || m.Allow("x") {
		t.Error("default manager should allow once then suppress")
	}
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager(time.Hour, nil)
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Allow("same") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed != 1 {
		t.Errorf("allowed = %d, want exactly 1", allowed)
	}
}
