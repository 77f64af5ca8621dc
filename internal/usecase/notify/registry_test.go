package notify

import (
	"testing"
	"time"
)

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	clk := newFakeClock()
	r := NewRegistry(time.Minute, clk.Now)

	if !r.Allow("s1", "alert") {
		t.Fatal("first delivery in s1 should be allowed")
	}
	if !r.Allow("s2", "alert") {
		t.Error("same id in another session should be allowed")
	}
	if r.Allow("s1", "alert") {
		t.Error("repeat in s1 should be suppressed")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_EvictsIdleSessions(t *testing.T) {
	clk := newFakeClock()
	r := NewRegistry(time.Minute, clk.Now)

	for _, s := range []string{"s1", "s2", "s3"} {
		r.Allow(s, "alert")
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}

	clk.Advance(2 * time.Minute)
	if !r.Allow("s4", "alert") {
		t.Fatal("new session should be allowed")
	}
	if r.Len() != 1 {
		t.Errorf("idle sessions should be evicted, Len() = %d", r.Len())
	}
}

func TestRegistry_KeepsSessionsInsideCooldown(t *testing.T) {
	clk := newFakeClock()
	r := NewRegistry(time.Minute, clk.Now)

	r.Allow("old", "alert")
	clk.Advance(40 * time.Second)
	r.Allow("recent", "alert")
	clk.Advance(30 * time.Second)

	r.Allow("new", "alert")
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (recent + new)", r.Len())
	}
	if r.Allow("recent", "alert") {
		t.Error("recent delivery should still be suppressed after sweep")
	}
}

func TestRegistry_Drop(t *testing.T) {
	r := NewRegistry(time.Minute, nil)
	r.Allow("s1", "alert")
	r.Drop("s1")
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if !r.Allow("s1", "alert") {
		t.Error("dropped session should start fresh")
	}
}
