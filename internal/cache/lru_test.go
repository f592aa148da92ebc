// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	c := NewLRU[string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	for key, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		got, found := c.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	// Touch 'a' so 'b' becomes least recently used.
	c.Get("a")
	c.Set("d", "4")

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Expected 1 eviction, got %d", got)
	}
}

func TestLRU_UpdateRefreshesValueAndTTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Set("a", "old")
	clock.Advance(50 * time.Second)
	c.Set("a", "new")
	clock.Advance(50 * time.Second)

	got, found := c.Get("a")
	if !found {
		t.Fatal("Expected refreshed entry to survive")
	}
	if got != "new" {
		t.Errorf("Expected updated value, got %q", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected single entry after update, got %d", c.Len())
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Set("a", "1")
	if _, found := c.Get("a"); !found {
		t.Error("Expected to find key 'a' immediately")
	}

	clock.Advance(61 * time.Second)

	if _, found := c.Get("a"); found {
		t.Error("Expected key 'a' to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be dropped on access, len %d", c.Len())
	}
}

func TestLRU_Remove(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")

	if !c.Remove("a") {
		t.Error("Expected Remove to return true for existing key")
	}
	if c.Remove("a") {
		t.Error("Expected Remove to return false for missing key")
	}
	if _, found := c.Get("b"); !found {
		t.Error("Expected key 'b' to still be present")
	}
}

func TestLRU_Clear(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got len %d", c.Len())
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected no items after Clear")
	}

	// The list must still be usable.
	c.Set("c", "3")
	if _, found := c.Get("c"); !found {
		t.Error("Expected Set to work after Clear")
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")
	clock.Advance(2 * time.Minute)
	c.Set("d", "4")

	if removed := c.CleanupExpired(); removed != 3 {
		t.Errorf("Expected 3 expired items removed, got %d", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 item remaining, got %d", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)

	c.Set("a", "1")
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.Size != 1 {
		t.Errorf("Expected size 1, got %d", stats.Size)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.capacity != 1000 {
		t.Errorf("Expected default capacity 1000, got %d", c.capacity)
	}
	if c.ttl != 10*time.Minute {
		t.Errorf("Expected default TTL 10m, got %v", c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%150)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Capacity exceeded: %d entries", c.Len())
	}
}
