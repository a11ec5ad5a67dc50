package cache

import (
	"sync"
	"testing"
	"time"
)

func TestGetServesCachedWithinTTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New[string, int](time.Minute)
	c.now = func() time.Time { return now }

	calls := 0
	compute := func() int {
		calls++
		return calls * 10
	}

	if got := c.Get("k", compute); got != 10 {
		t.Fatalf("first get: %d", got)
	}
	now = now.Add(59 * time.Second)
	if got := c.Get("k", compute); got != 10 {
		t.Fatalf("second get should hit cache: %d", got)
	}
	if calls != 1 {
		t.Fatalf("expected one compute call, got %d", calls)
	}
}

func TestGetRecomputesAfterTTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := New[string, int](time.Minute)
	c.now = func() time.Time { return now }

	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	c.Get("k", compute)
	now = now.Add(time.Minute)
	if got := c.Get("k", compute); got != 2 {
		t.Fatalf("expected recompute after ttl, got %d", got)
	}
	if calls != 2 {
		t.Fatalf("expected two compute calls, got %d", calls)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	c := New[string, string](time.Minute)

	calls := 0
	get := func(key string) string {
		return c.Get(key, func() string {
			calls++
			return key + "-value"
		})
	}

	if get("EDLP") != "EDLP-value" || get("EDDF") != "EDDF-value" {
		t.Fatalf("unexpected values")
	}
	if calls != 2 {
		t.Fatalf("expected one compute per key, got %d", calls)
	}
	if c.Len() != 2 {
		t.Fatalf("expected two entries, got %d", c.Len())
	}
}

func TestInvalidateForcesRecompute(t *testing.T) {
	c := New[string, int](time.Hour)

	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	c.Get("k", compute)
	c.Invalidate()
	if got := c.Get("k", compute); got != 2 {
		t.Fatalf("expected recompute after invalidate, got %d", got)
	}
	if c.Len() != 1 {
		t.Fatalf("expected one entry after recompute")
	}
}

func TestConcurrentMissesShareOneCall(t *testing.T) {
	c := New[string, int](time.Minute)

	var mu sync.Mutex
	calls := 0
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func() int {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return 42
	}

	var wg sync.WaitGroup
	results := make([]int, 4)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = c.Get("k", compute)
	}()
	<-started

	for i := 1; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Get("k", func() int {
				mu.Lock()
				calls++
				mu.Unlock()
				return -1
			})
		}(i)
	}
	close(release)
	wg.Wait()

	for i, got := range results {
		if got != 42 {
			t.Fatalf("caller %d got %d", i, got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single shared compute, got %d", calls)
	}
}
