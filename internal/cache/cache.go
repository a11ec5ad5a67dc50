package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
}

type call[V any] struct {
	done  chan struct{}
	value V
}

// Cache memoizes the result of a fetch operation per key for a fixed TTL.
// A stale entry is never served: once its age reaches the TTL the next Get
// recomputes and overwrites it. Concurrent misses on the same key share a
// single compute call; misses on different keys run independently.
type Cache[K comparable, V any] struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	entries  map[K]entry[V]
	inflight map[K]*call[V]
}

func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[K]entry[V]),
		inflight: make(map[K]*call[V]),
	}
}

// Get returns the cached value for key, invoking compute on a miss or when
// the stored entry has expired. compute runs without the cache lock held.
func (c *Cache[K, V]) Get(key K, compute func() V) V {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.storedAt) < c.ttl {
		c.mu.Unlock()
		return e.value
	}
	if inflight, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-inflight.done
		return inflight.value
	}
	cl := &call[V]{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.value = compute()

	c.mu.Lock()
	c.entries[key] = entry[V]{value: cl.value, storedAt: c.now()}
	delete(c.inflight, key)
	c.mu.Unlock()
	close(cl.done)
	return cl.value
}

// Invalidate drops every stored entry so the next Get per key recomputes.
// Calls already in flight still complete and store their result.
func (c *Cache[K, V]) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[K]entry[V])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
