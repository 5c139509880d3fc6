// Package cache provides an in-process TTL cache for lookup responses.
// Entries expire on read; an optional periodic sweep bounds memory by
// removing expired entries.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// TTL is a keyed cache whose entries are treated as absent once older
// than the configured duration. Safe for concurrent use.
type TTL[V any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]entry[V]
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache with the given time-to-live.
func New[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]entry[V]),
		stop:  make(chan struct{}),
	}
}

// Get returns the value for key if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	if !ok || c.now().Sub(e.createdAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry wholesale.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[V]{value: value, createdAt: c.now()}
}

// Len reports the number of stored entries, expired ones included.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// StartSweep removes expired entries every interval until Stop is
// called.
func (c *TTL[V]) StartSweep(interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				c.sweep()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine. Safe to call more than once.
func (c *TTL[V]) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (c *TTL[V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.items {
		if c.now().Sub(e.createdAt) > c.ttl {
			delete(c.items, key)
		}
	}
}
