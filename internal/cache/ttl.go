// Package cache provides a small TTL-bound key/value store shared across requests.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// TTL is an expiring key/value map. Eviction is lazy: expired entries are
// dropped when read, no background sweeper runs.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

// Option configures a TTL cache.
type Option[V any] func(*TTL[V])

// WithClock overrides the time source, so tests can advance time explicitly.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *TTL[V]) {
		if now != nil {
			c.now = now
		}
	}
}

// NewTTL builds a cache whose entries live for the given duration.
func NewTTL[V any](ttl time.Duration, opts ...Option[V]) *TTL[V] {
	if ttl <= 0 {
		ttl = time.Hour
	}
	c := &TTL[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key. An expired entry is removed and
// reported as absent.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key for the configured TTL.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(c.ttl)}
}

// Invalidate removes a single key.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge removes every entry.
func (c *TTL[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len reports the number of stored entries, including not-yet-evicted
// expired ones.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
