// Package cache provides a small concurrency-safe cache with per-entry
// expiry, used to avoid refetching slow remote lists within a short window.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	data      T
	expiresAt time.Time
}

// TTL caches values under string keys for a fixed duration.
type TTL[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
}

func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key, or false when absent or expired.
// Expired entries are dropped on access.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return e.data, true
}

func (c *TTL[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{data: data, expiresAt: time.Now().Add(c.ttl)}
}

func (c *TTL[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *TTL[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
