// Package ynab is the external data provider: an HTTP client for the YNAB
// API with response caching and rate limiting, plus the mapper that turns
// raw API payloads into domain entities.
package ynab

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value     []byte
	createdAt time.Time
	ttl       time.Duration
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// ResponseCache is a mutex-guarded TTL cache for raw API responses. Readers
// lazily evict entries they find expired; Sweep evicts all expired entries
// at once.
type ResponseCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	defaultTTL time.Duration
	now        func() time.Time
}

// NewResponseCache creates a cache whose entries live for defaultTTL unless
// stored with an explicit TTL.
func NewResponseCache(defaultTTL time.Duration) *ResponseCache {
	return &ResponseCache{
		entries:    make(map[string]cacheEntry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the cached value for key. An expired entry is evicted and
// reported as a miss.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *ResponseCache) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *ResponseCache) SetWithTTL(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, createdAt: c.now(), ttl: ttl}
}

// Sweep evicts every expired entry and returns how many were removed.
func (c *ResponseCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Size returns the number of entries held, expired ones included.
func (c *ResponseCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
