// Package cache memoizes confident classifications keyed by the primary
// discriminators (Category|Type). Entries never expire; Clear wipes the
// whole map. The cache is the only mutable structure classification calls
// share, so it must be safe under concurrent read/write.
package cache

import "sync"

// Results is a concurrent code cache. The stored value is the resolved
// taxonomy code only; a hit is always reported at confidence 100 since
// insertion requires a prior high-confidence resolution for the same key.
type Results struct {
	mu sync.RWMutex
	m  map[string]string
}

// New creates an empty cache.
func New() *Results {
	return &Results{m: make(map[string]string)}
}

// Get returns the cached code for key, if any.
func (c *Results) Get(key string) (string, bool) {
	c.mu.RLock()
	code, ok := c.m[key]
	c.mu.RUnlock()
	return code, ok
}

// Put stores a resolved code under key. Empty keys are ignored;
// descriptors without Category or Type are never cached.
func (c *Results) Put(key, code string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	c.m[key] = code
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Results) Len() int {
	c.mu.RLock()
	n := len(c.m)
	c.mu.RUnlock()
	return n
}

// Clear wipes the cache.
func (c *Results) Clear() {
	c.mu.Lock()
	c.m = make(map[string]string)
	c.mu.Unlock()
}
