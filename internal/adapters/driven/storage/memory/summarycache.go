package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// Ensure SummaryCache implements the interface.
var _ driven.SummaryCache = (*SummaryCache)(nil)

type cacheEntry struct {
	value   string
	expires time.Time
}

// SummaryCache is a process-local summary cache with per-entry expiry.
type SummaryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewSummaryCache creates an empty cache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns a live entry. Expired entries are dropped.
func (c *SummaryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores a value. A zero ttl means no expiry.
func (c *SummaryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *SummaryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close releases resources.
func (c *SummaryCache) Close() error {
	return nil
}
