package database

import (
	"context"
	"sync"
	"time"
)

// MemorySeasonCache keeps season data in process memory. It backs the CLI
// and tests, where no database is available.
type MemorySeasonCache struct {
	mu      sync.RWMutex
	entries map[CacheKey]*CacheEntry
	now     func() time.Time
}

// NewMemorySeasonCache creates an empty in-memory cache
func NewMemorySeasonCache() *MemorySeasonCache {
	return &MemorySeasonCache{
		entries: make(map[CacheKey]*CacheEntry),
		now:     time.Now,
	}
}

func (c *MemorySeasonCache) Get(_ context.Context, key CacheKey) (*CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.IsExpired(c.now()) {
		return nil, ErrCacheMiss
	}

	// Return a copy to prevent external modifications
	entryCopy := *entry
	entryCopy.Payload = append([]byte(nil), entry.Payload...)
	return &entryCopy, nil
}

func (c *MemorySeasonCache) Put(_ context.Context, entry *CacheEntry) error {
	stored := *entry
	stored.Payload = append([]byte(nil), entry.Payload...)

	c.mu.Lock()
	c.entries[entry.CacheKey] = &stored
	c.mu.Unlock()
	return nil
}

// Invalidate drops every kind stored for the season and conference
func (c *MemorySeasonCache) Invalidate(_ context.Context, season int, conference string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if key.Season == season && key.Conference == conference {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, fresh or not
func (c *MemorySeasonCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemorySeasonCache) Close() error { return nil }
