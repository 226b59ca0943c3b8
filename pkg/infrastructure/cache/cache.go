package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// MemoryCache keeps coverage results in process for a fixed TTL
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	results   []entities.CoverageResult
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache; a zero ttl never expires entries
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]entities.CoverageResult, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return append([]entities.CoverageResult(nil), entry.results...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, results []entities.CoverageResult) error {
	entry := memoryEntry{results: append([]entities.CoverageResult(nil), results...)}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
