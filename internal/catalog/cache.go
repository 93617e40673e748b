package catalog

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is the freshness window for fetched candidate
// batches. Stale entries are refetched, not served.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	fetchedAt time.Time
	events    []Event
}

// batchCache holds recently fetched candidate batches keyed by
// city + category filter. Concurrent requests share one cache, so all
// access goes through the lock; stored slices are never mutated after
// insertion.
type batchCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newBatchCache(ttl time.Duration) *batchCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &batchCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func batchKey(cityID string, categoryIDs []string) string {
	if len(categoryIDs) == 0 {
		return cityID + ":ALL"
	}
	sorted := append([]string(nil), categoryIDs...)
	sort.Strings(sorted)
	return cityID + ":" + strings.Join(sorted, ",")
}

func (c *batchCache) get(key string) ([]Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.events, true
}

func (c *batchCache) put(key string, events []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{fetchedAt: c.now(), events: events}
}
