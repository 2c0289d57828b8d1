// Package cache holds the server-side feed cache. Entries are
// best-effort: a write invalidates the global feed entry so the next
// read refetches, which makes read-after-write eventual rather than
// linearizable across readers.
package cache

import (
	"sync"
	"time"

	"chirper/app/models"
)

// RecentFeedKey is the cache key for the global recent-posts query.
const RecentFeedKey = "feed:recent"

type entry struct {
	feed     []models.FeedEntry
	storedAt time.Time
}

// FeedCache is a keyed in-memory cache of assembled feeds with a TTL.
type FeedCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewFeedCache creates a cache whose entries expire after ttl. A zero
// ttl keeps entries until they are invalidated.
func NewFeedCache(ttl time.Duration) *FeedCache {
	return &FeedCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached feed for key, if present and fresh.
func (c *FeedCache) Get(key string) ([]models.FeedEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.feed, true
}

// Set stores a feed under key.
func (c *FeedCache) Set(key string, feed []models.FeedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{feed: feed, storedAt: c.now()}
}

// Invalidate drops the cached feed for key.
func (c *FeedCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
