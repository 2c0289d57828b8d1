package cache

import (
	"testing"
	"time"

	"chirper/app/models"

	"github.com/stretchr/testify/assert"
)

func TestFeedCacheSetGet(t *testing.T) {
	c := NewFeedCache(time.Minute)

	_, ok := c.Get(RecentFeedKey)
	assert.False(t, ok)

	feed := []models.FeedEntry{{Post: models.Post{ID: "p1"}}}
	c.Set(RecentFeedKey, feed)

	got, ok := c.Get(RecentFeedKey)
	assert.True(t, ok)
	assert.Equal(t, feed, got)
}

func TestFeedCacheInvalidate(t *testing.T) {
	c := NewFeedCache(time.Minute)
	c.Set(RecentFeedKey, []models.FeedEntry{{Post: models.Post{ID: "p1"}}})

	c.Invalidate(RecentFeedKey)

	_, ok := c.Get(RecentFeedKey)
	assert.False(t, ok)
}

func TestFeedCacheTTLExpiry(t *testing.T) {
	c := NewFeedCache(time.Minute)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }

	c.Set(RecentFeedKey, []models.FeedEntry{{Post: models.Post{ID: "p1"}}})

	at = at.Add(30 * time.Second)
	_, ok := c.Get(RecentFeedKey)
	assert.True(t, ok)

	at = at.Add(31 * time.Second)
	_, ok = c.Get(RecentFeedKey)
	assert.False(t, ok)
}

func TestFeedCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewFeedCache(0)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return at }

	c.Set(RecentFeedKey, nil)

	at = at.Add(24 * time.Hour)
	_, ok := c.Get(RecentFeedKey)
	assert.True(t, ok)
}
