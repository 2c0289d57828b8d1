package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"chirper/app/cache"
	"chirper/app/models"
	"chirper/app/ratelimit"
	"chirper/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPostRepo struct {
	posts     map[string]*models.Post
	insertErr error
	inserts   int
	queries   int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]*models.Post)}
}

func (m *mockPostRepo) Insert(post *models.Post) error {
	m.inserts++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockPostRepo) GetByID(id string) (*models.Post, error) {
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *mockPostRepo) QueryRecent(limit int) ([]*models.Post, error) {
	m.queries++
	posts := m.sorted()
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *mockPostRepo) QueryByAuthor(authorID string) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range m.sorted() {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *mockPostRepo) sorted() []*models.Post {
	var posts []*models.Post
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

type mockAdmitter struct {
	decision ratelimit.Decision
	err      error
	calls    int
}

func (m *mockAdmitter) TryAdmit(_ context.Context, _ string) (ratelimit.Decision, error) {
	m.calls++
	return m.decision, m.err
}

func newTestPostService(repo *mockPostRepo, admitter *mockAdmitter) (*PostService, *cache.FeedCache) {
	feedCache := cache.NewFeedCache(time.Minute)
	return NewPostService(repo, admitter, feedCache), feedCache
}

func TestCreatePost(t *testing.T) {
	repo := newMockPostRepo()
	admitter := &mockAdmitter{decision: ratelimit.Decision{Allowed: true}}
	svc, _ := newTestPostService(repo, admitter)

	post, err := svc.CreatePost(context.Background(), "user_alice", "\U0001F354")
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "user_alice", post.AuthorID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, 1, repo.inserts)
}

func TestCreatePostInvalidContentConsumesNoQuota(t *testing.T) {
	repo := newMockPostRepo()
	admitter := &mockAdmitter{decision: ratelimit.Decision{Allowed: true}}
	svc, _ := newTestPostService(repo, admitter)

	for _, content := range []string{"", "not emoji", "hi \U0001F354"} {
		_, err := svc.CreatePost(context.Background(), "user_alice", content)
		assert.ErrorIs(t, err, ErrValidation)
	}

	assert.Equal(t, 0, admitter.calls, "validation failures must not reach the admission check")
	assert.Equal(t, 0, repo.inserts)
}

func TestCreatePostRejectedNeverPersists(t *testing.T) {
	repo := newMockPostRepo()
	admitter := &mockAdmitter{decision: ratelimit.Decision{RetryAfter: 40 * time.Second}}
	svc, _ := newTestPostService(repo, admitter)

	_, err := svc.CreatePost(context.Background(), "user_alice", "\U0001F354")
	assert.ErrorIs(t, err, ErrRateLimited)

	var rle *RateLimitedError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, 40*time.Second, rle.RetryAfter)

	assert.Equal(t, 0, repo.inserts)
}

func TestCreatePostFailsClosedOnAdmitterError(t *testing.T) {
	repo := newMockPostRepo()
	admitter := &mockAdmitter{err: errors.New("connection refused")}
	svc, _ := newTestPostService(repo, admitter)

	_, err := svc.CreatePost(context.Background(), "user_alice", "\U0001F354")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 0, repo.inserts)
}

func TestCreatePostInsertFailure(t *testing.T) {
	repo := newMockPostRepo()
	repo.insertErr = errors.New("disk full")
	admitter := &mockAdmitter{decision: ratelimit.Decision{Allowed: true}}
	svc, _ := newTestPostService(repo, admitter)

	_, err := svc.CreatePost(context.Background(), "user_alice", "\U0001F354")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	// Quota was already consumed by the admission check and stays
	// consumed; the insert attempt is visible either way.
	assert.Equal(t, 1, admitter.calls)
}

func TestCreatePostInvalidatesFeedCache(t *testing.T) {
	repo := newMockPostRepo()
	admitter := &mockAdmitter{decision: ratelimit.Decision{Allowed: true}}
	svc, feedCache := newTestPostService(repo, admitter)

	feedCache.Set(cache.RecentFeedKey, []models.FeedEntry{})
	_, ok := feedCache.Get(cache.RecentFeedKey)
	require.True(t, ok)

	_, err := svc.CreatePost(context.Background(), "user_alice", "\U0001F354")
	require.NoError(t, err)

	_, ok = feedCache.Get(cache.RecentFeedKey)
	assert.False(t, ok, "a successful create must invalidate the cached global feed")
}

func TestCreatePostQuotaNotConsumedTwiceScenario(t *testing.T) {
	// An invalid post followed by a valid one: the valid post should be
	// the first admission, not the second.
	counters := repositories.NewMemoryCounterStore()
	admitter := ratelimit.NewAdmitter(counters, 1, time.Minute)
	repo := newMockPostRepo()
	svc := NewPostService(repo, admitter, cache.NewFeedCache(time.Minute))

	_, err := svc.CreatePost(context.Background(), "user_alice", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePost(context.Background(), "user_alice", "\U0001F354")
	assert.NoError(t, err, "the failed validation must not have consumed the only slot")
}
