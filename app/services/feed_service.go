package services

import (
	"context"
	"fmt"

	"chirper/app/cache"
	"chirper/app/metrics"
	"chirper/app/models"
	"chirper/app/repositories"
)

// DefaultFeedLimit caps the global recent feed.
const DefaultFeedLimit = 100

// FeedService assembles feeds: posts ordered newest-first, each joined
// with its author's display metadata from the identity directory.
type FeedService struct {
	posts     repositories.PostRepository
	directory repositories.UserDirectory
	feedCache *cache.FeedCache
	limit     int
}

// NewFeedService creates a new FeedService
func NewFeedService(posts repositories.PostRepository, directory repositories.UserDirectory, feedCache *cache.FeedCache) *FeedService {
	return &FeedService{
		posts:     posts,
		directory: directory,
		feedCache: feedCache,
		limit:     DefaultFeedLimit,
	}
}

// GetRecentPosts returns the most recent posts across all authors,
// serving from the cache when a fresh assembled feed is available.
func (s *FeedService) GetRecentPosts(ctx context.Context) ([]models.FeedEntry, error) {
	if feed, ok := s.feedCache.Get(cache.RecentFeedKey); ok {
		metrics.FeedCacheHits.Inc()
		return feed, nil
	}

	posts, err := s.posts.QueryRecent(s.limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	feed, err := s.assemble(ctx, posts)
	if err != nil {
		return nil, err
	}

	s.feedCache.Set(cache.RecentFeedKey, feed)
	return feed, nil
}

// GetPostsByAuthor returns all posts by one author, newest first.
func (s *FeedService) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.FeedEntry, error) {
	posts, err := s.posts.QueryByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s.assemble(ctx, posts)
}

// GetPost returns a single post joined with its author.
func (s *FeedService) GetPost(ctx context.Context, id string) (*models.FeedEntry, error) {
	post, err := s.posts.GetByID(id)
	if err == repositories.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	feed, err := s.assemble(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return &feed[0], nil
}

// assemble joins posts with author metadata. All distinct author ids
// are resolved through one batched directory call; any post whose
// author cannot be resolved fails the whole read.
func (s *FeedService) assemble(ctx context.Context, posts []*models.Post) ([]models.FeedEntry, error) {
	feed := make([]models.FeedEntry, 0, len(posts))
	if len(posts) == 0 {
		return feed, nil
	}

	var ids []string
	seen := make(map[string]bool)
	for _, post := range posts {
		if !seen[post.AuthorID] {
			seen[post.AuthorID] = true
			ids = append(ids, post.AuthorID)
		}
	}

	users, err := s.directory.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	byID := make(map[string]models.Author, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, post := range posts {
		author, ok := byID[post.AuthorID]
		if !ok || author.Username == "" {
			return nil, fmt.Errorf("%w: post %s, author %s", ErrAuthorNotFound, post.ID, post.AuthorID)
		}
		feed = append(feed, models.FeedEntry{Post: *post, Author: author})
	}
	return feed, nil
}
