package services

import (
	"context"
	"fmt"
	"time"

	"chirper/app/cache"
	"chirper/app/metrics"
	"chirper/app/models"
	"chirper/app/ratelimit"
	"chirper/app/repositories"

	"github.com/google/uuid"
)

// Admitter is the admission gate consulted before any post write.
type Admitter interface {
	TryAdmit(ctx context.Context, authorID string) (ratelimit.Decision, error)
}

// PostService handles the post creation pipeline: validate, admit,
// persist, invalidate the cached global feed.
type PostService struct {
	posts     repositories.PostRepository
	admitter  Admitter
	feedCache *cache.FeedCache
	now       func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository, admitter Admitter, feedCache *cache.FeedCache) *PostService {
	return &PostService{
		posts:     posts,
		admitter:  admitter,
		feedCache: feedCache,
		now:       time.Now,
	}
}

// CreatePost validates and persists a new post for authorID.
//
// Validation runs first so an invalid post never consumes rate-limit
// quota. A rejected admission never touches the post store. Quota
// consumed by a successful admission is not refunded if the insert
// then fails.
func (s *PostService) CreatePost(ctx context.Context, authorID, content string) (*models.Post, error) {
	post := &models.Post{
		AuthorID: authorID,
		Content:  content,
	}
	if err := post.Validate(); err != nil {
		metrics.PostsRejectedInvalid.Inc()
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	decision, err := s.admitter.TryAdmit(ctx, authorID)
	if err != nil {
		// Fail closed: an unreachable counter store rejects the write.
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !decision.Allowed {
		metrics.PostsRateLimited.Inc()
		return nil, &RateLimitedError{RetryAfter: decision.RetryAfter}
	}

	post.ID = uuid.NewString()
	post.CreatedAt = s.now().UTC()

	if err := s.posts.Insert(post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// The next global feed read must observe the new post.
	s.feedCache.Invalidate(cache.RecentFeedKey)
	metrics.PostsCreated.Inc()

	return post, nil
}
