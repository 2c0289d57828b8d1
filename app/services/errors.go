package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrValidation means the post content failed validation. The
	// check runs before the admission check, so no quota is consumed.
	ErrValidation = errors.New("invalid post content")

	// ErrRateLimited means the admission controller rejected the post.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrAuthorNotFound means a feed post references an identity the
	// directory could not resolve. The whole read fails; no partial
	// feed is returned.
	ErrAuthorNotFound = errors.New("author not found for post")

	// ErrStoreUnavailable means a backing store could not be reached.
	// The enclosing operation fails as a whole.
	ErrStoreUnavailable = errors.New("backing store unavailable")
)

// RateLimitedError carries the recommended retry delay alongside
// ErrRateLimited so transports can surface a Retry-After hint.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }
