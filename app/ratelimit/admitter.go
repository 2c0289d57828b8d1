// Package ratelimit gates post creation with a per-author sliding
// window. The counting state lives in a shared CounterStore so that
// every server instance enforces one logical limit per author.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"chirper/app/repositories"
)

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed bool
	// Remaining is how many more admissions the window has room for.
	Remaining int
	// RetryAfter is the recommended wait before retrying when blocked.
	// Zero means no recommendation.
	RetryAfter time.Duration
}

// Admitter decides, per author, whether a new post may be accepted
// right now. The sliding log kept by the counter store makes the
// window exact: an author can never exceed the limit within any
// rolling window interval.
//
// Quota is consumed by the check itself and is never refunded, so a
// post that later fails to persist still counts against the window.
type Admitter struct {
	counters repositories.CounterStore
	limit    int
	window   time.Duration
	now      func() time.Time
}

// NewAdmitter creates an Admitter allowing limit admissions per author
// within window.
func NewAdmitter(counters repositories.CounterStore, limit int, window time.Duration) *Admitter {
	return &Admitter{
		counters: counters,
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// TryAdmit records an attempt for authorID and reports whether it is
// admitted. A counter store failure is returned as an error; callers
// must treat that as a rejection (fail closed), never as a bypass.
func (a *Admitter) TryAdmit(ctx context.Context, authorID string) (Decision, error) {
	now := a.now()
	key := "ratelimit:author:" + authorID

	count, oldestAt, err := a.counters.Increment(ctx, key, a.window, now)
	if err != nil {
		return Decision{}, fmt.Errorf("admission check failed: %w", err)
	}

	if count > int64(a.limit) {
		retryAfter := oldestAt.Add(a.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Decision{Allowed: false, RetryAfter: retryAfter}, nil
	}

	return Decision{Allowed: true, Remaining: a.limit - int(count)}, nil
}

// Limit reports the configured admissions per window.
func (a *Admitter) Limit() int { return a.limit }

// Window reports the configured window size.
func (a *Admitter) Window() time.Duration { return a.window }
