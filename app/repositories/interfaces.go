package repositories

import (
	"context"
	"time"

	"chirper/app/models"
)

// PostRepository defines the interface for post data access. Posts are
// append-only: there is no update or delete.
type PostRepository interface {
	Insert(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	QueryRecent(limit int) ([]*models.Post, error)
	QueryByAuthor(authorID string) ([]*models.Post, error)
}

// CounterStore is the shared per-key event counter behind the rate
// limiter. Increment records an event for key at time now and returns
// the number of events within the window ending at now, along with the
// timestamp of the oldest event still inside the window. Entries expire
// on their own once the window has fully elapsed.
//
// Implementations must make Increment atomic per key so concurrent
// callers cannot undercount.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration, now time.Time) (count int64, oldestAt time.Time, err error)
}

// UserDirectory resolves author identities to display metadata. GetUsers
// is batched: one call resolves every id in the slice.
type UserDirectory interface {
	GetUsers(ctx context.Context, ids []string) ([]models.Author, error)
}

// Pinger is implemented by stores that can report backend liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
