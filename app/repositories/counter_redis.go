package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCounterStore implements CounterStore on Redis so that every
// server instance shares one logical counter per key. Each key holds a
// sorted set of event timestamps (a sliding log): old entries are
// trimmed on every increment and the whole set expires once the window
// has elapsed without activity.
type RedisCounterStore struct {
	client *redis.Client
	prefix string
}

// Ensure RedisCounterStore implements CounterStore
var _ CounterStore = (*RedisCounterStore)(nil)

// RedisConfig for creating a Redis counter store
type RedisConfig struct {
	Addr     string // Redis address (e.g., "localhost:6379")
	Password string // Redis password (empty for no auth)
	DB       int    // Redis database number
}

// NewRedisCounterStore creates a new Redis-backed counter store
func NewRedisCounterStore(config RedisConfig) *RedisCounterStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCounterStore{
		client: client,
		prefix: "chirper:",
	}
}

// Increment records an event and returns the in-window count plus the
// oldest in-window event time. All commands run in one transactional
// pipeline so concurrent increments on the same key cannot undercount.
func (s *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int64, time.Time, error) {
	redisKey := s.prefix + key
	windowStart := now.Add(-window).UnixMilli()
	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: member})
	countCmd := pipe.ZCard(ctx, redisKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("counter increment failed: %w", err)
	}

	oldestAt := now
	if oldest := oldestCmd.Val(); len(oldest) > 0 {
		oldestAt = time.UnixMilli(int64(oldest[0].Score))
	}

	return countCmd.Val(), oldestAt, nil
}

// Ping checks if the Redis connection is alive
func (s *RedisCounterStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisCounterStore) Close() error {
	return s.client.Close()
}
