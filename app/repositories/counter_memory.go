package repositories

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore is an in-process CounterStore for tests and
// single-instance deployments. It keeps a per-key log of event times,
// pruned of expired entries on every access.
//
// A multi-instance deployment must use RedisCounterStore instead, since
// each process would otherwise count against its own limiter.
type MemoryCounterStore struct {
	mu   sync.Mutex
	logs map[string][]time.Time
}

// Ensure MemoryCounterStore implements CounterStore
var _ CounterStore = (*MemoryCounterStore)(nil)

// NewMemoryCounterStore creates a new in-memory counter store
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{logs: make(map[string][]time.Time)}
}

// Increment records an event and returns the in-window count plus the
// oldest in-window event time.
func (s *MemoryCounterStore) Increment(_ context.Context, key string, window time.Duration, now time.Time) (int64, time.Time, error) {
	cutoff := now.Add(-window)

	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logs[key]
	kept := log[:0]
	for _, at := range log {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	kept = append(kept, now)
	s.logs[key] = kept

	return int64(len(kept)), kept[0], nil
}

// Len reports how many keys currently hold events.
func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}

// Clear removes all counters
func (s *MemoryCounterStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = make(map[string][]time.Time)
}
