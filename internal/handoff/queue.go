package handoff

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a handoff marker suppresses repeated triggers
const DefaultTTL = 10 * time.Second

// MemoryQueue is an expiring set of users with a pending handoff.
// Expiry is checked on access; Sweep reclaims entries nobody asked about again.
type MemoryQueue struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]time.Time
}

// MemoryOption configures a MemoryQueue
type MemoryOption func(*MemoryQueue)

// WithClock replaces the queue's time source
func WithClock(now func() time.Time) MemoryOption {
	return func(q *MemoryQueue) {
		q.now = now
	}
}

// NewMemoryQueue creates an in-process queue whose markers live for ttl
func NewMemoryQueue(ttl time.Duration, opts ...MemoryOption) *MemoryQueue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &MemoryQueue{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]time.Time),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// TryEnqueue inserts the user unless a live marker exists
func (q *MemoryQueue) TryEnqueue(_ context.Context, userID int64) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	if expiry, ok := q.entries[userID]; ok && now.Before(expiry) {
		return false, nil
	}
	q.entries[userID] = now.Add(q.ttl)
	return true, nil
}

// IsEnqueued reports whether the user has a live marker
func (q *MemoryQueue) IsEnqueued(_ context.Context, userID int64) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	expiry, ok := q.entries[userID]
	if !ok {
		return false, nil
	}
	if !q.now().Before(expiry) {
		delete(q.entries, userID)
		return false, nil
	}
	return true, nil
}

// Sweep drops expired markers and returns how many were removed
func (q *MemoryQueue) Sweep() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	removed := 0
	for userID, expiry := range q.entries {
		if !now.Before(expiry) {
			delete(q.entries, userID)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored markers, expired or not
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
