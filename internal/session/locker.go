package session

import (
	"context"
	"sync"

	"menubot/internal/domain"
)

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Locker serializes work per conversation while distinct conversations run concurrently.
// Entries are reference counted and dropped once nobody holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[domain.SessionKey]*lockEntry
}

// NewLocker creates an empty locker
func NewLocker() *Locker {
	return &Locker{locks: make(map[domain.SessionKey]*lockEntry)}
}

func (l *Locker) acquire(key domain.SessionKey) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (l *Locker) release(key domain.SessionKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[key]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, key)
	}
}

// WithLock runs fn while holding the conversation's lock
func (l *Locker) WithLock(ctx context.Context, key domain.SessionKey, fn func(context.Context) error) error {
	entry := l.acquire(key)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		l.release(key)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Active returns the number of conversations currently holding or waiting on a lock
func (l *Locker) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
