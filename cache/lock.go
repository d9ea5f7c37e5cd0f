// Package cache guards background jobs so that one run happens at a time,
// across processes when redis is configured and within the process otherwise.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLocked is returned when another holder owns the lock.
var ErrLocked = errors.New("lock is held by another run")

type Locker interface {
	// Acquire takes the named lock for at most ttl and returns the function that releases it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error)
}

// MutexLocker keeps locks in process memory.
type MutexLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewMutexLocker() *MutexLocker {
	return &MutexLocker{held: map[string]time.Time{}, now: time.Now}
}

func (l *MutexLocker) Acquire(_ context.Context, name string, ttl time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if until, ok := l.held[name]; ok && now.Before(until) {
		return nil, ErrLocked
	}
	until := now.Add(ttl)
	l.held[name] = until
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[name].Equal(until) {
			delete(l.held, name)
		}
	}, nil
}
