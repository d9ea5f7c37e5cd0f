package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMutexLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMutexLocker()
	l.now = func() time.Time { return now }

	release, err := l.Acquire(ctx, "schedule", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Acquire(ctx, "schedule", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatalf("second acquire = %v, want ErrLocked", err)
	}
	if _, err := l.Acquire(ctx, "import", time.Minute); err != nil {
		t.Fatalf("locks are per name: %v", err)
	}

	release()
	again, err := l.Acquire(ctx, "schedule", time.Minute)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}

	// An expired lock is taken over, and the stale release does not free the new holder.
	now = now.Add(2 * time.Minute)
	if _, err := l.Acquire(ctx, "schedule", time.Minute); err != nil {
		t.Fatalf("expired lock not reclaimed: %v", err)
	}
	again()
	if _, err := l.Acquire(ctx, "schedule", time.Minute); !errors.Is(err, ErrLocked) {
		t.Fatal("stale release freed the current holder")
	}
}

func TestNewLockerFallsBackWithoutRedis(t *testing.T) {
	if _, ok := NewLocker(nil, nil).(*MutexLocker); !ok {
		t.Fatal("expected in-process locker without a redis client")
	}
	if NewRedisClient("", "") != nil {
		t.Fatal("empty address must not produce a client")
	}
}
