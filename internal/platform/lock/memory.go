package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryLocker serializes keys within a single process only. It backs tests
// and single-instance development; horizontally scaled deployments need the
// redis or advisory lockers.
type MemoryLocker struct {
	mu   sync.Mutex
	keys map[string]chan struct{}
	wait time.Duration
}

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	if wait <= 0 {
		wait = 3 * time.Second
	}
	return &MemoryLocker{
		keys: make(map[string]chan struct{}),
		wait: wait,
	}
}

func (l *MemoryLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	slot := l.slot(key)
	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrNotAcquired, ctx.Err())
	case <-time.After(l.wait):
		return fmt.Errorf("%w: key %q busy", ErrNotAcquired, key)
	}
	defer func() { <-slot }()
	return fn()
}

func (l *MemoryLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.keys[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.keys[key] = ch
	}
	return ch
}
