package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryLockerSerializes(t *testing.T) {
	locker := NewMemoryLocker(5 * time.Second)
	key := Key(uuid.New(), uuid.New())

	const workers = 10
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock(context.Background(), key, func() error {
				v := counter
				time.Sleep(time.Millisecond)
				counter = v + 1
				return nil
			})
			if err != nil {
				t.Errorf("WithLock: %v", err)
			}
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d, want %d", counter, workers)
	}
}

func TestMemoryLockerBusyKey(t *testing.T) {
	locker := NewMemoryLocker(20 * time.Millisecond)
	key := Key(uuid.New(), uuid.New())

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = locker.WithLock(context.Background(), key, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	err := locker.WithLock(context.Background(), key, func() error {
		t.Error("fn ran while key was held")
		return nil
	})
	if !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}
}

func TestMemoryLockerIndependentKeys(t *testing.T) {
	locker := NewMemoryLocker(20 * time.Millisecond)
	teamID := uuid.New()

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = locker.WithLock(context.Background(), Key(teamID, uuid.New()), func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	// same team, different challenge: no contention
	ran := false
	err := locker.WithLock(context.Background(), Key(teamID, uuid.New()), func() error {
		ran = true
		return nil
	})
	if err != nil || !ran {
		t.Fatalf("independent key blocked: ran=%v err=%v", ran, err)
	}
}

func TestMemoryLockerPropagatesFnError(t *testing.T) {
	locker := NewMemoryLocker(time.Second)
	key := Key(uuid.New(), uuid.New())
	sentinel := errors.New("boom")

	err := locker.WithLock(context.Background(), key, func() error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected fn error, got %v", err)
	}

	// key must be released after a failing fn
	err = locker.WithLock(context.Background(), key, func() error { return nil })
	if err != nil {
		t.Fatalf("key not released: %v", err)
	}
}

func TestMemoryLockerContextCancel(t *testing.T) {
	locker := NewMemoryLocker(10 * time.Second)
	key := Key(uuid.New(), uuid.New())

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = locker.WithLock(context.Background(), key, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := locker.WithLock(ctx, key, func() error { return nil })
	if !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("expected ErrNotAcquired on cancel, got %v", err)
	}
}
