// Package lock serializes read-modify-write cycles on a key, such as one user's cart.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nirjapatel2005/Tribal-Craft/internal/domain"
)

// Locker hands out exclusive access to a key. The returned unlock must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker is an in-process keyed mutex. A wait ends with ctx or after the wait bound, whichever
// comes first.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

type slot struct {
	ch      chan struct{}
	waiters int
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot), wait: wait}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.waiters++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-waitCtx.Done():
		l.release(key, s, false)
		return nil, lockError(key, waitCtx.Err())
	}

	var once sync.Once
	return func() { once.Do(func() { l.release(key, s, true) }) }, nil
}

func (l *LocalLocker) release(key string, s *slot, held bool) {
	if held {
		<-s.ch
	}
	l.mu.Lock()
	s.waiters--
	if s.waiters == 0 {
		delete(l.slots, key)
	}
	l.mu.Unlock()
}

func lockError(key string, cause error) error {
	if errors.Is(cause, context.DeadlineExceeded) {
		return domain.ConflictError("%s is busy, try again", key)
	}
	return domain.StorageError(cause, "could not lock %s", key)
}
