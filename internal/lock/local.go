package lock

import (
	"context"
	"sync"
	"time"
)

type slot struct {
	ch   chan struct{}
	refs int
}

// localLocker is an in-process keyed mutex for single replica deployments
type localLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker(wait time.Duration) Locker {
	return &localLocker{
		slots: make(map[string]*slot),
		wait:  wait,
	}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquireSlot(key)

	waitCtx, cancel := withWait(ctx, l.wait)
	defer cancel()

	select {
	case s.ch <- struct{}{}:
	case <-waitCtx.Done():
		l.releaseSlot(key, s)
		return nil, waitError(ctx, key, waitCtx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(key, s)
		})
	}, nil
}

func (l *localLocker) acquireSlot(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *localLocker) releaseSlot(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
