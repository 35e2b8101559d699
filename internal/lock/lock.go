package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
)

const (
	BACKEND_LOCAL = "local"
	BACKEND_REDIS = "redis"
)

// ErrNotAcquired is returned when a guard could not be taken before the wait deadline
var ErrNotAcquired = errors.New("lock not acquired")

// Locker hands out keyed mutual exclusion guards.
// Lock blocks until the guard is held or ctx is done. The returned unlock is safe to call more than once.
//
//go:generate mockgen -source=lock.go -destination=../mocks/locker.go -package=mocks -mock_names=Locker=MockLocker
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Config holds locker settings
type Config struct {
	Backend string
	// TTL bounds how long a crashed holder keeps a redis guard
	TTL time.Duration
	// Wait bounds how long Lock blocks before giving up
	Wait time.Duration
}

// New creates the locker for cfg.Backend. rc is only used by the redis backend.
func New(cfg Config, rc adapter.RedisClient) (Locker, error) {
	switch cfg.Backend {
	case "", BACKEND_LOCAL:
		return NewLocalLocker(cfg.Wait), nil
	case BACKEND_REDIS:
		if rc == nil {
			return nil, fmt.Errorf("redis lock backend requires a redis client")
		}
		return NewRedisLocker(rc, cfg.TTL, cfg.Wait), nil
	default:
		return nil, fmt.Errorf("unknown lock backend: %s", cfg.Backend)
	}
}

// withWait applies the wait bound to ctx, a zero wait leaves ctx unchanged
func withWait(ctx context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if wait <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, wait)
}

// waitError reports the caller's own cancellation as is and the wait bound as ErrNotAcquired
func waitError(parent context.Context, key string, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	return fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, err)
}
