package lock

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
)

const (
	REDIS_KEY_PREFIX = "launchpad:indexer:lock:"
	DEFAULT_LOCK_TTL = 2 * time.Minute
)

// releaseScript deletes the key only while it still holds our token
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

// extendScript resets the expiry only while the key still holds our token
const extendScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`

// errBusy marks a poll where another holder had the key
type errBusy struct{}

func (errBusy) Error() string { return "lock held by another owner" }

// redisLocker guards keys across replicas with SET NX PX.
// The expiry is renewed every ttl/3 while the guard is held, so ttl only bounds a crashed holder.
type redisLocker struct {
	client adapter.RedisClient
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLocker creates a distributed locker
func NewRedisLocker(client adapter.RedisClient, ttl, wait time.Duration) Locker {
	if ttl <= 0 {
		ttl = DEFAULT_LOCK_TTL
	}
	return &redisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
	}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	waitCtx, cancel := withWait(ctx, l.wait)
	defer cancel()

	redisKey := REDIS_KEY_PREFIX + key
	token := uuid.NewString()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 0

	operation := func() error {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if !ok {
			return errBusy{}
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, waitCtx)); err != nil {
		if waitCtx.Err() != nil {
			return nil, waitError(ctx, key, waitCtx.Err())
		}
		return nil, err
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(key, redisKey, token, stop, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done

			// the caller's ctx may already be done, release on a fresh one
			relCtx, relCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer relCancel()

			if err := l.client.Eval(relCtx, releaseScript, []string{redisKey}, token).Err(); err != nil {
				logger.Warn("Failed to release redis lock", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}

// keepAlive extends the guard until stop is closed or the key no longer holds token
func (l *redisLocker) keepAlive(key, redisKey, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := l.ttl / 3
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			n, err := l.client.Eval(ctx, extendScript, []string{redisKey}, token, l.ttl.Milliseconds()).Int64()
			cancel()
			if err != nil {
				logger.Warn("Failed to extend redis lock", zap.String("key", key), zap.Error(err))
				continue
			}
			if n == 0 {
				logger.Warn("Redis lock expired while held", zap.String("key", key))
				return
			}
		}
	}
}
