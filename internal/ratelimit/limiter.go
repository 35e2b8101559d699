package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/config"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
)

const (
	REDIS_KEY_PREFIX      = "launchpad:indexer:ratelimit:"
	HEALTH_CHECK_INTERVAL = 10 * time.Second

	// maxLocalKeys bounds the in-process limiter table, it is reset when full
	maxLocalKeys = 10000
)

// Result is the outcome of a single Allow call
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client may perform one more request
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one token for key
	Allow(ctx context.Context, key string) (*Result, error)

	// Close stops the redis health monitor
	Close() error
}

// limiter uses redis_rate when Redis is reachable and an in-process token bucket otherwise
type limiter struct {
	config         config.RateLimitConfig
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	redisAvailable atomic.Bool

	mu    sync.Mutex
	local map[string]*rate.Limiter

	done      chan struct{}
	closeOnce sync.Once
}

// NewLimiter creates a limiter. rc may be nil, the limiter is then purely local.
func NewLimiter(cfg config.RateLimitConfig, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		clock:  clock,
		local:  make(map[string]*rate.Limiter),
		done:   make(chan struct{}),
	}

	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisAvailable := true
		if err := rc.Ping(ctx).Err(); err != nil {
			redisAvailable = false
			logger.Warn("Redis unavailable, will use local rate limiter", zap.Error(err))
		}
		l.distributed = rc.NewRateLimiter()
		l.redisAvailable.Store(redisAvailable)

		go l.monitorRedisHealth()
	}

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("distributed", rc != nil),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (*Result, error) {
	if l.distributed != nil && l.redisAvailable.Load() {
		limit := redis_rate.Limit{
			Rate:   l.config.RequestsPerSecond,
			Burst:  l.config.Burst,
			Period: time.Second,
		}
		res, err := l.distributed.Allow(ctx, REDIS_KEY_PREFIX+key, limit)
		if err == nil {
			return &Result{
				Allowed:    res.Allowed > 0,
				Remaining:  res.Remaining,
				RetryAfter: res.RetryAfter,
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		l.redisAvailable.Store(false)
		logger.Warn("Redis rate limiter error, falling back to local", zap.Error(err))
	}

	return l.allowLocal(key), nil
}

func (l *limiter) allowLocal(key string) *Result {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		if len(l.local) >= maxLocalKeys {
			l.local = make(map[string]*rate.Limiter)
		}
		// Minimum rate of 1.0
		localRate := max(float64(l.config.RequestsPerSecond)*l.config.LocalMultiplier, 1.0)
		lim = rate.NewLimiter(rate.Limit(localRate), l.config.Burst)
		l.local[key] = lim
	}
	l.mu.Unlock()

	now := l.clock.Now()
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return &Result{Allowed: false, RetryAfter: delay}
	}
	return &Result{Allowed: true, Remaining: int(lim.TokensAt(now))}
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	ticker := l.clock.NewTicker(HEALTH_CHECK_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		redisAvailable := err == nil
		wasAvailable := l.redisAvailable.Swap(redisAvailable)
		if !wasAvailable && redisAvailable {
			logger.Info("Redis connection restored")
		}
	}
}

// Close stops background work. The redis client is owned by the caller.
func (l *limiter) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	return nil
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimitConfig) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.LocalMultiplier <= 0 {
		cfg.LocalMultiplier = 1.0
	}
	return nil
}
