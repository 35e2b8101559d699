package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpitfaxt/launchpad-indexer/internal/config"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/mocks"
	"github.com/pumpitfaxt/launchpad-indexer/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testLimiterMocks contains all the mocks needed for testing the limiter
type testLimiterMocks struct {
	ctrl             *gomock.Controller
	redisClient      *mocks.MockRedisClient
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
}

// setupTestLimiter creates all the mocks for testing
func setupTestLimiter(t *testing.T) *testLimiterMocks {
	ctrl := gomock.NewController(t)

	return &testLimiterMocks{
		ctrl:             ctrl,
		redisClient:      mocks.NewMockRedisClient(ctrl),
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
	}
}

// setupDistributedLimiter creates a limiter backed by the mocked redis
func setupDistributedLimiter(t *testing.T, m *testLimiterMocks, cfg config.RateLimitConfig, redisAvailable bool) ratelimit.Limiter {
	statusCmd := redis.NewStatusCmd(context.Background())
	if redisAvailable {
		statusCmd.SetVal("PONG")
	} else {
		statusCmd.SetErr(errors.New("connection refused"))
	}
	m.redisClient.EXPECT().
		Ping(gomock.Any()).
		Return(statusCmd)

	m.redisClient.EXPECT().
		NewRateLimiter().
		Return(m.redisRateLimiter)

	// Ticker that never fires during the test
	ticker := time.NewTicker(time.Hour)
	t.Cleanup(ticker.Stop)
	m.clock.EXPECT().
		NewTicker(ratelimit.HEALTH_CHECK_INTERVAL).
		Return(ticker).
		AnyTimes()

	l, err := ratelimit.NewLimiter(cfg, m.redisClient, m.clock)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	return l
}

func TestNewLimiter_InvalidConfig(t *testing.T) {
	m := setupTestLimiter(t)
	defer m.ctrl.Finish()

	_, err := ratelimit.NewLimiter(config.RateLimitConfig{RequestsPerSecond: 0}, nil, m.clock)
	assert.Error(t, err)
}

func TestLimiter_Local(t *testing.T) {
	m := setupTestLimiter(t)
	defer m.ctrl.Finish()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.clock.EXPECT().Now().Return(now).AnyTimes()

	l, err := ratelimit.NewLimiter(config.RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             2,
		LocalMultiplier:   1,
	}, nil, m.clock)
	require.NoError(t, err)
	defer l.Close()

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	// other clients have their own bucket
	res, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiter_Distributed(t *testing.T) {
	m := setupTestLimiter(t)
	defer m.ctrl.Finish()

	cfg := config.RateLimitConfig{RequestsPerSecond: 5, Burst: 10}
	l := setupDistributedLimiter(t, m, cfg, true)

	expectedLimit := redis_rate.Limit{Rate: 5, Burst: 10, Period: time.Second}

	tests := []struct {
		name      string
		result    *redis_rate.Result
		allowed   bool
		remaining int
	}{
		{
			name:      "allowed",
			result:    &redis_rate.Result{Allowed: 1, Remaining: 9},
			allowed:   true,
			remaining: 9,
		},
		{
			name:    "denied",
			result:  &redis_rate.Result{Allowed: 0, RetryAfter: 200 * time.Millisecond},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.redisRateLimiter.EXPECT().
				Allow(gomock.Any(), ratelimit.REDIS_KEY_PREFIX+"10.0.0.1", expectedLimit).
				Return(tt.result, nil)

			res, err := l.Allow(context.Background(), "10.0.0.1")
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, res.Allowed)
			assert.Equal(t, tt.remaining, res.Remaining)
			assert.Equal(t, tt.result.RetryAfter, res.RetryAfter)
		})
	}
}

func TestLimiter_FallbackOnRedisError(t *testing.T) {
	m := setupTestLimiter(t)
	defer m.ctrl.Finish()

	m.clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	l := setupDistributedLimiter(t, m, config.RateLimitConfig{RequestsPerSecond: 5, Burst: 5}, true)

	// Only the first call reaches redis, later calls stay local
	m.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset")).
		Times(1)

	for i := 0; i < 3; i++ {
		res, err := l.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}

func TestLimiter_RedisUnavailableAtStart(t *testing.T) {
	m := setupTestLimiter(t)
	defer m.ctrl.Finish()

	m.clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	l := setupDistributedLimiter(t, m, config.RateLimitConfig{RequestsPerSecond: 5}, false)

	m.redisRateLimiter.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	res, err := l.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLimiter_ContextCanceled(t *testing.T) {
	m := setupTestLimiter(t)
	defer m.ctrl.Finish()

	l := setupDistributedLimiter(t, m, config.RateLimitConfig{RequestsPerSecond: 5}, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, context.Canceled)

	_, err := l.Allow(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, context.Canceled)
}
