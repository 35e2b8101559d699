package ethereum

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
)

// DialConfig bounds how long process start waits for the node
type DialConfig struct {
	Timeout    time.Duration // per attempt
	MaxElapsed time.Duration // overall, zero retries forever
}

// Dial connects to the node and verifies it answers a head request.
// Failed attempts are retried with exponential backoff.
func Dial(ctx context.Context, dialer adapter.EthClientDialer, rpcURL string, cfg DialConfig) (adapter.EthClient, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = cfg.MaxElapsed

	var client adapter.EthClient
	operation := func() error {
		attemptCtx := ctx
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		c, err := dialer.Dial(attemptCtx, rpcURL)
		if err != nil {
			return err
		}
		if _, err := c.HeaderByNumber(attemptCtx, nil); err != nil {
			c.Close()
			return err
		}
		client = c
		return nil
	}

	var attempts int
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Ethereum node unreachable, retrying",
			zap.String("rpc_url", rpcURL),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to dial ethereum node after %d attempts: %w", attempts+1, err)
	}
	return client, nil
}
