package workflows

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store/schema"
)

func (s *syncer) SyncPriceFeed(ctx context.Context, address string) (*schema.PriceFeed, error) {
	unlock, err := s.locker.Lock(ctx, domain.FeedLockKey(address))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire feed sync guard: %w", err)
	}
	defer unlock()

	feed, err := s.store.GetPriceFeed(ctx, address)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return s.createPriceFeed(ctx, address)
	}

	head, err := s.blockHead.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain head: %w", err)
	}
	if feed.LastRefreshedBlock > head {
		return feed, nil
	}

	events, err := s.client.ReadEvents(ctx, address, domain.EVENT_PRICE_CHANGE, feed.LastRefreshedBlock, &head)
	if err != nil {
		return nil, fmt.Errorf("failed to read price events of %s: %w", address, err)
	}

	samples := make([]domain.PriceSample, 0, len(events))
	for _, event := range events {
		sample, err := priceSampleFromEvent(event)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping malformed price event",
				zap.String("token", address),
				zap.Uint64("block", event.BlockNumber),
				zap.Error(err),
			)
			continue
		}
		samples = append(samples, sample)
	}

	updated, err := s.store.AppendPriceSamples(ctx, address, samples, head+1)
	if err != nil {
		return nil, err
	}

	if len(samples) > 0 {
		logger.DebugCtx(ctx, "Price samples appended",
			zap.String("token", address),
			zap.Int("samples", len(samples)),
			zap.Uint64("last_refreshed_block", updated.LastRefreshedBlock),
		)

		err := s.publisher.PublishFeedUpdate(ctx, &domain.FeedNotification{
			Address:            address,
			Samples:            samples,
			LastRefreshedBlock: updated.LastRefreshedBlock,
		})
		if err != nil {
			logger.WarnCtx(ctx, "Failed to publish feed notification",
				zap.String("token", address),
				zap.Error(err),
			)
		}
	}

	return updated, nil
}

// createPriceFeed starts an empty feed at the config start block for a token that has none
func (s *syncer) createPriceFeed(ctx context.Context, address string) (*schema.PriceFeed, error) {
	token, err := s.store.GetTokenByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTokenNotFound
	}

	cfg, err := s.EnsureConfig(ctx)
	if err != nil {
		return nil, err
	}

	return s.store.CreatePriceFeedIfNotExists(ctx, address, cfg.StartBlock)
}
