package workflows

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/ethereum"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store"
)

// fetchedToken is the outcome of reading one launched token's accessors
type fetchedToken struct {
	event domain.ContractEvent
	token store.LaunchedToken
	err   error
}

func (s *syncer) SyncLaunches(ctx context.Context) (*LaunchSyncResult, error) {
	unlock, err := s.locker.Lock(ctx, domain.LOCK_KEY_LAUNCH_SYNC)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire launch sync guard: %w", err)
	}
	defer unlock()

	cfg, err := s.EnsureConfig(ctx)
	if err != nil {
		return nil, err
	}

	head, err := s.blockHead.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain head: %w", err)
	}

	result := &LaunchSyncResult{
		FromBlock: cfg.TokensLastBlock,
		ToBlock:   head,
	}
	if cfg.TokensLastBlock > head {
		logger.DebugCtx(ctx, "No new blocks to scan for launches",
			zap.Uint64("tokens_last_block", cfg.TokensLastBlock),
			zap.Uint64("head", head),
		)
		return result, nil
	}

	events, err := s.client.ReadEvents(ctx, s.config.LaunchpadAddress, domain.EVENT_LAUNCH, cfg.TokensLastBlock, &head)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch events: %w", err)
	}
	result.Events = len(events)

	var launches []domain.ContractEvent
	for _, event := range events {
		if launchedTokenAddress(event) == "" {
			logger.WarnCtx(ctx, "Skipping launch event without token address",
				zap.Uint64("block", event.BlockNumber),
				zap.String("tx_hash", event.TxHash),
			)
			result.Skipped++
			continue
		}
		launches = append(launches, event)
	}

	fetched, err := s.fetchLaunchedTokens(ctx, launches)
	if err != nil {
		return nil, err
	}

	seed := domain.ZeroSample(s.clock.Now().Add(-domain.SEED_SAMPLE_OFFSET))

	var committed []*fetchedToken
	defer func() {
		s.publishLaunches(ctx, committed)
	}()

	for _, f := range fetched {
		if f.err != nil {
			return result, fmt.Errorf("failed to read token %s launched at block %d: %w",
				launchedTokenAddress(f.event), f.event.BlockNumber, f.err)
		}

		err := s.store.CommitLaunch(ctx, store.CommitLaunchInput{
			Token:           f.token,
			SeedSample:      seed,
			FeedWatermark:   head,
			TokensLastBlock: f.event.BlockNumber,
		})
		if err != nil {
			return result, fmt.Errorf("failed to commit token %s launched at block %d: %w",
				f.token.Address, f.event.BlockNumber, err)
		}

		committed = append(committed, f)
		result.Committed++
	}

	if err := s.store.AdvanceTokensLastBlock(ctx, head+1); err != nil {
		return result, err
	}

	logger.InfoCtx(ctx, "Launch sync completed",
		zap.Uint64("from_block", result.FromBlock),
		zap.Uint64("to_block", result.ToBlock),
		zap.Int("events", result.Events),
		zap.Int("committed", result.Committed),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// fetchLaunchedTokens reads accessors of every launched token on the worker pool.
// Results keep the order of events.
func (s *syncer) fetchLaunchedTokens(ctx context.Context, events []domain.ContractEvent) ([]*fetchedToken, error) {
	if len(events) == 0 {
		return nil, nil
	}

	group := s.pool.NewGroup()
	for _, event := range events {
		group.Submit(func() *fetchedToken {
			token, err := s.readLaunchedToken(ctx, launchedTokenAddress(event))
			return &fetchedToken{event: event, token: token, err: err}
		})
	}

	fetched, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to read launched tokens: %w", err)
	}
	return fetched, nil
}

// readLaunchedToken reads the chain-derived fields of a token contract
func (s *syncer) readLaunchedToken(ctx context.Context, address string) (store.LaunchedToken, error) {
	token := store.LaunchedToken{Address: address}

	var err error
	if token.Name, err = ethereum.ReadString(ctx, s.client, address, domain.ACCESSOR_NAME); err != nil {
		return token, err
	}
	if token.Symbol, err = ethereum.ReadString(ctx, s.client, address, domain.ACCESSOR_SYMBOL); err != nil {
		return token, err
	}
	if token.Creator, err = ethereum.ReadAddress(ctx, s.client, address, domain.ACCESSOR_CREATOR); err != nil {
		return token, err
	}
	if token.Image, err = ethereum.ReadString(ctx, s.client, address, domain.ACCESSOR_IMAGE); err != nil {
		return token, err
	}

	rawMetadata, err := ethereum.ReadString(ctx, s.client, address, domain.ACCESSOR_METADATA)
	if err != nil {
		return token, err
	}
	token.Metadata, err = domain.ParseTokenMetadata(rawMetadata)
	if err != nil {
		logger.WarnCtx(ctx, "Ignoring malformed token metadata",
			zap.String("token", address),
			zap.Error(err),
		)
		token.Metadata = domain.TokenMetadata{}
	}

	totalSupply, err := ethereum.ReadUint256(ctx, s.client, address, domain.ACCESSOR_TOTAL_SUPPLY)
	if err != nil {
		return token, err
	}
	token.TotalSupply = domain.FromBaseUnits(totalSupply)

	return token, nil
}

// publishLaunches announces committed tokens, failures are only logged
func (s *syncer) publishLaunches(ctx context.Context, committed []*fetchedToken) {
	for _, f := range committed {
		err := s.publisher.PublishLaunch(ctx, &domain.LaunchNotification{
			Address:     f.token.Address,
			Creator:     f.token.Creator,
			Name:        f.token.Name,
			Symbol:      f.token.Symbol,
			TotalSupply: f.token.TotalSupply,
			BlockNumber: f.event.BlockNumber,
		})
		if err != nil {
			logger.WarnCtx(ctx, "Failed to publish launch notification",
				zap.String("token", f.token.Address),
				zap.Error(err),
			)
		}
	}
}
