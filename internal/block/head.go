package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
)

// head is the last fetched chain head
type head struct {
	number    uint64
	fetchedAt time.Time
}

// BlockHeadProvider answers "what is the current chain head".
// With a zero TTL every call is a round-trip to the node.
//
//go:generate mockgen -source=head.go -destination=../mocks/block_head_provider.go -package=mocks -mock_names=BlockHeadProvider=MockBlockHeadProvider,BlockFetcher=MockBlockFetcher
type BlockHeadProvider interface {
	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)
}

// BlockFetcher reads the head straight from the node
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (uint64, error)
}

// Config holds configuration for the BlockHeadProvider
type Config struct {
	// TTL is how long a fetched head is served from memory, zero disables caching
	TTL time.Duration

	// StaleWindow is how long a previous head may be served when the node errors
	StaleWindow time.Duration
}

func (c Config) cacheEnabled() bool {
	return c.TTL > 0 || c.StaleWindow > 0
}

type blockHeadProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu   sync.RWMutex
	last *head
}

// NewBlockHeadProvider creates a BlockHeadProvider on top of fetcher
func NewBlockHeadProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockHeadProvider {
	return &blockHeadProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

func (p *blockHeadProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	if !p.config.cacheEnabled() {
		number, err := p.fetcher.FetchLatestBlock(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch latest block: %w", err)
		}
		return number, nil
	}

	p.mu.RLock()
	cached := p.last
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block head", zap.Uint64("block_number", cached.number))
		return cached.number, nil
	}

	number, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Serving stale block head after fetch failure",
				zap.Uint64("block_number", cached.number),
				zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.last = &head{number: number, fetchedAt: now}
	p.mu.Unlock()

	return number, nil
}
