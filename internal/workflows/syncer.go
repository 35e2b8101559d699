package workflows

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/block"
	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/lock"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/messaging"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/ethereum"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store/schema"
)

const DEFAULT_METADATA_WORKERS = 8

// Config holds the syncer configuration
type Config struct {
	// LaunchpadAddress is the contract emitting Launch events
	LaunchpadAddress string
	// MetadataWorkers bounds concurrent token accessor reads
	MetadataWorkers int
}

// LaunchSyncResult summarizes one launch ingestion run
type LaunchSyncResult struct {
	FromBlock uint64
	ToBlock   uint64
	Events    int
	Committed int
	Skipped   int
}

// Syncer reconciles the local cache with the launchpad contract on demand
//
//go:generate mockgen -source=syncer.go -destination=../mocks/syncer.go -package=mocks -mock_names=Syncer=MockSyncer
type Syncer interface {
	// EnsureConfig returns the sync config, creating it from the chain head on first use
	EnsureConfig(ctx context.Context) (*schema.SyncConfig, error)

	// SyncLaunches ingests Launch events up to the chain head
	SyncLaunches(ctx context.Context) (*LaunchSyncResult, error)

	// SyncPriceFeed ingests PriceChange events of one token and returns its stored feed.
	// address must already be checksummed.
	SyncPriceFeed(ctx context.Context, address string) (*schema.PriceFeed, error)

	// Close releases the metadata worker pool
	Close()
}

type syncer struct {
	config    Config
	store     store.Store
	client    ethereum.EthereumClient
	blockHead block.BlockHeadProvider
	locker    lock.Locker
	publisher messaging.Publisher
	clock     adapter.Clock
	pool      pond.ResultPool[*fetchedToken]
}

// NewSyncer creates a new syncer
func NewSyncer(
	cfg Config,
	st store.Store,
	client ethereum.EthereumClient,
	blockHead block.BlockHeadProvider,
	locker lock.Locker,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Syncer {
	if cfg.MetadataWorkers <= 0 {
		cfg.MetadataWorkers = DEFAULT_METADATA_WORKERS
	}
	cfg.LaunchpadAddress = domain.NormalizeAddress(cfg.LaunchpadAddress)
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}

	return &syncer{
		config:    cfg,
		store:     st,
		client:    client,
		blockHead: blockHead,
		locker:    locker,
		publisher: publisher,
		clock:     clock,
		pool:      pond.NewResultPool[*fetchedToken](cfg.MetadataWorkers),
	}
}

func (s *syncer) EnsureConfig(ctx context.Context) (*schema.SyncConfig, error) {
	cfg, err := s.store.GetSyncConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}

	head, err := s.blockHead.GetLatestBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain head: %w", err)
	}

	startBlock := domain.StartBlockFromHead(head)
	cfg, err = s.store.EnsureSyncConfig(ctx, startBlock)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Sync config created",
		zap.Uint64("head", head),
		zap.Uint64("start_block", cfg.StartBlock),
	)
	return cfg, nil
}

func (s *syncer) Close() {
	s.pool.StopAndWait()
}

// launchedTokenAddress returns "" when the event carries no usable token address
func launchedTokenAddress(event domain.ContractEvent) string {
	return event.AddressArg("token")
}

// bigArg reads a uint256 event argument
func bigArg(event domain.ContractEvent, name string) (*big.Int, error) {
	v, ok := event.Args[name].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("event %s at block %d has no uint256 argument %q", event.Name, event.BlockNumber, name)
	}
	return v, nil
}

// maxSampleUnix is the last second of year 9999, the upper bound of an encodable sample time
var maxSampleUnix = time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).Unix() - 1

// priceSampleFromEvent normalizes a PriceChange event
func priceSampleFromEvent(event domain.ContractEvent) (domain.PriceSample, error) {
	ts, err := bigArg(event, "time")
	if err != nil {
		return domain.PriceSample{}, err
	}
	if ts.Sign() < 0 || !ts.IsInt64() || ts.Int64() > maxSampleUnix {
		return domain.PriceSample{}, fmt.Errorf("event %s at block %d has out of range time %s", event.Name, event.BlockNumber, ts.String())
	}
	value, err := bigArg(event, "value")
	if err != nil {
		return domain.PriceSample{}, err
	}
	mktCap, err := bigArg(event, "mktCap")
	if err != nil {
		return domain.PriceSample{}, err
	}

	return domain.PriceSample{
		Time:   time.Unix(ts.Int64(), 0).UTC(),
		Value:  domain.FromBaseUnits(value),
		MktCap: domain.FromBaseUnits(mktCap),
	}, nil
}
