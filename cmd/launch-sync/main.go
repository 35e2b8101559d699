package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/block"
	"github.com/pumpitfaxt/launchpad-indexer/internal/config"
	"github.com/pumpitfaxt/launchpad-indexer/internal/lock"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/messaging"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/ethereum"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/jetstream"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store"
	"github.com/pumpitfaxt/launchpad-indexer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

// launch-sync runs one launch ingestion pass, for cron jobs and backfills
func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadLaunchSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "launchpad-launch-sync",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"component": "launch-sync",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	if err := run(ctx, cfg); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "launch-sync"))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.LaunchSyncConfig) error {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(cfg.Debug, cfg.Database.SlowQuery),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		return fmt.Errorf("failed to configure connection pool: %w", err)
	}
	dataStore := store.NewPGStore(db)

	clock := adapter.NewClock()

	ethClient, err := ethereum.Dial(ctx, adapter.NewEthClientDialer(), cfg.Ethereum.RPCURL, ethereum.DialConfig{
		Timeout:    cfg.Ethereum.DialTimeout,
		MaxElapsed: cfg.Ethereum.DialMaxElapsed,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}
	chainClient := ethereum.NewClient(ethClient, ethereum.Options{LogPageSize: cfg.Ethereum.LogPageSize})
	defer chainClient.Close()

	// One pass reads the head once, so no head caching
	blockHead := block.NewBlockHeadProvider(ethereum.NewBlockFetcher(chainClient), block.Config{}, clock)

	var redisClient adapter.RedisClient
	if cfg.Sync.LockBackend == lock.BACKEND_REDIS {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			_ = redisClient.Close()
		}()
	}

	locker, err := lock.New(lock.Config{
		Backend: cfg.Sync.LockBackend,
		TTL:     cfg.Sync.LockTTL,
		Wait:    cfg.Sync.LockWait,
	}, redisClient)
	if err != nil {
		return fmt.Errorf("failed to create sync locker: %w", err)
	}

	publisher := messaging.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), adapter.NewJSON())
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
	}
	defer publisher.Close()

	syncer := workflows.NewSyncer(workflows.Config{
		LaunchpadAddress: cfg.Ethereum.LaunchpadAddress,
		MetadataWorkers:  cfg.Sync.MetadataWorkers,
	}, dataStore, chainClient, blockHead, locker, publisher, clock)
	defer syncer.Close()

	result, err := syncer.SyncLaunches(ctx)
	if err != nil {
		return fmt.Errorf("launch sync failed: %w", err)
	}

	logger.InfoCtx(ctx, "Launch sync finished",
		zap.Uint64("from_block", result.FromBlock),
		zap.Uint64("to_block", result.ToBlock),
		zap.Int("events", result.Events),
		zap.Int("committed", result.Committed),
		zap.Int("skipped", result.Skipped),
	)

	return nil
}
