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
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/middleware"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/server"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/executor"
	"github.com/pumpitfaxt/launchpad-indexer/internal/block"
	"github.com/pumpitfaxt/launchpad-indexer/internal/config"
	"github.com/pumpitfaxt/launchpad-indexer/internal/lock"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/messaging"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/ethereum"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/jetstream"
	"github.com/pumpitfaxt/launchpad-indexer/internal/ratelimit"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store"
	"github.com/pumpitfaxt/launchpad-indexer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "launchpad-api",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"component": "api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting launchpad indexer API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(cfg.Debug, cfg.Database.SlowQuery),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if cfg.Database.ReadHost != "" {
		if err := store.RegisterReadReplica(db, cfg.Database.ReadDSN()); err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("read_host", cfg.Database.ReadHost))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Connect to the Ethereum node
	ethClient, err := ethereum.Dial(ctx, adapter.NewEthClientDialer(), cfg.Ethereum.RPCURL, ethereum.DialConfig{
		Timeout:    cfg.Ethereum.DialTimeout,
		MaxElapsed: cfg.Ethereum.DialMaxElapsed,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum node", zap.Error(err))
	}
	chainClient := ethereum.NewClient(ethClient, ethereum.Options{LogPageSize: cfg.Ethereum.LogPageSize})
	defer chainClient.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum node")

	blockHead := block.NewBlockHeadProvider(ethereum.NewBlockFetcher(chainClient), block.Config{
		TTL:         cfg.Ethereum.BlockHeadTTL,
		StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
	}, clock)

	// Redis backs distributed locks and rate limiting when configured
	var redisClient adapter.RedisClient
	if cfg.Redis.Addr != "" {
		redisClient = adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}()
	}

	locker, err := lock.New(lock.Config{
		Backend: cfg.Sync.LockBackend,
		TTL:     cfg.Sync.LockTTL,
		Wait:    cfg.Sync.LockWait,
	}, redisClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create sync locker", zap.Error(err))
	}

	// Notifications are optional
	publisher := messaging.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	}
	defer publisher.Close()

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.NewLimiter(cfg.RateLimit, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err))
		}
		defer func() {
			_ = limiter.Close()
		}()
	}

	syncer := workflows.NewSyncer(workflows.Config{
		LaunchpadAddress: cfg.Ethereum.LaunchpadAddress,
		MetadataWorkers:  cfg.Sync.MetadataWorkers,
	}, dataStore, chainClient, blockHead, locker, publisher, clock)
	defer syncer.Close()

	exec := executor.NewExecutor(dataStore, syncer, jsonAdapter, adapter.NewJCS(), clock)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	srv := server.New(serverConfig, exec, limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Don't use the canceled ctx for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
