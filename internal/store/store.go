package store

import (
	"context"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store/schema"
)

// TokenFilter selects a page of tokens
type TokenFilter struct {
	// Query is a case-insensitive substring matched against name, symbol and description
	Query  string
	Limit  int
	Offset int
}

// LaunchedToken is the chain-derived part of a token
type LaunchedToken struct {
	Address     string
	Creator     string
	Name        string
	Symbol      string
	Image       string
	Metadata    domain.TokenMetadata
	TotalSupply float64
}

// CommitLaunchInput is everything written for one Launch event
type CommitLaunchInput struct {
	Token LaunchedToken
	// SeedSample starts the price feed when the token has none yet
	SeedSample domain.PriceSample
	// FeedWatermark is the next block to scan for a newly created feed
	FeedWatermark uint64
	// TokensLastBlock is the launch watermark after this event
	TokensLastBlock uint64
}

// Store defines the interface for database operations.
// Lookups return nil, nil when the row does not exist.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetSyncConfig returns the singleton sync config
	GetSyncConfig(ctx context.Context) (*schema.SyncConfig, error)
	// EnsureSyncConfig creates the sync config with both blocks set to startBlock unless it already exists
	EnsureSyncConfig(ctx context.Context, startBlock uint64) (*schema.SyncConfig, error)
	// AdvanceTokensLastBlock moves the launch watermark forward, it never moves back
	AdvanceTokensLastBlock(ctx context.Context, block uint64) error

	// CommitLaunch upserts the token, creates its price feed if absent and advances the launch watermark
	CommitLaunch(ctx context.Context, input CommitLaunchInput) error

	// GetTokenByAddress returns a token with its replies
	GetTokenByAddress(ctx context.Context, address string) (*schema.Token, error)
	// ListTokens returns a page of tokens without replies and the total number of matches
	ListTokens(ctx context.Context, filter TokenFilter) ([]schema.Token, int64, error)
	// GetTokensByCreator returns every token created by an address, without replies
	GetTokensByCreator(ctx context.Context, creator string) ([]schema.Token, error)
	// AppendReply appends a serialized reply, domain.ErrTokenNotFound when no token matched
	AppendReply(ctx context.Context, address string, reply string) error

	// GetPriceFeed returns the price feed of a token
	GetPriceFeed(ctx context.Context, address string) (*schema.PriceFeed, error)
	// CreatePriceFeedIfNotExists creates an empty price feed and returns the stored row
	CreatePriceFeedIfNotExists(ctx context.Context, address string, watermark uint64) (*schema.PriceFeed, error)
	// AppendPriceSamples appends samples, moves the feed watermark forward and returns the stored row
	AppendPriceSamples(ctx context.Context, address string, samples []domain.PriceSample, watermark uint64) (*schema.PriceFeed, error)

	// Ping checks database connectivity
	Ping(ctx context.Context) error
}
