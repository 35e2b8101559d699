package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/constants"
	"github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/dto"
	apierrors "github.com/pumpitfaxt/launchpad-indexer/internal/api/shared/errors"
	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store"
	"github.com/pumpitfaxt/launchpad-indexer/internal/workflows"
)

// Executor is the interface for the API executor.
// Every error it returns is an *apierrors.APIError.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ListTokens ingests new launches, then returns one page of tokens
	ListTokens(ctx context.Context, page, limit int, query string) (*dto.TokenListResponse, error)

	// GetToken retrieves a single token with its replies
	GetToken(ctx context.Context, address string) (*dto.TokenResponse, error)

	// GetPriceFeed ingests new price changes of a token, then returns its samples
	GetPriceFeed(ctx context.Context, address string) (*dto.FeedResponse, error)

	// AddReply validates, stamps and appends a reply to a token
	AddReply(ctx context.Context, address string, reply json.RawMessage) error

	// GetTokensByCreator retrieves every token created by an address
	GetTokensByCreator(ctx context.Context, creator string) (*dto.TokensResponse, error)

	// RefreshTokens ingests new launches
	RefreshTokens(ctx context.Context) error

	// Health checks the database connection
	Health(ctx context.Context) error
}

type executor struct {
	store  store.Store
	syncer workflows.Syncer
	json   adapter.JSON
	jcs    adapter.JCS
	clock  adapter.Clock
}

func NewExecutor(store store.Store, syncer workflows.Syncer, json adapter.JSON, jcs adapter.JCS, clock adapter.Clock) Executor {
	return &executor{store: store, syncer: syncer, json: json, jcs: jcs, clock: clock}
}

func (e *executor) ListTokens(ctx context.Context, page, limit int, query string) (*dto.TokenListResponse, error) {
	if err := e.RefreshTokens(ctx); err != nil {
		return nil, err
	}

	filter := store.TokenFilter{
		Query:  query,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	tokens, total, err := e.store.ListTokens(ctx, filter)
	if err != nil {
		return nil, internalError(ctx, err, "Failed to list tokens")
	}

	return &dto.TokenListResponse{
		Total:  total,
		Tokens: dto.MapTokensToDTO(tokens),
	}, nil
}

func (e *executor) GetToken(ctx context.Context, address string) (*dto.TokenResponse, error) {
	address, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	token, err := e.store.GetTokenByAddress(ctx, address)
	if err != nil {
		return nil, internalError(ctx, err, "Failed to get token")
	}
	if token == nil {
		return nil, apierrors.NewNotFoundError("Token not found")
	}

	tokenDTO, err := dto.MapTokenToDTO(token)
	if err != nil {
		return nil, internalError(ctx, err, "Failed to get token")
	}

	return &dto.TokenResponse{Token: tokenDTO}, nil
}

func (e *executor) GetPriceFeed(ctx context.Context, address string) (*dto.FeedResponse, error) {
	address, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	feed, err := e.syncer.SyncPriceFeed(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, apierrors.NewNotFoundError("Token not found")
		}
		return nil, internalError(ctx, err, "Failed to get price feed")
	}

	samples, err := feed.Samples()
	if err != nil {
		return nil, internalError(ctx, err, "Failed to get price feed")
	}

	return &dto.FeedResponse{Data: samples}, nil
}

func (e *executor) AddReply(ctx context.Context, address string, reply json.RawMessage) error {
	address, err := parseAddress(address)
	if err != nil {
		return err
	}

	fields, err := domain.ParseReply(reply)
	if err != nil {
		return apierrors.NewBadRequestError("Invalid reply", err.Error())
	}

	now := e.clock.Now()
	fields[constants.REPLY_FIELD_TIMESTAMP] = now.UnixMilli()
	fields[constants.REPLY_FIELD_ID] = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()

	raw, err := e.json.Marshal(fields)
	if err != nil {
		return internalError(ctx, err, "Failed to encode reply")
	}
	canonical, err := e.jcs.Transform(raw)
	if err != nil {
		return internalError(ctx, err, "Failed to encode reply")
	}

	if err := e.store.AppendReply(ctx, address, string(canonical)); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return apierrors.NewNotFoundError("Token not found")
		}
		return internalError(ctx, err, "Failed to add reply")
	}

	return nil
}

func (e *executor) GetTokensByCreator(ctx context.Context, creator string) (*dto.TokensResponse, error) {
	creator, err := parseAddress(creator)
	if err != nil {
		return nil, err
	}

	tokens, err := e.store.GetTokensByCreator(ctx, creator)
	if err != nil {
		return nil, internalError(ctx, err, "Failed to get tokens")
	}

	return &dto.TokensResponse{Tokens: dto.MapTokensToDTO(tokens)}, nil
}

func (e *executor) RefreshTokens(ctx context.Context) error {
	if _, err := e.syncer.SyncLaunches(ctx); err != nil {
		return internalError(ctx, err, "Failed to refresh tokens")
	}
	return nil
}

func (e *executor) Health(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return apierrors.NewServiceError("Database unavailable")
	}
	return nil
}

// parseAddress validates and checksums a path address
func parseAddress(address string) (string, error) {
	normalized, err := domain.ParseAddress(address)
	if err != nil {
		return "", apierrors.NewBadRequestError("Invalid address", fmt.Sprintf("%q is not a 0x-prefixed 40 hex character address", address))
	}
	return normalized, nil
}

// internalError logs the cause and hides it from the caller
func internalError(ctx context.Context, err error, message string) *apierrors.APIError {
	logger.ErrorCtx(ctx, err, zap.String("message", message))
	return apierrors.NewInternalError(message)
}
