package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/store/schema"
)

// tokenSummaryColumns is every token column except replies
var tokenSummaryColumns = []string{
	"id", "address", "creator", "name", "symbol", "image",
	"description", "telegram", "twitter", "website", "total_supply",
	"created_at", "updated_at",
}

// chainDerivedColumns are overwritten when a launch is ingested again
var chainDerivedColumns = []string{
	"creator", "name", "symbol", "image",
	"description", "telegram", "twitter", "website", "total_supply",
	"updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// RegisterReadReplica routes plain reads to a replica. Sync reads still go to the primary.
func RegisterReadReplica(db *gorm.DB, readDSN string) error {
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{postgres.Open(readDSN)},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool of the underlying *sql.DB.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// primary pins the query to the write node so sync reads never see replica lag
func (s *pgStore) primary(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	if hasDBResolver(s.db) {
		db = db.Clauses(dbresolver.Write)
	}
	return db
}

func (s *pgStore) Ping(ctx context.Context) error {
	return s.primary(ctx).Exec("SELECT 1").Error
}

// =============================================================================
// Sync config
// =============================================================================

func (s *pgStore) GetSyncConfig(ctx context.Context) (*schema.SyncConfig, error) {
	var cfg schema.SyncConfig
	err := s.primary(ctx).Where("id = ?", schema.SYNC_CONFIG_ID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync config: %w", err)
	}
	return &cfg, nil
}

func (s *pgStore) EnsureSyncConfig(ctx context.Context, startBlock uint64) (*schema.SyncConfig, error) {
	cfg := schema.SyncConfig{
		ID:              schema.SYNC_CONFIG_ID,
		TokensLastBlock: startBlock,
		StartBlock:      startBlock,
	}
	err := s.primary(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cfg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create sync config: %w", err)
	}

	stored, err := s.GetSyncConfig(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrConfigMissing
	}
	return stored, nil
}

func (s *pgStore) AdvanceTokensLastBlock(ctx context.Context, block uint64) error {
	return advanceTokensLastBlock(s.primary(ctx), block)
}

func advanceTokensLastBlock(tx *gorm.DB, block uint64) error {
	result := tx.Model(&schema.SyncConfig{}).
		Where("id = ?", schema.SYNC_CONFIG_ID).
		Updates(map[string]interface{}{
			"tokens_last_block": gorm.Expr("GREATEST(tokens_last_block, ?)", block),
			"updated_at":        gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to advance tokens last block: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrConfigMissing
	}
	return nil
}

// =============================================================================
// Tokens
// =============================================================================

func (s *pgStore) CommitLaunch(ctx context.Context, input CommitLaunchInput) error {
	seed, err := json.Marshal([]domain.PriceSample{input.SeedSample})
	if err != nil {
		return fmt.Errorf("failed to encode seed sample: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		md := input.Token.Metadata
		token := schema.Token{
			Address:     input.Token.Address,
			Creator:     input.Token.Creator,
			Name:        input.Token.Name,
			Symbol:      input.Token.Symbol,
			Image:       input.Token.Image,
			Description: md.Description,
			Telegram:    md.Telegram,
			Twitter:     md.Twitter,
			Website:     md.Website,
			TotalSupply: input.Token.TotalSupply,
			Replies:     datatypes.JSON("[]"),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns(chainDerivedColumns),
		}).Create(&token).Error
		if err != nil {
			return fmt.Errorf("failed to upsert token %s: %w", input.Token.Address, err)
		}

		feed := schema.PriceFeed{
			TokenAddress:       input.Token.Address,
			LastRefreshedBlock: input.FeedWatermark,
			Data:               datatypes.JSON(seed),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_address"}},
			DoNothing: true,
		}).Create(&feed).Error
		if err != nil {
			return fmt.Errorf("failed to create price feed for %s: %w", input.Token.Address, err)
		}

		return advanceTokensLastBlock(tx, input.TokensLastBlock)
	})
}

func (s *pgStore) GetTokenByAddress(ctx context.Context, address string) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

func (s *pgStore) ListTokens(ctx context.Context, filter TokenFilter) ([]schema.Token, int64, error) {
	search := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&schema.Token{})
		if filter.Query != "" {
			pattern := "%" + likeEscaper.Replace(filter.Query) + "%"
			query = query.Where("(name ILIKE ? OR symbol ILIKE ? OR description ILIKE ?)", pattern, pattern, pattern)
		}
		return query
	}

	var total int64
	if err := search().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	tokens := []schema.Token{}
	if total == 0 {
		return tokens, 0, nil
	}

	err := search().
		Select(tokenSummaryColumns).
		Order("id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&tokens).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, total, nil
}

func (s *pgStore) GetTokensByCreator(ctx context.Context, creator string) ([]schema.Token, error) {
	tokens := []schema.Token{}
	err := s.db.WithContext(ctx).
		Select(tokenSummaryColumns).
		Where("creator = ?", creator).
		Order("id ASC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens by creator: %w", err)
	}
	return tokens, nil
}

func (s *pgStore) AppendReply(ctx context.Context, address string, reply string) error {
	result := s.primary(ctx).
		Model(&schema.Token{}).
		Where("address = ?", address).
		UpdateColumns(map[string]interface{}{
			"replies":    gorm.Expr("replies || jsonb_build_array(?::text)", reply),
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to append reply: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// =============================================================================
// Price feeds
// =============================================================================

func (s *pgStore) GetPriceFeed(ctx context.Context, address string) (*schema.PriceFeed, error) {
	var feed schema.PriceFeed
	err := s.primary(ctx).Where("token_address = ?", address).First(&feed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get price feed: %w", err)
	}
	return &feed, nil
}

func (s *pgStore) CreatePriceFeedIfNotExists(ctx context.Context, address string, watermark uint64) (*schema.PriceFeed, error) {
	feed := schema.PriceFeed{
		TokenAddress:       address,
		LastRefreshedBlock: watermark,
		Data:               datatypes.JSON("[]"),
	}
	err := s.primary(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_address"}},
			DoNothing: true,
		}).
		Create(&feed).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create price feed: %w", err)
	}

	stored, err := s.GetPriceFeed(ctx, address)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrTokenNotFound
	}
	return stored, nil
}

func (s *pgStore) AppendPriceSamples(ctx context.Context, address string, samples []domain.PriceSample, watermark uint64) (*schema.PriceFeed, error) {
	if samples == nil {
		samples = []domain.PriceSample{}
	}
	data, err := json.Marshal(samples)
	if err != nil {
		return nil, fmt.Errorf("failed to encode price samples: %w", err)
	}

	result := s.primary(ctx).
		Model(&schema.PriceFeed{}).
		Where("token_address = ?", address).
		UpdateColumns(map[string]interface{}{
			"data":                 gorm.Expr("data || ?::jsonb", string(data)),
			"last_refreshed_block": gorm.Expr("GREATEST(last_refreshed_block, ?)", watermark),
			"updated_at":           gorm.Expr("now()"),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to append price samples: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTokenNotFound
	}

	return s.GetPriceFeed(ctx, address)
}
