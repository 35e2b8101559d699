package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
)

// PriceFeed holds the price samples of one token
type PriceFeed struct {
	ID           uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	TokenAddress string `gorm:"column:token_address;not null;uniqueIndex"`
	// LastRefreshedBlock is the next block to scan for PriceChange events
	LastRefreshedBlock uint64         `gorm:"column:last_refreshed_block;not null"`
	Data               datatypes.JSON `gorm:"column:data;type:jsonb;not null;default:'[]'"`
	CreatedAt          time.Time      `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the PriceFeed model
func (PriceFeed) TableName() string {
	return "price_feeds"
}

// Samples decodes the stored samples in append order
func (f *PriceFeed) Samples() ([]domain.PriceSample, error) {
	samples := []domain.PriceSample{}
	if len(f.Data) == 0 {
		return samples, nil
	}
	if err := json.Unmarshal(f.Data, &samples); err != nil {
		return nil, fmt.Errorf("failed to decode price feed of %s: %w", f.TokenAddress, err)
	}
	return samples, nil
}
