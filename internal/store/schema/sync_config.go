package schema

import "time"

// SYNC_CONFIG_ID is the primary key of the singleton config row
const SYNC_CONFIG_ID = 1

// SyncConfig holds the launch ingestion watermark and the block the index started from
type SyncConfig struct {
	ID              int16     `gorm:"column:id;primaryKey"`
	TokensLastBlock uint64    `gorm:"column:tokens_last_block;not null"`
	StartBlock      uint64    `gorm:"column:start_block;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the SyncConfig model
func (SyncConfig) TableName() string {
	return "config"
}
