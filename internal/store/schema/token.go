package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Token represents a token created through the launchpad
type Token struct {
	// ID is the internal database primary key, also the listing order
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the checksummed token contract address
	Address string `gorm:"column:address;not null;uniqueIndex"`
	// Creator is the checksummed address returned by the token's creator() accessor
	Creator     string  `gorm:"column:creator;not null;default:''"`
	Name        string  `gorm:"column:name;not null;default:''"`
	Symbol      string  `gorm:"column:symbol;not null;default:''"`
	Image       string  `gorm:"column:image;not null;default:''"`
	Description string  `gorm:"column:description;not null;default:''"`
	Telegram    string  `gorm:"column:telegram;not null;default:''"`
	Twitter     string  `gorm:"column:twitter;not null;default:''"`
	Website     string  `gorm:"column:website;not null;default:''"`
	TotalSupply float64 `gorm:"column:total_supply;not null;default:0"`
	// Replies is a JSON array of serialized reply objects, append-only
	Replies   datatypes.JSON `gorm:"column:replies;type:jsonb;not null;default:'[]'"`
	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}

// ReplyList decodes the stored reply blobs in submission order
func (t *Token) ReplyList() ([]string, error) {
	replies := []string{}
	if len(t.Replies) == 0 {
		return replies, nil
	}
	if err := json.Unmarshal(t.Replies, &replies); err != nil {
		return nil, fmt.Errorf("failed to decode replies of %s: %w", t.Address, err)
	}
	return replies, nil
}
