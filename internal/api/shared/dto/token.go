package dto

import (
	"time"

	"github.com/pumpitfaxt/launchpad-indexer/internal/store/schema"
)

// TokenSummary is a token as listed, without replies
type TokenSummary struct {
	Address     string    `json:"address"`
	Creator     string    `json:"creator"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Telegram    string    `json:"telegram"`
	Twitter     string    `json:"twitter"`
	Website     string    `json:"website"`
	TotalSupply float64   `json:"totalSupply"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Token is a single token with its replies in submission order
type Token struct {
	TokenSummary
	Replies []string `json:"replies"`
}

// MapTokenSummaryToDTO maps a stored token to its list form
func MapTokenSummaryToDTO(t schema.Token) TokenSummary {
	return TokenSummary{
		Address:     t.Address,
		Creator:     t.Creator,
		Name:        t.Name,
		Symbol:      t.Symbol,
		Image:       t.Image,
		Description: t.Description,
		Telegram:    t.Telegram,
		Twitter:     t.Twitter,
		Website:     t.Website,
		TotalSupply: t.TotalSupply,
		CreatedAt:   t.CreatedAt,
	}
}

// MapTokensToDTO maps stored tokens to their list form, never returning nil
func MapTokensToDTO(tokens []schema.Token) []TokenSummary {
	out := make([]TokenSummary, len(tokens))
	for i, t := range tokens {
		out[i] = MapTokenSummaryToDTO(t)
	}
	return out
}

// MapTokenToDTO maps a stored token including its replies
func MapTokenToDTO(t *schema.Token) (*Token, error) {
	replies, err := t.ReplyList()
	if err != nil {
		return nil, err
	}
	return &Token{
		TokenSummary: MapTokenSummaryToDTO(*t),
		Replies:      replies,
	}, nil
}
