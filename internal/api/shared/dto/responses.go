package dto

import "github.com/pumpitfaxt/launchpad-indexer/internal/domain"

// TokenListResponse is a page of tokens and the number of tokens matching the filter
type TokenListResponse struct {
	Total  int64          `json:"total"`
	Tokens []TokenSummary `json:"tokens"`
}

// TokenResponse wraps a single token
type TokenResponse struct {
	Token *Token `json:"token"`
}

// TokensResponse wraps the tokens of one creator
type TokensResponse struct {
	Tokens []TokenSummary `json:"tokens"`
}

// FeedResponse holds the price samples of a token
type FeedResponse struct {
	Data []domain.PriceSample `json:"data"`
}

// MessageResponse acknowledges a write
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status string `json:"status"`
}
