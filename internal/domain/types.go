package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ContractEvent is a decoded contract log
type ContractEvent struct {
	Name        string                 `json:"name"`
	Contract    string                 `json:"contract"`
	BlockNumber uint64                 `json:"block_number"`
	LogIndex    uint                   `json:"log_index"`
	TxHash      string                 `json:"tx_hash"`
	Args        map[string]interface{} `json:"args"`
}

// AddressArg returns the checksummed address argument name, or "" when absent or zero
func (e ContractEvent) AddressArg(name string) string {
	switch v := e.Args[name].(type) {
	case common.Address:
		if v == (common.Address{}) {
			return ""
		}
		return v.Hex()
	case string:
		if !IsValidAddress(v) || NormalizeAddress(v) == ETHEREUM_ZERO_ADDRESS {
			return ""
		}
		return NormalizeAddress(v)
	}
	return ""
}

// PriceSample is one normalized price-feed data point
type PriceSample struct {
	Time   time.Time `json:"time"`
	Value  float64   `json:"value"`
	MktCap float64   `json:"mktCap"`
}

// ZeroSample is the placeholder sample a new feed starts with
func ZeroSample(at time.Time) PriceSample {
	return PriceSample{Time: at.UTC()}
}

// LaunchNotification is published after a launched token is stored
type LaunchNotification struct {
	Address     string  `json:"address"`
	Creator     string  `json:"creator"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	TotalSupply float64 `json:"totalSupply"`
	BlockNumber uint64  `json:"blockNumber"`
}

// FeedNotification is published after samples are appended to a price feed
type FeedNotification struct {
	Address            string        `json:"address"`
	Samples            []PriceSample `json:"samples"`
	LastRefreshedBlock uint64        `json:"lastRefreshedBlock"`
}

// IsValidAddress reports whether address is 0x followed by 40 hex characters
func IsValidAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

// NormalizeAddress returns the EIP-55 checksummed form of an 0x address.
// Anything else is returned unchanged.
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return common.HexToAddress(address).String()
	}
	return address
}

// ParseAddress validates and normalizes an address supplied by a caller
func ParseAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !IsValidAddress(address) {
		return "", ErrInvalidAddress
	}
	return NormalizeAddress(address), nil
}

// StartBlockFromHead returns the block the first sync starts from
func StartBlockFromHead(head uint64) uint64 {
	return head * START_BLOCK_NUMERATOR / START_BLOCK_DENOMINATOR
}

// FeedLockKey returns the sync guard key of a token's price feed
func FeedLockKey(address string) string {
	return LOCK_KEY_FEED_PREFIX + address
}
