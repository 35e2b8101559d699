package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TokenMetadata is the JSON document returned by a token's metadata() accessor
type TokenMetadata struct {
	Description string `json:"description"`
	Telegram    string `json:"telegram"`
	Twitter     string `json:"twitter"`
	Website     string `json:"website"`
}

// ParseTokenMetadata decodes the metadata blob. An empty blob yields empty fields.
// Fields with non-string values are ignored.
func ParseTokenMetadata(raw string) (TokenMetadata, error) {
	var md TokenMetadata
	if strings.TrimSpace(raw) == "" {
		return md, nil
	}

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return md, fmt.Errorf("failed to decode token metadata: %w", err)
	}

	md.Description = stringField(fields, "description")
	md.Telegram = stringField(fields, "telegram")
	md.Twitter = stringField(fields, "twitter")
	md.Website = stringField(fields, "website")
	return md, nil
}

func stringField(fields map[string]interface{}, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}
