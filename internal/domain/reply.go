package domain

import (
	"encoding/json"
	"fmt"
)

// ParseReply decodes a reply submission. The payload is either a JSON object or a
// JSON string holding a serialized object. author and content must be non-empty strings.
func ParseReply(payload json.RawMessage) (map[string]interface{}, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: reply is required", ErrInvalidReply)
	}

	var serialized string
	if err := json.Unmarshal(payload, &serialized); err == nil {
		payload = json.RawMessage(serialized)
	}

	var reply map[string]interface{}
	if err := json.Unmarshal(payload, &reply); err != nil || reply == nil {
		return nil, fmt.Errorf("%w: reply must be a JSON object", ErrInvalidReply)
	}

	for _, key := range []string{"author", "content"} {
		s, ok := reply[key].(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidReply, key)
		}
	}

	return reply, nil
}
