package dto

import "encoding/json"

// ReplyRequest is the body of POST /tokens/:address/reply.
// Reply is a serialized {author, content} object, or the object itself.
type ReplyRequest struct {
	Reply json.RawMessage `json:"reply"`
}
