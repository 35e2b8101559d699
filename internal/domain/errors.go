package domain

import "errors"

var (
	// ErrInvalidAddress is returned when an address is not 0x followed by 40 hex characters
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidReply is returned when a reply payload is not an object with author and content
	ErrInvalidReply = errors.New("invalid reply")

	// ErrTokenNotFound is returned when a token is not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrConfigMissing is returned when the sync config row does not exist
	ErrConfigMissing = errors.New("no config found")
)
