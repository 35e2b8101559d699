package constants

const (
	DEFAULT_PAGE   = 1
	DEFAULT_LIMIT  = 10
	MAX_PAGE_LIMIT = 100
	// MAX_PAGE keeps page*limit far below the int range
	MAX_PAGE = 1_000_000

	// Fields assigned by the server to every stored reply
	REPLY_FIELD_ID        = "id"
	REPLY_FIELD_TIMESTAMP = "timestamp"

	MESSAGE_SUCCESS = "Success"
	STATUS_OK       = "ok"
)
