package domain

import "time"

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
	TOKEN_DECIMALS        = 18

	// Contract event and accessor names
	EVENT_LAUNCH       = "Launch"
	EVENT_PRICE_CHANGE = "PriceChange"

	ACCESSOR_NAME         = "name"
	ACCESSOR_SYMBOL       = "symbol"
	ACCESSOR_CREATOR      = "creator"
	ACCESSOR_IMAGE        = "image"
	ACCESSOR_METADATA     = "metadata"
	ACCESSOR_TOTAL_SUPPLY = "totalSupply"

	// The first sync starts from a fraction of the chain head: head*8/10
	START_BLOCK_NUMERATOR   = 8
	START_BLOCK_DENOMINATOR = 10

	// A new price feed is seeded with one zero sample this far in the past
	SEED_SAMPLE_OFFSET = time.Minute

	// Sync guard keys
	LOCK_KEY_LAUNCH_SYNC = "sync:launches"
	LOCK_KEY_FEED_PREFIX = "sync:feed:"

	// Notification subjects
	SUBJECT_TOKEN_LAUNCHED = "launchpad.token.launched"
	SUBJECT_FEED_UPDATED   = "launchpad.feed.updated"
)
