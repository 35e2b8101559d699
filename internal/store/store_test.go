package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

// testAddress builds a distinct checksummed address from a small number
func testAddress(n int) string {
	return domain.NormalizeAddress(fmt.Sprintf("0x%040x", n))
}

// buildTestLaunch creates a launch commit input
func buildTestLaunch(n int, creator string, block uint64) CommitLaunchInput {
	return CommitLaunchInput{
		Token: LaunchedToken{
			Address: testAddress(n),
			Creator: creator,
			Name:    fmt.Sprintf("Token %d", n),
			Symbol:  fmt.Sprintf("TK%d", n),
			Image:   fmt.Sprintf("https://img.example/%d.png", n),
			Metadata: domain.TokenMetadata{
				Description: fmt.Sprintf("description of token %d", n),
				Telegram:    "t.me/token",
			},
			TotalSupply: 1000000000,
		},
		SeedSample:      domain.ZeroSample(time.Unix(1700000000, 0)),
		FeedWatermark:   block + 50,
		TokensLastBlock: block,
	}
}

func ensureConfig(t *testing.T, store Store, start uint64) {
	_, err := store.EnsureSyncConfig(context.Background(), start)
	require.NoError(t, err)
}

// =============================================================================
// Test: SyncConfig
// =============================================================================

func testSyncConfig(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing config returns nil", func(t *testing.T) {
		cfg, err := store.GetSyncConfig(ctx)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("advance without config fails", func(t *testing.T) {
		err := store.AdvanceTokensLastBlock(ctx, 10)
		assert.ErrorIs(t, err, domain.ErrConfigMissing)
	})

	t.Run("ensure creates config once", func(t *testing.T) {
		cfg, err := store.EnsureSyncConfig(ctx, 800)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, uint64(800), cfg.StartBlock)
		assert.Equal(t, uint64(800), cfg.TokensLastBlock)

		cfg, err = store.EnsureSyncConfig(ctx, 900)
		require.NoError(t, err)
		assert.Equal(t, uint64(800), cfg.StartBlock)
		assert.Equal(t, uint64(800), cfg.TokensLastBlock)
	})

	t.Run("watermark never moves back", func(t *testing.T) {
		require.NoError(t, store.AdvanceTokensLastBlock(ctx, 1200))
		require.NoError(t, store.AdvanceTokensLastBlock(ctx, 1000))

		cfg, err := store.GetSyncConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1200), cfg.TokensLastBlock)
		assert.Equal(t, uint64(800), cfg.StartBlock)
	})
}

// =============================================================================
// Test: CommitLaunch
// =============================================================================

func testCommitLaunch(t *testing.T, store Store) {
	ctx := context.Background()
	ensureConfig(t, store, 100)
	creator := testAddress(0xc0ffee)

	t.Run("creates token, feed and advances watermark", func(t *testing.T) {
		input := buildTestLaunch(1, creator, 150)
		require.NoError(t, store.CommitLaunch(ctx, input))

		token, err := store.GetTokenByAddress(ctx, input.Token.Address)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "Token 1", token.Name)
		assert.Equal(t, "TK1", token.Symbol)
		assert.Equal(t, creator, token.Creator)
		assert.Equal(t, "description of token 1", token.Description)
		assert.Equal(t, "t.me/token", token.Telegram)
		assert.Equal(t, "", token.Twitter)
		assert.Equal(t, float64(1000000000), token.TotalSupply)
		replies, err := token.ReplyList()
		require.NoError(t, err)
		assert.Empty(t, replies)

		feed, err := store.GetPriceFeed(ctx, input.Token.Address)
		require.NoError(t, err)
		require.NotNil(t, feed)
		assert.Equal(t, uint64(200), feed.LastRefreshedBlock)
		samples, err := feed.Samples()
		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, input.SeedSample.Time.Unix(), samples[0].Time.Unix())
		assert.Zero(t, samples[0].Value)
		assert.Zero(t, samples[0].MktCap)

		cfg, err := store.GetSyncConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(150), cfg.TokensLastBlock)
	})

	t.Run("replay keeps replies and feed", func(t *testing.T) {
		input := buildTestLaunch(2, creator, 160)
		require.NoError(t, store.CommitLaunch(ctx, input))
		require.NoError(t, store.AppendReply(ctx, input.Token.Address, `{"author":"a","content":"gm"}`))
		_, err := store.AppendPriceSamples(ctx, input.Token.Address, []domain.PriceSample{
			{Time: time.Unix(1700000100, 0), Value: 1, MktCap: 10},
		}, 300)
		require.NoError(t, err)

		replay := buildTestLaunch(2, creator, 160)
		replay.Token.Name = "Renamed"
		replay.FeedWatermark = 999
		require.NoError(t, store.CommitLaunch(ctx, replay))

		token, err := store.GetTokenByAddress(ctx, input.Token.Address)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", token.Name)
		replies, err := token.ReplyList()
		require.NoError(t, err)
		assert.Equal(t, []string{`{"author":"a","content":"gm"}`}, replies)

		feed, err := store.GetPriceFeed(ctx, input.Token.Address)
		require.NoError(t, err)
		assert.Equal(t, uint64(300), feed.LastRefreshedBlock)
		samples, err := feed.Samples()
		require.NoError(t, err)
		assert.Len(t, samples, 2)
	})
}

// =============================================================================
// Test: Token queries
// =============================================================================

func testTokenQueries(t *testing.T, store Store) {
	ctx := context.Background()
	ensureConfig(t, store, 100)
	alice := testAddress(0xa11ce)
	bob := testAddress(0xb0b)

	for i := 1; i <= 5; i++ {
		creator := alice
		if i%2 == 0 {
			creator = bob
		}
		require.NoError(t, store.CommitLaunch(ctx, buildTestLaunch(i, creator, uint64(100+i))))
	}
	special := buildTestLaunch(6, bob, 106)
	special.Token.Name = "100%_pure"
	require.NoError(t, store.CommitLaunch(ctx, special))

	t.Run("unknown token returns nil", func(t *testing.T) {
		token, err := store.GetTokenByAddress(ctx, testAddress(0xdead))
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("list pages in insertion order", func(t *testing.T) {
		tokens, total, err := store.ListTokens(ctx, TokenFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		require.Len(t, tokens, 2)
		assert.Equal(t, testAddress(3), tokens[0].Address)
		assert.Equal(t, testAddress(4), tokens[1].Address)
		assert.Empty(t, tokens[0].Replies)
	})

	t.Run("list past the end", func(t *testing.T) {
		tokens, total, err := store.ListTokens(ctx, TokenFilter{Limit: 10, Offset: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Empty(t, tokens)
	})

	tests := []struct {
		name      string
		query     string
		wantTotal int64
	}{
		{"name substring is case insensitive", "token 3", 1},
		{"symbol match", "tk", 6},
		{"description match", "DESCRIPTION OF", 6},
		{"percent is literal", "100%", 1},
		{"underscore is literal", "n_", 0},
		{"wildcard does not match everything", "%", 1},
		{"no match", "nothing here", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, total, err := store.ListTokens(ctx, TokenFilter{Query: tt.query, Limit: 100})
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, tokens, int(tt.wantTotal))
		})
	}

	t.Run("tokens by creator", func(t *testing.T) {
		tokens, err := store.GetTokensByCreator(ctx, alice)
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		assert.Equal(t, testAddress(1), tokens[0].Address)
		assert.Equal(t, testAddress(5), tokens[2].Address)

		tokens, err = store.GetTokensByCreator(ctx, testAddress(0xdead))
		require.NoError(t, err)
		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})
}

// =============================================================================
// Test: Replies
// =============================================================================

func testAppendReply(t *testing.T, store Store) {
	ctx := context.Background()
	ensureConfig(t, store, 100)
	input := buildTestLaunch(1, testAddress(0xa11ce), 101)
	require.NoError(t, store.CommitLaunch(ctx, input))

	t.Run("appends in order", func(t *testing.T) {
		first := `{"author":"a","content":"first"}`
		second := `{"author":"b","content":"second"}`
		require.NoError(t, store.AppendReply(ctx, input.Token.Address, first))
		require.NoError(t, store.AppendReply(ctx, input.Token.Address, second))

		token, err := store.GetTokenByAddress(ctx, input.Token.Address)
		require.NoError(t, err)
		replies, err := token.ReplyList()
		require.NoError(t, err)
		assert.Equal(t, []string{first, second}, replies)

		var decoded []interface{}
		require.NoError(t, json.Unmarshal(token.Replies, &decoded))
		assert.IsType(t, "", decoded[0])
	})

	t.Run("unknown token", func(t *testing.T) {
		err := store.AppendReply(ctx, testAddress(0xdead), `{"author":"a","content":"x"}`)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

// =============================================================================
// Test: Price feeds
// =============================================================================

func testPriceFeeds(t *testing.T, store Store) {
	ctx := context.Background()
	ensureConfig(t, store, 100)
	input := buildTestLaunch(1, testAddress(0xa11ce), 101)
	require.NoError(t, store.CommitLaunch(ctx, input))

	t.Run("unknown feed returns nil", func(t *testing.T) {
		feed, err := store.GetPriceFeed(ctx, testAddress(0xdead))
		require.NoError(t, err)
		assert.Nil(t, feed)
	})

	t.Run("create if not exists keeps existing feed", func(t *testing.T) {
		feed, err := store.CreatePriceFeedIfNotExists(ctx, input.Token.Address, 5)
		require.NoError(t, err)
		assert.Equal(t, input.FeedWatermark, feed.LastRefreshedBlock)
		samples, err := feed.Samples()
		require.NoError(t, err)
		assert.Len(t, samples, 1)
	})

	t.Run("append samples and move watermark", func(t *testing.T) {
		appended := []domain.PriceSample{
			{Time: time.Unix(1700000100, 0), Value: 0.5, MktCap: 500},
			{Time: time.Unix(1700000200, 0), Value: 0.75, MktCap: 750},
		}
		feed, err := store.AppendPriceSamples(ctx, input.Token.Address, appended, 400)
		require.NoError(t, err)
		assert.Equal(t, uint64(400), feed.LastRefreshedBlock)

		samples, err := feed.Samples()
		require.NoError(t, err)
		require.Len(t, samples, 3)
		assert.Equal(t, input.SeedSample.Time.Unix(), samples[0].Time.Unix())
		assert.Equal(t, appended[0].Time.Unix(), samples[1].Time.Unix())
		assert.Equal(t, 0.75, samples[2].Value)
	})

	t.Run("empty append only moves watermark forward", func(t *testing.T) {
		feed, err := store.AppendPriceSamples(ctx, input.Token.Address, nil, 300)
		require.NoError(t, err)
		assert.Equal(t, uint64(400), feed.LastRefreshedBlock)

		feed, err = store.AppendPriceSamples(ctx, input.Token.Address, nil, 450)
		require.NoError(t, err)
		assert.Equal(t, uint64(450), feed.LastRefreshedBlock)
		samples, err := feed.Samples()
		require.NoError(t, err)
		assert.Len(t, samples, 3)
	})

	t.Run("append to unknown feed", func(t *testing.T) {
		_, err := store.AppendPriceSamples(ctx, testAddress(0xdead), nil, 1)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	})
}

// =============================================================================
// Test: Ping
// =============================================================================

func testPing(t *testing.T, store Store) {
	require.NoError(t, store.Ping(context.Background()))
}

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"SyncConfig", testSyncConfig},
		{"CommitLaunch", testCommitLaunch},
		{"TokenQueries", testTokenQueries},
		{"AppendReply", testAppendReply},
		{"PriceFeeds", testPriceFeeds},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
