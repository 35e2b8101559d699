package ethereum

import (
	"context"

	"github.com/pumpitfaxt/launchpad-indexer/internal/block"
)

// blockFetcher feeds the head provider from an EthereumClient
type blockFetcher struct {
	client EthereumClient
}

func NewBlockFetcher(client EthereumClient) block.BlockFetcher {
	return &blockFetcher{client: client}
}

func (f *blockFetcher) FetchLatestBlock(ctx context.Context) (uint64, error) {
	return f.client.CurrentBlockHeight(ctx)
}
