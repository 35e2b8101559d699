package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/pumpitfaxt/launchpad-indexer/internal/adapter"
	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
)

// DEFAULT_LOG_PAGE_SIZE is the initial block span of one eth_getLogs request
const DEFAULT_LOG_PAGE_SIZE = uint64(10000)

// EthereumClient reads launchpad state from the chain. Calls are neither cached nor retried.
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=EthereumClient=MockEthereumClient
type EthereumClient interface {
	// CurrentBlockHeight returns the number of the latest block
	CurrentBlockHeight(ctx context.Context) (uint64, error)

	// ReadEvents returns the decoded logs of one event emitted by contract in [fromBlock, toBlock],
	// ascending by block number then log index. A nil toBlock means the head at call time.
	ReadEvents(ctx context.Context, contract string, eventName string, fromBlock uint64, toBlock *uint64) ([]domain.ContractEvent, error)

	// ReadAccessor calls a zero-argument view function and returns its first output
	ReadAccessor(ctx context.Context, contract string, accessor string) (interface{}, error)

	// Close closes the connection
	Close()
}

// Options tunes the client
type Options struct {
	LogPageSize uint64
}

type ethereumClient struct {
	client      adapter.EthClient
	abi         abi.ABI
	logPageSize uint64
}

// NewClient creates an EthereumClient on top of a raw RPC client
func NewClient(client adapter.EthClient, opts Options) EthereumClient {
	pageSize := opts.LogPageSize
	if pageSize == 0 {
		pageSize = DEFAULT_LOG_PAGE_SIZE
	}
	return &ethereumClient{client: client, abi: LaunchpadABI, logPageSize: pageSize}
}

func (c *ethereumClient) CurrentBlockHeight(ctx context.Context) (uint64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

func (c *ethereumClient) ReadEvents(ctx context.Context, contract string, eventName string, fromBlock uint64, toBlock *uint64) ([]domain.ContractEvent, error) {
	event, ok := c.abi.Events[eventName]
	if !ok {
		return nil, fmt.Errorf("unknown event: %s", eventName)
	}
	if !domain.IsValidAddress(contract) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, contract)
	}

	query := ethereum.FilterQuery{
		Addresses: []common.Address{common.HexToAddress(contract)},
		Topics:    [][]common.Hash{{event.ID}},
		FromBlock: new(big.Int).SetUint64(fromBlock),
	}
	if toBlock != nil {
		query.ToBlock = new(big.Int).SetUint64(*toBlock)
	}

	logs, err := c.filterLogsWithPagination(ctx, query)
	if err != nil {
		return nil, err
	}

	events := make([]domain.ContractEvent, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		ev, err := c.decodeLog(event, l)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable log",
				zap.String("event", eventName),
				zap.Uint64("block", l.BlockNumber),
				zap.Uint("logIndex", l.Index),
				zap.Error(err))
			continue
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})

	return events, nil
}

func (c *ethereumClient) decodeLog(event abi.Event, l types.Log) (domain.ContractEvent, error) {
	args := make(map[string]interface{})
	if err := c.abi.UnpackIntoMap(args, event.Name, l.Data); err != nil {
		return domain.ContractEvent{}, fmt.Errorf("failed to unpack data: %w", err)
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(indexed) > 0 {
		if len(l.Topics) < len(indexed)+1 {
			return domain.ContractEvent{}, fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(l.Topics))
		}
		if err := abi.ParseTopicsIntoMap(args, indexed, l.Topics[1:]); err != nil {
			return domain.ContractEvent{}, fmt.Errorf("failed to parse topics: %w", err)
		}
	}

	return domain.ContractEvent{
		Name:        event.Name,
		Contract:    l.Address.Hex(),
		BlockNumber: l.BlockNumber,
		LogIndex:    l.Index,
		TxHash:      l.TxHash.Hex(),
		Args:        args,
	}, nil
}

func (c *ethereumClient) ReadAccessor(ctx context.Context, contract string, accessor string) (interface{}, error) {
	if _, ok := c.abi.Methods[accessor]; !ok {
		return nil, fmt.Errorf("unknown accessor: %s", accessor)
	}
	if !domain.IsValidAddress(contract) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, contract)
	}

	data, err := c.abi.Pack(accessor)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	to := common.HexToAddress(contract)
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s on %s: %w", accessor, contract, err)
	}

	out, err := c.abi.Unpack(accessor, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", accessor, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no values", accessor)
	}

	return out[0], nil
}

func (c *ethereumClient) Close() {
	c.client.Close()
}

// filterLogsWithPagination splits the query into pages of at most logPageSize blocks
func (c *ethereumClient) filterLogsWithPagination(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	if query.ToBlock == nil {
		latest, err := c.client.HeaderByNumber(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest block: %w", err)
		}
		query.ToBlock = latest.Number
	}
	if query.FromBlock.Cmp(query.ToBlock) > 0 {
		return nil, nil
	}

	logs, err := c.getLogsWithRetry(ctx, query, c.logPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", query.FromBlock.Uint64(), query.ToBlock.Uint64(), err)
	}
	return logs, nil
}

// getLogsWithRetry walks the range in chunks, halving the chunk whenever the node
// refuses a response as too large
func (c *ethereumClient) getLogsWithRetry(ctx context.Context, query ethereum.FilterQuery, stepSize uint64) ([]types.Log, error) {
	var allLogs []types.Log
	from := query.FromBlock.Uint64()
	to := query.ToBlock.Uint64()

	for from <= to {
		chunkTo := from + stepSize - 1
		if chunkTo > to || chunkTo < from {
			chunkTo = to
		}

		chunk := query
		chunk.FromBlock = new(big.Int).SetUint64(from)
		chunk.ToBlock = new(big.Int).SetUint64(chunkTo)

		logs, err := c.client.FilterLogs(ctx, chunk)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if chunkTo == to {
				break
			}
			from = chunkTo + 1
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, err
		}

		stepSize /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", from),
			zap.Uint64("toBlock", chunkTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

// ReadString calls a string accessor
func ReadString(ctx context.Context, c EthereumClient, contract, accessor string) (string, error) {
	v, err := c.ReadAccessor(ctx, contract, accessor)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s returned %T, expected string", accessor, v)
	}
	return s, nil
}

// ReadAddress calls an address accessor and returns the checksummed address
func ReadAddress(ctx context.Context, c EthereumClient, contract, accessor string) (string, error) {
	v, err := c.ReadAccessor(ctx, contract, accessor)
	if err != nil {
		return "", err
	}
	addr, ok := v.(common.Address)
	if !ok {
		return "", fmt.Errorf("%s returned %T, expected address", accessor, v)
	}
	return addr.Hex(), nil
}

// ReadUint256 calls a uint256 accessor
func ReadUint256(ctx context.Context, c EthereumClient, contract, accessor string) (*big.Int, error) {
	v, err := c.ReadAccessor(ctx, contract, accessor)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T, expected uint256", accessor, v)
	}
	return n, nil
}
