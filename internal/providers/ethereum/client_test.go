package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pumpitfaxt/launchpad-indexer/internal/domain"
	"github.com/pumpitfaxt/launchpad-indexer/internal/logger"
	"github.com/pumpitfaxt/launchpad-indexer/internal/mocks"
	"github.com/pumpitfaxt/launchpad-indexer/internal/providers/ethereum"
)

const (
	launchpad = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	tokenAddr = "0xAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAa"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testClientMocks struct {
	ctrl   *gomock.Controller
	eth    *mocks.MockEthClient
	client ethereum.EthereumClient
}

func setupTest(t *testing.T, pageSize uint64) *testClientMocks {
	ctrl := gomock.NewController(t)
	eth := mocks.NewMockEthClient(ctrl)
	return &testClientMocks{
		ctrl:   ctrl,
		eth:    eth,
		client: ethereum.NewClient(eth, ethereum.Options{LogPageSize: pageSize}),
	}
}

func tearDownTest(tm *testClientMocks) {
	tm.ctrl.Finish()
}

func launchLog(block uint64, index uint, token common.Address) types.Log {
	return types.Log{
		Address:     common.HexToAddress(launchpad),
		Topics:      []common.Hash{ethereum.LaunchpadABI.Events[domain.EVENT_LAUNCH].ID, common.BytesToHash(token.Bytes())},
		BlockNumber: block,
		Index:       index,
	}
}

func priceChangeLog(t *testing.T, block uint64, index uint, ts, value, mktCap *big.Int) types.Log {
	t.Helper()
	event := ethereum.LaunchpadABI.Events[domain.EVENT_PRICE_CHANGE]
	data, err := event.Inputs.NonIndexed().Pack(ts, value, mktCap)
	require.NoError(t, err)
	return types.Log{
		Address:     common.HexToAddress(tokenAddr),
		Topics:      []common.Hash{event.ID},
		Data:        data,
		BlockNumber: block,
		Index:       index,
	}
}

func packOutput(t *testing.T, accessor string, v interface{}) []byte {
	t.Helper()
	out, err := ethereum.LaunchpadABI.Methods[accessor].Outputs.Pack(v)
	require.NoError(t, err)
	return out
}

func TestCurrentBlockHeight(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.eth.EXPECT().HeaderByNumber(ctx, nil).Return(&types.Header{Number: big.NewInt(1234)}, nil)

	head, err := tm.client.CurrentBlockHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), head)

	tm.eth.EXPECT().HeaderByNumber(ctx, nil).Return(nil, errors.New("dial tcp: refused"))
	_, err = tm.client.CurrentBlockHeight(ctx)
	assert.ErrorContains(t, err, "dial tcp: refused")
}

func TestReadEvents_LaunchDecodedAndOrdered(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	first := common.HexToAddress("0x1111111111111111111111111111111111111111")
	second := common.HexToAddress("0x2222222222222222222222222222222222222222")
	third := common.HexToAddress("0x3333333333333333333333333333333333333333")
	to := uint64(20)

	tm.eth.EXPECT().FilterLogs(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, uint64(10), q.FromBlock.Uint64())
			assert.Equal(t, uint64(20), q.ToBlock.Uint64())
			assert.Equal(t, []common.Address{common.HexToAddress(launchpad)}, q.Addresses)
			return []types.Log{
				launchLog(15, 3, third),
				launchLog(12, 1, second),
				launchLog(12, 0, first),
			}, nil
		})

	events, err := tm.client.ReadEvents(ctx, launchpad, domain.EVENT_LAUNCH, 10, &to)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, first.Hex(), events[0].AddressArg("token"))
	assert.Equal(t, second.Hex(), events[1].AddressArg("token"))
	assert.Equal(t, third.Hex(), events[2].AddressArg("token"))
	assert.Equal(t, uint64(15), events[2].BlockNumber)
	assert.Equal(t, domain.EVENT_LAUNCH, events[0].Name)
}

func TestReadEvents_PriceChangeDecoded(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	to := uint64(5)
	value := new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18))

	tm.eth.EXPECT().FilterLogs(ctx, gomock.Any()).Return([]types.Log{
		priceChangeLog(t, 4, 0, big.NewInt(1700000000), value, big.NewInt(42)),
	}, nil)

	events, err := tm.client.ReadEvents(ctx, tokenAddr, domain.EVENT_PRICE_CHANGE, 1, &to)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, big.NewInt(1700000000), events[0].Args["time"])
	assert.Equal(t, value, events[0].Args["value"])
	assert.Equal(t, big.NewInt(42), events[0].Args["mktCap"])
}

func TestReadEvents_SkipsRemovedAndMalformedLogs(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	to := uint64(5)
	removed := launchLog(2, 0, common.HexToAddress("0x1111111111111111111111111111111111111111"))
	removed.Removed = true
	malformed := launchLog(3, 0, common.Address{})
	malformed.Topics = malformed.Topics[:1]

	tm.eth.EXPECT().FilterLogs(ctx, gomock.Any()).Return([]types.Log{removed, malformed}, nil)

	events, err := tm.client.ReadEvents(ctx, launchpad, domain.EVENT_LAUNCH, 1, &to)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReadEvents_NilToBlockResolvesHead(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.eth.EXPECT().HeaderByNumber(ctx, nil).Return(&types.Header{Number: big.NewInt(50)}, nil)
	tm.eth.EXPECT().FilterLogs(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, uint64(50), q.ToBlock.Uint64())
			return nil, nil
		})

	events, err := tm.client.ReadEvents(ctx, launchpad, domain.EVENT_LAUNCH, 40, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReadEvents_EmptyRange(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	to := uint64(9)
	events, err := tm.client.ReadEvents(context.Background(), launchpad, domain.EVENT_LAUNCH, 10, &to)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReadEvents_Pagination(t *testing.T) {
	tm := setupTest(t, 10)
	defer tearDownTest(tm)

	ctx := context.Background()
	to := uint64(24)

	var ranges [][2]uint64
	tm.eth.EXPECT().FilterLogs(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, q geth.FilterQuery) ([]types.Log, error) {
			ranges = append(ranges, [2]uint64{q.FromBlock.Uint64(), q.ToBlock.Uint64()})
			if q.ToBlock.Uint64()-q.FromBlock.Uint64() >= 5 && q.FromBlock.Uint64() == 10 {
				return nil, errors.New("query returned more than 10000 results")
			}
			return nil, nil
		}).AnyTimes()

	_, err := tm.client.ReadEvents(ctx, launchpad, domain.EVENT_LAUNCH, 0, &to)
	require.NoError(t, err)

	assert.Equal(t, [][2]uint64{
		{0, 9},
		{10, 19}, // rejected, halves to 5
		{10, 14},
		{15, 19},
		{20, 24},
	}, ranges)
}

func TestReadEvents_Errors(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	to := uint64(5)

	_, err := tm.client.ReadEvents(ctx, launchpad, "Transfer", 0, &to)
	assert.ErrorContains(t, err, "unknown event")

	_, err = tm.client.ReadEvents(ctx, "0x1234", domain.EVENT_LAUNCH, 0, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	tm.eth.EXPECT().FilterLogs(ctx, gomock.Any()).Return(nil, errors.New("rpc down"))
	_, err = tm.client.ReadEvents(ctx, launchpad, domain.EVENT_LAUNCH, 0, &to)
	assert.ErrorContains(t, err, "rpc down")
}

func TestTypedAccessors(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	creator := common.HexToAddress("0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC")
	supply := new(big.Int).Exp(big.NewInt(10), big.NewInt(21), nil)

	tm.eth.EXPECT().CallContract(ctx, gomock.Any(), nil).DoAndReturn(
		func(_ context.Context, msg geth.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, common.HexToAddress(tokenAddr), *msg.To)
			switch {
			case matchesSelector(msg.Data, domain.ACCESSOR_NAME):
				return packOutput(t, domain.ACCESSOR_NAME, "Foo"), nil
			case matchesSelector(msg.Data, domain.ACCESSOR_CREATOR):
				return packOutput(t, domain.ACCESSOR_CREATOR, creator), nil
			case matchesSelector(msg.Data, domain.ACCESSOR_TOTAL_SUPPLY):
				return packOutput(t, domain.ACCESSOR_TOTAL_SUPPLY, supply), nil
			}
			return nil, errors.New("unexpected call")
		}).Times(3)

	name, err := ethereum.ReadString(ctx, tm.client, tokenAddr, domain.ACCESSOR_NAME)
	require.NoError(t, err)
	assert.Equal(t, "Foo", name)

	gotCreator, err := ethereum.ReadAddress(ctx, tm.client, tokenAddr, domain.ACCESSOR_CREATOR)
	require.NoError(t, err)
	assert.Equal(t, creator.Hex(), gotCreator)

	gotSupply, err := ethereum.ReadUint256(ctx, tm.client, tokenAddr, domain.ACCESSOR_TOTAL_SUPPLY)
	require.NoError(t, err)
	assert.Equal(t, 0, supply.Cmp(gotSupply))
}

func TestReadAccessor_Errors(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()

	_, err := tm.client.ReadAccessor(ctx, tokenAddr, "balanceOf")
	assert.ErrorContains(t, err, "unknown accessor")

	tm.eth.EXPECT().CallContract(ctx, gomock.Any(), nil).Return([]byte{}, nil)
	_, err = tm.client.ReadAccessor(ctx, tokenAddr, domain.ACCESSOR_SYMBOL)
	assert.ErrorContains(t, err, "failed to unpack")

	tm.eth.EXPECT().CallContract(ctx, gomock.Any(), nil).Return(packOutput(t, domain.ACCESSOR_TOTAL_SUPPLY, big.NewInt(1)), nil)
	_, err = ethereum.ReadString(ctx, tm.client, tokenAddr, domain.ACCESSOR_TOTAL_SUPPLY)
	assert.ErrorContains(t, err, "expected string")
}

func TestDial_RetriesUntilNodeAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dialer := mocks.NewMockEthClientDialer(ctrl)
	eth := mocks.NewMockEthClient(ctrl)

	gomock.InOrder(
		dialer.EXPECT().Dial(gomock.Any(), "http://node").Return(nil, errors.New("connection refused")),
		dialer.EXPECT().Dial(gomock.Any(), "http://node").Return(eth, nil),
		eth.EXPECT().HeaderByNumber(gomock.Any(), nil).Return(&types.Header{Number: big.NewInt(1)}, nil),
	)

	client, err := ethereum.Dial(context.Background(), dialer, "http://node", ethereum.DialConfig{
		Timeout:    time.Second,
		MaxElapsed: 10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, eth, client)
}

func TestDial_GivesUpWhenContextDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dialer := mocks.NewMockEthClientDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any(), "http://node").Return(nil, errors.New("connection refused")).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := ethereum.Dial(ctx, dialer, "http://node", ethereum.DialConfig{Timeout: time.Second})
	assert.Error(t, err)
}

func TestBlockFetcher(t *testing.T) {
	tm := setupTest(t, 0)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.eth.EXPECT().HeaderByNumber(ctx, nil).Return(&types.Header{Number: big.NewInt(77)}, nil)

	head, err := ethereum.NewBlockFetcher(tm.client).FetchLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), head)
}

func matchesSelector(data []byte, accessor string) bool {
	id := ethereum.LaunchpadABI.Methods[accessor].ID
	return len(data) >= 4 && string(data[:4]) == string(id)
}
