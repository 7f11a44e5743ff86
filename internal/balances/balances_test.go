package balances

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner = common.HexToAddress("0x1111111111111111111111111111111111111111")
	eth   = tokens.Token{Symbol: "ETH", Decimals: 18, Native: true}
	usdc  = tokens.Token{Address: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), Symbol: "USDC", Decimals: 6}
)

type fakeBackend struct {
	native   *big.Int
	erc20    map[common.Address]*big.Int
	err      error
	calls    int
	balCalls int
}

func (f *fakeBackend) BalanceAt(_ context.Context, _ common.Address, _ *big.Int) (*big.Int, error) {
	f.balCalls++
	return f.native, f.err
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return contracts.ERC20.Methods[contracts.MethodBalanceOf].Outputs.Pack(f.erc20[*msg.To])
}

func TestBalances(t *testing.T) {
	b := &fakeBackend{
		native: big.NewInt(5e18),
		erc20:  map[common.Address]*big.Int{usdc.Address: big.NewInt(2_500_000)},
	}
	set, err := NewFetcher(b).Balances(context.Background(), []tokens.Token{eth, usdc}, owner)
	require.NoError(t, err)

	got, ok := set.Of(usdc.Address)
	require.True(t, ok)
	assert.Equal(t, int64(2_500_000), got.Int64())

	got, ok = set.Of(common.Address{})
	require.True(t, ok)
	assert.Equal(t, "5000000000000000000", got.String())

	assert.Equal(t, 1, b.balCalls)
	assert.Equal(t, 1, b.calls)
}

func TestBalanceOfZeroOwnerSkipsRPC(t *testing.T) {
	b := &fakeBackend{}
	got, err := NewFetcher(b).BalanceOf(context.Background(), usdc, common.Address{})
	require.NoError(t, err)
	assert.Zero(t, got.Sign())
	assert.Zero(t, b.calls+b.balCalls)
}

func TestBalancesAbortsOnError(t *testing.T) {
	b := &fakeBackend{err: errors.New("rpc down")}
	set, err := NewFetcher(b).Balances(context.Background(), []tokens.Token{usdc}, owner)
	require.ErrorContains(t, err, "rpc down")
	assert.Nil(t, set)

	_, err = NewFetcher(nil).BalanceOf(context.Background(), usdc, owner)
	require.Error(t, err)
}

func TestSetOfReturnsCopy(t *testing.T) {
	s := Set{usdc.Address: big.NewInt(10)}
	v, _ := s.Of(usdc.Address)
	v.SetInt64(99)
	again, _ := s.Of(usdc.Address)
	assert.Equal(t, int64(10), again.Int64())

	_, ok := s.Of(owner)
	assert.False(t, ok)
}

func TestSetStringsRoundTrip(t *testing.T) {
	s := Set{usdc.Address: big.NewInt(42), eth.Address: big.NewInt(7)}
	raw := s.Strings()
	assert.Equal(t, "42", raw[usdc.Address.Hex()])

	parsed, err := ParseSet(raw)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	for addr, want := range s {
		assert.Zero(t, want.Cmp(parsed[addr]), addr.Hex())
	}

	_, err = ParseSet(map[string]string{usdc.Address.Hex(): "4.2"})
	require.Error(t, err)
}
