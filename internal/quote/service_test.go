package quote

import (
	"context"
	"errors"
	"math/big"
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
	"github.com/quantumauth-io/bridge-fees/internal/fees"
	"github.com/quantumauth-io/bridge-fees/internal/whitelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	l2Token = common.HexToAddress("0x4200000000000000000000000000000000000006")
	l1USDC  = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	weth    = common.HexToAddress(constants.WETHAddr)
	pool    = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

type fakeResolver struct {
	ev    whitelist.Event
	err   error
	calls int
}

func (f *fakeResolver) Resolve(context.Context, common.Address, *big.Int) (whitelist.Event, error) {
	f.calls++
	return f.ev, f.err
}

type fakeCalc struct {
	gotToken common.Address
	details  fees.Details
	err      error
}

func (f *fakeCalc) DepositFees(_ context.Context, _ *big.Int, l1Token common.Address) (fees.Details, error) {
	f.gotToken = l1Token
	return f.details, f.err
}

type fakeLiquidity struct {
	available *big.Int
	err       error
}

func (f fakeLiquidity) Available(context.Context, common.Address) (*big.Int, error) {
	return f.available, f.err
}

func details() fees.Details {
	return fees.Details{
		Slow:    fees.Fee{Total: big.NewInt(1), Pct: big.NewInt(100)},
		Instant: fees.Fee{Total: big.NewInt(2), Pct: big.NewInt(200)},
	}
}

func params(t *testing.T, amount string) Params {
	t.Helper()
	p, err := ParseParams(amount, l2Token.Hex(), "10")
	require.NoError(t, err)
	return p
}

func TestParseParamsMissing(t *testing.T) {
	cases := map[string][3]string{
		"amount":  {"", l2Token.Hex(), "10"},
		"l2Token": {"100", "", "10"},
		"chainId": {"100", l2Token.Hex(), " "},
	}
	for name, in := range cases {
		_, err := ParseParams(in[0], in[1], in[2])
		require.Error(t, err, name)
		assert.True(t, cerrors.Is(err, ErrInvalidInput), name)
		assert.Contains(t, err.Error(), name)
	}
}

func TestParseParamsMalformed(t *testing.T) {
	for _, in := range [][3]string{
		{"1.5", l2Token.Hex(), "10"},
		{"-1", l2Token.Hex(), "10"},
		{"100", "0x1234", "10"},
		{"100", l2Token.Hex(), "optimism"},
		{"100", l2Token.Hex(), "0"},
	} {
		_, err := ParseParams(in[0], in[1], in[2])
		require.Error(t, err, in)
		assert.True(t, cerrors.Is(err, ErrInvalidInput), in)
	}

	p, err := ParseParams(" 1000 ", l2Token.Hex(), "10")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.Amount.Int64())
	assert.Equal(t, int64(10), p.ChainID.Int64())
}

func TestSuggestedFeesDelegates(t *testing.T) {
	r := &fakeResolver{ev: whitelist.Event{L1Token: l1USDC, BridgePool: pool}}
	c := &fakeCalc{details: details()}

	res, err := NewService(r, c, nil, common.Address{}).SuggestedFees(context.Background(), params(t, "1000"))
	require.NoError(t, err)
	assert.Equal(t, l1USDC, c.gotToken)
	assert.Equal(t, l1USDC, res.L1Token)
	assert.Equal(t, int64(100), res.Quote.SlowFeePct.Int64())
	assert.Equal(t, int64(200), res.Quote.FastFeePct.Int64())
}

func TestSuggestedFeesSubstitutesNativeForWETH(t *testing.T) {
	r := &fakeResolver{ev: whitelist.Event{L1Token: weth}}
	c := &fakeCalc{details: details()}

	res, err := NewService(r, c, nil, weth).SuggestedFees(context.Background(), params(t, "1000"))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(constants.NativeAddr), c.gotToken)
	assert.Equal(t, weth, res.L1Token)
	assert.Equal(t, common.Address{}, res.FeeToken)
}

func TestSuggestedFeesErrors(t *testing.T) {
	r := &fakeResolver{err: cerrors.Wrap(whitelist.ErrNoWhitelistedToken, "l2Token x")}
	_, err := NewService(r, &fakeCalc{}, nil, weth).SuggestedFees(context.Background(), params(t, "1"))
	assert.True(t, cerrors.Is(err, whitelist.ErrNoWhitelistedToken))

	r = &fakeResolver{ev: whitelist.Event{L1Token: l1USDC}}
	_, err = NewService(r, &fakeCalc{err: errors.New("gas oracle down")}, nil, weth).SuggestedFees(context.Background(), params(t, "1"))
	require.ErrorContains(t, err, "gas oracle down")

	r = &fakeResolver{}
	_, err = NewService(r, &fakeCalc{}, nil, weth).SuggestedFees(context.Background(), Params{})
	assert.True(t, cerrors.Is(err, ErrInvalidInput))
	assert.Zero(t, r.calls)
}

func TestQuoteLiquidity(t *testing.T) {
	r := &fakeResolver{ev: whitelist.Event{L1Token: l1USDC, BridgePool: pool}}
	svc := NewService(r, &fakeCalc{details: details()}, fakeLiquidity{available: big.NewInt(500)}, weth)

	res, err := svc.Quote(context.Background(), params(t, "501"))
	require.NoError(t, err)
	assert.True(t, res.Quote.IsLiquidityInsufficient)

	res, err = svc.Quote(context.Background(), params(t, "500"))
	require.NoError(t, err)
	assert.False(t, res.Quote.IsLiquidityInsufficient)

	svc = NewService(r, &fakeCalc{details: details()}, fakeLiquidity{err: errors.New("pool gone")}, weth)
	_, err = svc.Quote(context.Background(), params(t, "1"))
	require.ErrorContains(t, err, "pool gone")
}

type reservesCaller struct {
	liquid, pending *big.Int
}

func (r reservesCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	m := contracts.BridgePool.Methods[contracts.MethodLiquidReserves]
	if string(msg.Data[:4]) == string(m.ID) {
		return m.Outputs.Pack(r.liquid)
	}
	return contracts.BridgePool.Methods[contracts.MethodPendingReserves].Outputs.Pack(r.pending)
}

func TestPoolReaderAvailable(t *testing.T) {
	got, err := NewPoolReader(reservesCaller{liquid: big.NewInt(1000), pending: big.NewInt(300)}).Available(context.Background(), pool)
	require.NoError(t, err)
	assert.Equal(t, int64(700), got.Int64())

	got, err = NewPoolReader(reservesCaller{liquid: big.NewInt(100), pending: big.NewInt(300)}).Available(context.Background(), pool)
	require.NoError(t, err)
	assert.Zero(t, got.Sign())
}

func TestParseQueryRejectsRepeatedKeys(t *testing.T) {
	_, err := ParseQuery([]string{"1", "2"}, []string{l2Token.Hex()}, []string{"10"})
	require.True(t, cerrors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "amount must be given once")

	_, err = ParseQuery([]string{"1"}, []string{l2Token.Hex(), l2Token.Hex()}, []string{"10", "10"})
	require.True(t, cerrors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "l2Token, chainId must be given once")

	_, err = ParseQuery(nil, []string{l2Token.Hex()}, []string{"10"})
	require.True(t, cerrors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "missing amount")

	p, err := ParseQuery([]string{"100"}, []string{l2Token.Hex()}, []string{"10"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.Amount.Int64())
	assert.Equal(t, l2Token, p.L2Token)
	assert.Equal(t, int64(10), p.ChainID.Int64())
}
