package tokens

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metaCaller struct {
	decimals map[common.Address]uint8
	symbols  map[common.Address]string
	fail     bool
	calls    int
}

func (m *metaCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	m.calls++
	if m.fail {
		return nil, errors.New("rpc down")
	}
	erc20 := contracts.ERC20
	switch {
	case bytes.Equal(msg.Data[:4], erc20.Methods[contracts.MethodDecimals].ID):
		return erc20.Methods[contracts.MethodDecimals].Outputs.Pack(m.decimals[*msg.To])
	case bytes.Equal(msg.Data[:4], erc20.Methods[contracts.MethodSymbol].ID):
		sym, ok := m.symbols[*msg.To]
		if !ok {
			return nil, errors.New("execution reverted")
		}
		return erc20.Methods[contracts.MethodSymbol].Outputs.Pack(sym)
	}
	return nil, errors.New("unexpected call")
}

func TestVerify(t *testing.T) {
	usdc := Token{Address: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), Symbol: "USDC", Decimals: 6}
	dai := Token{Address: common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"), Symbol: "DAI", Decimals: 6}
	mkr := Token{Address: common.HexToAddress("0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2"), Symbol: "MKR", Decimals: 18}
	eth := Token{Symbol: "ETH", Decimals: 18, Native: true}

	caller := &metaCaller{
		decimals: map[common.Address]uint8{usdc.Address: 6, dai.Address: 18, mkr.Address: 18},
		symbols:  map[common.Address]string{usdc.Address: "usdc", dai.Address: "DAI"},
	}

	got, err := Verify(context.Background(), caller, []Token{eth, usdc, dai, mkr})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "DAI", got[0].Token.Symbol)
	assert.Equal(t, "decimals", got[0].Field)
	assert.Equal(t, "6", got[0].Configured)
	assert.Equal(t, "18", got[0].OnChain)

	// native skipped: two calls per ERC20
	assert.Equal(t, 6, caller.calls)
}

func TestVerifyRPCError(t *testing.T) {
	usdc := Token{Address: common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), Symbol: "USDC", Decimals: 6}
	_, err := Verify(context.Background(), &metaCaller{fail: true}, []Token{usdc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify USDC")
}
