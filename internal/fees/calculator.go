// Package fees estimates the relay fee of a bridge deposit from the current
// L1 gas price.
package fees

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
	"github.com/shopspring/decimal"
)

// Gas used by relayers on L1, per relay type and token kind.
const (
	SlowETHGas = 243_177
	SlowERCGas = 250_939
	SlowUMAGas = 273_712

	FastETHGas = 273_712
	FastERCGas = 281_482
	FastUMAGas = 305_133
)

// Backend is the L1 subset of ethclient.Client the calculator reads from.
type Backend interface {
	contracts.Caller
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// PriceFeed prices one whole token in ETH.
type PriceFeed interface {
	TokenPriceETH(ctx context.Context, token common.Address) (decimal.Decimal, error)
}

type Calculator struct {
	backend         Backend
	prices          PriceFeed
	feeLimitPercent int64

	native common.Address
	uma    common.Address
}

func NewCalculator(backend Backend, prices PriceFeed, feeLimitPercent int64) *Calculator {
	if feeLimitPercent <= 0 {
		feeLimitPercent = constants.FeeLimitPercentDefault
	}
	return &Calculator{
		backend:         backend,
		prices:          prices,
		feeLimitPercent: feeLimitPercent,
		native:          common.HexToAddress(constants.NativeAddr),
		uma:             common.HexToAddress(constants.UMAAddr),
	}
}

// DepositFees returns the slow and instant relay fees for depositing amount
// of l1Token. The native sentinel address quotes ETH. The instant fee covers
// both the slow relay and the speed-up.
func (c *Calculator) DepositFees(ctx context.Context, amount *big.Int, l1Token common.Address) (Details, error) {
	if amount == nil || amount.Sign() < 0 {
		return Details{}, errors.New("fees: amount must be non-negative")
	}

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return Details{}, errors.Wrap(err, "fees: gas price")
	}

	slowGas, fastGas := c.gasFor(l1Token)
	slowWei := new(big.Int).Mul(big.NewInt(slowGas), gasPrice)
	instantWei := new(big.Int).Mul(big.NewInt(slowGas+fastGas), gasPrice)

	slow, instant := slowWei, instantWei
	if l1Token != c.native {
		slow, instant, err = c.toTokenUnits(ctx, l1Token, slowWei, instantWei)
		if err != nil {
			return Details{}, err
		}
	}

	return Details{
		Slow:           Fee{Total: slow, Pct: Pct(slow, amount)},
		Instant:        Fee{Total: instant, Pct: Pct(instant, amount)},
		GasPrice:       gasPrice,
		IsAmountTooLow: c.tooLow(instant, amount),
	}, nil
}

func (c *Calculator) gasFor(token common.Address) (slow, fast int64) {
	switch token {
	case c.native:
		return SlowETHGas, FastETHGas
	case c.uma:
		return SlowUMAGas, FastUMAGas
	default:
		return SlowERCGas, FastERCGas
	}
}

// tooLow reports whether fee exceeds feeLimitPercent of amount.
func (c *Calculator) tooLow(fee, amount *big.Int) bool {
	if amount.Sign() == 0 {
		return true
	}
	lhs := new(big.Int).Mul(fee, big.NewInt(100))
	rhs := new(big.Int).Mul(amount, big.NewInt(c.feeLimitPercent))
	return lhs.Cmp(rhs) > 0
}

// toTokenUnits converts wei amounts into the token's smallest unit, rounding
// up so relayers are never underpaid.
func (c *Calculator) toTokenUnits(ctx context.Context, token common.Address, wei ...*big.Int) (*big.Int, *big.Int, error) {
	if c.prices == nil {
		return nil, nil, errors.New("fees: no price feed configured")
	}

	dec, err := contracts.CallUint8(ctx, c.backend, contracts.ERC20, token, contracts.MethodDecimals)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fees: token decimals")
	}

	price, err := c.prices.TokenPriceETH(ctx, token)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "fees: price of %s", token.Hex())
	}
	if !price.IsPositive() {
		return nil, nil, errors.Newf("fees: non-positive price %s for %s", price, token.Hex())
	}

	out := make([]*big.Int, len(wei))
	for i, w := range wei {
		out[i] = decimal.NewFromBigInt(w, int32(dec)-18).Div(price).Ceil().BigInt()
	}
	return out[0], out[1], nil
}
