// Package quote answers fee quote requests: it resolves the L1 token behind
// an L2 token and hands the fee computation to a fees calculator.
package quote

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/fees"
	"github.com/quantumauth-io/bridge-fees/internal/whitelist"
)

type Resolver interface {
	Resolve(ctx context.Context, l2Token common.Address, chainID *big.Int) (whitelist.Event, error)
}

type FeeCalculator interface {
	DepositFees(ctx context.Context, amount *big.Int, l1Token common.Address) (fees.Details, error)
}

type Liquidity interface {
	Available(ctx context.Context, pool common.Address) (*big.Int, error)
}

type Service struct {
	resolver  Resolver
	calc      FeeCalculator
	liquidity Liquidity

	weth   common.Address
	native common.Address
}

// NewService builds the quote service. liquidity may be nil, in which case
// quotes never flag insufficient liquidity.
func NewService(resolver Resolver, calc FeeCalculator, liquidity Liquidity, weth common.Address) *Service {
	if weth == (common.Address{}) {
		weth = common.HexToAddress(constants.WETHAddr)
	}
	return &Service{
		resolver:  resolver,
		calc:      calc,
		liquidity: liquidity,
		weth:      weth,
		native:    common.HexToAddress(constants.NativeAddr),
	}
}

// Result carries a quote together with how it was resolved.
type Result struct {
	Event   whitelist.Event
	L1Token common.Address
	// FeeToken is the address handed to the calculator (native sentinel for WETH).
	FeeToken common.Address
	Details  fees.Details
	Quote    fees.Quote
}

// SuggestedFees resolves the L1 token and computes slow/fast fee
// percentages.
func (s *Service) SuggestedFees(ctx context.Context, p Params) (Result, error) {
	if p.Amount == nil || p.ChainID == nil {
		return Result{}, errors.Mark(errors.New("incomplete params"), ErrInvalidInput)
	}

	ev, err := s.resolver.Resolve(ctx, p.L2Token, p.ChainID)
	if err != nil {
		return Result{}, err
	}

	feeToken := ev.L1Token
	if feeToken == s.weth {
		feeToken = s.native
	}

	details, err := s.calc.DepositFees(ctx, p.Amount, feeToken)
	if err != nil {
		return Result{}, errors.Wrap(err, "deposit fees")
	}

	return Result{
		Event:    ev,
		L1Token:  ev.L1Token,
		FeeToken: feeToken,
		Details:  details,
		Quote: fees.Quote{
			SlowFeePct:     details.Slow.Pct,
			FastFeePct:     details.Instant.Pct,
			IsAmountTooLow: details.IsAmountTooLow,
		},
	}, nil
}

// Quote is SuggestedFees plus a liquidity check against the bridge pool the
// token was whitelisted with.
func (s *Service) Quote(ctx context.Context, p Params) (Result, error) {
	res, err := s.SuggestedFees(ctx, p)
	if err != nil {
		return Result{}, err
	}
	if s.liquidity == nil || res.Event.BridgePool == (common.Address{}) {
		return res, nil
	}

	available, err := s.liquidity.Available(ctx, res.Event.BridgePool)
	if err != nil {
		return Result{}, errors.Wrap(err, "pool liquidity")
	}
	res.Quote.IsLiquidityInsufficient = p.Amount.Cmp(available) > 0
	return res, nil
}
