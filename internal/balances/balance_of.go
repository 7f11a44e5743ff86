// Package balances looks up native and ERC20 balances and keys them by
// token address.
package balances

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
)

// Backend is the subset of ethclient.Client needed for balance reads.
type Backend interface {
	contracts.Caller
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

type Fetcher struct {
	backend Backend
}

func NewFetcher(backend Backend) *Fetcher {
	return &Fetcher{backend: backend}
}

// BalanceOf returns the balance of owner in the token's smallest unit.
// Native tokens read the account balance, everything else calls balanceOf.
func (f *Fetcher) BalanceOf(ctx context.Context, token tokens.Token, owner common.Address) (*big.Int, error) {
	if f.backend == nil {
		return nil, errors.New("balances: eth client not initialized")
	}

	// zero address: always zero, no RPC call
	if owner == (common.Address{}) {
		return big.NewInt(0), nil
	}

	if token.IsNative() {
		wei, err := f.backend.BalanceAt(ctx, owner, nil)
		if err != nil {
			return nil, errors.Wrap(err, "balances: native balance")
		}
		return wei, nil
	}

	bal, err := contracts.CallUint256(ctx, f.backend, contracts.ERC20, token.Address, contracts.MethodBalanceOf, owner)
	if err != nil {
		return nil, errors.Wrapf(err, "balances: erc20 %s", token.Symbol)
	}
	return bal, nil
}

// Balances fetches every token's balance. The first failure aborts the
// whole set so callers never see a partial view.
func (f *Fetcher) Balances(ctx context.Context, toks []tokens.Token, owner common.Address) (Set, error) {
	out := make(Set, len(toks))
	for _, t := range toks {
		bal, err := f.BalanceOf(ctx, t, owner)
		if err != nil {
			return nil, err
		}
		out[t.Address] = bal
	}
	return out, nil
}
