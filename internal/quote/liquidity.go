package quote

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
)

// PoolReader reads a bridge pool's relayable liquidity.
type PoolReader struct {
	caller contracts.Caller
}

func NewPoolReader(caller contracts.Caller) *PoolReader {
	return &PoolReader{caller: caller}
}

// Available is liquidReserves minus pendingReserves, floored at zero.
func (p *PoolReader) Available(ctx context.Context, pool common.Address) (*big.Int, error) {
	liquid, err := contracts.CallUint256(ctx, p.caller, contracts.BridgePool, pool, contracts.MethodLiquidReserves)
	if err != nil {
		return nil, errors.Wrap(err, "bridge pool liquid reserves")
	}
	pending, err := contracts.CallUint256(ctx, p.caller, contracts.BridgePool, pool, contracts.MethodPendingReserves)
	if err != nil {
		return nil, errors.Wrap(err, "bridge pool pending reserves")
	}

	out := new(big.Int).Sub(liquid, pending)
	if out.Sign() < 0 {
		out.SetInt64(0)
	}
	return out, nil
}
