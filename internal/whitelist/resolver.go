// Package whitelist resolves an L2 token to its L1 counterpart from the
// bridge admin's WhitelistToken events.
package whitelist

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

var ErrNoWhitelistedToken = errors.New("no whitelisted token found")

// LogFilterer is the subset of ethclient.Client used to read the admin log.
type LogFilterer interface {
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

type Resolver struct {
	admin     common.Address
	fromBlock uint64
	client    LogFilterer
}

// NewResolver reads events of the admin contract starting at fromBlock
// (0 for genesis).
func NewResolver(client LogFilterer, admin common.Address, fromBlock uint64) *Resolver {
	return &Resolver{admin: admin, fromBlock: fromBlock, client: client}
}

// Events returns every WhitelistToken event whose l2Token topic matches.
func (r *Resolver) Events(ctx context.Context, l2Token common.Address) ([]Event, error) {
	ev := contracts.BridgeAdmin.Events[contracts.EventWhitelistToken]

	q := ethereum.FilterQuery{
		Addresses: []common.Address{r.admin},
		Topics: [][]common.Hash{
			{ev.ID},
			nil, // any l1Token
			{common.BytesToHash(l2Token.Bytes())},
		},
	}
	if r.fromBlock > 0 {
		q.FromBlock = new(big.Int).SetUint64(r.fromBlock)
	}

	logs, err := r.client.FilterLogs(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "filter WhitelistToken logs")
	}

	out := make([]Event, 0, len(logs))
	for _, lg := range logs {
		if lg.Removed {
			continue
		}
		decoded, err := decode(lg)
		if err != nil {
			log.Warn("skipping undecodable WhitelistToken log", "tx", lg.TxHash.Hex(), "index", lg.Index, "error", err)
			continue
		}
		out = append(out, decoded)
	}
	return out, nil
}

// Resolve returns the most recent whitelisting of l2Token for chainID.
func (r *Resolver) Resolve(ctx context.Context, l2Token common.Address, chainID *big.Int) (Event, error) {
	events, err := r.Events(ctx, l2Token)
	if err != nil {
		return Event{}, err
	}

	latest, ok := MostRecent(ForChain(events, chainID))
	if !ok {
		return Event{}, errors.Wrapf(ErrNoWhitelistedToken, "l2Token %s on chain %s", l2Token.Hex(), chainID)
	}
	return latest, nil
}

func decode(lg types.Log) (Event, error) {
	if len(lg.Topics) != 4 {
		return Event{}, errors.Newf("expected 4 topics, got %d", len(lg.Topics))
	}

	vals, err := contracts.BridgeAdmin.Unpack(contracts.EventWhitelistToken, lg.Data)
	if err != nil {
		return Event{}, errors.Wrap(err, "unpack data")
	}
	if len(vals) != 1 {
		return Event{}, errors.Newf("expected 1 data field, got %d", len(vals))
	}
	chainID, ok := vals[0].(*big.Int)
	if !ok {
		return Event{}, errors.Newf("chainId has type %T", vals[0])
	}

	return Event{
		ChainID:     chainID,
		L1Token:     common.BytesToAddress(lg.Topics[1].Bytes()),
		L2Token:     common.BytesToAddress(lg.Topics[2].Bytes()),
		BridgePool:  common.BytesToAddress(lg.Topics[3].Bytes()),
		BlockNumber: lg.BlockNumber,
		TxIndex:     lg.TxIndex,
		LogIndex:    lg.Index,
		TxHash:      lg.TxHash,
	}, nil
}
