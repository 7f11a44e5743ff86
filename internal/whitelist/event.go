package whitelist

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Event is one WhitelistToken log of the bridge admin contract.
type Event struct {
	ChainID    *big.Int
	L1Token    common.Address
	L2Token    common.Address
	BridgePool common.Address

	BlockNumber uint64
	TxIndex     uint
	LogIndex    uint
	TxHash      common.Hash
}

// Before reports whether a was emitted before b.
func Before(a, b Event) bool {
	if a.BlockNumber != b.BlockNumber {
		return a.BlockNumber < b.BlockNumber
	}
	if a.TxIndex != b.TxIndex {
		return a.TxIndex < b.TxIndex
	}
	return a.LogIndex < b.LogIndex
}

// MostRecent picks the latest emitted event: highest block, then highest
// transaction index, then highest log index.
func MostRecent(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	latest := events[0]
	for _, ev := range events[1:] {
		if Before(latest, ev) {
			latest = ev
		}
	}
	return latest, true
}

// SortNewestFirst orders events from most to least recent, in place.
func SortNewestFirst(events []Event) {
	sort.SliceStable(events, func(i, j int) bool { return Before(events[j], events[i]) })
}

// ForChain keeps the events whose chain id equals chainID.
func ForChain(events []Event, chainID *big.Int) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.ChainID != nil && chainID != nil && ev.ChainID.Cmp(chainID) == 0 {
			out = append(out, ev)
		}
	}
	return out
}
