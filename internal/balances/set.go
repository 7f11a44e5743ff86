package balances

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
)

// Set maps a token address to the owner's balance of that token.
type Set map[common.Address]*big.Int

// Of returns a copy of the balance for addr.
func (s Set) Of(addr common.Address) (*big.Int, bool) {
	v, ok := s[addr]
	if !ok || v == nil {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Strings renders the set for JSON: checksummed address -> decimal string.
func (s Set) Strings() map[string]string {
	out := make(map[string]string, len(s))
	for addr, v := range s {
		if v == nil {
			continue
		}
		out[addr.Hex()] = v.String()
	}
	return out
}

// ParseSet is the inverse of Strings.
func ParseSet(raw map[string]string) (Set, error) {
	out := make(Set, len(raw))
	for a, v := range raw {
		addr, err := tokens.NormalizeAddress(a)
		if err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, errors.Newf("balance for %s: invalid integer %q", addr, v)
		}
		out[common.HexToAddress(addr)] = n
	}
	return out, nil
}
