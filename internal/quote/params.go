package quote

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidInput = errors.New("invalid input")

// Params is a validated fee quote request.
type Params struct {
	Amount  *big.Int
	L2Token common.Address
	ChainID *big.Int
}

// ParseQuery validates query values as received, one slice per key. A key
// given more than once is rejected rather than resolved to either value.
func ParseQuery(amount, l2Token, chainID []string) (Params, error) {
	var repeated []string
	for _, kv := range []struct {
		key  string
		vals []string
	}{
		{"amount", amount},
		{"l2Token", l2Token},
		{"chainId", chainID},
	} {
		if len(kv.vals) > 1 {
			repeated = append(repeated, kv.key)
		}
	}
	if len(repeated) > 0 {
		return Params{}, errors.Mark(errors.Newf("%s must be given once", strings.Join(repeated, ", ")), ErrInvalidInput)
	}
	return ParseParams(single(amount), single(l2Token), single(chainID))
}

func single(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// ParseParams validates the raw query values. It never touches the network.
func ParseParams(amount, l2Token, chainID string) (Params, error) {
	amount = strings.TrimSpace(amount)
	l2Token = strings.TrimSpace(l2Token)
	chainID = strings.TrimSpace(chainID)

	var missing []string
	if amount == "" {
		missing = append(missing, "amount")
	}
	if l2Token == "" {
		missing = append(missing, "l2Token")
	}
	if chainID == "" {
		missing = append(missing, "chainId")
	}
	if len(missing) > 0 {
		return Params{}, errors.Mark(errors.Newf("missing %s", strings.Join(missing, ", ")), ErrInvalidInput)
	}

	amt, ok := new(big.Int).SetString(amount, 10)
	if !ok || amt.Sign() < 0 {
		return Params{}, errors.Mark(errors.Newf("amount %q is not a non-negative integer", amount), ErrInvalidInput)
	}

	if !common.IsHexAddress(l2Token) {
		return Params{}, errors.Mark(errors.Newf("l2Token %q is not an address", l2Token), ErrInvalidInput)
	}

	cid, ok := new(big.Int).SetString(chainID, 10)
	if !ok || cid.Sign() <= 0 {
		return Params{}, errors.Mark(errors.Newf("chainId %q is not a positive integer", chainID), ErrInvalidInput)
	}

	return Params{
		Amount:  amt,
		L2Token: common.HexToAddress(l2Token),
		ChainID: cid,
	}, nil
}
