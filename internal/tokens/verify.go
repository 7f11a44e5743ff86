package tokens

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/bridge-fees/internal/contracts"
)

// Mismatch is a configured token whose on-chain metadata disagrees with the
// token list.
type Mismatch struct {
	Token      Token
	Field      string
	Configured string
	OnChain    string
}

// Verify reads symbol and decimals of every ERC20 in list and reports the
// ones that differ from the configuration. Native tokens are skipped.
func Verify(ctx context.Context, caller contracts.Caller, list []Token) ([]Mismatch, error) {
	var out []Mismatch
	for _, t := range list {
		if t.IsNative() {
			continue
		}

		dec, err := contracts.CallUint8(ctx, caller, contracts.ERC20, t.Address, contracts.MethodDecimals)
		if err != nil {
			return out, errors.Wrapf(err, "verify %s", t.Symbol)
		}
		if dec != t.Decimals {
			out = append(out, Mismatch{
				Token:      t,
				Field:      contracts.MethodDecimals,
				Configured: strconv.Itoa(int(t.Decimals)),
				OnChain:    strconv.Itoa(int(dec)),
			})
		}

		sym, err := contracts.CallString(ctx, caller, contracts.ERC20, t.Address, contracts.MethodSymbol)
		if err != nil {
			// some tokens predate string symbols (bytes32); decimals is what matters
			continue
		}
		sym = strings.TrimRight(sym, "\x00")
		if !strings.EqualFold(sym, t.Symbol) {
			out = append(out, Mismatch{
				Token:      t,
				Field:      contracts.MethodSymbol,
				Configured: t.Symbol,
				OnChain:    sym,
			})
		}
	}
	return out, nil
}
