// Package form holds the state of the send form: the route, the selected
// token, the typed amount and the single error worth showing the user.
//
// A Form is not safe for concurrent use.
package form

import (
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/bridge-fees/internal/balances"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/fees"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/quantumauth-io/bridge-fees/internal/units"
)

type Form struct {
	lister    tokens.Lister
	feeBuffer *big.Int

	from, to uint64
	list     []tokens.Token
	token    tokens.Token

	input    string
	amount   *big.Int
	err      error
	balances balances.Set
}

// New returns an empty form. A nil feeBuffer reserves the default native
// fee-estimation buffer.
func New(lister tokens.Lister, feeBuffer *big.Int) *Form {
	if feeBuffer == nil {
		feeBuffer = units.MustParseEther(constants.NativeFeeBufferEth)
	}
	return &Form{
		lister:    lister,
		feeBuffer: new(big.Int).Set(feeBuffer),
		amount:    new(big.Int),
	}
}

// SetRoute recomputes the token list for a transfer from one chain to
// another. The selection moves to the entry with the previously selected
// symbol, else the first entry. Landing on a different token resets the
// amount like SelectToken does.
func (f *Form) SetRoute(from, to uint64) {
	f.from, f.to = from, to
	f.list = f.lister.ForRoute(from, to)

	next := tokens.Token{}
	if len(f.list) > 0 {
		next = f.list[0]
		for _, t := range f.list {
			if !f.token.IsZero() && t.SameSymbol(f.token) {
				next = t
				break
			}
		}
	}

	if next.Address != f.token.Address || next.Symbol != f.token.Symbol {
		f.token = next
		f.resetAmount()
	}
	f.checkBalance()
}

// SelectToken selects a token of the current list and clears the amount and
// any error.
func (f *Form) SelectToken(addr common.Address) error {
	for _, t := range f.list {
		if t.Address == addr {
			f.token = t
			f.resetAmount()
			f.checkBalance()
			return nil
		}
	}
	return errors.Newf("form: token %s is not offered on route %d->%d", addr.Hex(), f.from, f.to)
}

// SetInput takes the raw amount the user typed. Parse failures keep the
// last committed amount.
func (f *Form) SetInput(value string) {
	f.input = value

	if value == "" {
		f.amount = new(big.Int)
		f.err = nil
		f.checkBalance()
		return
	}

	parsed, err := units.ParseUnits(value, f.token.Decimals)
	if err != nil {
		f.err = parsingError(err)
		return
	}
	if parsed.Sign() < 0 {
		f.err = parsingError(errors.Newf("negative amount %q", value))
		return
	}

	if IsParsing(f.err) {
		f.err = nil
	}
	f.amount = parsed
	f.checkBalance()
}

// SetBalances replaces the balance set, keyed by token address.
func (f *Form) SetBalances(b balances.Set) {
	f.balances = b
	f.checkBalance()
}

// Max sets the amount to everything spendable of the selected token. It is a
// no-op until the token's balance is known.
func (f *Form) Max() {
	avail, ok := f.available()
	if !ok {
		return
	}
	f.amount = avail
	f.input = units.FormatUnits(avail, f.token.Decimals)
	f.err = nil
	f.checkBalance()
}

// DisplayError picks the one error to show: the form's own error, then a
// fee too high for the amount, then missing liquidity.
func (f *Form) DisplayError(q *fees.Quote) error {
	switch {
	case f.err != nil:
		return f.err
	case q != nil && q.IsAmountTooLow:
		return ErrFeeTooHigh
	case q != nil && q.IsLiquidityInsufficient:
		return ErrInsufficientLiquidity
	default:
		return nil
	}
}

// CanSend reports whether the form describes a sendable deposit.
func (f *Form) CanSend(q *fees.Quote) bool {
	if f.amount.Sign() <= 0 || f.DisplayError(q) != nil {
		return false
	}
	_, ok := f.balances.Of(f.token.Address)
	return ok
}

func (f *Form) Route() (from, to uint64) { return f.from, f.to }
func (f *Form) Token() tokens.Token      { return f.token }
func (f *Form) Input() string            { return f.input }
func (f *Form) Err() error               { return f.err }

func (f *Form) Tokens() []tokens.Token {
	out := make([]tokens.Token, len(f.list))
	copy(out, f.list)
	return out
}

func (f *Form) Amount() *big.Int {
	return new(big.Int).Set(f.amount)
}

// Available is the spendable balance of the selected token.
func (f *Form) Available() (*big.Int, bool) {
	return f.available()
}

func (f *Form) resetAmount() {
	f.input = ""
	f.amount = new(big.Int)
	f.err = nil
}

// available is the balance, less the fee buffer for native tokens, floored
// at zero.
func (f *Form) available() (*big.Int, bool) {
	bal, ok := f.balances.Of(f.token.Address)
	if !ok {
		return nil, false
	}
	if f.token.IsNative() {
		bal.Sub(bal, f.feeBuffer)
		if bal.Sign() < 0 {
			bal.SetInt64(0)
		}
	}
	return bal, true
}

// checkBalance drops any error other than a parse error, then flags an
// amount above the available balance. A pending parse error suppresses the
// check since the committed amount no longer matches the input.
func (f *Form) checkBalance() {
	if IsParsing(f.err) {
		return
	}
	f.err = nil

	avail, ok := f.available()
	if !ok {
		return
	}
	if f.amount.Cmp(avail) > 0 {
		f.err = ErrInsufficientBalance
	}
}
