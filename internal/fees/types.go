package fees

import "math/big"

// PctScale is the fixed-point scale of every percentage: 1e18 == 100%.
var PctScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Fee is a relay fee in the deposited token's smallest unit together with
// its share of the deposit, scaled by PctScale.
type Fee struct {
	Total *big.Int
	Pct   *big.Int
}

// Details is what the calculator returns for one deposit.
type Details struct {
	Slow    Fee
	Instant Fee

	GasPrice       *big.Int
	IsAmountTooLow bool
}

// Quote is what a client needs to validate a deposit.
type Quote struct {
	SlowFeePct              *big.Int
	FastFeePct              *big.Int
	IsAmountTooLow          bool
	IsLiquidityInsufficient bool
}

// Pct returns fee * PctScale / amount, or zero for a zero amount.
func Pct(fee, amount *big.Int) *big.Int {
	if amount == nil || amount.Sign() <= 0 || fee == nil {
		return new(big.Int)
	}
	out := new(big.Int).Mul(fee, PctScale)
	return out.Quo(out, amount)
}
