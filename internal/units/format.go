package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatUnits renders amount / 10^decimals at full precision without
// trailing zeros:
//
//	amount=1234500000000000000, decimals=18 -> "1.2345"
//	amount=1000000000000000000, decimals=18 -> "1"
//	amount=1, decimals=18 -> "0.000000000000000001"
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// FormatUnitsTrim is FormatUnits truncated (not rounded) to maxFrac
// fractional digits.
func FormatUnitsTrim(amount *big.Int, decimals uint8, maxFrac int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	if maxFrac < 0 {
		maxFrac = 0
	}
	return decimal.NewFromBigInt(amount, -int32(decimals)).Truncate(int32(maxFrac)).String()
}
