// Package units converts between human decimal strings and integer
// smallest-unit token amounts.
package units

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// MaxDecimals bounds token precision accepted by ParseUnits.
const MaxDecimals = 77

var (
	ErrInvalidNumber    = errors.New("invalid decimal number")
	ErrTooManyDecimals  = errors.New("fractional component exceeds decimals")
	ErrDecimalsOutRange = errors.New("decimals out of range")

	decimalPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)
)

// ParseUnits parses a decimal string such as "1.25" into its integer value
// scaled by 10^decimals. Trailing zeros in the fraction are ignored, so
// "1.500" parses at decimals=1. Exponent notation is rejected.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	if int(decimals) > MaxDecimals {
		return nil, errors.Wrapf(ErrDecimalsOutRange, "%d", decimals)
	}

	v := strings.TrimSpace(value)
	if !decimalPattern.MatchString(v) {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q", value)
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidNumber, "%q: %v", value, err)
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, errors.Wrapf(ErrTooManyDecimals, "%q at %d decimals", value, decimals)
	}
	return scaled.BigInt(), nil
}

// ParseEther is ParseUnits at 18 decimals.
func ParseEther(value string) (*big.Int, error) {
	return ParseUnits(value, 18)
}

// MustParseEther panics on malformed input. Intended for constants.
func MustParseEther(value string) *big.Int {
	v, err := ParseEther(value)
	if err != nil {
		panic(err)
	}
	return v
}
