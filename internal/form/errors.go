package form

import "github.com/cockroachdb/errors"

// Form errors are values held by the form, never returned by transitions.
var (
	ErrParsing               = errors.New("invalid amount")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrFeeTooHigh            = errors.New("bridge fee is high for this amount, send a larger amount")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
)

func IsParsing(err error) bool {
	return err != nil && errors.Is(err, ErrParsing)
}

func parsingError(cause error) error {
	return errors.Mark(errors.Wrap(cause, ErrParsing.Error()), ErrParsing)
}
