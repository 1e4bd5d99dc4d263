// Package money converts between the decimal strings used on the wire
// and the int64 cents used everywhere else.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// ParseAmount parses a decimal string ("100", "100.5", "100.50") into
// cents. Amounts with more than two fraction digits or not strictly
// positive are rejected.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	if !d.Shift(2).IsInteger() {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}

	if !d.IsPositive() {
		return 0, ErrNonPositiveAmount
	}

	return d.Shift(2).IntPart(), nil
}

// Decimal returns the cents as an exact two-decimal value for JSON
// payloads.
func Decimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
