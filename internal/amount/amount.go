// Package amount converts between human decimal amounts and the integer
// fixed-point representation used on the wire. The precision (number of
// fractional decimal digits) comes from the network parameters and is not
// known at compile time.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"

	scriperr "github.com/scriplabs/scrip/pkg/errors"
)

// ToUnits converts a decimal amount to fixed-point units at the given
// precision. Fractional digits beyond the precision are truncated, never
// rounded up. The conversion is pure; values are assumed representable in
// int64 for valid network precisions.
func ToUnits(d decimal.Decimal, precision int32) int64 {
	return d.Shift(precision).Truncate(0).IntPart()
}

// FromUnits converts fixed-point units back to a decimal amount.
func FromUnits(units int64, precision int32) decimal.Decimal {
	return decimal.New(units, -precision)
}

// Parse parses a user-supplied amount string into a non-negative decimal.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, scriperr.ErrAmountRequired
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, scriperr.WithDetails(
			scriperr.ErrInvalidAmount,
			map[string]string{"amount": s},
		)
	}

	if d.IsNegative() {
		return decimal.Zero, scriperr.WithDetails(
			scriperr.ErrInvalidAmount,
			map[string]string{"amount": s, "reason": "negative"},
		)
	}

	return d, nil
}

// ParsePositive parses an amount string and requires it to be strictly positive.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, scriperr.WithDetails(
			scriperr.ErrInvalidAmount,
			map[string]string{"amount": s, "reason": "must be positive"},
		)
	}
	return d, nil
}

// Format renders fixed-point units as a human-readable decimal string with
// trailing zeros trimmed.
func Format(units int64, precision int32) string {
	return FromUnits(units, precision).String()
}
