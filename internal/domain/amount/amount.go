// Package amount converts between human decimal amounts and the integer
// base units the quoting backend expects. All arithmetic is exact decimal.
package amount

import (
	"fmt"
	"strings"

	"bridgequote/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPrecision is the number of fractional digits shown for token amounts.
	DefaultPrecision int32 = 6
	// FeePrecision is the number of fractional digits shown for USD fees.
	FeePrecision int32 = 3
	// maxDecimals bounds token precision; no real token exceeds it.
	maxDecimals int32 = 36
)

func parse(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a decimal number", apperrors.ErrInvalidInput, raw)
	}
	return d, nil
}

func checkDecimals(decimals int32) error {
	if decimals < 0 || decimals > maxDecimals {
		return fmt.Errorf("%w: token decimals %d out of range", apperrors.ErrInvalidInput, decimals)
	}
	return nil
}

// ToBaseUnits multiplies a decimal amount by 10^decimals and renders the
// integer part. Any remainder below one base unit is truncated.
func ToBaseUnits(value string, decimals int32) (string, error) {
	if err := checkDecimals(decimals); err != nil {
		return "", err
	}
	d, err := parse(value)
	if err != nil {
		return "", err
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: amount %q is negative", apperrors.ErrInvalidInput, value)
	}
	return d.Shift(decimals).Truncate(0).String(), nil
}

// FromBaseUnits divides a base-unit amount by 10^decimals and formats it
// with a fixed number of fractional digits.
func FromBaseUnits(baseUnits string, decimals int32, precision int32) (string, error) {
	d, err := toDisplay(baseUnits, decimals)
	if err != nil {
		return "", err
	}
	return d.StringFixed(precision), nil
}

func toDisplay(baseUnits string, decimals int32) (decimal.Decimal, error) {
	if err := checkDecimals(decimals); err != nil {
		return decimal.Zero, err
	}
	d, err := parse(baseUnits)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-decimals), nil
}

// FormatFeeUSD renders a USD fee with three fractional digits.
func FormatFeeUSD(fee string) (string, error) {
	d, err := parse(fee)
	if err != nil {
		return "", err
	}
	return d.StringFixed(FeePrecision), nil
}

// ExchangeRate returns how many destination tokens one source token buys,
// given the human input amount and the route's destination base units.
func ExchangeRate(fromAmount string, toBaseUnits string, toDecimals int32) (string, error) {
	from, err := parse(fromAmount)
	if err != nil {
		return "", err
	}
	if !from.IsPositive() {
		return "", fmt.Errorf("%w: input amount %q must be positive", apperrors.ErrInvalidInput, fromAmount)
	}
	to, err := toDisplay(toBaseUnits, toDecimals)
	if err != nil {
		return "", err
	}
	// the displayed destination amount is what the rate is derived from
	to = to.Round(DefaultPrecision)
	return to.Div(from).StringFixed(DefaultPrecision), nil
}
