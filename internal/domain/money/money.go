// Package money holds the fixed-point arithmetic used for every monetary and
// percentage value in the system. All amounts are shopspring decimals; binary
// floats never enter a calculation.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/rkpatel33/pos-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// NewPrice validates a currency amount. Negative prices are rejected.
func NewPrice(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Decimal{}, domain.ErrInvalidValue
	}
	return d, nil
}

// NewPercent validates a percentage in [0, 100].
func NewPercent(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return decimal.Decimal{}, domain.ErrInvalidValue
	}
	return d, nil
}

// Round2 rounds half-up to currency precision (2 decimal places).
// decimal.Round rounds half away from zero, which for the non-negative
// amounts produced by the calculators is exactly half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApplyPercent returns amount × pct/100, unrounded. Callers round where the
// pricing rules say rounding happens (at the line, not the aggregate).
func ApplyPercent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// PercentComplement returns (1 − pct/100) as a decimal factor.
func PercentComplement(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(pct.Div(hundred))
}
