// Package billing holds the pure pricing math for a sale. Nothing here
// performs I/O; the cart recomputes through these functions on every edit.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/rkpatel33/pos-api/internal/domain/money"
)

// LineAmounts is the full price breakdown of a single line.
type LineAmounts struct {
	Gross       decimal.Decimal // unit price × quantity
	DiscountAmt decimal.Decimal // rounded, applied before tax
	Net         decimal.Decimal // gross − discount
	TaxAmt      decimal.Decimal // rounded, computed on the post-discount net
	LineTotal   decimal.Decimal // net + tax
}

// CalculateLine derives the breakdown for one line. The order is fixed:
//
//  1. gross = unitPrice × qty
//  2. discount = round2(gross × discountPct/100)
//  3. net = gross − discount
//  4. tax = round2(net × taxPct/100)
//  5. total = net + tax
//
// Rounding happens per line, never on aggregates, so bill totals are exact
// sums of line fields. A non-positive quantity yields an all-zero breakdown
// (an empty line, not an error).
func CalculateLine(unitPrice decimal.Decimal, qty int64, discountPct, taxPct decimal.Decimal) LineAmounts {
	if qty <= 0 {
		return LineAmounts{
			Gross:       decimal.Zero,
			DiscountAmt: decimal.Zero,
			Net:         decimal.Zero,
			TaxAmt:      decimal.Zero,
			LineTotal:   decimal.Zero,
		}
	}

	gross := unitPrice.Mul(decimal.NewFromInt(qty))

	discountAmt := decimal.Zero
	if discountPct.IsPositive() {
		discountAmt = money.Round2(money.ApplyPercent(gross, discountPct))
	}
	net := gross.Sub(discountAmt)

	taxAmt := decimal.Zero
	if taxPct.IsPositive() {
		taxAmt = money.Round2(money.ApplyPercent(net, taxPct))
	}

	return LineAmounts{
		Gross:       gross,
		DiscountAmt: discountAmt,
		Net:         net,
		TaxAmt:      taxAmt,
		LineTotal:   net.Add(taxAmt),
	}
}

// ApplyBillDiscount applies the bill-level discount to the tax-inclusive sum.
// Unlike line discounts (pre-tax), the bill discount applies after tax:
// total = (subtotal + tax) × (1 − pct/100), rounded to currency precision.
// This asymmetry is intentional.
func ApplyBillDiscount(subtotalPlusTax, pct decimal.Decimal) decimal.Decimal {
	if !pct.IsPositive() {
		return money.Round2(subtotalPlusTax)
	}
	return money.Round2(subtotalPlusTax.Mul(money.PercentComplement(pct)))
}
