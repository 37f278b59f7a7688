package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rkpatel33/pos-api/internal/domain/billing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Reference breakdown: price 100.00, qty 2, 10% line discount, 18% tax.
// gross 200.00 → discount 20.00 → net 180.00 → tax 32.40 → total 212.40.
func TestCalculateLine_ReferenceBreakdown(t *testing.T) {
	got := billing.CalculateLine(d("100.00"), 2, d("10"), d("18"))

	assert.Equal(t, "200.00", got.Gross.StringFixed(2))
	assert.Equal(t, "20.00", got.DiscountAmt.StringFixed(2))
	assert.Equal(t, "180.00", got.Net.StringFixed(2))
	assert.Equal(t, "32.40", got.TaxAmt.StringFixed(2))
	assert.Equal(t, "212.40", got.LineTotal.StringFixed(2))
}

// Tax applies to the post-discount net, not the gross. With tax on gross the
// total would be 236.00 − 20.00 = 216.00; the correct order gives 212.40.
func TestCalculateLine_TaxOnNetNotGross(t *testing.T) {
	got := billing.CalculateLine(d("100.00"), 2, d("10"), d("18"))
	assert.NotEqual(t, "216.00", got.LineTotal.StringFixed(2))
	assert.Equal(t, "212.40", got.LineTotal.StringFixed(2))
}

func TestCalculateLine_NoDiscountNoTax(t *testing.T) {
	got := billing.CalculateLine(d("49.99"), 3, decimal.Zero, decimal.Zero)

	assert.Equal(t, "149.97", got.Gross.StringFixed(2))
	assert.True(t, got.DiscountAmt.IsZero())
	assert.True(t, got.TaxAmt.IsZero())
	assert.Equal(t, "149.97", got.LineTotal.StringFixed(2))
}

// Discount and tax round at the line, half-up.
func TestCalculateLine_RoundsAtTheLine(t *testing.T) {
	// gross 33.33, 7.5% discount = 2.49975 → 2.50
	got := billing.CalculateLine(d("33.33"), 1, d("7.5"), decimal.Zero)
	assert.Equal(t, "2.50", got.DiscountAmt.StringFixed(2))
	assert.Equal(t, "30.83", got.Net.StringFixed(2))

	// net 30.83, 18% tax = 5.5494 → 5.55
	got = billing.CalculateLine(d("33.33"), 1, d("7.5"), d("18"))
	assert.Equal(t, "5.55", got.TaxAmt.StringFixed(2))
	assert.Equal(t, "36.38", got.LineTotal.StringFixed(2))
}

// A non-positive quantity is an empty line, not an error.
func TestCalculateLine_NonPositiveQuantity(t *testing.T) {
	for _, qty := range []int64{0, -1} {
		got := billing.CalculateLine(d("100.00"), qty, d("10"), d("18"))
		assert.True(t, got.Gross.IsZero(), "qty %d gross", qty)
		assert.True(t, got.LineTotal.IsZero(), "qty %d total", qty)
	}
}

func TestCalculateLine_Deterministic(t *testing.T) {
	a := billing.CalculateLine(d("19.90"), 7, d("5"), d("12"))
	b := billing.CalculateLine(d("19.90"), 7, d("5"), d("12"))
	assert.True(t, a.LineTotal.Equal(b.LineTotal), "same input, same breakdown")
}

// Bill discount applies after tax: (subtotal+tax) × (1 − pct/100).
func TestApplyBillDiscount(t *testing.T) {
	got := billing.ApplyBillDiscount(d("236.00"), d("5"))
	assert.Equal(t, "224.20", got.StringFixed(2))
}

func TestApplyBillDiscount_ZeroPctIsIdentity(t *testing.T) {
	got := billing.ApplyBillDiscount(d("224.20"), decimal.Zero)
	assert.Equal(t, "224.20", got.StringFixed(2))
}

func TestApplyBillDiscount_FullDiscount(t *testing.T) {
	got := billing.ApplyBillDiscount(d("100.00"), d("100"))
	assert.Equal(t, "0.00", got.StringFixed(2))
}
