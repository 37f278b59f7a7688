package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentOnline = "online"
)

// Payment status lifecycle. A committed bill is immutable except for the
// completed -> refunded transition.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentOnline:
		return true
	}
	return false
}

// Bill is a committed sale transaction: header totals plus its lines.
// Created only through the checkout coordinator, never by partial writes.
type Bill struct {
	ID            string
	Number        string // human-readable, unique (e.g. POS-20260829143005-0001)
	CustomerName  string // optional walk-in customer details
	CustomerPhone string
	Subtotal      decimal.Decimal // sum of line gross amounts, pre-discount pre-tax
	DiscountAmt   decimal.Decimal // line discounts + bill-level discount
	TaxAmt        decimal.Decimal // sum of line tax amounts
	Total         decimal.Decimal // subtotal + tax − discount
	BillDiscPct   decimal.Decimal // bill-level discount percentage, applied post-tax
	PaymentMethod string
	PaymentStatus string
	CashierID     string // actor who committed the sale
	Lines         []*BillLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Refundable reports whether the bill may transition to refunded.
func (b *Bill) Refundable() bool {
	return b.PaymentStatus == PaymentStatusCompleted
}
