package entity

import "github.com/shopspring/decimal"

// BillLine is the durable counterpart of a cart line. Name, barcode, price
// and tax rate are snapshots from the moment the item entered the cart, so
// later catalog edits never change a committed bill. Immutable once written.
type BillLine struct {
	ID          string
	BillID      string
	LineNo      int // 1-based position within the bill
	ItemID      string
	ItemName    string
	Barcode     string
	Quantity    int64
	UnitPrice   decimal.Decimal
	DiscountPct decimal.Decimal
	DiscountAmt decimal.Decimal
	TaxPct      decimal.Decimal
	TaxAmt      decimal.Decimal
	LineTotal   decimal.Decimal
}
