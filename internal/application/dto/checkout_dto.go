package dto

import "github.com/shopspring/decimal"

// CheckoutLineRequest one cart line. Items can be referenced by id or by
// scanned barcode; exactly one must be present.
type CheckoutLineRequest struct {
	ItemID      string          `json:"item_id"`
	Barcode     string          `json:"barcode"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

// CheckoutRequest the full cart plus payment confirmation. The server
// rebuilds the cart from current catalog state, applies the discounts and
// hands the finalized bill to the coordinator.
type CheckoutRequest struct {
	Lines         []CheckoutLineRequest `json:"lines" validate:"required,min=1,dive"`
	BillDiscPct   decimal.Decimal       `json:"bill_discount_pct"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	PaymentMethod string                `json:"payment_method" validate:"required,oneof=cash card upi online"`
}

// BillLineResponse a persisted bill line.
type BillLineResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	ItemName    string          `json:"item_name"`
	Barcode     string          `json:"barcode,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	DiscountAmt decimal.Decimal `json:"discount_amount"`
	TaxPct      decimal.Decimal `json:"tax_pct"`
	TaxAmt      decimal.Decimal `json:"tax_amount"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// BillResponse a committed bill with its lines.
type BillResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountAmt   decimal.Decimal    `json:"discount_amount"`
	TaxAmt        decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
	BillDiscPct   decimal.Decimal    `json:"bill_discount_pct"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	CashierID     string             `json:"cashier_id"`
	CreatedAt     string             `json:"created_at"`
	Lines         []BillLineResponse `json:"lines"`
}
