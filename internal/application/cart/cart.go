// Package cart implements the per-session cart aggregator. A cart is owned
// by exactly one cashier session and is never shared, so it needs no
// locking. It performs no I/O: stock checks here are advisory pre-checks
// against the stock known at scan time; the authoritative check happens in
// the checkout coordinator.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/billing"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/money"
)

// Line is one cart entry for a single item. UnitPrice and TaxPct are
// snapshots taken when the item was added, so catalog edits made while the
// cart is open do not change it.
type Line struct {
	ItemID      string
	ItemName    string
	Barcode     string
	UnitPrice   decimal.Decimal
	TaxPct      decimal.Decimal
	DiscountPct decimal.Decimal
	Quantity    int64
	KnownStock  int64 // stock reported by the catalog at add time
	Amounts     billing.LineAmounts
}

// Cart accumulates lines and bill-level state. At most one line per item id;
// adding an item already present merges into the existing line.
type Cart struct {
	lines         []*Line
	index         map[string]*Line
	billDiscPct   decimal.Decimal
	customerName  string
	customerPhone string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]*Line)}
}

// Add puts qty units of item into the cart, merging with an existing line
// for the same item. Fails with InsufficientStockError when the combined
// quantity exceeds the stock known from the catalog read (advisory only).
func (c *Cart) Add(item *entity.Item, qty int64) error {
	if item == nil || qty < 1 {
		return domain.ErrInvalidValue
	}
	if !item.Active {
		return domain.ErrNotFound
	}

	if line, ok := c.index[item.ID]; ok {
		total := line.Quantity + qty
		if total > line.KnownStock {
			return &domain.InsufficientStockError{ItemID: item.ID, Requested: total, Available: line.KnownStock}
		}
		line.Quantity = total
		c.recompute(line)
		return nil
	}

	if qty > item.Stock {
		return &domain.InsufficientStockError{ItemID: item.ID, Requested: qty, Available: item.Stock}
	}
	line := &Line{
		ItemID:      item.ID,
		ItemName:    item.Name,
		Barcode:     item.Barcode,
		UnitPrice:   item.UnitPrice,
		TaxPct:      item.TaxPct,
		DiscountPct: decimal.Zero,
		Quantity:    qty,
		KnownStock:  item.Stock,
	}
	c.recompute(line)
	c.lines = append(c.lines, line)
	c.index[item.ID] = line
	return nil
}

// Remove drops the line for itemID.
func (c *Cart) Remove(itemID string) error {
	if _, ok := c.index[itemID]; !ok {
		return domain.ErrNotFound
	}
	delete(c.index, itemID)
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
	return nil
}

// SetQuantity replaces the quantity of an existing line and recomputes it.
func (c *Cart) SetQuantity(itemID string, qty int64) error {
	line, ok := c.index[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	if qty < 1 {
		return domain.ErrInvalidValue
	}
	if qty > line.KnownStock {
		return &domain.InsufficientStockError{ItemID: itemID, Requested: qty, Available: line.KnownStock}
	}
	line.Quantity = qty
	c.recompute(line)
	return nil
}

// SetLineDiscount sets the line-level discount percentage (applied pre-tax).
func (c *Cart) SetLineDiscount(itemID string, pct decimal.Decimal) error {
	line, ok := c.index[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	p, err := money.NewPercent(pct)
	if err != nil {
		return err
	}
	line.DiscountPct = p
	c.recompute(line)
	return nil
}

// SetBillDiscount sets the bill-level discount percentage. Unlike line
// discounts it applies to the tax-inclusive sum at finalize time.
func (c *Cart) SetBillDiscount(pct decimal.Decimal) error {
	p, err := money.NewPercent(pct)
	if err != nil {
		return err
	}
	c.billDiscPct = p
	return nil
}

// SetCustomer records optional walk-in customer details for the bill.
func (c *Cart) SetCustomer(name, phone string) {
	c.customerName = name
	c.customerPhone = phone
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []*Line {
	out := make([]*Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Clear drops every line and resets bill-level state.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]*Line)
	c.billDiscPct = decimal.Zero
	c.customerName = ""
	c.customerPhone = ""
}

// Totals returns the current bill-level aggregates: subtotal (sum of line
// gross amounts, pre-discount), total discount (line discounts plus the
// bill-level amount), tax (sum of line tax) and the grand total after the
// post-tax bill discount. The fields satisfy
// total = subtotal + tax - discount exactly.
func (c *Cart) Totals() (subtotal, discount, tax, total decimal.Decimal) {
	subtotal, discount, tax = decimal.Zero, decimal.Zero, decimal.Zero
	net := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Amounts.Gross)
		discount = discount.Add(line.Amounts.DiscountAmt)
		tax = tax.Add(line.Amounts.TaxAmt)
		net = net.Add(line.Amounts.Net)
	}
	// The bill discount applies to the tax-inclusive sum of line totals,
	// i.e. nets plus tax, not to the pre-discount subtotal.
	taxed := net.Add(tax)
	total = billing.ApplyBillDiscount(taxed, c.billDiscPct)
	discount = discount.Add(taxed.Sub(total))
	return subtotal, discount, tax, total
}

// Finalize freezes the cart into a Bill value ready for checkout: no id, no
// bill number, payment pending. Fails with ErrEmptyCart when no lines exist.
// The cart itself is left untouched; the caller clears it after commit.
func (c *Cart) Finalize() (*entity.Bill, error) {
	if len(c.lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	subtotal, discount, tax, total := c.Totals()
	bill := &entity.Bill{
		CustomerName:  c.customerName,
		CustomerPhone: c.customerPhone,
		Subtotal:      subtotal,
		DiscountAmt:   discount,
		TaxAmt:        tax,
		Total:         total,
		BillDiscPct:   c.billDiscPct,
		PaymentStatus: entity.PaymentStatusPending,
	}
	for _, line := range c.lines {
		bill.Lines = append(bill.Lines, &entity.BillLine{
			ItemID:      line.ItemID,
			ItemName:    line.ItemName,
			Barcode:     line.Barcode,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			DiscountPct: line.DiscountPct,
			DiscountAmt: line.Amounts.DiscountAmt,
			TaxPct:      line.TaxPct,
			TaxAmt:      line.Amounts.TaxAmt,
			LineTotal:   line.Amounts.LineTotal,
		})
	}
	return bill, nil
}

func (c *Cart) recompute(line *Line) {
	line.Amounts = billing.CalculateLine(line.UnitPrice, line.Quantity, line.DiscountPct, line.TaxPct)
}
