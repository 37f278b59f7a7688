package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog entry. Stock is mutated only through inventory movements
// (sale, purchase, adjustment, return, damage); catalog edits touch price,
// name and tax. Items are never deleted, only deactivated.
type Item struct {
	ID        string
	Barcode   string // unique when set, may be empty
	Name      string
	UnitPrice decimal.Decimal // currency, >= 0
	TaxPct    decimal.Decimal // GST percentage, 0..100
	Stock     int64           // whole units on hand
	MinStock  int64           // reorder threshold
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
