package dto

import "github.com/shopspring/decimal"

// CreateItemRequest creates a catalog item. InitialStock, when positive, is
// booked through the inventory ledger so the item reconciles from day one.
type CreateItemRequest struct {
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	TaxPct       decimal.Decimal `json:"tax_pct"`
	MinStock     int64           `json:"min_stock" validate:"omitempty,min=0"`
	InitialStock int64           `json:"initial_stock" validate:"omitempty,min=0"`
}

// UpdateItemRequest edits catalog fields. Stock is not editable here; stock
// changes go through inventory movements.
type UpdateItemRequest struct {
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
	TaxPct    decimal.Decimal `json:"tax_pct"`
	MinStock  int64           `json:"min_stock" validate:"omitempty,min=0"`
}

// ItemResponse catalog item as returned by the API.
type ItemResponse struct {
	ID        string          `json:"id"`
	Barcode   string          `json:"barcode,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxPct    decimal.Decimal `json:"tax_pct"`
	Stock     int64           `json:"stock"`
	MinStock  int64           `json:"min_stock"`
	Active    bool            `json:"active"`
}
