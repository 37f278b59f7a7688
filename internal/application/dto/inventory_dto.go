package dto

// RegisterMovementRequest a manual stock operation. Quantity is used by
// purchase/return/damage (always positive); adjustment takes the signed
// Delta instead.
type RegisterMovementRequest struct {
	ItemID      string `json:"item_id" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=purchase adjustment return damage"`
	Quantity    int64  `json:"quantity"`
	Delta       int64  `json:"delta"`
	ReferenceID string `json:"reference_id"`
	Note        string `json:"note"`
}

// MovementResponse one ledger entry.
type MovementResponse struct {
	ID            string `json:"id"`
	ItemID        string `json:"item_id"`
	Type          string `json:"type"`
	QuantityDelta int64  `json:"quantity_delta"`
	PreviousStock int64  `json:"previous_stock"`
	NewStock      int64  `json:"new_stock"`
	ReferenceID   string `json:"reference_id,omitempty"`
	ReferenceType string `json:"reference_type,omitempty"`
	Note          string `json:"note,omitempty"`
	ActorID       string `json:"actor_id"`
	CreatedAt     string `json:"created_at"`
}

// ReconciliationResponse ledger-versus-counter check for one item.
type ReconciliationResponse struct {
	ItemID      string `json:"item_id"`
	LedgerTotal int64  `json:"ledger_total"`
	Stock       int64  `json:"stock"`
	Consistent  bool   `json:"consistent"`
}
