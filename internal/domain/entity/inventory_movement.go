package entity

import "time"

// Movement types (closed set).
const (
	MovementSale       = "sale"
	MovementPurchase   = "purchase"
	MovementAdjustment = "adjustment"
	MovementReturn     = "return"
	MovementDamage     = "damage"
)

// Reference types for the optional movement reference.
const (
	ReferenceBill = "BILL"
)

// ValidMovementType reports whether t is a known movement type.
func ValidMovementType(t string) bool {
	switch t {
	case MovementSale, MovementPurchase, MovementAdjustment, MovementReturn, MovementDamage:
		return true
	}
	return false
}

// InventoryMovement is one append-only ledger entry. Never updated or
// deleted. For any item, replaying its movements in creation order from the
// recorded PreviousStock values reproduces the current stock exactly.
type InventoryMovement struct {
	ID            string
	ItemID        string
	Type          string
	QuantityDelta int64 // signed: negative for sale/damage, positive for purchase/return
	PreviousStock int64
	NewStock      int64
	ReferenceID   string // e.g. bill id for sales
	ReferenceType string // e.g. ReferenceBill
	Note          string
	ActorID       string
	CreatedAt     time.Time
}
