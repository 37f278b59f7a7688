package repository

import "github.com/rkpatel33/pos-api/internal/domain/entity"

// InventoryMovementRepository is the append-only stock ledger. There is no
// update or delete: corrections are new adjustment movements.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByItem(itemID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReference(referenceID, referenceType string) ([]*entity.InventoryMovement, error)

	// SumDeltaByItem returns the sum of quantity deltas for an item, used
	// to reconcile the ledger against the current stock counter.
	SumDeltaByItem(itemID string) (int64, error)
}
