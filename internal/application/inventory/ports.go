package inventory

import (
	"context"

	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction with repositories
// bound to it. Manual stock operations need the same atomicity as checkout:
// the counter update and the ledger entry land together or not at all.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
