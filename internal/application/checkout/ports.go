package checkout

import (
	"context"

	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

// TxRunner executes fn inside one database transaction, passing repositories
// bound to that transaction. Commit happens only when fn returns nil; any
// error rolls back every write before it propagates. This is what makes the
// Writing step of a checkout all-or-nothing.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		billRepo repository.BillRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
