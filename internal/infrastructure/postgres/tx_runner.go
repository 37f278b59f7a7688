package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rkpatel33/pos-api/internal/application/checkout"
	"github.com/rkpatel33/pos-api/internal/application/inventory"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

// Ensure TxRunner implements the application ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction with
// repositories bound to it. Commit on nil, rollback otherwise — the deferred
// rollback is a no-op after a successful commit.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run starts a transaction with item and movement repos (manual inventory
// operations).
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewInventoryMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheckout starts a transaction with the three repos the checkout
// coordinator writes through (bills, items, movements).
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	billRepo repository.BillRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewBillRepository(tx), NewInventoryMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
