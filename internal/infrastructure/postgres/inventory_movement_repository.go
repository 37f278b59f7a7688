package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, item_id, movement_type, quantity_delta, previous_stock,
	new_stock, reference_id, reference_type, note, actor_id, created_at`

// InventoryMovementRepo append-only movement ledger over PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create appends one movement. Rows are never updated or deleted.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (id, item_id, movement_type, quantity_delta,
			previous_stock, new_stock, reference_id, reference_type, note, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.Type, m.QuantityDelta, m.PreviousStock, m.NewStock,
		m.ReferenceID, m.ReferenceType, m.Note, m.ActorID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByItem returns an item's movements newest first.
func (r *InventoryMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE item_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByReference returns the movements booked under one reference, e.g.
// every SALE row of a bill.
func (r *InventoryMovementRepo) ListByReference(refID, refType string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE reference_id = $1 AND reference_type = $2 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, refID, refType)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// SumDeltaByItem totals an item's deltas. With every change booked through
// the ledger this equals the item's current stock.
func (r *InventoryMovementRepo) SumDeltaByItem(itemID string) (int64, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity_delta), 0) FROM inventory_movements WHERE item_id = $1`,
		itemID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movement deltas: %w", err)
	}
	return sum.IntPart(), nil
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var refID, refType, note *string
		err := rows.Scan(&m.ID, &m.ItemID, &m.Type, &m.QuantityDelta, &m.PreviousStock,
			&m.NewStock, &refID, &refType, &note, &m.ActorID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		if note != nil {
			m.Note = *note
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
