package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, barcode, name, unit_price, tax_pct, stock, min_stock, active, created_at, updated_at"

// ItemRepo ItemRepository over PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persists a new item. Barcodes are unique when present.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, barcode, name, unit_price, tax_pct, stock, min_stock, active, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Barcode, item.Name, item.UnitPrice, item.TaxPct,
		item.Stock, item.MinStock, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update edits catalog fields. Stock is deliberately not written here.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items
		SET barcode = NULLIF($2, ''), name = $3, unit_price = $4, tax_pct = $5, min_stock = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Barcode, item.Name, item.UnitPrice, item.TaxPct, item.MinStock, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate flags the item as no longer sellable.
func (r *ItemRepo) Deactivate(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE items SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns one item, or nil when absent.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByBarcode resolves a scanned barcode, or nil when unknown.
func (r *ItemRepo) GetByBarcode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE barcode = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return item, nil
}

// SearchByName lists active items whose name contains substr (case-insensitive).
func (r *ItemRepo) SearchByName(substr string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE active AND name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, substr, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// List returns items with pagination, newest first.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListBelowMinStock lists active items at or below their reorder threshold.
func (r *ItemRepo) ListBelowMinStock() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE active AND stock <= min_stock ORDER BY stock`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetForUpdate reads the item and locks its row (SELECT ... FOR UPDATE).
// Concurrent transactions touching the same item serialize here.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

// DecrementStock subtracts qty conditional on stock still being
// expectedCurrent. The WHERE clause makes the decrement and the check one
// statement, so even without an explicit row lock the update cannot clobber
// a concurrent write.
func (r *ItemRepo) DecrementStock(id string, qty, expectedCurrent int64) (int64, error) {
	query := `
		UPDATE items SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock = $3
		RETURNING stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, id, qty, expectedCurrent).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row exists with different stock, or no row at all.
			exists, lookupErr := r.GetByID(id)
			if lookupErr != nil {
				return 0, lookupErr
			}
			if exists == nil {
				return 0, domain.ErrNotFound
			}
			return 0, domain.ErrStockConflict
		}
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return newStock, nil
}

// SetStock writes an absolute stock value. Callers hold the row lock.
func (r *ItemRepo) SetStock(id string, stock int64) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE items SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var barcode *string
	err := row.Scan(&it.ID, &barcode, &it.Name, &it.UnitPrice, &it.TaxPct,
		&it.Stock, &it.MinStock, &it.Active, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if barcode != nil {
		it.Barcode = *barcode
	}
	return &it, nil
}

func scanItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
