package repository

import "github.com/rkpatel33/pos-api/internal/domain/entity"

// ItemRepository is the catalog/stock gateway port. GetForUpdate and
// DecrementStock exist for the checkout transaction: the first locks the
// item row, the second decrements conditionally on the expected current
// stock so concurrent checkouts can never both succeed past availability.
type ItemRepository interface {
	Create(item *entity.Item) error
	Update(item *entity.Item) error
	Deactivate(id string) error
	GetByID(id string) (*entity.Item, error)
	GetByBarcode(code string) (*entity.Item, error)
	SearchByName(substr string, limit, offset int) ([]*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	ListBelowMinStock() ([]*entity.Item, error)

	// GetForUpdate reads the item and locks its row for the remainder of
	// the surrounding transaction (SELECT ... FOR UPDATE).
	GetForUpdate(id string) (*entity.Item, error)

	// DecrementStock subtracts qty conditional on the stock still being
	// expectedCurrent. Returns the new stock, ErrStockConflict when the
	// condition failed, or ErrNotFound.
	DecrementStock(id string, qty, expectedCurrent int64) (int64, error)

	// SetStock writes an absolute stock value. Callers hold the row lock
	// (GetForUpdate) and have already recorded the movement delta.
	SetStock(id string, stock int64) error
}
