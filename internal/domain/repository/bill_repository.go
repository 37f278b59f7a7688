package repository

import (
	"time"

	"github.com/rkpatel33/pos-api/internal/domain/entity"
)

// BillRepository persists bill headers and lines. Create and CreateLine are
// only ever called inside the checkout transaction; a committed bill is
// immutable apart from UpdatePaymentStatus.
type BillRepository interface {
	Create(bill *entity.Bill) error
	CreateLine(line *entity.BillLine) error
	GetByID(id string) (*entity.Bill, error)
	GetByNumber(number string) (*entity.Bill, error)
	GetLines(billID string) ([]*entity.BillLine, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Bill, error)
	UpdatePaymentStatus(id, status string, updatedAt time.Time) error
}
