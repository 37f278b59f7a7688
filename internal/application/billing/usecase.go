// Package billing (application side) reads committed bills and performs the
// one mutation a committed bill allows: the refund status transition.
package billing

import (
	"context"
	"time"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

// UseCase bill queries and payment-status transitions.
type UseCase struct {
	billRepo repository.BillRepository
}

// NewUseCase builds the use case.
func NewUseCase(billRepo repository.BillRepository) *UseCase {
	return &UseCase{billRepo: billRepo}
}

// Get returns a bill with its lines.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Bill, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.billRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	bill.Lines = lines
	return bill, nil
}

// GetByNumber resolves the human-readable bill number.
func (uc *UseCase) GetByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	bill, err := uc.billRepo.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.billRepo.GetLines(bill.ID)
	if err != nil {
		return nil, err
	}
	bill.Lines = lines
	return bill, nil
}

// List returns bill headers in a date range, newest first.
func (uc *UseCase) List(ctx context.Context, from, to *time.Time, limit, offset int) ([]*entity.Bill, error) {
	return uc.billRepo.List(from, to, limit, offset)
}

// Refund transitions completed -> refunded. The bill's amounts and lines
// stay untouched; restocking, if wanted, is a separate return movement
// referencing this bill.
func (uc *UseCase) Refund(ctx context.Context, id string) (*entity.Bill, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if !bill.Refundable() {
		return nil, domain.ErrBillNotRefundable
	}
	now := time.Now()
	if err := uc.billRepo.UpdatePaymentStatus(id, entity.PaymentStatusRefunded, now); err != nil {
		return nil, err
	}
	bill.PaymentStatus = entity.PaymentStatusRefunded
	bill.UpdatedAt = now
	lines, err := uc.billRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	bill.Lines = lines
	return bill, nil
}
