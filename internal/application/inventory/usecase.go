// Package inventory covers the stock operations outside the sale path:
// purchases, manual adjustments, customer returns and damage write-offs,
// plus ledger queries and reconciliation.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

// UseCase registers manual inventory movements transactionally. Each
// movement locks the item row, recomputes the counter and appends exactly
// one ledger entry recording stock before and after.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.InventoryMovementRepository
}

// NewUseCase builds the use case. itemRepo and movRepo are pool-bound and
// used for reads only; writes go through the tx runner.
func NewUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, movRepo repository.InventoryMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// MovementInput describes one manual stock operation. Quantity is always
// positive; the movement type decides the sign of the ledger delta:
// purchase/return add stock, damage removes it, adjustment takes an explicit
// Delta instead.
type MovementInput struct {
	ItemID      string
	Type        string // purchase | adjustment | return | damage
	Quantity    int64  // > 0 for purchase/return/damage
	Delta       int64  // signed, adjustment only
	ReferenceID string // optional, e.g. refunded bill id for returns
	Note        string
	ActorID     string
}

// Register validates input and applies the movement atomically. Outbound
// movements (damage, negative adjustment) are rejected when they would push
// stock below zero.
func (uc *UseCase) Register(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	var delta int64
	switch in.Type {
	case entity.MovementPurchase, entity.MovementReturn:
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidValue
		}
		delta = in.Quantity
	case entity.MovementDamage:
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidValue
		}
		delta = -in.Quantity
	case entity.MovementAdjustment:
		if in.Delta == 0 {
			return nil, domain.ErrInvalidValue
		}
		delta = in.Delta
	default:
		// Sales only enter the ledger through the checkout coordinator.
		return nil, domain.ErrInvalidValue
	}
	if in.ActorID == "" {
		return nil, domain.ErrUnauthorized
	}

	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		locked, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		newStock := locked.Stock + delta
		if newStock < 0 {
			return &domain.InsufficientStockError{
				ItemID:    in.ItemID,
				Requested: -delta,
				Available: locked.Stock,
			}
		}
		if err := itemRepo.SetStock(in.ItemID, newStock); err != nil {
			return err
		}
		refType := ""
		if in.ReferenceID != "" {
			refType = entity.ReferenceBill
		}
		mov = &entity.InventoryMovement{
			ID:            uuid.New().String(),
			ItemID:        in.ItemID,
			Type:          in.Type,
			QuantityDelta: delta,
			PreviousStock: locked.Stock,
			NewStock:      newStock,
			ReferenceID:   in.ReferenceID,
			ReferenceType: refType,
			Note:          in.Note,
			ActorID:       in.ActorID,
			CreatedAt:     now,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Ledger lists the movements of one item, newest first.
func (uc *UseCase) Ledger(ctx context.Context, itemID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByItem(itemID, limit, offset)
}

// MovementsForBill returns the ledger entries written by one committed bill.
func (uc *UseCase) MovementsForBill(ctx context.Context, billID string) ([]*entity.InventoryMovement, error) {
	return uc.movRepo.ListByReference(billID, entity.ReferenceBill)
}

// Reconciliation is the result of replaying an item's ledger against its
// current stock counter.
type Reconciliation struct {
	ItemID      string
	LedgerTotal int64 // sum of all quantity deltas
	Stock       int64 // current counter on the item row
	Consistent  bool
}

// Reconcile verifies the append-only invariant: the sum of every movement's
// delta must equal the item's current stock (initial stock enters the ledger
// as a purchase or adjustment movement at item creation).
func (uc *UseCase) Reconcile(ctx context.Context, itemID string) (*Reconciliation, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.movRepo.SumDeltaByItem(itemID)
	if err != nil {
		return nil, err
	}
	return &Reconciliation{
		ItemID:      itemID,
		LedgerTotal: total,
		Stock:       item.Stock,
		Consistent:  total == item.Stock,
	}, nil
}
