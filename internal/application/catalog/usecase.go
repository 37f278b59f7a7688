// Package catalog manages items: creation, edits, lookup by barcode or
// name, and deactivation. Items are never deleted; committed bills keep
// referencing them forever.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rkpatel33/pos-api/internal/application/dto"
	"github.com/rkpatel33/pos-api/internal/application/inventory"
	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/money"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

// UseCase catalog operations over the item repository. Item creation writes
// through the tx runner so the row and its opening ledger entry land
// together.
type UseCase struct {
	itemRepo repository.ItemRepository
	txRunner inventory.TxRunner
}

// NewUseCase builds the use case. itemRepo is pool-bound and serves reads
// and catalog edits; Create goes through the tx runner.
func NewUseCase(itemRepo repository.ItemRepository, txRunner inventory.TxRunner) *UseCase {
	return &UseCase{itemRepo: itemRepo, txRunner: txRunner}
}

// Create validates and persists a new item. A positive initial stock is
// booked as an adjustment movement in the same transaction as the insert, so
// the ledger reconciles to the counter from the first day and a failed
// movement never leaves a half-created item behind.
func (uc *UseCase) Create(ctx context.Context, actorID string, in dto.CreateItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidValue
	}
	price, err := money.NewPrice(in.UnitPrice)
	if err != nil {
		return nil, err
	}
	taxPct, err := money.NewPercent(in.TaxPct)
	if err != nil {
		return nil, err
	}
	if in.MinStock < 0 || in.InitialStock < 0 {
		return nil, domain.ErrInvalidValue
	}

	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Barcode:   strings.TrimSpace(in.Barcode),
		Name:      name,
		UnitPrice: price,
		TaxPct:    taxPct,
		Stock:     0,
		MinStock:  in.MinStock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		if err := itemRepo.SetStock(item.ID, in.InitialStock); err != nil {
			return err
		}
		return movRepo.Create(&entity.InventoryMovement{
			ID:            uuid.New().String(),
			ItemID:        item.ID,
			Type:          entity.MovementAdjustment,
			QuantityDelta: in.InitialStock,
			PreviousStock: 0,
			NewStock:      in.InitialStock,
			Note:          "initial stock",
			ActorID:       actorID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	item.Stock = in.InitialStock
	return item, nil
}

// Update edits catalog fields. Open carts are unaffected: they hold price
// and tax snapshots from add time.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidValue
	}
	price, err := money.NewPrice(in.UnitPrice)
	if err != nil {
		return nil, err
	}
	taxPct, err := money.NewPercent(in.TaxPct)
	if err != nil {
		return nil, err
	}
	if in.MinStock < 0 {
		return nil, domain.ErrInvalidValue
	}

	item.Barcode = strings.TrimSpace(in.Barcode)
	item.Name = name
	item.UnitPrice = price
	item.TaxPct = taxPct
	item.MinStock = in.MinStock
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Deactivate removes an item from sale without deleting it.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Deactivate(id)
}

// GetByID returns one item.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// FindByBarcode resolves a scanned barcode to its active item.
func (uc *UseCase) FindByBarcode(ctx context.Context, code string) (*entity.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidValue
	}
	item, err := uc.itemRepo.GetByBarcode(code)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// SearchByName lists active items whose name contains the substring.
func (uc *UseCase) SearchByName(ctx context.Context, substr string, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.SearchByName(strings.TrimSpace(substr), limit, offset)
}

// List returns items with pagination.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(limit, offset)
}

// LowStock lists active items at or below their minimum-stock threshold.
func (uc *UseCase) LowStock(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.ListBelowMinStock()
}
