// Package checkout implements the transaction coordinator: the only
// component that turns a finalized cart into durable state. It owns the
// Pending -> Validating -> Writing -> Committed state machine and the
// all-or-nothing guarantee across bills, bill_lines, items and
// inventory_movements.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
	"github.com/rkpatel33/pos-api/pkg/logger"
)

// Coordinator commits finalized bills. One instance is shared by all cashier
// sessions; all shared mutable state lives behind the row locks taken inside
// the transaction.
type Coordinator struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository // pool-bound, read-only pre-validation
	numbers  *BillNumberGenerator
	attempts int
	log      *logger.Logger
}

// NewCoordinator builds the coordinator. attempts bounds the bill-number
// collision retries (minimum 1).
func NewCoordinator(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	numbers *BillNumberGenerator,
	attempts int,
	log *logger.Logger,
) *Coordinator {
	if attempts < 1 {
		attempts = 1
	}
	return &Coordinator{
		txRunner: txRunner,
		itemRepo: itemRepo,
		numbers:  numbers,
		attempts: attempts,
		log:      log,
	}
}

// Input is a finalized bill plus the payment confirmation and the acting
// cashier. The bill value comes from cart.Finalize and carries no id yet.
type Input struct {
	Bill          *entity.Bill
	PaymentMethod string
	ActorID       string
}

// Commit runs the checkout protocol:
//
//  1. Validating — re-read authoritative stock for every line and confirm
//     availability. Any shortfall fails the whole operation before a single
//     write happens.
//  2. Writing — one transaction: bill header, every line, a row-locked
//     conditional stock decrement per line, and one SALE movement per line
//     referencing the bill. Any failure rolls everything back.
//  3. Committed — the persisted bill (id, number, timestamps) is returned.
//
// A unique-violation on the bill number regenerates the number and restarts
// from Validating, at most the configured number of attempts.
func (co *Coordinator) Commit(ctx context.Context, in Input) (*entity.Bill, error) {
	if in.Bill == nil || len(in.Bill.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidValue
	}
	if in.ActorID == "" {
		return nil, domain.ErrUnauthorized
	}

	var lastErr error
	for attempt := 1; attempt <= co.attempts; attempt++ {
		bill, err := co.tryCommit(ctx, in)
		if err == nil {
			co.log.Info().
				Str("bill_id", bill.ID).
				Str("bill_number", bill.Number).
				Str("cashier", in.ActorID).
				Int("lines", len(bill.Lines)).
				Str("total", bill.Total.StringFixed(2)).
				Msg("checkout committed")
			return bill, nil
		}
		if errors.Is(err, domain.ErrBillNumberCollision) {
			co.log.Warn().Int("attempt", attempt).Msg("bill number collision, regenerating")
			lastErr = err
			continue
		}
		return nil, err
	}
	co.log.Error().Int("attempts", co.attempts).Err(lastErr).Msg("bill number attempts exhausted")
	return nil, fmt.Errorf("checkout: bill number collision after %d attempts: %w", co.attempts, domain.ErrStorage)
}

// tryCommit performs one Validating + Writing pass with a fresh bill number.
func (co *Coordinator) tryCommit(ctx context.Context, in Input) (*entity.Bill, error) {
	// Validating: authoritative stock, not the snapshot taken at scan time.
	// Time passes between scanning and paying, and concurrent sales may have
	// consumed stock in the interim.
	for _, line := range in.Bill.Lines {
		item, err := co.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("validate line %s: %w", line.ItemID, err)
		}
		if item == nil || !item.Active {
			return nil, domain.ErrNotFound
		}
		if item.Stock < line.Quantity {
			return nil, &domain.InsufficientStockError{
				ItemID:    line.ItemID,
				Requested: line.Quantity,
				Available: item.Stock,
			}
		}
	}

	now := time.Now()
	bill := co.buildBill(in, now)

	// Writing: single atomic unit. The run callback sees repositories bound
	// to one transaction; returning an error discards every write.
	err := co.txRunner.RunCheckout(ctx, func(
		itemRepo repository.ItemRepository,
		billRepo repository.BillRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := billRepo.Create(bill); err != nil {
			return err
		}
		for _, line := range bill.Lines {
			if err := billRepo.CreateLine(line); err != nil {
				return err
			}
		}
		for _, line := range bill.Lines {
			// Lock the item row. Concurrent checkouts for the same item
			// queue here, so the check below is race-free.
			item, err := itemRepo.GetForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Stock < line.Quantity {
				return &domain.InsufficientStockError{
					ItemID:    line.ItemID,
					Requested: line.Quantity,
					Available: item.Stock,
				}
			}
			newStock, err := itemRepo.DecrementStock(line.ItemID, line.Quantity, item.Stock)
			if err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ID:            uuid.New().String(),
				ItemID:        line.ItemID,
				Type:          entity.MovementSale,
				QuantityDelta: -line.Quantity,
				PreviousStock: item.Stock,
				NewStock:      newStock,
				ReferenceID:   bill.ID,
				ReferenceType: entity.ReferenceBill,
				Note:          "sale " + bill.Number,
				ActorID:       in.ActorID,
				CreatedAt:     now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// buildBill copies the finalized value into the entity that will be
// persisted, assigning ids, number, payment state and timestamps.
func (co *Coordinator) buildBill(in Input, now time.Time) *entity.Bill {
	src := in.Bill
	bill := &entity.Bill{
		ID:            uuid.New().String(),
		Number:        co.numbers.Next(now),
		CustomerName:  src.CustomerName,
		CustomerPhone: src.CustomerPhone,
		Subtotal:      src.Subtotal,
		DiscountAmt:   src.DiscountAmt,
		TaxAmt:        src.TaxAmt,
		Total:         src.Total,
		BillDiscPct:   src.BillDiscPct,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: entity.PaymentStatusCompleted,
		CashierID:     in.ActorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, l := range src.Lines {
		bill.Lines = append(bill.Lines, &entity.BillLine{
			ID:          uuid.New().String(),
			BillID:      bill.ID,
			LineNo:      i + 1,
			ItemID:      l.ItemID,
			ItemName:    l.ItemName,
			Barcode:     l.Barcode,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			DiscountPct: l.DiscountPct,
			DiscountAmt: l.DiscountAmt,
			TaxPct:      l.TaxPct,
			TaxAmt:      l.TaxAmt,
			LineTotal:   l.LineTotal,
		})
	}
	return bill
}
