package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rkpatel33/pos-api/internal/application/dto"
	"github.com/rkpatel33/pos-api/internal/application/inventory"
	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
)

// InventoryHandler manual stock movements, the per-item ledger and the
// ledger-versus-counter reconciliation check (protected).
type InventoryHandler struct {
	uc *inventory.UseCase
}

func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement books a manual movement (purchase, adjustment, return,
// damage). Sales are never booked here; they come out of checkout.
// POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	mov, err := h.uc.Register(c.Context(), inventory.MovementInput{
		ItemID:      in.ItemID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Delta:       in.Delta,
		ReferenceID: in.ReferenceID,
		Note:        in.Note,
		ActorID:     actorID,
	})
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
		}
		if errors.Is(err, domain.ErrInvalidValue) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid movement"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Ledger returns an item's movements, newest first.
// GET /api/inventory/items/:id/movements
func (h *InventoryHandler) Ledger(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	movs, err := h.uc.Ledger(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toMovementResponses(movs))
}

// MovementsForBill returns the SALE rows written by one checkout.
// GET /api/inventory/bills/:id/movements
func (h *InventoryHandler) MovementsForBill(c *fiber.Ctx) error {
	movs, err := h.uc.MovementsForBill(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toMovementResponses(movs))
}

// Reconcile compares the ledger sum with the item's stock counter.
// GET /api/inventory/items/:id/reconciliation
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	rec, err := h.uc.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ReconciliationResponse{
		ItemID:      rec.ItemID,
		LedgerTotal: rec.LedgerTotal,
		Stock:       rec.Stock,
		Consistent:  rec.Consistent,
	})
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Type:          m.Type,
		QuantityDelta: m.QuantityDelta,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		Note:          m.Note,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}

func toMovementResponses(movs []*entity.InventoryMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out
}
