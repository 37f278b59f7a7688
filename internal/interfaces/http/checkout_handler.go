package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rkpatel33/pos-api/internal/application/cart"
	"github.com/rkpatel33/pos-api/internal/application/catalog"
	"github.com/rkpatel33/pos-api/internal/application/checkout"
	"github.com/rkpatel33/pos-api/internal/application/dto"
	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
)

// CheckoutHandler turns a cart payload into a committed bill (protected).
type CheckoutHandler struct {
	catalogUC   *catalog.UseCase
	coordinator *checkout.Coordinator
}

func NewCheckoutHandler(catalogUC *catalog.UseCase, coordinator *checkout.Coordinator) *CheckoutHandler {
	return &CheckoutHandler{catalogUC: catalogUC, coordinator: coordinator}
}

// Commit rebuilds the cart against current catalog state, finalizes it and
// runs the checkout transaction. One request, one bill.
// POST /api/checkout
func (h *CheckoutHandler) Commit(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}

	crt := cart.New()
	for _, lineReq := range in.Lines {
		item, err := h.resolveItem(c, lineReq)
		if err != nil {
			return h.mapError(c, err)
		}
		if err := crt.Add(item, lineReq.Quantity); err != nil {
			return h.mapError(c, err)
		}
		if !lineReq.DiscountPct.IsZero() {
			if err := crt.SetLineDiscount(item.ID, lineReq.DiscountPct); err != nil {
				return h.mapError(c, err)
			}
		}
	}
	if !in.BillDiscPct.IsZero() {
		if err := crt.SetBillDiscount(in.BillDiscPct); err != nil {
			return h.mapError(c, err)
		}
	}
	crt.SetCustomer(in.CustomerName, in.CustomerPhone)

	bill, err := crt.Finalize()
	if err != nil {
		return h.mapError(c, err)
	}

	committed, err := h.coordinator.Commit(c.Context(), checkout.Input{
		Bill:          bill,
		PaymentMethod: in.PaymentMethod,
		ActorID:       actorID,
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBillResponse(committed, committed.Lines))
}

func (h *CheckoutHandler) resolveItem(c *fiber.Ctx, lineReq dto.CheckoutLineRequest) (*entity.Item, error) {
	switch {
	case lineReq.ItemID != "":
		return h.catalogUC.GetByID(c.Context(), lineReq.ItemID)
	case lineReq.Barcode != "":
		return h.catalogUC.FindByBarcode(c.Context(), lineReq.Barcode)
	default:
		return nil, domain.ErrInvalidValue
	}
}

func (h *CheckoutHandler) mapError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: stockErr.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "cart has no lines"})
	case errors.Is(err, domain.ErrInvalidValue):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid line, discount or payment method"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found or inactive"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "checkout could not be persisted, retry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
