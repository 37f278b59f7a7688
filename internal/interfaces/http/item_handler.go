package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rkpatel33/pos-api/internal/application/catalog"
	"github.com/rkpatel33/pos-api/internal/application/dto"
	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
)

// ItemHandler handles catalog item requests (protected).
type ItemHandler struct {
	uc *catalog.UseCase
}

func NewItemHandler(uc *catalog.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create registers a new catalog item.
// POST /api/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	item, err := h.uc.Create(c.Context(), GetActorID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidValue) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid price or percent"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "barcode already in use"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item))
}

// Update edits an item's catalog fields.
// PUT /api/items/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	item, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
		}
		if errors.Is(err, domain.ErrInvalidValue) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid price or percent"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "barcode already in use"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toItemResponse(item))
}

// Deactivate removes an item from sale without deleting its history.
// DELETE /api/items/:id
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID returns one item.
// GET /api/items/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toItemResponse(item))
}

// List returns items; ?q= searches active items by name, ?barcode= resolves
// a scanned code.
// GET /api/items
func (h *ItemHandler) List(c *fiber.Ctx) error {
	if code := c.Query("barcode"); code != "" {
		item, err := h.uc.FindByBarcode(c.Context(), code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unknown barcode"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(toItemResponse(item))
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	var items []*entity.Item
	var err error
	if q := c.Query("q"); q != "" {
		items, err = h.uc.SearchByName(c.Context(), q, page.Limit, page.Offset)
	} else {
		items, err = h.uc.List(c.Context(), page.Limit, page.Offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toItemResponses(items))
}

// LowStock lists active items at or below their reorder threshold.
// GET /api/items/low-stock
func (h *ItemHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toItemResponses(items))
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:        it.ID,
		Barcode:   it.Barcode,
		Name:      it.Name,
		UnitPrice: it.UnitPrice,
		TaxPct:    it.TaxPct,
		Stock:     it.Stock,
		MinStock:  it.MinStock,
		Active:    it.Active,
	}
}

func toItemResponses(items []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}
