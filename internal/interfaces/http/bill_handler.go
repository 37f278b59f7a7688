package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rkpatel33/pos-api/internal/application/billing"
	"github.com/rkpatel33/pos-api/internal/application/dto"
	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
)

// BillHandler read access to committed bills plus the refund transition
// (protected).
type BillHandler struct {
	uc *billing.UseCase
}

func NewBillHandler(uc *billing.UseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// GetByID returns a bill with its lines. ?by=number treats the path value
// as the human-facing bill number instead of the id.
// GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	var bill *entity.Bill
	var err error
	if c.Query("by") == "number" {
		bill, err = h.uc.GetByNumber(c.Context(), c.Params("id"))
	} else {
		bill, err = h.uc.Get(c.Context(), c.Params("id"))
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toBillResponse(bill, bill.Lines))
}

// List returns bill headers, optionally bounded by ?from= and ?to=
// (RFC 3339), newest first.
// GET /api/bills
func (h *BillHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be RFC 3339"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be RFC 3339"})
	}

	bills, err := h.uc.List(c.Context(), from, to, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b, nil))
	}
	return c.JSON(out)
}

// Refund transitions a completed bill to refunded.
// POST /api/bills/:id/refund
func (h *BillHandler) Refund(c *fiber.Ctx) error {
	bill, err := h.uc.Refund(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
		}
		if errors.Is(err, domain.ErrBillNotRefundable) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_REFUNDABLE", Message: "only completed bills can be refunded"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toBillResponse(bill, bill.Lines))
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toBillResponse(b *entity.Bill, lines []*entity.BillLine) dto.BillResponse {
	resp := dto.BillResponse{
		ID:            b.ID,
		Number:        b.Number,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Subtotal:      b.Subtotal,
		DiscountAmt:   b.DiscountAmt,
		TaxAmt:        b.TaxAmt,
		Total:         b.Total,
		BillDiscPct:   b.BillDiscPct,
		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,
		CashierID:     b.CashierID,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		Lines:         make([]dto.BillLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.BillLineResponse{
			ID:          l.ID,
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
	return resp
}
