package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrInvalidValue        = errors.New("invalid value")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrEmptyCart           = errors.New("cart has no lines")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrStockConflict       = errors.New("stock changed concurrently")
	ErrBillNumberCollision = errors.New("bill number already taken")
	ErrBillNotRefundable   = errors.New("bill cannot be refunded")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrStorage             = errors.New("storage failure")
)

// InsufficientStockError reports which item could not cover the requested
// quantity. Matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	ItemID    string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
