package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, number, customer_name, customer_phone, subtotal, discount_amt,
	tax_amt, total, bill_discount_pct, payment_method, payment_status, cashier_id, created_at, updated_at`

// BillRepo BillRepository over PostgreSQL (usable with pool or tx).
type BillRepo struct {
	q Querier
}

func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create inserts the bill header. A unique violation on the number means
// another checkout grabbed it first; callers regenerate and retry.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, number, customer_name, customer_phone, subtotal, discount_amt,
			tax_amt, total, bill_discount_pct, payment_method, payment_status, cashier_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.Number, bill.CustomerName, bill.CustomerPhone,
		bill.Subtotal, bill.DiscountAmt, bill.TaxAmt, bill.Total, bill.BillDiscPct,
		bill.PaymentMethod, bill.PaymentStatus, bill.CashierID, bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "bills_number_key" {
			return domain.ErrBillNumberCollision
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// CreateLine inserts one line with its item snapshot and amounts.
func (r *BillRepo) CreateLine(line *entity.BillLine) error {
	query := `
		INSERT INTO bill_lines (id, bill_id, line_no, item_id, item_name, item_barcode,
			unit_price, quantity, discount_pct, discount_amt, tax_pct, tax_amt, line_total)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.BillID, line.LineNo, line.ItemID, line.ItemName, line.Barcode,
		line.UnitPrice, line.Quantity, line.DiscountPct, line.DiscountAmt, line.TaxPct,
		line.TaxAmt, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert bill line: %w", err)
	}
	return nil
}

// GetByID returns the bill header, or nil when absent. Lines are loaded
// separately via GetLines.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	bill, err := scanBill(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return bill, nil
}

// GetByNumber looks a bill up by its human-facing number.
func (r *BillRepo) GetByNumber(number string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE number = $1`
	bill, err := scanBill(r.q.QueryRow(context.Background(), query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill by number: %w", err)
	}
	return bill, nil
}

// GetLines returns the lines of a bill in cart order.
func (r *BillRepo) GetLines(billID string) ([]*entity.BillLine, error) {
	query := `
		SELECT id, bill_id, line_no, item_id, item_name, item_barcode, unit_price,
			quantity, discount_pct, discount_amt, tax_pct, tax_amt, line_total
		FROM bill_lines WHERE bill_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("get bill lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.BillLine
	for rows.Next() {
		var l entity.BillLine
		var barcode *string
		err := rows.Scan(&l.ID, &l.BillID, &l.LineNo, &l.ItemID, &l.ItemName, &barcode,
			&l.UnitPrice, &l.Quantity, &l.DiscountPct, &l.DiscountAmt, &l.TaxPct,
			&l.TaxAmt, &l.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("scan bill line: %w", err)
		}
		if barcode != nil {
			l.Barcode = *barcode
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// List returns bill headers newest first, optionally bounded by created_at.
func (r *BillRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT ` + billColumns + ` FROM bills
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []*entity.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

// UpdatePaymentStatus moves the bill between payment states.
func (r *BillRepo) UpdatePaymentStatus(id, status string, updatedAt time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE bills SET payment_status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	var custName, custPhone *string
	err := row.Scan(&b.ID, &b.Number, &custName, &custPhone, &b.Subtotal, &b.DiscountAmt,
		&b.TaxAmt, &b.Total, &b.BillDiscPct, &b.PaymentMethod, &b.PaymentStatus,
		&b.CashierID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if custName != nil {
		b.CustomerName = *custName
	}
	if custPhone != nil {
		b.CustomerPhone = *custPhone
	}
	return &b, nil
}
