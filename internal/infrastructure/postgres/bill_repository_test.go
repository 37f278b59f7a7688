package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkpatel33/pos-api/internal/domain"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
	"github.com/rkpatel33/pos-api/internal/infrastructure/postgres"
	"github.com/rkpatel33/pos-api/pkg/config"
)

// testPool connects to the database named by TEST_DATABASE_URL. The schema
// from migrations/schema.sql must already be applied.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedCashier(t *testing.T, pool *pgxpool.Pool) *entity.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        uuid.New().String() + "@test.local",
		PasswordHash: "x",
		Name:         "Test Cashier",
		Role:         entity.RoleCashier,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(user))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

func seedCatalogItem(t *testing.T, pool *pgxpool.Pool, name, barcode, price, taxPct string) *entity.Item {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	item := &entity.Item{
		ID:        uuid.New().String(),
		Barcode:   barcode,
		Name:      name,
		UnitPrice: d(price),
		TaxPct:    d(taxPct),
		Stock:     100,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, postgres.NewItemRepository(pool).Create(item))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, item.ID)
	})
	return item
}

// Persist a bill with both discount kinds, read it back, and require every
// stored field to survive the trip exactly.
func TestBillRepo_RoundTrip(t *testing.T) {
	pool := testPool(t)
	cashier := seedCashier(t, pool)
	widget := seedCatalogItem(t, pool, "Widget", uuid.New().String()[:13], "100.00", "18")
	gadget := seedCatalogItem(t, pool, "Gadget", "", "49.99", "0")

	repo := postgres.NewBillRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Line 1: 100.00 × 2, 10% line discount, 18% tax on the net.
	// Line 2: 49.99 × 3, no discount, no tax.
	// Bill: 5% post-tax discount on 362.37 → total 344.25.
	bill := &entity.Bill{
		ID:            uuid.New().String(),
		Number:        "POS-TEST-" + uuid.New().String()[:8],
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		Subtotal:      d("349.97"),
		DiscountAmt:   d("38.12"),
		TaxAmt:        d("32.40"),
		Total:         d("344.25"),
		BillDiscPct:   d("5"),
		PaymentMethod: entity.PaymentCash,
		PaymentStatus: entity.PaymentStatusCompleted,
		CashierID:     cashier.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	lines := []*entity.BillLine{
		{
			ID: uuid.New().String(), BillID: bill.ID, LineNo: 1,
			ItemID: widget.ID, ItemName: widget.Name, Barcode: widget.Barcode,
			UnitPrice: d("100.00"), Quantity: 2,
			DiscountPct: d("10"), DiscountAmt: d("20.00"),
			TaxPct: d("18"), TaxAmt: d("32.40"), LineTotal: d("212.40"),
		},
		{
			ID: uuid.New().String(), BillID: bill.ID, LineNo: 2,
			ItemID: gadget.ID, ItemName: gadget.Name, Barcode: "",
			UnitPrice: d("49.99"), Quantity: 3,
			DiscountPct: d("0"), DiscountAmt: d("0.00"),
			TaxPct: d("0"), TaxAmt: d("0.00"), LineTotal: d("149.97"),
		},
	}

	require.NoError(t, repo.Create(bill))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM bill_lines WHERE bill_id = $1`, bill.ID)
		pool.Exec(context.Background(), `DELETE FROM bills WHERE id = $1`, bill.ID)
	})
	for _, line := range lines {
		require.NoError(t, repo.CreateLine(line))
	}

	got, err := repo.GetByID(bill.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, bill.Number, got.Number)
	assert.Equal(t, bill.CustomerName, got.CustomerName)
	assert.Equal(t, bill.CustomerPhone, got.CustomerPhone)
	assert.True(t, got.Subtotal.Equal(bill.Subtotal), "subtotal %s", got.Subtotal)
	assert.True(t, got.DiscountAmt.Equal(bill.DiscountAmt), "discount %s", got.DiscountAmt)
	assert.True(t, got.TaxAmt.Equal(bill.TaxAmt), "tax %s", got.TaxAmt)
	assert.True(t, got.Total.Equal(bill.Total), "total %s", got.Total)
	assert.True(t, got.BillDiscPct.Equal(bill.BillDiscPct))
	assert.Equal(t, bill.PaymentMethod, got.PaymentMethod)
	assert.Equal(t, bill.PaymentStatus, got.PaymentStatus)
	assert.Equal(t, bill.CashierID, got.CashierID)
	assert.WithinDuration(t, bill.CreatedAt, got.CreatedAt, time.Second)
	assert.WithinDuration(t, bill.UpdatedAt, got.UpdatedAt, time.Second)

	// Stored aggregates keep the identity after the trip.
	assert.True(t, got.Subtotal.Add(got.TaxAmt).Sub(got.DiscountAmt).Equal(got.Total))

	byNumber, err := repo.GetByNumber(bill.Number)
	require.NoError(t, err)
	require.NotNil(t, byNumber)
	assert.Equal(t, bill.ID, byNumber.ID)

	gotLines, err := repo.GetLines(bill.ID)
	require.NoError(t, err)
	require.Len(t, gotLines, len(lines))
	for i, want := range lines {
		gl := gotLines[i]
		assert.Equal(t, want.ID, gl.ID)
		assert.Equal(t, want.BillID, gl.BillID)
		assert.Equal(t, want.LineNo, gl.LineNo)
		assert.Equal(t, want.ItemID, gl.ItemID)
		assert.Equal(t, want.ItemName, gl.ItemName)
		assert.Equal(t, want.Barcode, gl.Barcode)
		assert.True(t, gl.UnitPrice.Equal(want.UnitPrice), "line %d unit price %s", i, gl.UnitPrice)
		assert.Equal(t, want.Quantity, gl.Quantity)
		assert.True(t, gl.DiscountPct.Equal(want.DiscountPct))
		assert.True(t, gl.DiscountAmt.Equal(want.DiscountAmt))
		assert.True(t, gl.TaxPct.Equal(want.TaxPct))
		assert.True(t, gl.TaxAmt.Equal(want.TaxAmt))
		assert.True(t, gl.LineTotal.Equal(want.LineTotal), "line %d total %s", i, gl.LineTotal)
	}
}

func TestBillRepo_GetByID_Absent(t *testing.T) {
	pool := testPool(t)
	repo := postgres.NewBillRepository(pool)

	got, err := repo.GetByID(uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBillRepo_DuplicateNumberIsCollision(t *testing.T) {
	pool := testPool(t)
	cashier := seedCashier(t, pool)
	repo := postgres.NewBillRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	number := "POS-TEST-" + uuid.New().String()[:8]
	mkBill := func() *entity.Bill {
		return &entity.Bill{
			ID: uuid.New().String(), Number: number,
			Subtotal: d("10.00"), DiscountAmt: d("0.00"),
			TaxAmt: d("0.00"), Total: d("10.00"), BillDiscPct: d("0"),
			PaymentMethod: entity.PaymentCash, PaymentStatus: entity.PaymentStatusCompleted,
			CashierID: cashier.ID, CreatedAt: now, UpdatedAt: now,
		}
	}
	first := mkBill()
	require.NoError(t, repo.Create(first))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM bills WHERE id = $1`, first.ID)
	})

	err := repo.Create(mkBill())
	assert.ErrorIs(t, err, domain.ErrBillNumberCollision)
}
