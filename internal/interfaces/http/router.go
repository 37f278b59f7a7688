package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rkpatel33/pos-api/internal/application/auth"
	"github.com/rkpatel33/pos-api/internal/application/billing"
	"github.com/rkpatel33/pos-api/internal/application/catalog"
	"github.com/rkpatel33/pos-api/internal/application/checkout"
	"github.com/rkpatel33/pos-api/internal/application/inventory"
	"github.com/rkpatel33/pos-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CatalogUC   *catalog.UseCase
	Coordinator *checkout.Coordinator
	BillingUC   *billing.UseCase
	InventoryUC *inventory.UseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catalog items. Mutations are admin-only; cashiers read.
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/", RequireRole(entity.RoleAdmin), itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", RequireRole(entity.RoleAdmin), itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Deactivate)

	// Checkout
	checkoutHandler := NewCheckoutHandler(deps.CatalogUC, deps.Coordinator)
	protected.Post("/checkout", checkoutHandler.Commit)

	// Bills
	bills := protected.Group("/bills")
	billHandler := NewBillHandler(deps.BillingUC)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Post("/:id/refund", RequireRole(entity.RoleAdmin), billHandler.Refund)

	// Inventory ledger
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/items/:id/movements", inventoryHandler.Ledger)
	invGroup.Get("/items/:id/reconciliation", inventoryHandler.Reconcile)
	invGroup.Get("/bills/:id/movements", inventoryHandler.MovementsForBill)
}
