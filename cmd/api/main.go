package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rkpatel33/pos-api/internal/application/auth"
	"github.com/rkpatel33/pos-api/internal/application/billing"
	"github.com/rkpatel33/pos-api/internal/application/catalog"
	"github.com/rkpatel33/pos-api/internal/application/checkout"
	"github.com/rkpatel33/pos-api/internal/application/inventory"
	"github.com/rkpatel33/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/rkpatel33/pos-api/internal/interfaces/http"
	"github.com/rkpatel33/pos-api/pkg/config"
	"github.com/rkpatel33/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, movementRepo)
	catalogUC := catalog.NewUseCase(itemRepo, txRunner)
	billingUC := billing.NewUseCase(billRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	numbers := checkout.NewBillNumberGenerator(cfg.Checkout.BillPrefix)
	coordinator := checkout.NewCoordinator(
		txRunner, itemRepo, numbers, cfg.Checkout.NumberAttempts, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CatalogUC:   catalogUC,
		Coordinator: coordinator,
		BillingUC:   billingUC,
		InventoryUC: inventoryUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
