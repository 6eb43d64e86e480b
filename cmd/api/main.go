package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/avandall/WMS-Project-sub000/internal/application/documents"
	"github.com/avandall/WMS-Project-sub000/internal/application/inventory"
	"github.com/avandall/WMS-Project-sub000/internal/application/products"
	"github.com/avandall/WMS-Project-sub000/internal/application/warehouses"
	"github.com/avandall/WMS-Project-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/avandall/WMS-Project-sub000/internal/interfaces/http"
	"github.com/avandall/WMS-Project-sub000/pkg/config"
	"github.com/avandall/WMS-Project-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	totalRepo := postgres.NewTotalInventoryRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := products.NewProductUseCase(productRepo, totalRepo, warehouseRepo)
	warehouseUC := warehouses.NewWarehouseUseCase(txRunner, warehouseRepo, productRepo)
	documentUC := documents.NewDocumentUseCase(txRunner, documentRepo, warehouseRepo, productRepo, movementRepo, log)
	inventoryUC := inventory.NewInventoryUseCase(totalRepo, productRepo, warehouseRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		DocumentUC:  documentUC,
		InventoryUC: inventoryUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
