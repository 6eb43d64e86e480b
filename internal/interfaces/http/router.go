package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avandall/WMS-Project-sub000/internal/application/documents"
	"github.com/avandall/WMS-Project-sub000/internal/application/inventory"
	"github.com/avandall/WMS-Project-sub000/internal/application/products"
	"github.com/avandall/WMS-Project-sub000/internal/application/warehouses"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *products.ProductUseCase
	WarehouseUC *warehouses.WarehouseUseCase
	DocumentUC  *documents.DocumentUseCase
	InventoryUC *inventory.InventoryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo)
	productGroup := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	productGroup.Post("/", productHandler.Create)
	productGroup.Get("/", productHandler.List)
	productGroup.Get("/:id", productHandler.GetByID)
	productGroup.Put("/:id", productHandler.Update)
	productGroup.Delete("/:id", productHandler.Delete)
	productGroup.Get("/:id/movements", documentHandler.ListProductMovements)

	// Warehouses (bodegas y ajustes directos)
	warehouseGroup := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouseGroup.Post("/", warehouseHandler.Create)
	warehouseGroup.Get("/", warehouseHandler.List)
	warehouseGroup.Get("/:id", warehouseHandler.GetByID)
	warehouseGroup.Put("/:id", warehouseHandler.Update)
	warehouseGroup.Delete("/:id", warehouseHandler.Delete)
	warehouseGroup.Get("/:id/inventory", warehouseHandler.GetInventory)
	warehouseGroup.Post("/:id/stock/add", warehouseHandler.AddStock)
	warehouseGroup.Post("/:id/stock/remove", warehouseHandler.RemoveStock)
	warehouseGroup.Post("/:id/transfers", warehouseHandler.Transfer)
	warehouseGroup.Post("/:id/transfer-all", warehouseHandler.TransferAll)
	warehouseGroup.Get("/:id/movements", documentHandler.ListWarehouseMovements)

	// Documents (motor de movimientos)
	documentGroup := api.Group("/documents")
	documentGroup.Post("/", documentHandler.Create)
	documentGroup.Get("/", documentHandler.List)
	documentGroup.Get("/:id", documentHandler.GetByID)
	documentGroup.Post("/:id/post", documentHandler.Post)
	documentGroup.Post("/:id/cancel", documentHandler.Cancel)
	documentGroup.Get("/:id/movements", documentHandler.ListMovements)

	// Inventory (ledger total)
	inventoryGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventoryGroup.Get("/totals", inventoryHandler.ListTotals)
	inventoryGroup.Get("/products/:id", inventoryHandler.GetStatus)
	inventoryGroup.Post("/totals/add", inventoryHandler.AddToTotal)
	inventoryGroup.Post("/totals/remove", inventoryHandler.RemoveFromTotal)
}
