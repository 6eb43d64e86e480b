package dto

import (
	"time"

	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
)

// CreateWarehouseRequest entrada para crear una bodega.
// Con ID se usa la ruta de importación/migración (falla si el id ya existe).
type CreateWarehouseRequest struct {
	ID       int64  `json:"id,omitempty"`
	Location string `json:"location"`
}

// UpdateWarehouseRequest entrada para cambiar la ubicación.
type UpdateWarehouseRequest struct {
	Location string `json:"location"`
}

// StockAdjustmentRequest entrada para ajustes directos de stock en una bodega.
type StockAdjustmentRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// TransferStockRequest entrada para un traslado directo entre bodegas.
type TransferStockRequest struct {
	ToWarehouseID int64 `json:"to_warehouse_id"`
	ProductID     int64 `json:"product_id"`
	Quantity      int64 `json:"quantity"`
}

// TransferAllRequest entrada para vaciar una bodega hacia otra.
type TransferAllRequest struct {
	ToWarehouseID int64 `json:"to_warehouse_id"`
}

// InventoryLineResponse línea de inventario (producto, cantidad).
type InventoryLineResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// WarehouseResponse salida de una bodega con su inventario.
type WarehouseResponse struct {
	ID        int64                   `json:"id"`
	Location  string                  `json:"location"`
	Lines     []InventoryLineResponse `json:"lines"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// WarehouseSummaryResponse bodega con resumen de inventario para listados.
type WarehouseSummaryResponse struct {
	ID             int64                   `json:"id"`
	Location       string                  `json:"location"`
	TotalItems     int64                   `json:"total_items"`
	UniqueProducts int                     `json:"unique_products"`
	Lines          []InventoryLineResponse `json:"lines"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseSummaryResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// ToInventoryLines mapea líneas de entidad a DTO.
func ToInventoryLines(lines []entity.InventoryLine) []InventoryLineResponse {
	out := make([]InventoryLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, InventoryLineResponse{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}

// ToWarehouseResponse mapea la entidad a su DTO de salida.
func ToWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Location:  w.Location,
		Lines:     ToInventoryLines(w.Lines()),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
