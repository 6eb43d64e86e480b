package dto

// TotalAdjustmentRequest entrada para ajustes directos del ledger total.
type TotalAdjustmentRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// WarehouseAllocationResponse cantidad de un producto asignada a una bodega.
type WarehouseAllocationResponse struct {
	WarehouseID int64 `json:"warehouse_id"`
	Quantity    int64 `json:"quantity"`
}

// InventoryStatusResponse estado del inventario de un producto: total del ledger,
// distribución por bodega y bandera de deriva (total menor que lo asignado).
type InventoryStatusResponse struct {
	Product       ProductResponse               `json:"product"`
	TotalQuantity int64                         `json:"total_quantity"`
	Allocated     int64                         `json:"allocated"`
	Unallocated   int64                         `json:"unallocated"`
	Allocations   []WarehouseAllocationResponse `json:"allocations"`
	Drift         bool                          `json:"drift"`
}

// TotalInventoryListResponse ledger total completo.
type TotalInventoryListResponse struct {
	Items []InventoryLineResponse `json:"items"`
}
