package warehouses

import (
	"context"

	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

// TxRunner puerto transaccional para operaciones que tocan más de una bodega
// (traslados directos). Misma forma que el runner del motor de documentos;
// la implementación de postgres satisface ambos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		warehouseRepo repository.WarehouseRepository,
		totalRepo repository.TotalInventoryRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
