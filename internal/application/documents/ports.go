package documents

import (
	"context"

	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el posteo de un documento sea todo-o-nada: si fn devuelve error no queda
// ninguna mutación parcial en bodegas ni en el ledger total.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		warehouseRepo repository.WarehouseRepository,
		totalRepo repository.TotalInventoryRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
