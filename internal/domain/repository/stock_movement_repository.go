package repository

import "github.com/avandall/WMS-Project-sub000/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el rastro de movimientos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByDocument(documentID int64) ([]*entity.StockMovement, error)
	ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error)
}
