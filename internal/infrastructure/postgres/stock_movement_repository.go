package postgres

import (
	"context"
	"fmt"

	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del rastro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create guarda un registro de movimiento aplicado.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements
			(id, transaction_id, document_id, product_id, warehouse_id, direction, quantity, unit_price, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.DocumentID, movement.ProductID,
		movement.WarehouseID, movement.Direction, movement.Quantity, movement.UnitPrice,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByDocument devuelve los movimientos generados por el posteo de un documento.
func (r *StockMovementRepo) ListByDocument(documentID int64) ([]*entity.StockMovement, error) {
	query := selectMovements + ` WHERE document_id = $1 ORDER BY created_at, id`
	return r.list(query, documentID)
}

// ListByWarehouse devuelve los movimientos de una bodega, más recientes primero.
func (r *StockMovementRepo) ListByWarehouse(warehouseID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := selectMovements + ` WHERE warehouse_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, warehouseID, limit, offset)
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	query := selectMovements + ` WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

const selectMovements = `
	SELECT id, transaction_id, document_id, product_id, warehouse_id, direction, quantity, unit_price, created_at, created_by
	FROM stock_movements`

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.TransactionID, &m.DocumentID, &m.ProductID, &m.WarehouseID,
			&m.Direction, &m.Quantity, &m.UnitPrice, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
