package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

var _ repository.TotalInventoryRepository = (*TotalInventoryRepo)(nil)

// TotalInventoryRepo implementación del ledger total sobre PostgreSQL (usable con pool o tx).
// Es un contador mantenido independientemente, no la suma recalculada de warehouse_lines.
type TotalInventoryRepo struct {
	q Querier
}

// NewTotalInventoryRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewTotalInventoryRepository(q Querier) *TotalInventoryRepo {
	return &TotalInventoryRepo{q: q}
}

// AddQuantity suma al total del producto (incremento atómico en el upsert).
func (r *TotalInventoryRepo) AddQuantity(productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	query := `
		INSERT INTO total_inventory (product_id, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = total_inventory.quantity + EXCLUDED.quantity`
	_, err := r.q.Exec(context.Background(), query, productID, quantity)
	if err != nil {
		return fmt.Errorf("add total inventory: %w", err)
	}
	return nil
}

// RemoveQuantity resta del total bloqueando la fila (SELECT FOR UPDATE).
// Falla con INSUFFICIENT_STOCK si el total no cubre la cantidad.
func (r *TotalInventoryRepo) RemoveQuantity(productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	var current int64
	err := r.q.QueryRow(context.Background(), `
		SELECT quantity FROM total_inventory WHERE product_id = $1
		FOR UPDATE`, productID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewInsufficientStock(productID, 0, quantity)
		}
		return fmt.Errorf("lock total inventory: %w", err)
	}
	if current < quantity {
		return domain.NewInsufficientStock(productID, current, quantity)
	}
	_, err = r.q.Exec(context.Background(), `
		UPDATE total_inventory SET quantity = quantity - $2
		WHERE product_id = $1`, productID, quantity)
	if err != nil {
		return fmt.Errorf("remove total inventory: %w", err)
	}
	return nil
}

// GetQuantity devuelve el total actual; 0 si no hay fila.
func (r *TotalInventoryRepo) GetQuantity(productID int64) (int64, error) {
	var quantity int64
	err := r.q.QueryRow(context.Background(), `
		SELECT quantity FROM total_inventory WHERE product_id = $1`, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get total inventory: %w", err)
	}
	return quantity, nil
}

// List devuelve todas las entradas del ledger ordenadas por producto.
func (r *TotalInventoryRepo) List() ([]entity.InventoryLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, quantity FROM total_inventory ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("list total inventory: %w", err)
	}
	defer rows.Close()
	var list []entity.InventoryLine
	for rows.Next() {
		var line entity.InventoryLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan total inventory: %w", err)
		}
		list = append(list, line)
	}
	return list, rows.Err()
}
