package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en warehouse_lines con PK (warehouse_id, product_id); las mutaciones
// bloquean la fila (SELECT FOR UPDATE) para serializar posteos concurrentes sobre la misma línea.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega. Con ID 0 la secuencia asigna el id y se escribe de vuelta;
// con ID predefinido falla con ALREADY_EXISTS si ya está tomado.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	if warehouse.ID == 0 {
		query := `
			INSERT INTO warehouses (location, created_at, updated_at)
			VALUES ($1, $2, $3)
			RETURNING id`
		err := r.q.QueryRow(context.Background(), query,
			warehouse.Location, warehouse.CreatedAt, warehouse.UpdatedAt,
		).Scan(&warehouse.ID)
		if err != nil {
			return fmt.Errorf("insert warehouse: %w", err)
		}
		return nil
	}
	query := `
		INSERT INTO warehouses (id, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Location, warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExists("bodega", warehouse.ID)
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID con su inventario hidratado; (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	query := `
		SELECT id, location, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var (
		wid                  int64
		location             string
		createdAt, updatedAt time.Time
	)
	err := r.q.QueryRow(context.Background(), query, id).Scan(&wid, &location, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	warehouse, err := entity.NewWarehouse(wid, location)
	if err != nil {
		return nil, err
	}
	warehouse.CreatedAt = createdAt
	warehouse.UpdatedAt = updatedAt
	lines, err := r.GetInventory(wid)
	if err != nil {
		return nil, err
	}
	if err := warehouse.SetLines(lines); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Update actualiza la ubicación.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET location = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, warehouse.ID, warehouse.Location, warehouse.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista bodegas con paginación (sin hidratar líneas).
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, location, created_at, updated_at
		FROM warehouses ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var (
			wid                  int64
			location             string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&wid, &location, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		warehouse, err := entity.NewWarehouse(wid, location)
		if err != nil {
			return nil, err
		}
		warehouse.CreatedAt = createdAt
		warehouse.UpdatedAt = updatedAt
		list = append(list, warehouse)
	}
	return list, rows.Err()
}

// Delete elimina una bodega y sus líneas (la regla de bodega vacía vive en el caso de uso).
func (r *WarehouseRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM warehouse_lines WHERE warehouse_id = $1`, id); err != nil {
		return fmt.Errorf("delete warehouse lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// AddProduct crea o incrementa la línea del producto (incremento atómico en el upsert).
func (r *WarehouseRepo) AddProduct(warehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	query := `
		INSERT INTO warehouse_lines (warehouse_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = warehouse_lines.quantity + EXCLUDED.quantity`
	_, err := r.q.Exec(context.Background(), query, warehouseID, productID, quantity)
	if err != nil {
		return fmt.Errorf("add product to warehouse: %w", err)
	}
	return nil
}

// RemoveProduct decrementa la línea bloqueándola primero (SELECT FOR UPDATE).
// Falla con NOT_FOUND sin línea y con INSUFFICIENT_STOCK si no alcanza;
// en cero exacto la línea se elimina (no se retiene en cero).
func (r *WarehouseRepo) RemoveProduct(warehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	var current int64
	err := r.q.QueryRow(context.Background(), `
		SELECT quantity FROM warehouse_lines
		WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`, warehouseID, productID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFound("producto", productID)
		}
		return fmt.Errorf("lock warehouse line: %w", err)
	}
	if current < quantity {
		return domain.NewInsufficientStock(productID, current, quantity)
	}
	if current == quantity {
		_, err = r.q.Exec(context.Background(), `
			DELETE FROM warehouse_lines WHERE warehouse_id = $1 AND product_id = $2`,
			warehouseID, productID)
	} else {
		_, err = r.q.Exec(context.Background(), `
			UPDATE warehouse_lines SET quantity = quantity - $3
			WHERE warehouse_id = $1 AND product_id = $2`,
			warehouseID, productID, quantity)
	}
	if err != nil {
		return fmt.Errorf("remove product from warehouse: %w", err)
	}
	return nil
}

// GetProductQuantity devuelve la cantidad actual; 0 si no hay línea (nunca error por ausencia).
func (r *WarehouseRepo) GetProductQuantity(warehouseID, productID int64) (int64, error) {
	var quantity int64
	err := r.q.QueryRow(context.Background(), `
		SELECT quantity FROM warehouse_lines
		WHERE warehouse_id = $1 AND product_id = $2`, warehouseID, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get warehouse line: %w", err)
	}
	return quantity, nil
}

// GetInventory devuelve las líneas de una bodega ordenadas por producto.
func (r *WarehouseRepo) GetInventory(warehouseID int64) ([]entity.InventoryLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, quantity FROM warehouse_lines
		WHERE warehouse_id = $1 ORDER BY product_id`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("get warehouse inventory: %w", err)
	}
	defer rows.Close()
	var lines []entity.InventoryLine
	for rows.Next() {
		var line entity.InventoryLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan warehouse line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetInventoryByProduct devuelve la distribución de un producto entre bodegas.
func (r *WarehouseRepo) GetInventoryByProduct(productID int64) ([]repository.ProductAllocation, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT warehouse_id, quantity FROM warehouse_lines
		WHERE product_id = $1 ORDER BY warehouse_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("get product allocations: %w", err)
	}
	defer rows.Close()
	var allocations []repository.ProductAllocation
	for rows.Next() {
		var alloc repository.ProductAllocation
		if err := rows.Scan(&alloc.WarehouseID, &alloc.Quantity); err != nil {
			return nil, fmt.Errorf("scan product allocation: %w", err)
		}
		allocations = append(allocations, alloc)
	}
	return allocations, rows.Err()
}
