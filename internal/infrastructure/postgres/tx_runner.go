package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avandall/WMS-Project-sub000/internal/application/documents"
	"github.com/avandall/WMS-Project-sub000/internal/application/warehouses"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ documents.TxRunner = (*TxRunner)(nil)
var _ warehouses.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es la unidad de trabajo del motor de movimientos: o se aplica todo el documento o nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	warehouseRepo repository.WarehouseRepository,
	totalRepo repository.TotalInventoryRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentRepository(tx)
	warehouseRepo := NewWarehouseRepository(tx)
	totalRepo := NewTotalInventoryRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(docRepo, warehouseRepo, totalRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
