package inventory

import (
	"context"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
	"github.com/avandall/WMS-Project-sub000/pkg/logger"
)

// InventoryUseCase orquesta el ledger total del sistema: consultas, ajustes
// directos y detección de deriva contra las asignaciones por bodega.
type InventoryUseCase struct {
	totalRepo     repository.TotalInventoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	totalRepo repository.TotalInventoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		totalRepo:     totalRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
	}
}

// AddToTotal suma al ledger total de un producto (ajuste directo).
func (uc *InventoryUseCase) AddToTotal(ctx context.Context, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	if err := uc.ensureProductExists(productID); err != nil {
		return err
	}
	return uc.totalRepo.AddQuantity(productID, quantity)
}

// RemoveFromTotal resta del ledger total; falla con INSUFFICIENT_STOCK si no alcanza.
func (uc *InventoryUseCase) RemoveFromTotal(ctx context.Context, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	if err := uc.ensureProductExists(productID); err != nil {
		return err
	}
	return uc.totalRepo.RemoveQuantity(productID, quantity)
}

// GetTotalQuantity devuelve el total del sistema para un producto.
func (uc *InventoryUseCase) GetTotalQuantity(ctx context.Context, productID int64) (int64, error) {
	if err := uc.ensureProductExists(productID); err != nil {
		return 0, err
	}
	return uc.totalRepo.GetQuantity(productID)
}

// WarehouseAllocation cantidad de un producto asignada a una bodega.
type WarehouseAllocation struct {
	WarehouseID int64
	Quantity    int64
}

// InventoryStatus estado completo del inventario de un producto.
// Drift indica que el total es menor que la suma de asignaciones: una
// inconsistencia del sistema que se reporta, nunca se corrige en silencio.
type InventoryStatus struct {
	Product       *entity.Product
	TotalQuantity int64
	Allocated     int64
	Unallocated   int64
	Allocations   []WarehouseAllocation
	Drift         bool
}

// GetInventoryStatus arma el estado del producto: total del ledger, distribución
// por bodega y detección de deriva (total < suma de bodegas).
func (uc *InventoryUseCase) GetInventoryStatus(ctx context.Context, productID int64) (*InventoryStatus, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", productID)
	}
	total, err := uc.totalRepo.GetQuantity(productID)
	if err != nil {
		return nil, err
	}
	allocations, err := uc.warehouseRepo.GetInventoryByProduct(productID)
	if err != nil {
		return nil, err
	}
	status := &InventoryStatus{Product: product, TotalQuantity: total}
	for _, alloc := range allocations {
		status.Allocated += alloc.Quantity
		status.Allocations = append(status.Allocations, WarehouseAllocation{WarehouseID: alloc.WarehouseID, Quantity: alloc.Quantity})
	}
	status.Unallocated = total - status.Allocated
	if status.Unallocated < 0 {
		status.Drift = true
		uc.log.Error().
			Int64("product_id", productID).
			Int64("total", total).
			Int64("allocated", status.Allocated).
			Msg("deriva de ledger: el total es menor que la suma de asignaciones por bodega")
	}
	return status, nil
}

// ListTotals devuelve el ledger total completo.
func (uc *InventoryUseCase) ListTotals(ctx context.Context) ([]entity.InventoryLine, error) {
	return uc.totalRepo.List()
}

func (uc *InventoryUseCase) ensureProductExists(productID int64) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("producto", productID)
	}
	return nil
}
