package warehouses

import (
	"context"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

// WarehouseUseCase orquesta la gestión de bodegas: creación, inventario por bodega,
// traslados directos y eliminación (solo bodegas vacías).
type WarehouseUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository, productRepo repository.ProductRepository) *WarehouseUseCase {
	return &WarehouseUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo, productRepo: productRepo}
}

// Create crea una bodega con id secuencial generado por la persistencia.
func (uc *WarehouseUseCase) Create(ctx context.Context, location string) (*entity.Warehouse, error) {
	warehouse, err := entity.NewWarehouse(0, location)
	if err != nil {
		return nil, err
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// CreateWithID crea una bodega con id predefinido (ruta de importación/migración).
// Falla con ALREADY_EXISTS si el id ya está tomado.
func (uc *WarehouseUseCase) CreateWithID(ctx context.Context, id int64, location string) (*entity.Warehouse, error) {
	if id <= 0 {
		return nil, domain.NewValidation("id de bodega debe ser positivo")
	}
	existing, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewAlreadyExists("bodega", id)
	}
	warehouse, err := entity.NewWarehouse(id, location)
	if err != nil {
		return nil, err
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Get obtiene una bodega; falla con NOT_FOUND si no existe.
func (uc *WarehouseUseCase) Get(ctx context.Context, warehouseID int64) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NewNotFound("bodega", warehouseID)
	}
	return warehouse, nil
}

// UpdateLocation cambia la ubicación de una bodega.
func (uc *WarehouseUseCase) UpdateLocation(ctx context.Context, warehouseID int64, location string) (*entity.Warehouse, error) {
	warehouse, err := uc.Get(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := warehouse.UpdateLocation(location); err != nil {
		return nil, err
	}
	if err := uc.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// AddProduct agrega stock de un producto a la bodega (ajuste directo, fuera de documentos).
// Valida que bodega y producto existan y que la cantidad sea positiva.
func (uc *WarehouseUseCase) AddProduct(ctx context.Context, warehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	if _, err := uc.Get(ctx, warehouseID); err != nil {
		return err
	}
	if err := uc.ensureProductExists(productID); err != nil {
		return err
	}
	return uc.warehouseRepo.AddProduct(warehouseID, productID, quantity)
}

// RemoveProduct retira stock de un producto de la bodega.
// Falla con INSUFFICIENT_STOCK si la bodega no cubre la cantidad.
func (uc *WarehouseUseCase) RemoveProduct(ctx context.Context, warehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	if _, err := uc.Get(ctx, warehouseID); err != nil {
		return err
	}
	if err := uc.ensureProductExists(productID); err != nil {
		return err
	}
	return uc.warehouseRepo.RemoveProduct(warehouseID, productID, quantity)
}

// GetInventory devuelve las líneas de inventario de la bodega.
func (uc *WarehouseUseCase) GetInventory(ctx context.Context, warehouseID int64) ([]entity.InventoryLine, error) {
	if _, err := uc.Get(ctx, warehouseID); err != nil {
		return nil, err
	}
	return uc.warehouseRepo.GetInventory(warehouseID)
}

// GetProductQuantity devuelve la cantidad de un producto en la bodega (0 si no hay línea).
func (uc *WarehouseUseCase) GetProductQuantity(ctx context.Context, warehouseID, productID int64) (int64, error) {
	if _, err := uc.Get(ctx, warehouseID); err != nil {
		return 0, err
	}
	return uc.warehouseRepo.GetProductQuantity(warehouseID, productID)
}

// TransferProduct traslada stock entre bodegas como unidad atómica
// (retiro y agregado dentro de la misma transacción).
func (uc *WarehouseUseCase) TransferProduct(ctx context.Context, fromWarehouseID, toWarehouseID, productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad de traslado debe ser positiva")
	}
	if fromWarehouseID == toWarehouseID {
		return domain.NewBusinessRule("no se puede trasladar a la misma bodega")
	}
	if _, err := uc.Get(ctx, fromWarehouseID); err != nil {
		return err
	}
	if _, err := uc.Get(ctx, toWarehouseID); err != nil {
		return err
	}
	if err := uc.ensureProductExists(productID); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.DocumentRepository,
		warehouseRepo repository.WarehouseRepository,
		_ repository.TotalInventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		if err := warehouseRepo.RemoveProduct(fromWarehouseID, productID, quantity); err != nil {
			return err
		}
		return warehouseRepo.AddProduct(toWarehouseID, productID, quantity)
	})
}

// TransferAllInventory mueve todo el inventario de una bodega a otra en una sola
// transacción. Pensado para vaciar una bodega antes de eliminarla.
func (uc *WarehouseUseCase) TransferAllInventory(ctx context.Context, fromWarehouseID, toWarehouseID int64) ([]entity.InventoryLine, error) {
	if fromWarehouseID == toWarehouseID {
		return nil, domain.NewBusinessRule("no se puede trasladar a la misma bodega")
	}
	if _, err := uc.Get(ctx, fromWarehouseID); err != nil {
		return nil, err
	}
	if _, err := uc.Get(ctx, toWarehouseID); err != nil {
		return nil, err
	}
	var transferred []entity.InventoryLine
	err := uc.txRunner.Run(ctx, func(
		_ repository.DocumentRepository,
		warehouseRepo repository.WarehouseRepository,
		_ repository.TotalInventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		lines, err := warehouseRepo.GetInventory(fromWarehouseID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := warehouseRepo.RemoveProduct(fromWarehouseID, line.ProductID, line.Quantity); err != nil {
				return err
			}
			if err := warehouseRepo.AddProduct(toWarehouseID, line.ProductID, line.Quantity); err != nil {
				return err
			}
			transferred = append(transferred, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transferred, nil
}

// Delete elimina una bodega solo si está vacía. Con inventario devuelve un error
// descriptivo indicando cuánto stock queda y cómo vaciarla.
func (uc *WarehouseUseCase) Delete(ctx context.Context, warehouseID int64) error {
	if _, err := uc.Get(ctx, warehouseID); err != nil {
		return err
	}
	lines, err := uc.warehouseRepo.GetInventory(warehouseID)
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		var totalItems int64
		for _, line := range lines {
			totalItems += line.Quantity
		}
		return domain.NewBusinessRule(
			"no se puede eliminar la bodega %d: aún tiene %d unidades (%d productos distintos); traslade el inventario a otra bodega primero",
			warehouseID, totalItems, len(lines),
		)
	}
	return uc.warehouseRepo.Delete(warehouseID)
}

// WarehouseSummary bodega con el resumen de su inventario.
type WarehouseSummary struct {
	Warehouse      *entity.Warehouse
	TotalItems     int64
	UniqueProducts int
	Lines          []entity.InventoryLine
}

// ListWithSummary lista bodegas con resumen de inventario.
func (uc *WarehouseUseCase) ListWithSummary(ctx context.Context, limit, offset int) ([]WarehouseSummary, error) {
	list, err := uc.warehouseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	summaries := make([]WarehouseSummary, 0, len(list))
	for _, warehouse := range list {
		lines, err := uc.warehouseRepo.GetInventory(warehouse.ID)
		if err != nil {
			return nil, err
		}
		var total int64
		for _, line := range lines {
			total += line.Quantity
		}
		summaries = append(summaries, WarehouseSummary{
			Warehouse:      warehouse,
			TotalItems:     total,
			UniqueProducts: len(lines),
			Lines:          lines,
		})
	}
	return summaries, nil
}

func (uc *WarehouseUseCase) ensureProductExists(productID int64) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("producto", productID)
	}
	return nil
}
