package products

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	productRepo   repository.ProductRepository
	totalRepo     repository.TotalInventoryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	totalRepo repository.TotalInventoryRepository,
	warehouseRepo repository.WarehouseRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, totalRepo: totalRepo, warehouseRepo: warehouseRepo}
}

// Create crea un producto del catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, name, description string, price decimal.Decimal) (*entity.Product, error) {
	product, err := entity.NewProduct(0, name, description, price)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateWithID crea un producto con id predefinido (ruta de importación/migración).
// Falla con ALREADY_EXISTS si el id ya está tomado.
func (uc *ProductUseCase) CreateWithID(ctx context.Context, id int64, name, description string, price decimal.Decimal) (*entity.Product, error) {
	if id <= 0 {
		return nil, domain.NewValidation("id de producto debe ser positivo")
	}
	existing, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewAlreadyExists("producto", id)
	}
	product, err := entity.NewProduct(id, name, description, price)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get obtiene un producto; falla con NOT_FOUND si no existe.
func (uc *ProductUseCase) Get(ctx context.Context, productID int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("producto", productID)
	}
	return product, nil
}

// UpdateInput campos opcionales a actualizar; nil = sin cambio.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

// Update actualiza nombre, precio y/o descripción con las validaciones del dominio.
func (uc *ProductUseCase) Update(ctx context.Context, productID int64, in UpdateInput) (*entity.Product, error) {
	product, err := uc.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := product.UpdateName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Price != nil {
		if err := product.UpdatePrice(*in.Price); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := product.UpdateDescription(*in.Description); err != nil {
			return nil, err
		}
	}
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List lista productos con paginación simple.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// Delete elimina un producto solo si no tiene stock en ninguna parte:
// ni en el ledger total ni en ninguna bodega.
func (uc *ProductUseCase) Delete(ctx context.Context, productID int64) error {
	if _, err := uc.Get(ctx, productID); err != nil {
		return err
	}
	total, err := uc.totalRepo.GetQuantity(productID)
	if err != nil {
		return err
	}
	if total > 0 {
		return domain.NewBusinessRule("no se puede eliminar el producto %d: aún hay %d unidades en el ledger total", productID, total)
	}
	allocations, err := uc.warehouseRepo.GetInventoryByProduct(productID)
	if err != nil {
		return err
	}
	for _, alloc := range allocations {
		if alloc.Quantity > 0 {
			return domain.NewBusinessRule("no se puede eliminar el producto %d: aún hay %d unidades en la bodega %d", productID, alloc.Quantity, alloc.WarehouseID)
		}
	}
	return uc.productRepo.Delete(productID)
}
