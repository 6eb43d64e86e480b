package repository

import "github.com/avandall/WMS-Project-sub000/internal/domain/entity"

// ProductAllocation cantidad de un producto asignada a una bodega concreta.
type ProductAllocation struct {
	WarehouseID int64
	Quantity    int64
}

// WarehouseRepository define el puerto de persistencia para Warehouse y sus líneas (DIP).
// GetByID devuelve (nil, nil) si la bodega no existe. Las operaciones de línea
// mantienen los invariantes: cantidad nunca negativa y poda de líneas en cero.
type WarehouseRepository interface {
	// Create persiste la bodega; si ID es 0 la implementación asigna uno secuencial.
	// Con ID predefinido falla con ALREADY_EXISTS si ya está tomado.
	Create(warehouse *entity.Warehouse) error
	GetByID(id int64) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	// Delete elimina la bodega. No valida inventario: esa regla vive en el servicio.
	Delete(id int64) error

	// AddProduct crea o incrementa la línea del producto en la bodega.
	AddProduct(warehouseID, productID, quantity int64) error
	// RemoveProduct decrementa la línea; falla con INSUFFICIENT_STOCK si no alcanza
	// y con NOT_FOUND si no hay línea. En cero exacto la línea se elimina.
	RemoveProduct(warehouseID, productID, quantity int64) error
	// GetProductQuantity devuelve la cantidad actual; 0 si no hay línea.
	GetProductQuantity(warehouseID, productID int64) (int64, error)
	// GetInventory devuelve las líneas de la bodega ordenadas por producto.
	GetInventory(warehouseID int64) ([]entity.InventoryLine, error)
	// GetInventoryByProduct devuelve la distribución de un producto entre bodegas.
	GetInventoryByProduct(productID int64) ([]ProductAllocation, error)
}
