package repository

import "github.com/avandall/WMS-Project-sub000/internal/domain/entity"

// TotalInventoryRepository define el puerto del ledger total del sistema (DIP).
// Es un contador independiente por producto, no la suma recalculada de bodegas.
type TotalInventoryRepository interface {
	// AddQuantity suma al total del producto (crea la fila si no existe).
	AddQuantity(productID, quantity int64) error
	// RemoveQuantity resta del total; falla con INSUFFICIENT_STOCK si no alcanza.
	RemoveQuantity(productID, quantity int64) error
	// GetQuantity devuelve el total actual; 0 si no hay fila.
	GetQuantity(productID int64) (int64, error)
	// List devuelve todas las entradas del ledger ordenadas por producto.
	List() ([]entity.InventoryLine, error)
}
