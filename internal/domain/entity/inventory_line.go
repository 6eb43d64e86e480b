package entity

import "github.com/avandall/WMS-Project-sub000/internal/domain"

// InventoryLine es el par (producto, cantidad) dentro de una bodega.
// Su identidad es el ProductID; la cantidad nunca baja de cero.
type InventoryLine struct {
	ProductID int64
	Quantity  int64
}

// NewInventoryLine construye una línea validando producto y cantidad inicial.
func NewInventoryLine(productID, quantity int64) (*InventoryLine, error) {
	if productID <= 0 {
		return nil, domain.NewValidation("id de producto debe ser positivo")
	}
	if quantity < 0 {
		return nil, domain.NewValidation("cantidad no puede ser negativa")
	}
	return &InventoryLine{ProductID: productID, Quantity: quantity}, nil
}

// Add suma cantidad a la línea.
func (l *InventoryLine) Add(amount int64) error {
	if amount < 0 {
		return domain.NewValidation("no se puede agregar una cantidad negativa")
	}
	l.Quantity += amount
	return nil
}

// Remove resta cantidad; falla con stock insuficiente si amount supera lo disponible.
func (l *InventoryLine) Remove(amount int64) error {
	if amount < 0 {
		return domain.NewValidation("no se puede retirar una cantidad negativa")
	}
	if amount > l.Quantity {
		return domain.NewInsufficientStock(l.ProductID, l.Quantity, amount)
	}
	l.Quantity -= amount
	return nil
}

// HasSufficientStock indica si la línea cubre la cantidad solicitada.
func (l *InventoryLine) HasSufficientStock(requested int64) bool {
	return l.Quantity >= requested
}

// IsEmpty indica si la línea quedó en cero (debe podarse de la bodega).
func (l *InventoryLine) IsEmpty() bool {
	return l.Quantity == 0
}
