package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
)

const maxWarehouseLocationLen = 200

// Warehouse representa una bodega con su inventario propio.
// Mantiene a lo sumo una InventoryLine por producto; las líneas en cero se podan.
type Warehouse struct {
	ID        int64
	Location  string
	lines     map[int64]*InventoryLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWarehouse construye una bodega vacía validando id y ubicación.
// ID 0 significa pendiente: lo asigna el repositorio al persistir.
func NewWarehouse(id int64, location string) (*Warehouse, error) {
	if id < 0 {
		return nil, domain.NewValidation("id de bodega no puede ser negativo")
	}
	if err := validateLocation(location); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Warehouse{
		ID:        id,
		Location:  location,
		lines:     make(map[int64]*InventoryLine),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddProduct crea o incrementa la línea del producto. La cantidad debe ser positiva.
func (w *Warehouse) AddProduct(productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	if line, ok := w.lines[productID]; ok {
		return line.Add(quantity)
	}
	line, err := NewInventoryLine(productID, quantity)
	if err != nil {
		return err
	}
	w.lines[productID] = line
	return nil
}

// RemoveProduct resta cantidad de la línea del producto.
// Si la línea llega exactamente a cero se elimina (no se retiene en cero).
func (w *Warehouse) RemoveProduct(productID, quantity int64) error {
	if quantity <= 0 {
		return domain.NewValidation("cantidad debe ser positiva")
	}
	line, ok := w.lines[productID]
	if !ok {
		return domain.NewNotFound("producto", productID)
	}
	if err := line.Remove(quantity); err != nil {
		return err
	}
	if line.IsEmpty() {
		delete(w.lines, productID)
	}
	return nil
}

// GetProductQuantity devuelve la cantidad del producto; 0 si no hay línea (nunca error).
func (w *Warehouse) GetProductQuantity(productID int64) int64 {
	if line, ok := w.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// HasProduct indica si la bodega tiene línea para el producto.
func (w *Warehouse) HasProduct(productID int64) bool {
	_, ok := w.lines[productID]
	return ok
}

// TransferProductTo mueve cantidad de esta bodega a otra como unidad lógica:
// si el retiro falla no se toca la bodega destino; si el agregado falla se revierte el retiro.
func (w *Warehouse) TransferProductTo(other *Warehouse, productID, quantity int64) error {
	if other.ID == w.ID {
		return domain.NewBusinessRule("no se puede trasladar a la misma bodega")
	}
	if err := w.RemoveProduct(productID, quantity); err != nil {
		return err
	}
	if err := other.AddProduct(productID, quantity); err != nil {
		// Revertir el retiro para no perder stock
		_ = w.AddProduct(productID, quantity)
		return err
	}
	return nil
}

// Lines devuelve las líneas de inventario ordenadas por producto (copia defensiva).
func (w *Warehouse) Lines() []InventoryLine {
	out := make([]InventoryLine, 0, len(w.lines))
	for _, line := range w.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// SetLines reemplaza el inventario (hidratación desde persistencia).
func (w *Warehouse) SetLines(lines []InventoryLine) error {
	m := make(map[int64]*InventoryLine, len(lines))
	for _, in := range lines {
		if _, dup := m[in.ProductID]; dup {
			return domain.NewBusinessRule("línea duplicada para producto %d", in.ProductID)
		}
		line, err := NewInventoryLine(in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if !line.IsEmpty() {
			m[in.ProductID] = line
		}
	}
	w.lines = m
	return nil
}

// TotalItems suma las cantidades de todas las líneas.
func (w *Warehouse) TotalItems() int64 {
	var total int64
	for _, line := range w.lines {
		total += line.Quantity
	}
	return total
}

// UniqueProducts devuelve cuántos productos distintos hay en la bodega.
func (w *Warehouse) UniqueProducts() int {
	return len(w.lines)
}

// IsEmpty indica si la bodega no tiene inventario (requisito para eliminarla).
func (w *Warehouse) IsEmpty() bool {
	return len(w.lines) == 0
}

// UpdateLocation cambia la ubicación con validación.
func (w *Warehouse) UpdateLocation(location string) error {
	if err := validateLocation(location); err != nil {
		return err
	}
	w.Location = location
	w.UpdatedAt = time.Now()
	return nil
}

func validateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return domain.NewValidation("ubicación de bodega no puede estar vacía")
	}
	if len(location) > maxWarehouseLocationLen {
		return domain.NewValidation("ubicación de bodega supera %d caracteres", maxWarehouseLocationLen)
	}
	return nil
}
