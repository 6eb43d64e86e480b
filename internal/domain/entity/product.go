package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
)

const (
	maxProductNameLen        = 100
	maxProductDescriptionLen = 500
)

// Product representa un producto del catálogo. El stock no vive aquí:
// se maneja por bodega (InventoryLine) y en el ledger total.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal // precio unitario de referencia, >= 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct construye un producto validando nombre, precio y descripción.
// ID 0 significa pendiente: lo asigna el repositorio al persistir.
func NewProduct(id int64, name, description string, price decimal.Decimal) (*Product, error) {
	if id < 0 {
		return nil, domain.NewValidation("id de producto no puede ser negativo")
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateProductPrice(price); err != nil {
		return nil, err
	}
	if err := validateProductDescription(description); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateName cambia el nombre con validación.
func (p *Product) UpdateName(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice cambia el precio con validación.
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if err := validateProductPrice(price); err != nil {
		return err
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateDescription cambia la descripción (puede quedar vacía).
func (p *Product) UpdateDescription(description string) error {
	if err := validateProductDescription(description); err != nil {
		return err
	}
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// TotalValue calcula el valor de una cantidad de este producto al precio de catálogo.
func (p *Product) TotalValue(quantity int64) (decimal.Decimal, error) {
	if quantity < 0 {
		return decimal.Zero, domain.NewValidation("cantidad no puede ser negativa")
	}
	return p.Price.Mul(decimal.NewFromInt(quantity)), nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidation("nombre de producto no puede estar vacío")
	}
	if len(name) > maxProductNameLen {
		return domain.NewValidation("nombre de producto supera %d caracteres", maxProductNameLen)
	}
	return nil
}

func validateProductPrice(price decimal.Decimal) error {
	if price.LessThan(decimal.Zero) {
		return domain.NewValidation("precio no puede ser negativo")
	}
	return nil
}

func validateProductDescription(description string) error {
	if len(description) > maxProductDescriptionLen {
		return domain.NewValidation("descripción supera %d caracteres", maxProductDescriptionLen)
	}
	return nil
}
