package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avandall/WMS-Project-sub000/internal/domain"
)

// Tipos de documento de movimiento.
const (
	DocumentTypeImport   = "IMPORT"   // entrada de stock nuevo al sistema
	DocumentTypeExport   = "EXPORT"   // salida de stock del sistema
	DocumentTypeTransfer = "TRANSFER" // traslado entre bodegas
)

// Estados del documento. DRAFT es el inicial; POSTED y CANCELLED son terminales.
const (
	DocumentStatusDraft     = "DRAFT"
	DocumentStatusPosted    = "POSTED"
	DocumentStatusCancelled = "CANCELLED"
)

// DocumentItem línea de un documento: producto, cantidad positiva y precio unitario no negativo.
// Inmutable una vez el documento pasa a POSTED.
type DocumentItem struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// NewDocumentItem construye una línea validada.
func NewDocumentItem(productID, quantity int64, unitPrice decimal.Decimal) (DocumentItem, error) {
	if productID <= 0 {
		return DocumentItem{}, domain.NewValidation("id de producto debe ser positivo")
	}
	if quantity <= 0 {
		return DocumentItem{}, domain.NewValidation("cantidad debe ser positiva")
	}
	if unitPrice.LessThan(decimal.Zero) {
		return DocumentItem{}, domain.NewValidation("precio unitario no puede ser negativo")
	}
	return DocumentItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// TotalValue valor de la línea (cantidad * precio unitario).
func (i DocumentItem) TotalValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Document es la máquina de estados de un movimiento de inventario.
// Las transiciones válidas son DRAFT→POSTED y DRAFT→CANCELLED; los items solo
// se modifican en DRAFT. Postear NO mueve inventario: eso es responsabilidad
// del motor de movimientos (application/documents), para que el documento sea
// testeable sin repositorios.
type Document struct {
	ID              int64
	Type            string
	Status          string
	FromWarehouseID int64 // 0 = no aplica
	ToWarehouseID   int64 // 0 = no aplica
	items           []DocumentItem
	CreatedBy       string
	ApprovedBy      string
	CancelledBy     string
	Note            string
	CancelReason    string
	CreatedAt       time.Time
	PostedAt        time.Time
	CancelledAt     time.Time
}

// NewDocument construye un documento en DRAFT validando las bodegas según el tipo:
// IMPORT exige destino, EXPORT exige origen, TRANSFER exige ambas y distintas.
// ID 0 significa pendiente: lo asigna el repositorio al persistir.
func NewDocument(id int64, docType string, fromWarehouseID, toWarehouseID int64, items []DocumentItem, createdBy, note string) (*Document, error) {
	if id < 0 {
		return nil, domain.NewValidation("id de documento no puede ser negativo")
	}
	if strings.TrimSpace(createdBy) == "" {
		return nil, domain.NewValidation("creador del documento no puede estar vacío")
	}
	switch docType {
	case DocumentTypeImport:
		if toWarehouseID <= 0 {
			return nil, domain.NewValidation("documento IMPORT requiere bodega destino")
		}
	case DocumentTypeExport:
		if fromWarehouseID <= 0 {
			return nil, domain.NewValidation("documento EXPORT requiere bodega origen")
		}
	case DocumentTypeTransfer:
		if fromWarehouseID <= 0 || toWarehouseID <= 0 {
			return nil, domain.NewValidation("documento TRANSFER requiere bodega origen y destino")
		}
		if fromWarehouseID == toWarehouseID {
			return nil, domain.NewBusinessRule("no se puede trasladar a la misma bodega")
		}
	default:
		return nil, domain.NewValidation("tipo de documento inválido: %s", docType)
	}

	doc := &Document{
		ID:              id,
		Type:            docType,
		Status:          DocumentStatusDraft,
		FromWarehouseID: fromWarehouseID,
		ToWarehouseID:   toWarehouseID,
		CreatedBy:       createdBy,
		Note:            note,
		CreatedAt:       time.Now(),
	}
	for _, item := range items {
		if err := doc.AddItem(item); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// AddItem agrega una línea; solo en DRAFT y sin duplicar producto
// (las cantidades las consolida el caller, nunca se suman implícitamente).
func (d *Document) AddItem(item DocumentItem) error {
	if err := d.ensureDraft(); err != nil {
		return err
	}
	for _, existing := range d.items {
		if existing.ProductID == item.ProductID {
			return domain.NewBusinessRule("producto %d ya existe en el documento", item.ProductID)
		}
	}
	d.items = append(d.items, item)
	return nil
}

// RemoveItem elimina la línea del producto; solo en DRAFT.
func (d *Document) RemoveItem(productID int64) error {
	if err := d.ensureDraft(); err != nil {
		return err
	}
	for i, item := range d.items {
		if item.ProductID == productID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFound("producto", productID)
}

// UpdateItem reemplaza cantidad y precio de la línea del producto; solo en DRAFT.
func (d *Document) UpdateItem(productID, quantity int64, unitPrice decimal.Decimal) error {
	if err := d.ensureDraft(); err != nil {
		return err
	}
	updated, err := NewDocumentItem(productID, quantity, unitPrice)
	if err != nil {
		return err
	}
	for i, item := range d.items {
		if item.ProductID == productID {
			d.items[i] = updated
			return nil
		}
	}
	return domain.NewNotFound("producto", productID)
}

// Post transiciona DRAFT→POSTED: exige aprobador no vacío y al menos una línea.
// Fija aprobador y PostedAt. No toca los ledgers.
func (d *Document) Post(approvedBy string) error {
	if d.Status != DocumentStatusDraft {
		return domain.NewInvalidStatus(d.ID, "no está en estado DRAFT")
	}
	if strings.TrimSpace(approvedBy) == "" {
		return domain.NewValidation("aprobador no puede estar vacío")
	}
	if len(d.items) == 0 {
		return domain.NewBusinessRule("no se puede postear un documento sin líneas")
	}
	d.Status = DocumentStatusPosted
	d.ApprovedBy = approvedBy
	d.PostedAt = time.Now()
	return nil
}

// Cancel transiciona DRAFT→CANCELLED. Rechaza documentos ya posteados y también
// re-cancelar uno cancelado (la cancelación no es idempotente).
func (d *Document) Cancel(cancelledBy, reason string) error {
	if d.Status == DocumentStatusPosted {
		return domain.NewInvalidStatus(d.ID, "no se puede cancelar un documento posteado")
	}
	if d.Status == DocumentStatusCancelled {
		return domain.NewInvalidStatus(d.ID, "el documento ya está cancelado")
	}
	d.Status = DocumentStatusCancelled
	d.CancelledBy = cancelledBy
	d.CancelReason = reason
	d.CancelledAt = time.Now()
	return nil
}

// Items devuelve las líneas en su orden de inserción (copia defensiva).
func (d *Document) Items() []DocumentItem {
	out := make([]DocumentItem, len(d.items))
	copy(out, d.items)
	return out
}

// SetItems reemplaza las líneas (hidratación desde persistencia).
func (d *Document) SetItems(items []DocumentItem) error {
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if seen[item.ProductID] {
			return domain.NewBusinessRule("producto %d ya existe en el documento", item.ProductID)
		}
		seen[item.ProductID] = true
	}
	d.items = append([]DocumentItem(nil), items...)
	return nil
}

// CanBeModified indica si el documento acepta cambios de líneas.
func (d *Document) CanBeModified() bool {
	return d.Status == DocumentStatusDraft
}

// TotalQuantity suma las cantidades de todas las líneas.
func (d *Document) TotalQuantity() int64 {
	var total int64
	for _, item := range d.items {
		total += item.Quantity
	}
	return total
}

// TotalValue valor total del documento (suma de líneas).
func (d *Document) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.items {
		total = total.Add(item.TotalValue())
	}
	return total
}

func (d *Document) ensureDraft() error {
	if d.Status != DocumentStatusDraft {
		return domain.NewInvalidStatus(d.ID, "no se puede modificar un documento que no está en DRAFT")
	}
	return nil
}
