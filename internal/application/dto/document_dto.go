package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
)

// DocumentItemRequest línea cruda de un documento entrante.
type DocumentItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateDocumentRequest entrada para crear un documento en DRAFT.
// FromWarehouseID aplica a EXPORT y TRANSFER; ToWarehouseID a IMPORT y TRANSFER.
type CreateDocumentRequest struct {
	Type            string                `json:"type"`
	FromWarehouseID int64                 `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   int64                 `json:"to_warehouse_id,omitempty"`
	Items           []DocumentItemRequest `json:"items"`
	CreatedBy       string                `json:"created_by"`
	Note            string                `json:"note,omitempty"`
}

// PostDocumentRequest entrada para postear un documento.
type PostDocumentRequest struct {
	ApprovedBy string `json:"approved_by"`
}

// CancelDocumentRequest entrada para cancelar un documento.
type CancelDocumentRequest struct {
	CancelledBy string `json:"cancelled_by"`
	Reason      string `json:"reason,omitempty"`
}

// DocumentItemResponse línea de documento en respuestas.
type DocumentItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID              int64                  `json:"id"`
	Type            string                 `json:"type"`
	Status          string                 `json:"status"`
	FromWarehouseID int64                  `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   int64                  `json:"to_warehouse_id,omitempty"`
	Items           []DocumentItemResponse `json:"items"`
	CreatedBy       string                 `json:"created_by"`
	ApprovedBy      string                 `json:"approved_by,omitempty"`
	CancelledBy     string                 `json:"cancelled_by,omitempty"`
	Note            string                 `json:"note,omitempty"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
	TotalQuantity   int64                  `json:"total_quantity"`
	TotalValue      decimal.Decimal        `json:"total_value"`
	CreatedAt       time.Time              `json:"created_at"`
	PostedAt        *time.Time             `json:"posted_at,omitempty"`
	CancelledAt     *time.Time             `json:"cancelled_at,omitempty"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockMovementResponse registro del rastro de movimientos.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	DocumentID    int64           `json:"document_id"`
	ProductID     int64           `json:"product_id"`
	WarehouseID   int64           `json:"warehouse_id"`
	Direction     string          `json:"direction"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}

// ToDocumentResponse mapea la entidad a su DTO de salida.
func ToDocumentResponse(doc *entity.Document) DocumentResponse {
	items := make([]DocumentItemResponse, 0, len(doc.Items()))
	for _, item := range doc.Items() {
		items = append(items, DocumentItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	out := DocumentResponse{
		ID:              doc.ID,
		Type:            doc.Type,
		Status:          doc.Status,
		FromWarehouseID: doc.FromWarehouseID,
		ToWarehouseID:   doc.ToWarehouseID,
		Items:           items,
		CreatedBy:       doc.CreatedBy,
		ApprovedBy:      doc.ApprovedBy,
		CancelledBy:     doc.CancelledBy,
		Note:            doc.Note,
		CancelReason:    doc.CancelReason,
		TotalQuantity:   doc.TotalQuantity(),
		TotalValue:      doc.TotalValue(),
		CreatedAt:       doc.CreatedAt,
	}
	if !doc.PostedAt.IsZero() {
		postedAt := doc.PostedAt
		out.PostedAt = &postedAt
	}
	if !doc.CancelledAt.IsZero() {
		cancelledAt := doc.CancelledAt
		out.CancelledAt = &cancelledAt
	}
	return out
}

// ToStockMovementResponse mapea un movimiento del rastro a su DTO.
func ToStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		DocumentID:    m.DocumentID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		Direction:     m.Direction,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
