package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avandall/WMS-Project-sub000/internal/domain/entity"
	"github.com/avandall/WMS-Project-sub000/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas viven en document_items con una columna position que preserva el orden de inserción.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Save inserta o actualiza el documento y reemplaza sus líneas.
// Con ID 0 la secuencia asigna el id y se escribe de vuelta.
func (r *DocumentRepo) Save(doc *entity.Document) error {
	ctx := context.Background()
	if doc.ID == 0 {
		query := `
			INSERT INTO documents
				(doc_type, status, from_warehouse_id, to_warehouse_id, created_by, approved_by,
				 cancelled_by, note, cancel_reason, created_at, posted_at, cancelled_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`
		err := r.q.QueryRow(ctx, query,
			doc.Type, doc.Status, nullID(doc.FromWarehouseID), nullID(doc.ToWarehouseID),
			doc.CreatedBy, nullString(doc.ApprovedBy), nullString(doc.CancelledBy),
			nullString(doc.Note), nullString(doc.CancelReason),
			doc.CreatedAt, nullTime(doc.PostedAt), nullTime(doc.CancelledAt),
		).Scan(&doc.ID)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
	} else {
		query := `
			UPDATE documents SET
				status = $2, approved_by = $3, cancelled_by = $4, note = $5,
				cancel_reason = $6, posted_at = $7, cancelled_at = $8
			WHERE id = $1`
		_, err := r.q.Exec(ctx, query,
			doc.ID, doc.Status, nullString(doc.ApprovedBy), nullString(doc.CancelledBy),
			nullString(doc.Note), nullString(doc.CancelReason),
			nullTime(doc.PostedAt), nullTime(doc.CancelledAt),
		)
		if err != nil {
			return fmt.Errorf("update document: %w", err)
		}
		if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, doc.ID); err != nil {
			return fmt.Errorf("delete document items: %w", err)
		}
	}
	for i, item := range doc.Items() {
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_items (document_id, position, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			doc.ID, i, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un documento con sus líneas; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(id int64) (*entity.Document, error) {
	return r.get(id, false)
}

// GetByIDForUpdate obtiene el documento bloqueando su fila (SELECT FOR UPDATE)
// para serializar posteos concurrentes del mismo documento.
func (r *DocumentRepo) GetByIDForUpdate(id int64) (*entity.Document, error) {
	return r.get(id, true)
}

// List lista documentos con paginación, más recientes primero.
func (r *DocumentRepo) List(limit, offset int) ([]*entity.Document, error) {
	query := selectDocuments + ` ORDER BY id DESC LIMIT $1 OFFSET $2`
	return r.listDocs(query, limit, offset)
}

// ListByStatus lista documentos filtrando por estado.
func (r *DocumentRepo) ListByStatus(status string, limit, offset int) ([]*entity.Document, error) {
	query := selectDocuments + ` WHERE status = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	return r.listDocs(query, status, limit, offset)
}

const selectDocuments = `
	SELECT id, doc_type, status, from_warehouse_id, to_warehouse_id, created_by, approved_by,
	       cancelled_by, note, cancel_reason, created_at, posted_at, cancelled_at
	FROM documents`

func (r *DocumentRepo) get(id int64, forUpdate bool) (*entity.Document, error) {
	query := selectDocuments + ` WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	row := r.q.QueryRow(context.Background(), query, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := r.loadItems(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *DocumentRepo) listDocs(query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range list {
		if err := r.loadItems(doc); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *DocumentRepo) loadItems(doc *entity.Document) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, quantity, unit_price FROM document_items
		WHERE document_id = $1 ORDER BY position`, doc.ID)
	if err != nil {
		return fmt.Errorf("get document items: %w", err)
	}
	defer rows.Close()
	var items []entity.DocumentItem
	for rows.Next() {
		var item entity.DocumentItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return fmt.Errorf("scan document item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return doc.SetItems(items)
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		doc                                      entity.Document
		fromID, toID                             *int64
		approvedBy, cancelledBy, note, cancelMsg *string
		postedAt, cancelledAt                    *time.Time
	)
	err := row.Scan(
		&doc.ID, &doc.Type, &doc.Status, &fromID, &toID, &doc.CreatedBy, &approvedBy,
		&cancelledBy, &note, &cancelMsg, &doc.CreatedAt, &postedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if fromID != nil {
		doc.FromWarehouseID = *fromID
	}
	if toID != nil {
		doc.ToWarehouseID = *toID
	}
	if approvedBy != nil {
		doc.ApprovedBy = *approvedBy
	}
	if cancelledBy != nil {
		doc.CancelledBy = *cancelledBy
	}
	if note != nil {
		doc.Note = *note
	}
	if cancelMsg != nil {
		doc.CancelReason = *cancelMsg
	}
	if postedAt != nil {
		doc.PostedAt = *postedAt
	}
	if cancelledAt != nil {
		doc.CancelledAt = *cancelledAt
	}
	return &doc, nil
}

func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
