package repository

import "github.com/avandall/WMS-Project-sub000/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para Document (DIP).
// GetByID devuelve (nil, nil) si el documento no existe.
type DocumentRepository interface {
	// Save inserta o actualiza el documento y sus líneas; si ID es 0 asigna uno secuencial.
	Save(document *entity.Document) error
	GetByID(id int64) (*entity.Document, error)
	// GetByIDForUpdate obtiene el documento bloqueando su fila (SELECT FOR UPDATE)
	// para serializar el posteo por documento.
	GetByIDForUpdate(id int64) (*entity.Document, error)
	List(limit, offset int) ([]*entity.Document, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Document, error)
}
