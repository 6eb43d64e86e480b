package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio en un conjunto cerrado.
// Todos son condiciones esperadas y recuperables por el caller (la capa HTTP los mapea a 4xx).
type Kind string

const (
	KindValidation        Kind = "VALIDATION"         // entrada malformada
	KindNotFound          Kind = "NOT_FOUND"          // entidad referenciada no existe
	KindAlreadyExists     Kind = "ALREADY_EXISTS"     // identidad duplicada
	KindBusinessRule      Kind = "BUSINESS_RULE"      // operación estructuralmente inválida
	KindInvalidStatus     Kind = "INVALID_STATUS"     // transición de estado no permitida
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK" // cantidad insuficiente
)

// Error error de dominio con contexto estructurado (sin dependencias externas).
// Available/Requested solo aplican en KindInsufficientStock; Entity/ID cuando hay entidad implicada.
type Error struct {
	Kind      Kind
	Message   string
	Entity    string
	ID        int64
	Available int64
	Requested int64
}

func (e *Error) Error() string {
	if e.Entity != "" && e.ID != 0 {
		return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Message)
	}
	return e.Message
}

// Is permite comparar contra los centinelas de kind con errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Centinelas por kind, para errors.Is en handlers y tests.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrAlreadyExists     = &Error{Kind: KindAlreadyExists}
	ErrBusinessRule      = &Error{Kind: KindBusinessRule}
	ErrInvalidStatus     = &Error{Kind: KindInvalidStatus}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
)

// NewValidation error de validación de entrada.
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound entidad no encontrada, con nombre de entidad e ID.
func NewNotFound(entity string, id int64) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Message: "no encontrado"}
}

// NewAlreadyExists entidad duplicada.
func NewAlreadyExists(entity string, id int64) *Error {
	return &Error{Kind: KindAlreadyExists, Entity: entity, ID: id, Message: "ya existe"}
}

// NewBusinessRule violación de regla de negocio.
func NewBusinessRule(format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidStatus transición de estado no permitida para un documento.
func NewInvalidStatus(documentID int64, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidStatus, Entity: "documento", ID: documentID, Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientStock faltante de stock con disponible vs solicitado.
func NewInsufficientStock(productID int64, available, requested int64) *Error {
	return &Error{
		Kind:      KindInsufficientStock,
		Entity:    "producto",
		ID:        productID,
		Available: available,
		Requested: requested,
		Message:   fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", available, requested),
	}
}

// KindOf devuelve el kind de un error de dominio, o cadena vacía si no lo es.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
