package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de un movimiento de stock aplicado.
const (
	MovementDirectionIn  = "IN"  // entrada a la bodega
	MovementDirectionOut = "OUT" // salida de la bodega
)

// StockMovement es el rastro de cada mutación de ledger aplicada al postear un documento.
// Todas las filas de un mismo posteo comparten TransactionID.
type StockMovement struct {
	ID            string // uuid
	TransactionID string // uuid compartido por el posteo
	DocumentID    int64
	ProductID     int64
	WarehouseID   int64
	Direction     string
	Quantity      int64           // positiva entrada, negativa salida
	UnitPrice     decimal.Decimal // precio de la línea del documento
	CreatedAt     time.Time
	CreatedBy     string
}
