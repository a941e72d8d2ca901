package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento de inventario.
type MovementKind string

// Tipos de movimiento de inventario.
const (
	MovementKindSale       MovementKind = "sale"       // salida por venta (delta negativo)
	MovementKindRestock    MovementKind = "restock"    // entrada por reposición
	MovementKindAdjustment MovementKind = "adjustment" // ajuste manual o compensación
)

// Valid indica si el tipo pertenece a la enumeración cerrada.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementKindSale, MovementKindRestock, MovementKindAdjustment:
		return true
	}
	return false
}

// InventoryMovement es una entrada inmutable del libro de movimientos.
// Nunca se edita ni se elimina: la reversión es un nuevo movimiento de ajuste con el signo opuesto.
type InventoryMovement struct {
	ID            string
	ItemID        string
	Scope         string
	Kind          MovementKind
	QuantityDelta decimal.Decimal // negativo para salidas
	TransactionID string          // vacío si no la causó una transacción
	CreatedAt     time.Time
}

// LinkedTo indica si el movimiento fue causado por la transacción dada.
func (m *InventoryMovement) LinkedTo(transactionID string) bool {
	return transactionID != "" && m.TransactionID == transactionID
}
