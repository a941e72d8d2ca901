package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo de inventario (SKU) de un negocio o del invitado.
// Quantity es derivada de los movimientos; nunca es el destino primario de una escritura.
type InventoryItem struct {
	ID                string
	Scope             string
	Name              string
	Quantity          decimal.Decimal
	Baseline          decimal.Decimal // cantidad inicial: no se registra como movimiento
	Unit              string          // texto libre: "kg", "pcs", ...
	LowStockThreshold *decimal.Decimal
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si la cantidad dada queda en o por debajo del umbral (si existe).
func (i *InventoryItem) IsLowStock(quantity decimal.Decimal) bool {
	if i.LowStockThreshold == nil {
		return false
	}
	return quantity.LessThanOrEqual(*i.LowStockThreshold)
}
