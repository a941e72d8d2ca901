package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
type CreateItemRequest struct {
	Name              string           `json:"name" validate:"required,min=1,max=200"`
	InitialQuantity   *decimal.Decimal `json:"initial_quantity,omitempty"`
	Unit              string           `json:"unit" validate:"required,max=50"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
}

// AddMovementRequest body para POST /api/inventory/movements.
type AddMovementRequest struct {
	ItemID        string          `json:"item_id" validate:"required"`
	Kind          string          `json:"movement_type" validate:"required,oneof=sale restock adjustment"`
	QuantityDelta decimal.Decimal `json:"quantity_change"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// InventoryItemResponse salida de un artículo.
type InventoryItemResponse struct {
	ID                string           `json:"id"`
	BusinessID        string           `json:"business_id"`
	Name              string           `json:"name"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Unit              string           `json:"unit"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// InventoryMovementResponse salida de un movimiento.
type InventoryMovementResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	BusinessID     string          `json:"business_id"`
	MovementType   string          `json:"movement_type"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ConsistencyIssue artículo cuya cantidad guardada no coincide con la suma de sus movimientos.
type ConsistencyIssue struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Stored     decimal.Decimal `json:"stored"`
	Recomputed decimal.Decimal `json:"recomputed"`
}

// ConsistencyReport resultado de GET /api/inventory/consistency.
type ConsistencyReport struct {
	Checked int                `json:"checked"`
	Issues  []ConsistencyIssue `json:"issues"`
}
