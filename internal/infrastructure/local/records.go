package local

import (
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Forma serializada de cada entidad en el almacén local (snake_case, un arreglo por clave).

type transactionRecord struct {
	ID            string              `json:"id"`
	BusinessID    string              `json:"business_id"`
	Type          string              `json:"type"`
	Amount        decimal.Decimal     `json:"amount"`
	PaymentMethod string              `json:"payment_method"`
	Category      string              `json:"category,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Date          entity.Date         `json:"transaction_date"`
	CreatedAt     time.Time           `json:"created_at"`
	Attachments   []entity.Attachment `json:"attachments,omitempty"`
}

type itemRecord struct {
	ID                string           `json:"id"`
	BusinessID        string           `json:"business_id"`
	Name              string           `json:"name"`
	Quantity          decimal.Decimal  `json:"quantity"`
	InitialQuantity   decimal.Decimal  `json:"initial_quantity"`
	Unit              string           `json:"unit"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type movementRecord struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	BusinessID    string          `json:"business_id"`
	Type          string          `json:"movement_type"`
	QuantityDelta decimal.Decimal `json:"quantity_change"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toTransactionRecord(t *entity.Transaction) transactionRecord {
	return transactionRecord{
		ID:            t.ID,
		BusinessID:    t.Scope,
		Type:          string(t.Kind),
		Amount:        t.Amount,
		PaymentMethod: string(t.PaymentMethod),
		Category:      string(t.Category),
		Notes:         t.Notes,
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		Attachments:   t.Attachments,
	}
}

// toTransaction no normaliza el vocabulario: los registros heredados conservan su etiqueta
// original hasta la migración, que es quien la mapea a la enumeración canónica.
func (r transactionRecord) toTransaction() *entity.Transaction {
	return &entity.Transaction{
		ID:            r.ID,
		Scope:         r.BusinessID,
		Kind:          entity.TransactionKind(r.Type),
		Amount:        r.Amount,
		PaymentMethod: entity.PaymentMethod(r.PaymentMethod),
		Category:      entity.ExpenseCategory(r.Category),
		Notes:         r.Notes,
		Date:          r.Date,
		CreatedAt:     r.CreatedAt,
		Attachments:   r.Attachments,
	}
}

func toItemRecord(i *entity.InventoryItem) itemRecord {
	return itemRecord{
		ID:                i.ID,
		BusinessID:        i.Scope,
		Name:              i.Name,
		Quantity:          i.Quantity,
		InitialQuantity:   i.Baseline,
		Unit:              i.Unit,
		LowStockThreshold: i.LowStockThreshold,
		CostPrice:         i.CostPrice,
		SellingPrice:      i.SellingPrice,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

func (r itemRecord) toItem() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:                r.ID,
		Scope:             r.BusinessID,
		Name:              r.Name,
		Quantity:          r.Quantity,
		Baseline:          r.InitialQuantity,
		Unit:              r.Unit,
		LowStockThreshold: r.LowStockThreshold,
		CostPrice:         r.CostPrice,
		SellingPrice:      r.SellingPrice,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toMovementRecord(m *entity.InventoryMovement) movementRecord {
	return movementRecord{
		ID:            m.ID,
		ItemID:        m.ItemID,
		BusinessID:    m.Scope,
		Type:          string(m.Kind),
		QuantityDelta: m.QuantityDelta,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
	}
}

func (r movementRecord) toMovement() *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID:            r.ID,
		ItemID:        r.ItemID,
		Scope:         r.BusinessID,
		Kind:          entity.MovementKind(r.Type),
		QuantityDelta: r.QuantityDelta,
		TransactionID: r.TransactionID,
		CreatedAt:     r.CreatedAt,
	}
}
