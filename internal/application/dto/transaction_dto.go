package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttachmentInput adjunto enviado por el cliente (contenido en base64 vía JSON []byte).
type AttachmentInput struct {
	FileName string `json:"file_name" validate:"required"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data" validate:"required"`
}

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	Kind          string            `json:"type" validate:"required,oneof=sale expense"`
	Amount        decimal.Decimal   `json:"amount"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Category      string            `json:"category,omitempty"`
	Notes         string            `json:"notes,omitempty" validate:"max=1000"`
	Date          string            `json:"transaction_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Attachments   []AttachmentInput `json:"attachments,omitempty" validate:"dive"`
}

// UpdateTransactionRequest body para PUT /api/transactions/:id. Campos nil = sin cambio.
type UpdateTransactionRequest struct {
	Amount            *decimal.Decimal  `json:"amount,omitempty"`
	PaymentMethod     *string           `json:"payment_method,omitempty"`
	Category          *string           `json:"category,omitempty"`
	Notes             *string           `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Date              *string           `json:"transaction_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AddAttachments    []AttachmentInput `json:"add_attachments,omitempty" validate:"dive"`
	RemoveAttachments []string          `json:"remove_attachments,omitempty"`
}

// SaleStockLine línea opcional de inventario de una venta.
type SaleStockLine struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// RecordSaleRequest body para POST /api/transactions/sales.
type RecordSaleRequest struct {
	Transaction CreateTransactionRequest `json:"transaction"`
	Stock       *SaleStockLine           `json:"stock,omitempty"`
}

// ConfirmSaleStockRequest body para POST /api/transactions/sales/confirm-stock.
type ConfirmSaleStockRequest struct {
	TransactionID string          `json:"transaction_id" validate:"required"`
	ItemID        string          `json:"item_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
}

// AttachmentResponse metadatos de un adjunto (sin contenido).
type AttachmentResponse struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID            string               `json:"id"`
	BusinessID    string               `json:"business_id"`
	Kind          string               `json:"type"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod string               `json:"payment_method"`
	Category      string               `json:"category,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Date          string               `json:"transaction_date"`
	CreatedAt     time.Time            `json:"created_at"`
	Attachments   []AttachmentResponse `json:"attachments,omitempty"`
}

// StockOutcomeResponse resultado del descuento de inventario de una venta.
type StockOutcomeResponse struct {
	Status          string           `json:"status"`
	ItemID          string           `json:"item_id,omitempty"`
	NewQuantity     *decimal.Decimal `json:"new_quantity,omitempty"`
	Prospective     *decimal.Decimal `json:"prospective_quantity,omitempty"`
	LowStock        bool             `json:"low_stock"`
	RequiresConfirm bool             `json:"requires_confirmation"`
	Warning         string           `json:"warning,omitempty"`
}

// SaleResponse salida de POST /api/transactions/sales.
type SaleResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	Stock       StockOutcomeResponse `json:"stock"`
}
