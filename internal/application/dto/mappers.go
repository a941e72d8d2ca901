package dto

import "github.com/jhoicas/ledger-api/internal/domain/entity"

// NewInventoryItemResponse mapea la entidad a la salida HTTP.
func NewInventoryItemResponse(i *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                i.ID,
		BusinessID:        i.Scope,
		Name:              i.Name,
		Quantity:          i.Quantity,
		Unit:              i.Unit,
		LowStockThreshold: i.LowStockThreshold,
		CostPrice:         i.CostPrice,
		SellingPrice:      i.SellingPrice,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// NewInventoryItemList mapea una lista; nunca devuelve nil para que el JSON sea [].
func NewInventoryItemList(items []*entity.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewInventoryItemResponse(i))
	}
	return out
}

func NewInventoryMovementResponse(m *entity.InventoryMovement) InventoryMovementResponse {
	return InventoryMovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		BusinessID:     m.Scope,
		MovementType:   string(m.Kind),
		QuantityChange: m.QuantityDelta,
		TransactionID:  m.TransactionID,
		CreatedAt:      m.CreatedAt,
	}
}

func NewInventoryMovementList(movements []*entity.InventoryMovement) []InventoryMovementResponse {
	out := make([]InventoryMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, NewInventoryMovementResponse(m))
	}
	return out
}

// NewTransactionResponse mapea la transacción; los adjuntos salen sin contenido.
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID,
		BusinessID:    t.Scope,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		PaymentMethod: string(t.PaymentMethod),
		Category:      string(t.Category),
		Notes:         t.Notes,
		Date:          t.Date.String(),
		CreatedAt:     t.CreatedAt,
	}
	for _, a := range t.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:       a.ID,
			FileName: a.FileName,
			MimeType: a.MimeType,
			Size:     a.Size,
		})
	}
	return resp
}

func NewTransactionList(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
