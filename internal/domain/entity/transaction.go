package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tipo de transacción financiera.
type TransactionKind string

const (
	TransactionKindSale    TransactionKind = "sale"
	TransactionKindExpense TransactionKind = "expense"
)

// Valid indica si el tipo pertenece a la enumeración cerrada.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindSale || k == TransactionKindExpense
}

// Transaction evento financiero (venta o gasto). Se elimina físicamente, no hay borrado lógico.
type Transaction struct {
	ID            string
	Scope         string
	Kind          TransactionKind
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Category      ExpenseCategory // vacío si no aplica
	Notes         string
	Date          Date
	CreatedAt     time.Time
	Attachments   []Attachment
}

// Attachment adjunto opaco (imagen de recibo, PDF, ...). El contenido no se interpreta.
type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Data     []byte `json:"data"`
}

// RemoveAttachments devuelve la lista sin los adjuntos cuyos IDs se indican.
func RemoveAttachments(list []Attachment, ids []string) []Attachment {
	if len(ids) == 0 {
		return list
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]Attachment, 0, len(list))
	for _, a := range list {
		if _, ok := drop[a.ID]; ok {
			continue
		}
		out = append(out, a)
	}
	return out
}
