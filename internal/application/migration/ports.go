package migration

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// GuestSource datos del invitado en el almacén local.
type GuestSource interface {
	GuestItems(ctx context.Context) ([]*entity.InventoryItem, error)
	GuestTransactions(ctx context.Context) ([]*entity.Transaction, error)
	// ClearGuestData borra los datos del invitado conservando las preferencias.
	ClearGuestData(ctx context.Context) error
	SetAuthenticated(ctx context.Context, authenticated bool) error
}

// Target almacén persistente que recibe los datos. Cada llamada es un lote: o se escribe
// completo o falla. Las escrituras son upserts por ID, por lo que repetirlas no duplica filas.
type Target interface {
	UpsertItems(ctx context.Context, items []*entity.InventoryItem) error
	UpsertTransactions(ctx context.Context, txs []*entity.Transaction) error
}
