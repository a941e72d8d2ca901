package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// LedgerStore capacidad común de los dos backends (local y remoto). Los servicios dependen de
// este puerto y nunca de un almacén concreto.
type LedgerStore interface {
	InventoryItemRepository
	InventoryMovementRepository
	TransactionRepository

	// Mode backend que implementa el almacén.
	Mode() entity.Mode

	// ReverseAndDeleteTransaction escribe los movimientos de compensación y sólo después elimina
	// la transacción. Si el almacén lo permite, ambos pasos forman una única escritura durable.
	ReverseAndDeleteTransaction(ctx context.Context, scope, transactionID string, compensations []*entity.InventoryMovement) error
}
