package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de movimientos (solo anexar, nunca editar).
type InventoryMovementRepository interface {
	// AppendMovement anexa el movimiento. En el almacén local también aplica el delta a la
	// cantidad del artículo en la misma escritura; en el remoto la deriva el propio almacén.
	AppendMovement(ctx context.Context, movement *entity.InventoryMovement) error
	// ListMovementsByItem devuelve los movimientos más recientes primero. limit <= 0 = sin límite.
	ListMovementsByItem(ctx context.Context, scope, itemID string, limit int) ([]*entity.InventoryMovement, error)
	ListMovementsByKind(ctx context.Context, scope string, kind entity.MovementKind) ([]*entity.InventoryMovement, error)
	ListMovementsByTransaction(ctx context.Context, scope, transactionID string) ([]*entity.InventoryMovement, error)
}
