package inventory

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// MovementLog lo implementa el almacén que puede entregar el registro completo del alcance
// (almacén local). Se usa para la verificación de consistencia.
type MovementLog interface {
	AllMovements(ctx context.Context, scope string) ([]*entity.InventoryMovement, error)
}
