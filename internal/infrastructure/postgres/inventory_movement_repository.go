package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

const movementColumns = `id, item_id, business_id, movement_type, quantity_change, transaction_id, created_at`

// InventoryMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta: la cantidad del artículo la deriva el trigger inventory_movements_apply_quantity.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	var txID *string
	if m.TransactionID != "" {
		txID = &m.TransactionID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ItemID, m.Scope, string(m.Kind), m.QuantityDelta, txID, m.CreatedAt,
	)
	if err != nil {
		return wrapErr("create inventory movement", err)
	}
	return nil
}

// ListByItem movimientos del artículo, más recientes primero. limit <= 0 = sin límite.
func (r *InventoryMovementRepo) ListByItem(ctx context.Context, businessID, itemID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE business_id = $1 AND item_id = $2 ORDER BY created_at DESC`
	args := []any{businessID, itemID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	return r.list(ctx, "list movements by item", query, args...)
}

// ListByKind movimientos del negocio de un tipo (p. ej. ventas, para cruces de reportes).
func (r *InventoryMovementRepo) ListByKind(ctx context.Context, businessID string, kind entity.MovementKind) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, "list movements by kind", `SELECT `+movementColumns+` FROM inventory_movements
		WHERE business_id = $1 AND movement_type = $2 ORDER BY created_at DESC`, businessID, string(kind))
}

// ListByTransaction movimientos causados por la transacción.
func (r *InventoryMovementRepo) ListByTransaction(ctx context.Context, businessID, transactionID string) ([]*entity.InventoryMovement, error) {
	return r.list(ctx, "list movements by transaction", `SELECT `+movementColumns+` FROM inventory_movements
		WHERE business_id = $1 AND transaction_id = $2 ORDER BY created_at`, businessID, transactionID)
}

func (r *InventoryMovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrapErr("scan movement", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var kind string
	var txID *string
	if err := row.Scan(&m.ID, &m.ItemID, &m.Scope, &kind, &m.QuantityDelta, &txID, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	if txID != nil {
		m.TransactionID = *txID
	}
	return &m, nil
}
