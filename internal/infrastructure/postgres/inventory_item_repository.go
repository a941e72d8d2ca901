package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

const itemColumns = `id, business_id, name, quantity, unit, low_stock_threshold, cost_price, selling_price, created_at, updated_at`

// InventoryItemRepo artículos de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.Scope, &it.Name, &it.Quantity, &it.Unit, &it.LowStockThreshold,
		&it.CostPrice, &it.SellingPrice, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// List artículos del negocio ordenados por nombre.
func (r *InventoryItemRepo) List(ctx context.Context, businessID string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE business_id = $1 ORDER BY name`, businessID)
	if err != nil {
		return nil, wrapErr("list inventory items", err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrapErr("scan inventory item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list inventory items", err)
	}
	return list, nil
}

// GetByID obtiene un artículo del negocio; (nil, nil) si no existe.
func (r *InventoryItemRepo) GetByID(ctx context.Context, businessID, id string) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get inventory item", err)
	}
	return it, nil
}

// Create inserta el artículo con su cantidad base (la única escritura directa de quantity).
func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Scope, it.Name, it.Quantity, it.Unit, it.LowStockThreshold,
		it.CostPrice, it.SellingPrice, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert inventory item", err)
	}
	return nil
}

// Delete elimina el artículo; sus movimientos caen por ON DELETE CASCADE.
func (r *InventoryItemRepo) Delete(ctx context.Context, businessID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return wrapErr("delete inventory item", err)
	}
	return nil
}

// UpsertBatch inserta o sobrescribe artículos por ID en un solo viaje (pgx.Batch).
// Volver a ejecutarlo con los mismos valores deja exactamente una fila por ID.
func (r *InventoryItemRepo) UpsertBatch(ctx context.Context, items []*entity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	const query = `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			business_id = EXCLUDED.business_id,
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			low_stock_threshold = EXCLUDED.low_stock_threshold,
			cost_price = EXCLUDED.cost_price,
			selling_price = EXCLUDED.selling_price,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at`
	b := &pgx.Batch{}
	for _, it := range items {
		b.Queue(query, it.ID, it.Scope, it.Name, it.Quantity, it.Unit, it.LowStockThreshold,
			it.CostPrice, it.SellingPrice, it.CreatedAt, it.UpdatedAt)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return wrapErr("upsert inventory items", err)
	}
	return nil
}
