package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para artículos de inventario.
// GetItem devuelve (nil, nil) si el artículo no existe en el alcance.
type InventoryItemRepository interface {
	ListItems(ctx context.Context, scope string) ([]*entity.InventoryItem, error)
	GetItem(ctx context.Context, scope, id string) (*entity.InventoryItem, error)
	CreateItem(ctx context.Context, item *entity.InventoryItem) error
	DeleteItem(ctx context.Context, scope, id string) error
}
