package inventory

import (
	"time"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecomputeQuantity suma los deltas de los movimientos del artículo (servicio de dominio).
// Cantidad = Σ movement.QuantityDelta donde movement.ItemID == itemID.
func RecomputeQuantity(itemID string, movements []*entity.InventoryMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.ItemID == itemID {
			total = total.Add(m.QuantityDelta)
		}
	}
	return total
}

// CompensationsFor construye un ajuste con el delta negado por cada movimiento causado por la transacción.
// Los ajustes no referencian la transacción, así que nunca se vuelven a revertir.
func CompensationsFor(transactionID string, movements []*entity.InventoryMovement, now time.Time, newID func() string) []*entity.InventoryMovement {
	out := make([]*entity.InventoryMovement, 0, len(movements))
	for _, m := range movements {
		if !m.LinkedTo(transactionID) {
			continue
		}
		out = append(out, &entity.InventoryMovement{
			ID:            newID(),
			ItemID:        m.ItemID,
			Scope:         m.Scope,
			Kind:          entity.MovementKindAdjustment,
			QuantityDelta: m.QuantityDelta.Neg(),
			CreatedAt:     now,
		})
	}
	return out
}

// ExpectedQuantity cantidad que debería tener el artículo: su base más la suma de sus movimientos.
func ExpectedQuantity(item *entity.InventoryItem, movements []*entity.InventoryMovement) decimal.Decimal {
	return item.Baseline.Add(RecomputeQuantity(item.ID, movements))
}
