package inventory

import (
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ValidateSaleLine valida la línea de venta contra el artículo antes de cualquier escritura:
// cantidad positiva y unidad idéntica (comparación exacta de strings) a la del artículo.
func ValidateSaleLine(item *entity.InventoryItem, quantity decimal.Decimal, unit string) error {
	if item == nil {
		return domain.ErrItemNotSelected
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return domain.ErrNonPositiveQuantity
	}
	if unit != item.Unit {
		return domain.ErrUnitMismatch
	}
	return nil
}

// ProspectiveQuantity cantidad resultante si se descuenta lo vendido.
func ProspectiveQuantity(current, sold decimal.Decimal) decimal.Decimal {
	return current.Sub(sold)
}

// WouldGoNegative indica si el descuento deja el stock por debajo de cero.
func WouldGoNegative(current, sold decimal.Decimal) bool {
	return ProspectiveQuantity(current, sold).LessThan(decimal.Zero)
}
