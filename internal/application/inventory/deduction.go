package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockStatus resultado del descuento de inventario asociado a una venta.
type StockStatus string

const (
	StockSkipped         StockStatus = "skipped"           // la venta no trae línea de inventario
	StockDeducted        StockStatus = "deducted"          // movimiento de venta escrito
	StockWouldGoNegative StockStatus = "would_go_negative" // requiere confirmación; nada escrito
	StockNotUpdated      StockStatus = "not_updated"       // la venta quedó guardada pero el inventario no
)

// DeductionResult detalle del descuento de una línea de venta.
type DeductionResult struct {
	Status      StockStatus
	Item        *entity.InventoryItem
	Movement    *entity.InventoryMovement
	Prospective decimal.Decimal // cantidad resultante (o que resultaría) tras la venta
	LowStock    bool
}

// ValidateSaleLine comprueba la línea de venta contra el artículo: artículo elegido, cantidad
// positiva y unidad idéntica a la del artículo. No escribe nada.
func (uc *InventoryUseCase) ValidateSaleLine(ctx context.Context, session entity.Session, line dto.SaleStockLine) (*entity.InventoryItem, error) {
	if line.ItemID == "" {
		return nil, domain.ErrItemNotSelected
	}
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	item, err := store.GetItem(ctx, session.Scope, line.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, line.ItemID)
	}
	if err := inventory.ValidateSaleLine(item, line.Quantity, line.Unit); err != nil {
		return nil, err
	}
	return item, nil
}

// DeductForSale descuenta la cantidad vendida si no deja el inventario en negativo. Si lo
// dejaría, devuelve StockWouldGoNegative sin escribir nada: el llamador decide si confirma.
func (uc *InventoryUseCase) DeductForSale(ctx context.Context, session entity.Session, transactionID string, line dto.SaleStockLine) (*DeductionResult, error) {
	item, err := uc.ValidateSaleLine(ctx, session, line)
	if err != nil {
		return nil, err
	}
	prospective := inventory.ProspectiveQuantity(item.Quantity, line.Quantity)
	if inventory.WouldGoNegative(item.Quantity, line.Quantity) {
		uc.log.Info().
			Str("item_id", item.ID).
			Str("current", item.Quantity.String()).
			Str("sold", line.Quantity.String()).
			Msg("la venta dejaría el inventario en negativo, requiere confirmación")
		return &DeductionResult{Status: StockWouldGoNegative, Item: item, Prospective: prospective}, nil
	}
	return uc.writeSaleMovement(ctx, session, item, transactionID, line.Quantity)
}

// ConfirmNegativeDeduction escribe el movimiento de venta sin la guarda de negativos.
// La cantidad resultante puede quedar por debajo de cero.
func (uc *InventoryUseCase) ConfirmNegativeDeduction(ctx context.Context, session entity.Session, transactionID string, line dto.SaleStockLine) (*DeductionResult, error) {
	item, err := uc.ValidateSaleLine(ctx, session, line)
	if err != nil {
		return nil, err
	}
	return uc.writeSaleMovement(ctx, session, item, transactionID, line.Quantity)
}

func (uc *InventoryUseCase) writeSaleMovement(ctx context.Context, session entity.Session, item *entity.InventoryItem, transactionID string, sold decimal.Decimal) (*DeductionResult, error) {
	movement, err := uc.AddMovement(ctx, session, dto.AddMovementRequest{
		ItemID:        item.ID,
		Kind:          string(entity.MovementKindSale),
		QuantityDelta: sold.Neg(),
		TransactionID: transactionID,
	})
	if err != nil {
		return nil, err
	}
	prospective := inventory.ProspectiveQuantity(item.Quantity, sold)
	res := &DeductionResult{
		Status:      StockDeducted,
		Item:        item,
		Movement:    movement,
		Prospective: prospective,
		LowStock:    item.IsLowStock(prospective),
	}
	if res.LowStock {
		uc.log.Info().Str("item_id", item.ID).Str("quantity", prospective.String()).Msg("stock bajo")
		ports.Notify(ctx, uc.notifier, ports.Event{
			Type:  ports.EventLowStock,
			Scope: session.Scope,
			Payload: map[string]any{
				"item_id":   item.ID,
				"name":      item.Name,
				"quantity":  prospective,
				"threshold": item.LowStockThreshold,
			},
		})
	}
	return res, nil
}
