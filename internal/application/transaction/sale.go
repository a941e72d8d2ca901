package transaction

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockOutcome estado del inventario tras registrar una venta. Permite distinguir
// "venta guardada, inventario incierto" de un fallo real (que se devuelve como error).
type StockOutcome struct {
	Status   inventory.StockStatus
	ItemID   string
	Quantity *decimal.Decimal // resultante, o la que resultaría si se confirma
	LowStock bool
	Warning  string
}

// RequiresConfirmation la venta dejaría el inventario en negativo y espera ConfirmSaleStock.
func (o StockOutcome) RequiresConfirmation() bool {
	return o.Status == inventory.StockWouldGoNegative
}

// SaleResult transacción guardada más el resultado del descuento de inventario.
type SaleResult struct {
	Transaction *entity.Transaction
	Stock       StockOutcome
}

// RecordSale guarda la venta y después descuenta el inventario de la línea indicada.
// Una línea inválida (sin artículo, cantidad no positiva, unidad distinta) se rechaza antes
// de escribir nada. Una vez guardada la transacción, cualquier fallo de inventario se
// informa en Stock y nunca deshace la venta.
func (uc *TransactionUseCase) RecordSale(ctx context.Context, session entity.Session, in dto.RecordSaleRequest) (*SaleResult, error) {
	if in.Transaction.Kind == "" {
		in.Transaction.Kind = string(entity.TransactionKindSale)
	}
	if in.Transaction.Kind != string(entity.TransactionKindSale) {
		return nil, fmt.Errorf("%w: solo se registran ventas", domain.ErrInvalidInput)
	}
	if in.Stock != nil {
		if _, err := uc.stock.ValidateSaleLine(ctx, session, *in.Stock); err != nil {
			return nil, err
		}
	}
	tx, err := uc.CreateTransaction(ctx, session, in.Transaction)
	if err != nil {
		return nil, err
	}
	result := &SaleResult{Transaction: tx, Stock: StockOutcome{Status: inventory.StockSkipped}}
	if in.Stock == nil {
		return result, nil
	}

	res, err := uc.stock.DeductForSale(ctx, session, tx.ID, *in.Stock)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("scope", session.Scope).
			Str("transaction_id", tx.ID).
			Str("item_id", in.Stock.ItemID).
			Msg("venta guardada pero el inventario no se actualizó")
		result.Stock = StockOutcome{
			Status:  inventory.StockNotUpdated,
			ItemID:  in.Stock.ItemID,
			Warning: "venta registrada, pero no se pudo actualizar el inventario: " + err.Error(),
		}
		return result, nil
	}
	result.Stock = outcomeOf(res)
	return result, nil
}

// ConfirmSaleStock escribe el descuento que RecordSale dejó pendiente por dejar el inventario
// en negativo. Rechazarlo es simplemente no llamarlo: la venta sigue registrada.
func (uc *TransactionUseCase) ConfirmSaleStock(ctx context.Context, session entity.Session, in dto.ConfirmSaleStockRequest) (*StockOutcome, error) {
	tx, err := uc.GetTransaction(ctx, session, in.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.Kind != entity.TransactionKindSale {
		return nil, fmt.Errorf("%w: la transacción no es una venta", domain.ErrInvalidInput)
	}
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	linked, err := store.ListMovementsByTransaction(ctx, session.Scope, tx.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range linked {
		if m.ItemID == in.ItemID && m.Kind == entity.MovementKindSale {
			return nil, fmt.Errorf("%w: el inventario de esta venta ya se descontó", domain.ErrDuplicate)
		}
	}
	res, err := uc.stock.ConfirmNegativeDeduction(ctx, session, tx.ID, dto.SaleStockLine{
		ItemID:   in.ItemID,
		Quantity: in.Quantity,
		Unit:     in.Unit,
	})
	if err != nil {
		return nil, err
	}
	outcome := outcomeOf(res)
	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("item_id", in.ItemID).
		Str("quantity", res.Prospective.String()).
		Msg("descuento confirmado con inventario negativo")
	return &outcome, nil
}

func outcomeOf(res *inventory.DeductionResult) StockOutcome {
	q := res.Prospective
	return StockOutcome{
		Status:   res.Status,
		ItemID:   res.Item.ID,
		Quantity: &q,
		LowStock: res.LowStock,
	}
}
