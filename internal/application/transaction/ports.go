package transaction

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// StockService descuento de inventario usado por el flujo de ventas.
// Lo implementa *inventory.InventoryUseCase.
type StockService interface {
	ValidateSaleLine(ctx context.Context, session entity.Session, line dto.SaleStockLine) (*entity.InventoryItem, error)
	DeductForSale(ctx context.Context, session entity.Session, transactionID string, line dto.SaleStockLine) (*inventory.DeductionResult, error)
	ConfirmNegativeDeduction(ctx context.Context, session entity.Session, transactionID string, line dto.SaleStockLine) (*inventory.DeductionResult, error)
}
