package transaction_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/application/transaction"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/infrastructure/local"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e ports.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

type fixture struct {
	store    *local.Store
	inv      *inventory.InventoryUseCase
	txs      *transaction.TransactionUseCase
	notifier *recordingNotifier
	guest    entity.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := local.NewStore(local.NewMemoryKV())
	resolver := ledger.NewResolver(store, nil)
	notifier := &recordingNotifier{}
	inv := inventory.NewInventoryUseCase(resolver, notifier, nil)
	return &fixture{
		store:    store,
		inv:      inv,
		txs:      transaction.NewTransactionUseCase(resolver, inv, nil),
		notifier: notifier,
		guest:    entity.GuestSession(),
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func (f *fixture) createRice(t *testing.T, qty int64) *entity.InventoryItem {
	t.Helper()
	item, err := f.inv.CreateItem(context.Background(), f.guest, dto.CreateItemRequest{
		Name: "Rice", Unit: "kg", InitialQuantity: decPtr(qty), LowStockThreshold: decPtr(5),
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) quantity(t *testing.T, itemID string) string {
	t.Helper()
	item, err := f.inv.GetItem(context.Background(), f.guest, itemID)
	require.NoError(t, err)
	return item.Quantity.String()
}

func (f *fixture) movements(t *testing.T, itemID string) []*entity.InventoryMovement {
	t.Helper()
	list, err := f.inv.GetMovements(context.Background(), f.guest, itemID, 0)
	require.NoError(t, err)
	return list
}

func saleRequest(itemID string, qty int64, unit string) dto.RecordSaleRequest {
	return dto.RecordSaleRequest{
		Transaction: dto.CreateTransactionRequest{
			Amount:        dec(qty * 2),
			PaymentMethod: "cash",
			Date:          "2025-06-01",
		},
		Stock: &dto.SaleStockLine{ItemID: itemID, Quantity: dec(qty), Unit: unit},
	}
}

// Escenario completo: venta, borrado compensado, venta que deja negativo y confirmación.
func TestRiceScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.createRice(t, 50)
	assert.Empty(t, f.movements(t, rice.ID), "la cantidad inicial no es un movimiento")

	sale, err := f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 20, "kg"))
	require.NoError(t, err)
	assert.Equal(t, inventory.StockDeducted, sale.Stock.Status)
	assert.Equal(t, "30", sale.Stock.Quantity.String())
	assert.Equal(t, "30", f.quantity(t, rice.ID))

	require.NoError(t, f.txs.DeleteTransaction(ctx, f.guest, sale.Transaction.ID))
	assert.Equal(t, "50", f.quantity(t, rice.ID))
	moves := f.movements(t, rice.ID)
	require.Len(t, moves, 2)
	kinds := []entity.MovementKind{moves[0].Kind, moves[1].Kind}
	assert.ElementsMatch(t, []entity.MovementKind{entity.MovementKindSale, entity.MovementKindAdjustment}, kinds)

	big, err := f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 60, "kg"))
	require.NoError(t, err)
	assert.Equal(t, inventory.StockWouldGoNegative, big.Stock.Status)
	assert.True(t, big.Stock.RequiresConfirmation())
	assert.Equal(t, "-10", big.Stock.Quantity.String())
	assert.Equal(t, "50", f.quantity(t, rice.ID), "sin confirmar no cambia la cantidad")
	assert.Len(t, f.movements(t, rice.ID), 2, "sin confirmar no se escribe movimiento")

	saved, err := f.txs.GetTransaction(ctx, f.guest, big.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionKindSale, saved.Kind, "la venta queda registrada")

	confirm := dto.ConfirmSaleStockRequest{TransactionID: big.Transaction.ID, ItemID: rice.ID, Quantity: dec(60), Unit: "kg"}
	outcome, err := f.txs.ConfirmSaleStock(ctx, f.guest, confirm)
	require.NoError(t, err)
	assert.Equal(t, inventory.StockDeducted, outcome.Status)
	assert.Equal(t, "-10", f.quantity(t, rice.ID))

	_, err = f.txs.ConfirmSaleStock(ctx, f.guest, confirm)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "no se descuenta dos veces")
	assert.Equal(t, "-10", f.quantity(t, rice.ID))

	report, err := f.inv.VerifyConsistency(ctx, f.guest)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
}

func TestDeleteTransactionTwice_DoesNotDoubleReverse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.createRice(t, 50)

	sale, err := f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 20, "kg"))
	require.NoError(t, err)
	require.NoError(t, f.txs.DeleteTransaction(ctx, f.guest, sale.Transaction.ID))

	err = f.txs.DeleteTransaction(ctx, f.guest, sale.Transaction.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "50", f.quantity(t, rice.ID))
	assert.Len(t, f.movements(t, rice.ID), 2)
}

func TestRecordSale_UnitMismatchIsHardFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.createRice(t, 50)

	_, err := f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 2, "g"))
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)
	assert.Equal(t, "50", f.quantity(t, rice.ID))

	list, err := f.txs.ListTransactions(ctx, f.guest)
	require.NoError(t, err)
	assert.Empty(t, list, "una línea inválida no guarda la venta")
}

func TestRecordSale_InvalidLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.createRice(t, 50)

	_, err := f.txs.RecordSale(ctx, f.guest, saleRequest("", 2, "kg"))
	assert.ErrorIs(t, err, domain.ErrItemNotSelected)

	_, err = f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 0, "kg"))
	assert.ErrorIs(t, err, domain.ErrNonPositiveQuantity)

	req := saleRequest(rice.ID, 1, "kg")
	req.Transaction.Kind = "expense"
	_, err = f.txs.RecordSale(ctx, f.guest, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_WithoutStockLine(t *testing.T) {
	f := newFixture(t)
	req := saleRequest("", 1, "")
	req.Stock = nil

	res, err := f.txs.RecordSale(context.Background(), f.guest, req)
	require.NoError(t, err)
	assert.Equal(t, inventory.StockSkipped, res.Stock.Status)
}

func TestRecordSale_LowStockSignal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.createRice(t, 10)

	res, err := f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 5, "kg"))
	require.NoError(t, err)
	assert.True(t, res.Stock.LowStock, "5 <= umbral 5")
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, ports.EventLowStock, f.notifier.events[0].Type)
	assert.Equal(t, entity.GuestScope, f.notifier.events[0].Scope)
}

// stockFailingAfterValidation valida bien pero falla al descontar.
type stockFailingAfterValidation struct{}

func (stockFailingAfterValidation) ValidateSaleLine(context.Context, entity.Session, dto.SaleStockLine) (*entity.InventoryItem, error) {
	return &entity.InventoryItem{ID: "rice", Unit: "kg"}, nil
}

func (stockFailingAfterValidation) DeductForSale(context.Context, entity.Session, string, dto.SaleStockLine) (*inventory.DeductionResult, error) {
	return nil, errors.New("almacén caído")
}

func (stockFailingAfterValidation) ConfirmNegativeDeduction(context.Context, entity.Session, string, dto.SaleStockLine) (*inventory.DeductionResult, error) {
	return nil, errors.New("almacén caído")
}

func TestRecordSale_StockFailureAfterCommitIsAWarning(t *testing.T) {
	ctx := context.Background()
	store := local.NewStore(local.NewMemoryKV())
	uc := transaction.NewTransactionUseCase(ledger.NewResolver(store, nil), stockFailingAfterValidation{}, nil)

	res, err := uc.RecordSale(ctx, entity.GuestSession(), saleRequest("rice", 3, "kg"))
	require.NoError(t, err, "la venta ya guardada no se reporta como error")
	assert.Equal(t, inventory.StockNotUpdated, res.Stock.Status)
	assert.NotEmpty(t, res.Stock.Warning)

	saved, err := uc.GetTransaction(ctx, entity.GuestSession(), res.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Transaction.ID, saved.ID, "no se deshace la venta")
}

func TestUpdateTransaction_NeverTouchesInventory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rice := f.createRice(t, 50)
	sale, err := f.txs.RecordSale(ctx, f.guest, saleRequest(rice.ID, 20, "kg"))
	require.NoError(t, err)

	notes := "corregido"
	method := "card"
	date := "2025-06-02"
	updated, err := f.txs.UpdateTransaction(ctx, f.guest, sale.Transaction.ID, dto.UpdateTransactionRequest{
		Amount:         decPtr(999),
		PaymentMethod:  &method,
		Notes:          &notes,
		Date:           &date,
		AddAttachments: []dto.AttachmentInput{{FileName: "recibo.png", MimeType: "image/png", Data: []byte{1, 2, 3}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "999", updated.Amount.String())
	assert.Equal(t, entity.PaymentCard, updated.PaymentMethod)
	assert.Equal(t, "2025-06-02", updated.Date.String())
	require.Len(t, updated.Attachments, 1)
	assert.Equal(t, int64(3), updated.Attachments[0].Size)

	assert.Equal(t, "30", f.quantity(t, rice.ID))
	assert.Len(t, f.movements(t, rice.ID), 1)

	removed, err := f.txs.UpdateTransaction(ctx, f.guest, sale.Transaction.ID, dto.UpdateTransactionRequest{
		RemoveAttachments: []string{updated.Attachments[0].ID},
	})
	require.NoError(t, err)
	assert.Empty(t, removed.Attachments)
}

func TestUpdateTransaction_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tx, err := f.txs.CreateTransaction(ctx, f.guest, dto.CreateTransactionRequest{
		Kind: "expense", Amount: dec(40), PaymentMethod: "cash", Category: "rent",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryRent, tx.Category)
	assert.False(t, tx.Date.IsZero(), "sin fecha se usa hoy")

	bad := "credit"
	_, err = f.txs.UpdateTransaction(ctx, f.guest, tx.ID, dto.UpdateTransactionRequest{PaymentMethod: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.txs.UpdateTransaction(ctx, f.guest, "missing", dto.UpdateTransactionRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateTransaction_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.txs.CreateTransaction(ctx, f.guest, dto.CreateTransactionRequest{Kind: "gift", PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.txs.CreateTransaction(ctx, f.guest, dto.CreateTransactionRequest{Kind: "sale", Amount: dec(-1), PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.txs.CreateTransaction(ctx, f.guest, dto.CreateTransactionRequest{Kind: "expense", PaymentMethod: "cash", Category: "snacks"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoteSession_AttachmentEditsRejected(t *testing.T) {
	ctx := context.Background()
	remote := local.NewStore(local.NewMemoryKV())
	resolver := ledger.NewResolver(local.NewStore(local.NewMemoryKV()), remote)
	inv := inventory.NewInventoryUseCase(resolver, nil, nil)
	uc := transaction.NewTransactionUseCase(resolver, inv, nil)
	session := entity.BusinessSession("biz-1")

	tx, err := uc.CreateTransaction(ctx, session, dto.CreateTransactionRequest{Kind: "sale", Amount: dec(10), PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, "biz-1", tx.Scope)

	_, err = uc.UpdateTransaction(ctx, session, tx.ID, dto.UpdateTransactionRequest{RemoveAttachments: []string{"x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// la sesión de invitado no ve las transacciones del negocio
	list, err := uc.ListTransactions(ctx, entity.GuestSession())
	require.NoError(t, err)
	assert.Empty(t, list)
}
