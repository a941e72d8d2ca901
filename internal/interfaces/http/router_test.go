package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/migration"
	"github.com/jhoicas/ledger-api/internal/application/transaction"
	"github.com/jhoicas/ledger-api/internal/infrastructure/local"
	apphttp "github.com/jhoicas/ledger-api/internal/interfaces/http"
)

// buildLedgerApp monta el router completo sobre un almacén local en memoria y sin BD.
func buildLedgerApp(t *testing.T) *fiber.App {
	t.Helper()
	guest := local.NewStore(local.NewMemoryKV())
	stores := ledger.NewResolver(guest, nil)
	invUC := inventory.NewInventoryUseCase(stores, nil, nil)
	txUC := transaction.NewTransactionUseCase(stores, invUC, nil)
	migUC := migration.NewGuestMigrationUseCase(guest, nil, 0, nil, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InventoryUC:   invUC,
		TransactionUC: txUC,
		MigrationUC:   migUC,
		JWTSecret:     testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestRouter_GuestSaleFlow(t *testing.T) {
	app := buildLedgerApp(t)

	var item dto.InventoryItemResponse
	status := call(t, app, http.MethodPost, "/api/inventory/items", "", map[string]any{
		"name": "Rice", "unit": "kg", "initial_quantity": 50,
	}, &item)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "guest", item.BusinessID)

	var sale dto.SaleResponse
	status = call(t, app, http.MethodPost, "/api/transactions/sales", "", map[string]any{
		"transaction": map[string]any{"type": "sale", "amount": 400, "payment_method": "cash"},
		"stock":       map[string]any{"item_id": item.ID, "quantity": 20, "unit": "kg"},
	}, &sale)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "deducted", sale.Stock.Status)
	require.NotNil(t, sale.Stock.NewQuantity)
	assert.Equal(t, "30", sale.Stock.NewQuantity.String())

	var items []dto.InventoryItemResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/items", "", nil, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "30", items[0].Quantity.String())

	require.Equal(t, http.StatusNoContent,
		call(t, app, http.MethodDelete, "/api/transactions/"+sale.Transaction.ID, "", nil, nil))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/items", "", nil, &items))
	assert.Equal(t, "50", items[0].Quantity.String(), "borrar la venta devuelve el inventario")

	var report dto.ConsistencyReport
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/inventory/consistency", "", nil, &report))
	assert.Empty(t, report.Issues)

	var errResp dto.ErrorResponse
	status = call(t, app, http.MethodDelete, "/api/transactions/"+sale.Transaction.ID, "", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestRouter_SaleRejectedOnUnitMismatch(t *testing.T) {
	app := buildLedgerApp(t)

	var item dto.InventoryItemResponse
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/inventory/items", "", map[string]any{
		"name": "Rice", "unit": "kg", "initial_quantity": 5,
	}, &item))

	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/transactions/sales", "", map[string]any{
		"transaction": map[string]any{"type": "sale", "amount": 10, "payment_method": "cash"},
		"stock":       map[string]any{"item_id": item.ID, "quantity": 1, "unit": "pcs"},
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNIT_MISMATCH", errResp.Code)

	var txs []dto.TransactionResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/transactions", "", nil, &txs))
	assert.Empty(t, txs, "una venta rechazada no se guarda")
}

func TestRouter_InvalidBody(t *testing.T) {
	app := buildLedgerApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/items", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Migration(t *testing.T) {
	app := buildLedgerApp(t)

	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/migration/guest", "", nil, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status, "el invitado no puede migrar")
	assert.Equal(t, "AUTH_REQUIRED", errResp.Code)

	// sin BD configurada el destino no existe
	status = call(t, app, http.MethodPost, "/api/migration/guest", bearerFor(t, testBusinessID), nil, &errResp)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "STORE_UNAVAILABLE", errResp.Code)
}

func TestRouter_BusinessSessionWithoutDatabase(t *testing.T) {
	app := buildLedgerApp(t)
	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodGet, "/api/inventory/items", bearerFor(t, testBusinessID), nil, &errResp)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}
