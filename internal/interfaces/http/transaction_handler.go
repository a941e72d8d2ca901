package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/transaction"
)

// TransactionHandler maneja las peticiones HTTP de transacciones y ventas.
type TransactionHandler struct {
	uc *transaction.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transaction.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Listar transacciones (fecha más reciente primero)
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListTransactions(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewTransactionList(list))
}

// Create godoc
// @Summary      Crear transacción
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTransactionRequest  true  "type, amount, payment_method, category, notes, transaction_date"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.uc.CreateTransaction(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(tx))
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Produce      json
// @Param        id   path      string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.GetTransaction(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewTransactionResponse(tx))
}

// Update godoc
// @Summary      Editar transacción (no modifica el inventario)
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true  "ID de la transacción"
// @Param        body  body      dto.UpdateTransactionRequest  true  "campos a modificar"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.uc.UpdateTransaction(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewTransactionResponse(tx))
}

// Delete godoc
// @Summary      Eliminar transacción compensando su inventario
// @Tags         transactions
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteTransaction(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordSale godoc
// @Summary      Registrar venta con descuento de inventario
// @Description  La venta se guarda aunque el inventario no pueda actualizarse; stock.status lo indica.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordSaleRequest  true  "transaction + stock opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions/sales [post]
func (h *TransactionHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.RecordSale(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleResponse{
		Transaction: dto.NewTransactionResponse(res.Transaction),
		Stock:       stockResponse(res.Stock),
	})
}

// ConfirmSaleStock godoc
// @Summary      Confirmar descuento que deja el inventario en negativo
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ConfirmSaleStockRequest  true  "transaction_id, item_id, quantity, unit"
// @Success      200   {object}  dto.StockOutcomeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/sales/confirm-stock [post]
func (h *TransactionHandler) ConfirmSaleStock(c *fiber.Ctx) error {
	var in dto.ConfirmSaleStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	outcome, err := h.uc.ConfirmSaleStock(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stockResponse(*outcome))
}

func stockResponse(o transaction.StockOutcome) dto.StockOutcomeResponse {
	resp := dto.StockOutcomeResponse{
		Status:          string(o.Status),
		ItemID:          o.ItemID,
		LowStock:        o.LowStock,
		RequiresConfirm: o.RequiresConfirmation(),
		Warning:         o.Warning,
	}
	if o.RequiresConfirmation() {
		resp.Prospective = o.Quantity
	} else {
		resp.NewQuantity = o.Quantity
	}
	return resp
}
