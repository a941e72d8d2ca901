package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de artículos y movimientos de inventario.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListItems godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.GetInventory(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemList(items))
}

// CreateItem godoc
// @Summary      Crear artículo
// @Description  La cantidad inicial es la base del artículo y no genera movimiento.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "name, unit, initial_quantity, low_stock_threshold, precios"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.CreateItem(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInventoryItemResponse(item))
}

// DeleteItem godoc
// @Summary      Eliminar artículo
// @Tags         inventory
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddMovementRequest  true  "item_id, movement_type, quantity_change, transaction_id"
// @Success      201   {object}  dto.InventoryMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.AddMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.AddMovement(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInventoryMovementResponse(m))
}

// ListMovements godoc
// @Summary      Movimientos de un artículo (más recientes primero)
// @Tags         inventory
// @Produce      json
// @Param        id     path   string  true   "ID del artículo"
// @Param        limit  query  int     false  "máximo de movimientos (0 = todos)"
// @Success      200    {array}  dto.InventoryMovementResponse
// @Router       /api/inventory/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	list, err := h.uc.GetMovements(c.UserContext(), GetSession(c), c.Params("id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryMovementList(list))
}

// ListSaleMovements godoc
// @Summary      Movimientos de venta del negocio
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.InventoryMovementResponse
// @Router       /api/inventory/sale-movements [get]
func (h *InventoryHandler) ListSaleMovements(c *fiber.Ctx) error {
	list, err := h.uc.GetSaleMovements(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryMovementList(list))
}

// Consistency godoc
// @Summary      Verificar cantidades contra el libro de movimientos (modo local)
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ConsistencyReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/consistency [get]
func (h *InventoryHandler) Consistency(c *fiber.Ctx) error {
	report, err := h.uc.VerifyConsistency(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
