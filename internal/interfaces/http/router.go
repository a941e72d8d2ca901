package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/migration"
	"github.com/jhoicas/ledger-api/internal/application/transaction"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC   *inventory.InventoryUseCase
	TransactionUC *transaction.TransactionUseCase
	MigrationUC   *migration.GuestMigrationUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todas pasan por SessionMiddleware: sin token operan
// sobre el almacén local del invitado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", SessionMiddleware(deps.JWTSecret))

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Delete("/items/:id", inventoryHandler.DeleteItem)
	invGroup.Get("/items/:id/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", inventoryHandler.AddMovement)
	invGroup.Get("/sale-movements", inventoryHandler.ListSaleMovements)
	invGroup.Get("/consistency", inventoryHandler.Consistency)

	txGroup := api.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	txGroup.Get("/", transactionHandler.List)
	txGroup.Post("/", transactionHandler.Create)
	txGroup.Post("/sales", transactionHandler.RecordSale)
	txGroup.Post("/sales/confirm-stock", transactionHandler.ConfirmSaleStock)
	txGroup.Get("/:id", transactionHandler.GetByID)
	txGroup.Put("/:id", transactionHandler.Update)
	txGroup.Delete("/:id", transactionHandler.Delete)

	// Migración (requiere sesión autenticada)
	migrationGroup := api.Group("/migration", RequireMode(entity.ModeRemote))
	migrationHandler := NewMigrationHandler(deps.MigrationUC)
	migrationGroup.Post("/guest", migrationHandler.MigrateGuest)
}
