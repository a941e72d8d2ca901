package bootstrap

import (
	"github.com/jhoicas/ledger-api/internal/application/inventory"
	"github.com/jhoicas/ledger-api/internal/application/migration"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/application/transaction"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// Services casos de uso listos para las interfaces (HTTP, CLI).
type Services struct {
	Inventory    *inventory.InventoryUseCase
	Transactions *transaction.TransactionUseCase
	Migration    *migration.GuestMigrationUseCase
}

// NewServices construye los casos de uso sobre los almacenes abiertos. notifier puede ser nil.
func NewServices(stores *Stores, cfg *config.Config, notifier ports.Notifier, log *logger.Logger) *Services {
	resolver := stores.Resolver()
	inventoryUC := inventory.NewInventoryUseCase(resolver, notifier, log)

	var target migration.Target
	if stores.Remote != nil {
		target = stores.Remote
	}
	return &Services{
		Inventory:    inventoryUC,
		Transactions: transaction.NewTransactionUseCase(resolver, inventoryUC, log),
		Migration:    migration.NewGuestMigrationUseCase(stores.Local, target, cfg.Migration.BatchSize, notifier, log),
	}
}
