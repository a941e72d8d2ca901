package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

// DefaultBatchSize registros por lote si la configuración no indica otro valor.
const DefaultBatchSize = 50

// MigrationReport resumen de una migración.
type MigrationReport struct {
	Items        int
	Transactions int
	Batches      int
}

// GuestMigrationUseCase copia los datos del invitado al almacén del negocio tras el registro.
type GuestMigrationUseCase struct {
	source    GuestSource
	target    Target
	batchSize int
	notifier  ports.Notifier
	log       *logger.Logger
}

// NewGuestMigrationUseCase construye el caso de uso. target puede ser nil si no hay BD
// configurada; notifier y log pueden ser nil.
func NewGuestMigrationUseCase(source GuestSource, target Target, batchSize int, notifier ports.Notifier, log *logger.Logger) *GuestMigrationUseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &GuestMigrationUseCase{
		source:    source,
		target:    target,
		batchSize: batchSize,
		notifier:  notifier,
		log:       log.Component("migration"),
	}
}

// MigrateGuestData sube artículos y luego transacciones del invitado con el alcance del
// negocio, en lotes, conservando los IDs. Los movimientos no se migran: la cantidad de cada
// artículo viaja como estado. Solo si todos los lotes se escriben se borran los datos locales
// del invitado y se marca la sesión como autenticada. Si un lote falla, los datos locales
// quedan intactos y volver a ejecutarla es seguro.
func (uc *GuestMigrationUseCase) MigrateGuestData(ctx context.Context, targetScope string) (*MigrationReport, error) {
	if targetScope == "" || targetScope == entity.GuestScope {
		return nil, fmt.Errorf("%w: alcance de destino %q", domain.ErrInvalidInput, targetScope)
	}
	if uc.target == nil {
		return nil, domain.ErrStoreUnavailable
	}

	items, txs, err := uc.loadGuestData(ctx)
	if errors.Is(err, domain.ErrNothingToMigrate) {
		uc.log.Info().Str("scope", targetScope).Msg("sin datos de invitado, nada que migrar")
		return &MigrationReport{}, nil
	}
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{}
	for _, batch := range chunk(rescopeItems(items, targetScope), uc.batchSize) {
		if err := uc.target.UpsertItems(ctx, batch); err != nil {
			uc.log.Error().Err(err).Int("batch", report.Batches).Msg("fallo al migrar artículos")
			return nil, fmt.Errorf("migrate items: %w", err)
		}
		report.Items += len(batch)
		report.Batches++
	}
	for _, batch := range chunk(rescopeTransactions(txs, targetScope), uc.batchSize) {
		if err := uc.target.UpsertTransactions(ctx, batch); err != nil {
			uc.log.Error().Err(err).Int("batch", report.Batches).Msg("fallo al migrar transacciones")
			return nil, fmt.Errorf("migrate transactions: %w", err)
		}
		report.Transactions += len(batch)
		report.Batches++
	}

	if err := uc.source.ClearGuestData(ctx); err != nil {
		return nil, fmt.Errorf("clear guest data: %w", err)
	}
	if err := uc.source.SetAuthenticated(ctx, true); err != nil {
		return nil, fmt.Errorf("set authenticated: %w", err)
	}
	ports.Notify(ctx, uc.notifier, ports.Event{
		Type:    ports.EventModeChanged,
		Scope:   targetScope,
		Payload: map[string]any{"mode": entity.ModeRemote},
	})
	uc.log.Info().
		Str("scope", targetScope).
		Int("items", report.Items).
		Int("transactions", report.Transactions).
		Int("batches", report.Batches).
		Msg("migración de invitado completada")
	return report, nil
}

func (uc *GuestMigrationUseCase) loadGuestData(ctx context.Context) ([]*entity.InventoryItem, []*entity.Transaction, error) {
	items, err := uc.source.GuestItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read guest items: %w", err)
	}
	txs, err := uc.source.GuestTransactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read guest transactions: %w", err)
	}
	if len(items) == 0 && len(txs) == 0 {
		return nil, nil, domain.ErrNothingToMigrate
	}
	return items, txs, nil
}

func rescopeItems(items []*entity.InventoryItem, scope string) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(items))
	for _, it := range items {
		c := *it
		c.Scope = scope
		out = append(out, &c)
	}
	return out
}

// rescopeTransactions además mapea las etiquetas heredadas a la enumeración canónica.
func rescopeTransactions(txs []*entity.Transaction, scope string) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		c := *tx
		c.Scope = scope
		c.PaymentMethod = entity.NormalizePaymentMethod(string(tx.PaymentMethod))
		c.Category = entity.NormalizeCategory(string(tx.Category))
		out = append(out, &c)
	}
	return out
}

func chunk[T any](list []T, size int) [][]T {
	var out [][]T
	for start := 0; start < len(list); start += size {
		end := min(start+size, len(list))
		out = append(out, list[start:end])
	}
	return out
}
