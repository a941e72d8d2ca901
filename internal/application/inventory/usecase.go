package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/application/ports"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/inventory"
	"github.com/jhoicas/ledger-api/pkg/logger"
	"github.com/jhoicas/ledger-api/pkg/validator"
	"github.com/shopspring/decimal"
)

// InventoryUseCase casos de uso de inventario sobre el almacén de la sesión.
// La cantidad de un artículo solo cambia a través de movimientos.
type InventoryUseCase struct {
	stores   *ledger.Resolver
	notifier ports.Notifier
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewInventoryUseCase construye el caso de uso. notifier y log pueden ser nil.
func NewInventoryUseCase(stores *ledger.Resolver, notifier ports.Notifier, log *logger.Logger) *InventoryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{
		stores:   stores,
		notifier: notifier,
		log:      log.Component("inventory"),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// GetInventory artículos del alcance ordenados por nombre. Un almacén sin aprovisionar
// se lee como inventario vacío.
func (uc *InventoryUseCase) GetInventory(ctx context.Context, session entity.Session) ([]*entity.InventoryItem, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	items, err := store.ListItems(ctx, session.Scope)
	if errors.Is(err, domain.ErrNotProvisioned) {
		uc.log.Warn().Str("scope", session.Scope).Msg("inventario no aprovisionado, se devuelve vacío")
		return []*entity.InventoryItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem obtiene un artículo; ErrNotFound si no existe en el alcance.
func (uc *InventoryUseCase) GetItem(ctx context.Context, session entity.Session, id string) (*entity.InventoryItem, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	item, err := store.GetItem(ctx, session.Scope, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// CreateItem crea un artículo con ID nuevo. La cantidad inicial es la base del artículo y
// no se registra como movimiento.
func (uc *InventoryUseCase) CreateItem(ctx context.Context, session entity.Session, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	initial := optional(in.InitialQuantity)
	item := &entity.InventoryItem{
		ID:                uc.newID(),
		Scope:             session.Scope,
		Name:              in.Name,
		Quantity:          initial,
		Baseline:          initial,
		Unit:              in.Unit,
		LowStockThreshold: in.LowStockThreshold,
		CostPrice:         optional(in.CostPrice),
		SellingPrice:      optional(in.SellingPrice),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	uc.log.Info().Str("scope", session.Scope).Str("item_id", item.ID).Msg("artículo creado")
	return item, nil
}

func optional(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// AddMovement anexa un movimiento. En modo local la cantidad se actualiza en la misma
// escritura; en modo remoto solo se inserta el movimiento.
func (uc *InventoryUseCase) AddMovement(ctx context.Context, session entity.Session, in dto.AddMovementRequest) (*entity.InventoryMovement, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	kind := entity.MovementKind(in.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Kind)
	}
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	// el artículo debe pertenecer al alcance de la sesión (el trigger remoto también lo exige)
	item, err := store.GetItem(ctx, session.Scope, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	movement := &entity.InventoryMovement{
		ID:            uc.newID(),
		ItemID:        in.ItemID,
		Scope:         session.Scope,
		Kind:          kind,
		QuantityDelta: in.QuantityDelta,
		TransactionID: in.TransactionID,
		CreatedAt:     uc.now(),
	}
	if err := store.AppendMovement(ctx, movement); err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("scope", session.Scope).
		Str("item_id", movement.ItemID).
		Str("kind", string(kind)).
		Str("delta", movement.QuantityDelta.String()).
		Msg("movimiento registrado")
	return movement, nil
}

// AdjustStock registra un ajuste manual con el delta indicado.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, session entity.Session, itemID string, delta decimal.Decimal) (*entity.InventoryMovement, error) {
	return uc.AddMovement(ctx, session, dto.AddMovementRequest{
		ItemID:        itemID,
		Kind:          string(entity.MovementKindAdjustment),
		QuantityDelta: delta,
	})
}

// DeleteItem elimina el artículo (y en modo local sus movimientos).
func (uc *InventoryUseCase) DeleteItem(ctx context.Context, session entity.Session, itemID string) error {
	store, err := uc.stores.For(session)
	if err != nil {
		return err
	}
	item, err := store.GetItem(ctx, session.Scope, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return store.DeleteItem(ctx, session.Scope, itemID)
}

// GetMovements movimientos más recientes del artículo primero.
func (uc *InventoryUseCase) GetMovements(ctx context.Context, session entity.Session, itemID string, limit int) ([]*entity.InventoryMovement, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	list, err := store.ListMovementsByItem(ctx, session.Scope, itemID, limit)
	if errors.Is(err, domain.ErrNotProvisioned) {
		return []*entity.InventoryMovement{}, nil
	}
	return list, err
}

// GetSaleMovements todos los movimientos de venta del alcance (para reportes).
func (uc *InventoryUseCase) GetSaleMovements(ctx context.Context, session entity.Session) ([]*entity.InventoryMovement, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	list, err := store.ListMovementsByKind(ctx, session.Scope, entity.MovementKindSale)
	if errors.Is(err, domain.ErrNotProvisioned) {
		return []*entity.InventoryMovement{}, nil
	}
	return list, err
}

// VerifyConsistency compara la cantidad guardada de cada artículo con su base más la suma de
// sus movimientos. Solo aplica al almacén local: en el remoto la cantidad la deriva la BD.
func (uc *InventoryUseCase) VerifyConsistency(ctx context.Context, session entity.Session) (*dto.ConsistencyReport, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	movementLog, ok := store.(MovementLog)
	if !ok {
		return nil, fmt.Errorf("%w: verificación disponible solo en modo local", domain.ErrInvalidInput)
	}
	items, err := store.ListItems(ctx, session.Scope)
	if err != nil {
		return nil, err
	}
	movements, err := movementLog.AllMovements(ctx, session.Scope)
	if err != nil {
		return nil, err
	}
	report := &dto.ConsistencyReport{Checked: len(items), Issues: []dto.ConsistencyIssue{}}
	for _, item := range items {
		expected := inventory.ExpectedQuantity(item, movements)
		if !expected.Equal(item.Quantity) {
			report.Issues = append(report.Issues, dto.ConsistencyIssue{
				ItemID:     item.ID,
				Name:       item.Name,
				Stored:     item.Quantity,
				Recomputed: expected,
			})
		}
	}
	if len(report.Issues) > 0 {
		uc.log.Warn().Int("issues", len(report.Issues)).Msg("inventario inconsistente")
	}
	return report, nil
}
