package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/ledger"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/inventory"
	"github.com/jhoicas/ledger-api/pkg/logger"
	"github.com/jhoicas/ledger-api/pkg/validator"
)

// TransactionUseCase casos de uso de transacciones financieras. Editar una transacción nunca
// toca el inventario; eliminarla compensa los movimientos que causó.
type TransactionUseCase struct {
	stores *ledger.Resolver
	stock  StockService
	log    *logger.Logger
	now    func() time.Time
	newID  func() string
}

// NewTransactionUseCase construye el caso de uso. log puede ser nil.
func NewTransactionUseCase(stores *ledger.Resolver, stock StockService, log *logger.Logger) *TransactionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TransactionUseCase{
		stores: stores,
		stock:  stock,
		log:    log.Component("transaction"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// CreateTransaction valida y guarda una transacción nueva.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, session entity.Session, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	tx, err := uc.buildTransaction(session, in)
	if err != nil {
		return nil, err
	}
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	if err := store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	uc.log.Info().Str("scope", session.Scope).Str("transaction_id", tx.ID).Str("type", string(tx.Kind)).Msg("transacción creada")
	return tx, nil
}

func (uc *TransactionUseCase) buildTransaction(session entity.Session, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	kind := entity.TransactionKind(in.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}
	method, err := parsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	category, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	date := entity.Today()
	if in.Date != "" {
		if date, err = entity.ParseDate(in.Date); err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
		}
	}
	return &entity.Transaction{
		ID:            uc.newID(),
		Scope:         session.Scope,
		Kind:          kind,
		Amount:        in.Amount,
		PaymentMethod: method,
		Category:      category,
		Notes:         in.Notes,
		Date:          date,
		CreatedAt:     uc.now(),
		Attachments:   uc.newAttachments(in.Attachments),
	}, nil
}

func parsePaymentMethod(s string) (entity.PaymentMethod, error) {
	m := entity.PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, s)
	}
	return m, nil
}

func parseCategory(s string) (entity.ExpenseCategory, error) {
	if s == "" {
		return "", nil
	}
	c := entity.ExpenseCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, s)
	}
	return c, nil
}

func (uc *TransactionUseCase) newAttachments(in []dto.AttachmentInput) []entity.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Attachment{
			ID:       uc.newID(),
			FileName: a.FileName,
			MimeType: a.MimeType,
			Size:     int64(len(a.Data)),
			Data:     a.Data,
		})
	}
	return out
}

// GetTransaction obtiene una transacción; ErrNotFound si no existe en el alcance.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, session entity.Session, id string) (*entity.Transaction, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	tx, err := store.GetTransaction(ctx, session.Scope, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

// ListTransactions transacciones del alcance, fecha más reciente primero.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, session entity.Session) ([]*entity.Transaction, error) {
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	list, err := store.ListTransactions(ctx, session.Scope)
	if errors.Is(err, domain.ErrNotProvisioned) {
		return []*entity.Transaction{}, nil
	}
	return list, err
}

// UpdateTransaction modifica monto, fecha, método de pago, notas o categoría. Los adjuntos
// solo se editan en modo local. Nunca genera ni revierte movimientos de inventario.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, session entity.Session, id string, in dto.UpdateTransactionRequest) (*entity.Transaction, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validator.Summary(errs))
	}
	if session.Mode == entity.ModeRemote && (len(in.AddAttachments) > 0 || len(in.RemoveAttachments) > 0) {
		return nil, fmt.Errorf("%w: adjuntos solo editables en modo local", domain.ErrInvalidInput)
	}
	store, err := uc.stores.For(session)
	if err != nil {
		return nil, err
	}
	tx, err := store.GetTransaction(ctx, session.Scope, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.applyUpdate(tx, in); err != nil {
		return nil, err
	}
	if err := store.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (uc *TransactionUseCase) applyUpdate(tx *entity.Transaction, in dto.UpdateTransactionRequest) error {
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
		}
		tx.Amount = *in.Amount
	}
	if in.PaymentMethod != nil {
		m, err := parsePaymentMethod(*in.PaymentMethod)
		if err != nil {
			return err
		}
		tx.PaymentMethod = m
	}
	if in.Category != nil {
		c, err := parseCategory(*in.Category)
		if err != nil {
			return err
		}
		tx.Category = c
	}
	if in.Notes != nil {
		tx.Notes = *in.Notes
	}
	if in.Date != nil {
		d, err := entity.ParseDate(*in.Date)
		if err != nil {
			return fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, *in.Date)
		}
		tx.Date = d
	}
	tx.Attachments = entity.RemoveAttachments(tx.Attachments, in.RemoveAttachments)
	tx.Attachments = append(tx.Attachments, uc.newAttachments(in.AddAttachments)...)
	return nil
}

// DeleteTransaction escribe un ajuste compensatorio por cada movimiento que causó la
// transacción y después la elimina. Una transacción inexistente devuelve ErrNotFound sin
// escribir nada, así que un segundo borrado nunca revierte dos veces.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, session entity.Session, id string) error {
	store, err := uc.stores.For(session)
	if err != nil {
		return err
	}
	tx, err := store.GetTransaction(ctx, session.Scope, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return domain.ErrNotFound
	}
	movements, err := store.ListMovementsByTransaction(ctx, session.Scope, id)
	if err != nil && !errors.Is(err, domain.ErrNotProvisioned) {
		return err
	}
	compensations := inventory.CompensationsFor(id, movements, uc.now(), uc.newID)
	if err := store.ReverseAndDeleteTransaction(ctx, session.Scope, id, compensations); err != nil {
		return err
	}
	uc.log.Info().
		Str("scope", session.Scope).
		Str("transaction_id", id).
		Int("compensations", len(compensations)).
		Msg("transacción eliminada")
	return nil
}
