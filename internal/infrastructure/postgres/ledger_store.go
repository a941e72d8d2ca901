package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.LedgerStore = (*LedgerStore)(nil)

// LedgerStore almacén remoto (modo autenticado). Escribe movimientos, nunca cantidades:
// la cantidad de cada artículo la deriva el trigger de inventory_movements.
type LedgerStore struct {
	items        *InventoryItemRepo
	movements    *InventoryMovementRepo
	transactions *TransactionRepo
	runner       *TxRunner
}

// NewLedgerStore construye el almacén remoto sobre el pool.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{
		items:        NewInventoryItemRepository(pool),
		movements:    NewInventoryMovementRepository(pool),
		transactions: NewTransactionRepository(pool),
		runner:       NewTxRunner(pool),
	}
}

// Mode implementa repository.LedgerStore.
func (s *LedgerStore) Mode() entity.Mode { return entity.ModeRemote }

func (s *LedgerStore) ListItems(ctx context.Context, scope string) ([]*entity.InventoryItem, error) {
	return s.items.List(ctx, scope)
}

func (s *LedgerStore) GetItem(ctx context.Context, scope, id string) (*entity.InventoryItem, error) {
	return s.items.GetByID(ctx, scope, id)
}

func (s *LedgerStore) CreateItem(ctx context.Context, item *entity.InventoryItem) error {
	return s.items.Create(ctx, item)
}

func (s *LedgerStore) DeleteItem(ctx context.Context, scope, id string) error {
	return s.items.Delete(ctx, scope, id)
}

// AppendMovement inserta solo el movimiento; no asumir visibilidad síncrona de la cantidad.
func (s *LedgerStore) AppendMovement(ctx context.Context, movement *entity.InventoryMovement) error {
	return s.movements.Create(ctx, movement)
}

func (s *LedgerStore) ListMovementsByItem(ctx context.Context, scope, itemID string, limit int) ([]*entity.InventoryMovement, error) {
	return s.movements.ListByItem(ctx, scope, itemID, limit)
}

func (s *LedgerStore) ListMovementsByKind(ctx context.Context, scope string, kind entity.MovementKind) ([]*entity.InventoryMovement, error) {
	return s.movements.ListByKind(ctx, scope, kind)
}

func (s *LedgerStore) ListMovementsByTransaction(ctx context.Context, scope, transactionID string) ([]*entity.InventoryMovement, error) {
	if transactionID == "" {
		return nil, nil
	}
	return s.movements.ListByTransaction(ctx, scope, transactionID)
}

func (s *LedgerStore) CreateTransaction(ctx context.Context, tx *entity.Transaction) error {
	return s.transactions.Create(ctx, tx)
}

func (s *LedgerStore) GetTransaction(ctx context.Context, scope, id string) (*entity.Transaction, error) {
	return s.transactions.GetByID(ctx, scope, id)
}

func (s *LedgerStore) ListTransactions(ctx context.Context, scope string) ([]*entity.Transaction, error) {
	return s.transactions.List(ctx, scope)
}

func (s *LedgerStore) UpdateTransaction(ctx context.Context, tx *entity.Transaction) error {
	return s.transactions.Update(ctx, tx)
}

// ReverseAndDeleteTransaction inserta las compensaciones y borra la transacción en una sola
// transacción de BD: o quedan ambas cosas o ninguna.
func (s *LedgerStore) ReverseAndDeleteTransaction(ctx context.Context, scope, transactionID string, compensations []*entity.InventoryMovement) error {
	return s.runner.Run(ctx, func(repos TxRepos) error {
		return reverseThenDelete(ctx, repos.Movements, repos.Transactions, scope, transactionID, compensations)
	})
}

type movementWriter interface {
	Create(ctx context.Context, m *entity.InventoryMovement) error
}

type transactionDeleter interface {
	Delete(ctx context.Context, businessID, id string) (bool, error)
}

// reverseThenDelete escribe las compensaciones antes de borrar. Si la transacción ya no
// existía devuelve ErrNotFound, y TxRunner descarta las compensaciones con el rollback.
func reverseThenDelete(ctx context.Context, movements movementWriter, txs transactionDeleter, scope, transactionID string, compensations []*entity.InventoryMovement) error {
	for _, c := range compensations {
		if err := movements.Create(ctx, c); err != nil {
			return err
		}
	}
	deleted, err := txs.Delete(ctx, scope, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertItems destino de la migración: un lote por transacción de BD.
func (s *LedgerStore) UpsertItems(ctx context.Context, items []*entity.InventoryItem) error {
	return s.runner.Run(ctx, func(repos TxRepos) error {
		return repos.Items.UpsertBatch(ctx, items)
	})
}

// UpsertTransactions destino de la migración: un lote por transacción de BD.
func (s *LedgerStore) UpsertTransactions(ctx context.Context, txs []*entity.Transaction) error {
	return s.runner.Run(ctx, func(repos TxRepos) error {
		return repos.Transactions.UpsertBatch(ctx, txs)
	})
}
