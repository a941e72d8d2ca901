package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones financieras.
// GetTransaction devuelve (nil, nil) si no existe.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *entity.Transaction) error
	GetTransaction(ctx context.Context, scope, id string) (*entity.Transaction, error)
	ListTransactions(ctx context.Context, scope string) ([]*entity.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *entity.Transaction) error
}
