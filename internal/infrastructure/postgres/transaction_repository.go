package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

const transactionColumns = `id, business_id, type, amount, payment_method, category, notes, transaction_date, attachments, created_at`

// TransactionRepo transacciones financieras sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// transactionArgs parámetros posicionales en el orden de transactionColumns.
func transactionArgs(t *entity.Transaction) ([]any, error) {
	attachments := t.Attachments
	if attachments == nil {
		attachments = []entity.Attachment{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("codificar adjuntos: %w", err)
	}
	return []any{
		t.ID, t.Scope, string(t.Kind), t.Amount, string(t.PaymentMethod),
		nullString(string(t.Category)), nullString(t.Notes), t.Date.Time(), raw, t.CreatedAt,
	}, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var (
		t               entity.Transaction
		kind, payment   string
		category, notes *string
		date            time.Time
		attachments     []byte
	)
	err := row.Scan(&t.ID, &t.Scope, &kind, &t.Amount, &payment, &category, &notes, &date, &attachments, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Kind = entity.TransactionKind(kind)
	t.PaymentMethod = entity.PaymentMethod(payment)
	if category != nil {
		t.Category = entity.ExpenseCategory(*category)
	}
	if notes != nil {
		t.Notes = *notes
	}
	t.Date = entity.DateOf(date)
	if len(attachments) > 0 {
		if err := json.Unmarshal(attachments, &t.Attachments); err != nil {
			return nil, fmt.Errorf("decodificar adjuntos: %w", err)
		}
	}
	return &t, nil
}

// Create persiste una transacción nueva.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	args, err := transactionArgs(t)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, args...)
	if err != nil {
		return wrapErr("insert transaction", err)
	}
	return nil
}

// GetByID obtiene una transacción del negocio; (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get transaction", err)
	}
	return t, nil
}

// List transacciones del negocio, fecha más reciente primero.
func (r *TransactionRepo) List(ctx context.Context, businessID string) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions
		WHERE business_id = $1 ORDER BY transaction_date DESC, created_at DESC`, businessID)
	if err != nil {
		return nil, wrapErr("list transactions", err)
	}
	defer rows.Close()
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, wrapErr("scan transaction", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list transactions", err)
	}
	return list, nil
}

// Update modifica los campos editables (monto, fecha, medio de pago, notas, categoría).
// Los adjuntos no se editan por esta vía en modo remoto.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE transactions
		   SET amount = $3, payment_method = $4, category = $5, notes = $6, transaction_date = $7
		 WHERE id = $1 AND business_id = $2`,
		t.ID, t.Scope, t.Amount, string(t.PaymentMethod), nullString(string(t.Category)), nullString(t.Notes), t.Date.Time(),
	)
	if err != nil {
		return wrapErr("update transaction", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente la transacción. Devuelve false si no existía.
func (r *TransactionRepo) Delete(ctx context.Context, businessID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return false, wrapErr("delete transaction", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// UpsertBatch inserta o sobrescribe transacciones por ID en un solo viaje (pgx.Batch).
func (r *TransactionRepo) UpsertBatch(ctx context.Context, txs []*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	const query = `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			business_id = EXCLUDED.business_id,
			type = EXCLUDED.type,
			amount = EXCLUDED.amount,
			payment_method = EXCLUDED.payment_method,
			category = EXCLUDED.category,
			notes = EXCLUDED.notes,
			transaction_date = EXCLUDED.transaction_date,
			attachments = EXCLUDED.attachments,
			created_at = EXCLUDED.created_at`
	b := &pgx.Batch{}
	for _, t := range txs {
		args, err := transactionArgs(t)
		if err != nil {
			return err
		}
		b.Queue(query, args...)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return wrapErr("upsert transactions", err)
	}
	return nil
}
