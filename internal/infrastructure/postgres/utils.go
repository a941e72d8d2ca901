package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/ledger-api/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeUndefinedTable      = "42P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation 23503: el artículo referenciado no existe o es de otro negocio.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// IsUndefinedTable indica "relation does not exist" (42P01): el esquema aún no está aprovisionado.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUndefinedTable
	}
	return strings.Contains(err.Error(), "does not exist") && strings.Contains(err.Error(), "relation")
}

// wrapErr agrega contexto a err y lo clasifica: tabla inexistente → domain.ErrNotProvisioned,
// único → domain.ErrDuplicate, clave foránea → domain.ErrNotFound. El error original se conserva en la cadena.
func wrapErr(op string, err error) error {
	switch {
	case IsUndefinedTable(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrNotProvisioned, err)
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
