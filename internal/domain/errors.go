package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Validación de la línea de venta contra inventario (se rechaza antes de escribir).
	ErrItemNotSelected     = errors.New("no se seleccionó un artículo de inventario")
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrUnitMismatch        = errors.New("la unidad no coincide con la unidad del artículo")

	// ErrNotProvisioned indica que la tabla/colección aún no existe en el almacén.
	// Las lecturas lo degradan a resultado vacío; las escrituras lo propagan.
	ErrNotProvisioned = errors.New("almacén no aprovisionado")
	// ErrStoreUnavailable indica que el backend pedido por la sesión no está configurado.
	ErrStoreUnavailable = errors.New("almacén no disponible para el modo de sesión")
	// ErrNothingToMigrate el invitado no tiene datos; la migración termina sin efectos.
	ErrNothingToMigrate = errors.New("no hay datos de invitado para migrar")
)

// IsValidation indica si err corresponde a un error de validación que se reporta tal cual al usuario.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrItemNotSelected) ||
		errors.Is(err, ErrNonPositiveQuantity) ||
		errors.Is(err, ErrUnitMismatch)
}
