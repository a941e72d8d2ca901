package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/migration"
)

// MigrationHandler sube los datos del invitado al negocio autenticado.
type MigrationHandler struct {
	uc *migration.GuestMigrationUseCase
}

// NewMigrationHandler construye el handler.
func NewMigrationHandler(uc *migration.GuestMigrationUseCase) *MigrationHandler {
	return &MigrationHandler{uc: uc}
}

// MigrateGuest godoc
// @Summary      Migrar datos del invitado al negocio del token
// @Description  Reintentar es seguro: los registros se escriben por ID.
// @Tags         migration
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MigrationResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/migration/guest [post]
func (h *MigrationHandler) MigrateGuest(c *fiber.Ctx) error {
	session := GetSession(c)
	report, err := h.uc.MigrateGuestData(c.UserContext(), session.Scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MigrationResponse{
		BusinessID:   session.Scope,
		Items:        report.Items,
		Transactions: report.Transactions,
		Batches:      report.Batches,
	})
}
