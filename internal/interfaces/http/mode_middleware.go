package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// RequireMode exige que la sesión opere en el modo indicado. Debe usarse DESPUÉS de
// SessionMiddleware. Una sesión de invitado en una ruta remota responde 401; el caso
// contrario 403.
func RequireMode(mode entity.Mode) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session.Mode == mode {
			return c.Next()
		}
		if mode == entity.ModeRemote {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "AUTH_REQUIRED",
				Message: "esta operación requiere una sesión autenticada",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "MODE_NOT_ALLOWED",
			Message: "operación no disponible en modo " + string(session.Mode),
		})
	}
}
