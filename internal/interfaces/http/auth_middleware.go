package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/pkg/jwt"
)

// Locals keys para la sesión y el usuario en Fiber.
const (
	LocalSession = "session"
	LocalUserID  = "user_id"
)

// SessionMiddleware resuelve la sesión de cada petición:
//   - sin header Authorization → sesión local del invitado;
//   - Bearer JWT válido → sesión remota con el negocio del token;
//   - header malformado o token inválido → 401.
func SessionMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(LocalSession, entity.GuestSession())
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, businessID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if businessID == "" || businessID == entity.GuestScope {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_BUSINESS", Message: "el token no indica un negocio"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalSession, entity.BusinessSession(businessID))
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto; sin middleware equivale al invitado.
func GetSession(c *fiber.Ctx) entity.Session {
	if s, ok := c.Locals(LocalSession).(entity.Session); ok {
		return s
	}
	return entity.GuestSession()
}

// GetUserID devuelve el UserID del contexto (vacío para el invitado).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
