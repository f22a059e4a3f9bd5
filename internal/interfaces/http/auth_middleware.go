package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/pkg/jwt"
)

// LocalIdentity key de la identidad del llamante en c.Locals.
const LocalIdentity = "caller_identity"

// AuthMiddleware valida el Bearer Token JWT y deja la CallerIdentity en c.Locals.
// Toda falla de credencial (ausente, malformada, expirada, firma incorrecta)
// responde 401; la identidad sale únicamente de los claims verificados.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, entity.CallerIdentity{
			UserID:    id.UserID,
			CompanyID: id.CompanyID,
			IsOwner:   id.IsOwner,
		})
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) (entity.CallerIdentity, bool) {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return entity.CallerIdentity{}, false
	}
	id, ok := v.(entity.CallerIdentity)
	return id, ok
}
