package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
)

// LocalUser key en c.Locals de la cuenta resuelta por AuthMiddleware.
const LocalUser = "user"

// AuthMiddleware valida el Bearer Token, resuelve la cuenta (y su sucursal) con lookup y la guarda en c.Locals.
// El token queda además en el contexto de la petición para reenviarlo a servicios remotos.
func AuthMiddleware(lookup ports.UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ResponseDTO{Code: dto.CodeUnauthorized, Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ResponseDTO{Code: dto.CodeUnauthorized, Message: "formato: Bearer <token>"})
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ResponseDTO{Code: dto.CodeUnauthorized, Message: "token vacío"})
		}

		user, err := lookup.ByToken(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUpstreamUnavailable) {
				return c.Status(fiber.StatusBadGateway).JSON(dto.ResponseDTO{Code: dto.CodeUpstreamUnavailable, Message: "servicio de usuarios no disponible"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ResponseDTO{Code: dto.CodeUnauthorized, Message: "token inválido o expirado"})
		}

		c.Locals(LocalUser, user)
		c.SetUserContext(ports.ContextWithToken(c.UserContext(), token))
		return c.Next()
	}
}

// GetUser devuelve la cuenta del contexto (después del middleware de auth).
func GetUser(c *fiber.Ctx) *entity.UserAccount {
	u, _ := c.Locals(LocalUser).(*entity.UserAccount)
	return u
}

// GetBranchCode devuelve la sucursal de la cuenta autenticada.
func GetBranchCode(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.BranchCode
	}
	return ""
}
