package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// authorizer contrato mínimo que necesita el middleware; lo implementa
// *authz.Service. La interfaz evita el import circular.
type authorizer interface {
	Can(ctx context.Context, userID string, cap entity.Capability) (bool, error)
}

// RequirePermission middleware que exige una capacidad concreta. Debe usarse
// DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
//   - 401 → no hay usuario en el contexto.
//   - 403 → el rol del usuario no concede la capacidad.
//   - 503 → fallo de infraestructura al consultar permisos.
func RequirePermission(cap entity.Capability, authz authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "No autenticado."})
		}
		ok, err := authz.Can(c.Context(), userID, cap)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Message: "No se pudieron verificar los permisos, intente más tarde."})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "No tienes permiso para esta acción."})
		}
		return c.Next()
	}
}
