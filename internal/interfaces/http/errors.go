package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// handleError traduce errores de dominio al contrato de error de la API:
// {"message": "...", "errors": {campo: [mensajes]}}.
func handleError(c *fiber.Ctx, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		resp := dto.ErrorResponse{Message: validationErr.Message}
		if validationErr.Field != "" {
			resp.Errors = map[string][]string{validationErr.Field: {validationErr.Message}}
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Message: stockErr.Error()})
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Message: stateErr.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Recurso no encontrado."})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Credenciales inválidas."})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "No tienes permiso para esta acción."})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Message: "El email ya está registrado.",
			Errors:  map[string][]string{"email": {"El email ya está registrado."}},
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "El recurso ya existe."})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error interno del servidor."})
}

// badBody respuesta estándar para cuerpos que no parsean.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Cuerpo de la petición inválido."})
}
