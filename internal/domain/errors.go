package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
)

// ValidationError error de validación de entrada asociado a un campo.
// Se detecta antes de cualquier escritura; nada queda persistido.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError indica que la cantidad solicitada excede la disponible.
// Lleva identidad del ítem y ambas cantidades para el mensaje al usuario.
type InsufficientStockError struct {
	ItemName  string
	ItemCode  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Cantidad insuficiente de %q (cód. %s). Disponible: %d, solicitado: %d.",
		e.ItemName, e.ItemCode, e.Available, e.Requested)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InvalidStateError indica que una transición del workflow no está permitida
// desde el estado actual de la solicitud.
type InvalidStateError struct {
	Current string
	Action  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("no se puede %s una solicitud en estado %q", e.Action, e.Current)
}

// Is permite errors.Is(err, domain.ErrInvalidState).
func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }
