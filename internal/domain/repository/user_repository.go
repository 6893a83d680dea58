package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UserFilter filtros del listado de usuarios.
type UserFilter struct {
	RoleName string
}

// UserRepository puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter, params ListParams) ([]*entity.User, int, error)
	// NextCode devuelve el siguiente código secuencial de 4 dígitos.
	NextCode(ctx context.Context) (string, error)
	// ListIDsWithCapability devuelve los IDs de usuarios cuyo rol concede la
	// capacidad (incluye roles super). Usado para el abanico de notificaciones.
	ListIDsWithCapability(ctx context.Context, capability entity.Capability) ([]string, error)
}
