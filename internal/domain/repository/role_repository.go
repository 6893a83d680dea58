package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RoleRepository puerto de persistencia para Role y sus capacidades (DIP).
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	// GetByUser devuelve el rol asignado al usuario, con capacidades cargadas.
	GetByUser(ctx context.Context, userID string) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Role, error)
	// CountUsers devuelve cuántos usuarios tienen asignado el rol.
	CountUsers(ctx context.Context, roleID string) (int, error)
}
