package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// DepartmentRepository puerto de persistencia para Department (DIP).
type DepartmentRepository interface {
	Create(ctx context.Context, department *entity.Department) error
	GetByID(ctx context.Context, id string) (*entity.Department, error)
	GetByName(ctx context.Context, name string) (*entity.Department, error)
	Update(ctx context.Context, department *entity.Department) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]*entity.Department, int, error)
	// NextCode devuelve el siguiente código secuencial de 4 dígitos.
	NextCode(ctx context.Context) (string, error)
}
