package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	Type         entity.MovementType
	ItemID       string
	DepartmentID string
}

// MovementRepository puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter, params ListParams) ([]*entity.Movement, int, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error)
}
