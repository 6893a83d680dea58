package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MovementUseCase consulta del libro de movimientos. Las escrituras viven en
// el paquete inventory.
type MovementUseCase struct {
	movRepo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso de consulta de movimientos.
func NewMovementUseCase(movRepo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo}
}

// List devuelve movimientos paginados, más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, filter repository.MovementFilter, params repository.ListParams) ([]*entity.Movement, int, error) {
	return uc.movRepo.List(ctx, filter, params)
}

// Get devuelve un movimiento por ID.
func (uc *MovementUseCase) Get(ctx context.Context, id string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}
