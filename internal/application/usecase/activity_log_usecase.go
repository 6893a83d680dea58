package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ActivityLogUseCase consulta del log de actividad administrativa.
type ActivityLogUseCase struct {
	logRepo repository.ActivityLogRepository
}

// NewActivityLogUseCase construye el caso de uso del log de actividad.
func NewActivityLogUseCase(logRepo repository.ActivityLogRepository) *ActivityLogUseCase {
	return &ActivityLogUseCase{logRepo: logRepo}
}

// List devuelve registros paginados, más recientes primero.
func (uc *ActivityLogUseCase) List(ctx context.Context, filter repository.ActivityLogFilter, params repository.ListParams) ([]*entity.ActivityLog, int, error) {
	return uc.logRepo.List(ctx, filter, params)
}
