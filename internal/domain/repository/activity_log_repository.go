package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ActivityLogFilter filtros del listado de logs.
type ActivityLogFilter struct {
	Action   string // created, updated, deleted
	Resource string
}

// ActivityLogRepository puerto de persistencia del log de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter, params ListParams) ([]*entity.ActivityLog, int, error)
}
