// Package audit define el puerto de registro de actividad administrativa.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// Nombres de recurso usados en el log.
const (
	ResourceItem     = "Producto"
	ResourceUser     = "Usuario"
	ResourceMovement = "Movimiento"
	ResourceRole     = "Permiso"
	ResourceAsset    = "Patrimonio"

	ResourceDepartment   = "Departamento"
	ResourceCategory     = "Categoría"
	ResourceStockRequest = "Solicitud de stock"
)

// Entry una mutación a registrar.
type Entry struct {
	UserID       string // vacío = sistema
	Action       string // entity.LogActionCreated/Updated/Deleted
	Resource     string
	ResourceName string
	IP           string
}

// Recorder registra mutaciones administrativas. Las implementaciones no deben
// propagar fallos: perder un asiento de auditoría no puede abortar la operación.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// RepositoryRecorder implementación sobre ActivityLogRepository; los fallos
// de persistencia se loguean y se descartan.
type RepositoryRecorder struct {
	repo repository.ActivityLogRepository
	log  *logger.Logger
}

// NewRepositoryRecorder construye el recorder.
func NewRepositoryRecorder(repo repository.ActivityLogRepository, log *logger.Logger) *RepositoryRecorder {
	return &RepositoryRecorder{repo: repo, log: log.Component("auditoria")}
}

// Record persiste el asiento de actividad.
func (r *RepositoryRecorder) Record(ctx context.Context, e Entry) {
	var userID *string
	if e.UserID != "" {
		userID = &e.UserID
	}
	entry := &entity.ActivityLog{
		ID:           uuid.New().String(),
		UserID:       userID,
		Action:       e.Action,
		Resource:     e.Resource,
		ResourceName: e.ResourceName,
		IP:           e.IP,
		CreatedAt:    time.Now(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.log.Warn().Err(err).Str("resource", e.Resource).Msg("registro de actividad descartado")
	}
}
