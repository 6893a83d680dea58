package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia de notificaciones in-app.
type NotificationRepository interface {
	// CreateBatch persiste una notificación por destinatario en una sola unidad.
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead marca como leída; devuelve false si no existe o no es del usuario.
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
