package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// defaultNotificationLimit cuántas notificaciones recientes se devuelven.
const defaultNotificationLimit = 50

// NotificationUseCase bandeja de notificaciones del usuario autenticado.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// List devuelve las notificaciones recientes del usuario y el total sin leer.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]*entity.Notification, int, error) {
	notifications, err := uc.notifRepo.ListByUser(ctx, userID, defaultNotificationLimit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := uc.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	ok, err := uc.notifRepo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.notifRepo.MarkAllRead(ctx, userID)
}

// Clear elimina todas las notificaciones del usuario.
func (uc *NotificationUseCase) Clear(ctx context.Context, userID string) error {
	return uc.notifRepo.DeleteByUser(ctx, userID)
}
