package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// CreateBatch persiste una notificación por destinatario.
func (r *NotificationRepo) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	for _, n := range notifications {
		_, err := r.q.Exec(ctx,
			`INSERT INTO notifications (id, user_id, title, message, link, type, read_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			n.ID, n.UserID, n.Title, n.Message, n.Link, n.Type, n.ReadAt, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	return nil
}

// ListByUser notificaciones del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, title, message, link, type, read_at, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &n.Type, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountUnread total de notificaciones sin leer del usuario.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marca como leída; false si no existe o no pertenece al usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE notifications SET read_at = COALESCE(read_at, now()) WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET read_at = now() WHERE user_id = $1 AND read_at IS NULL`, userID,
	)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// DeleteByUser elimina todas las notificaciones del usuario.
func (r *NotificationRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}
