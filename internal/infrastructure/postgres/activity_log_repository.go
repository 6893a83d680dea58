package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del puerto ActivityLogRepository sobre PostgreSQL.
// El log es append-only.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador de persistencia para el log de actividad. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create persiste un registro de actividad.
func (r *ActivityLogRepo) Create(ctx context.Context, log *entity.ActivityLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO activity_logs (id, user_id, action, resource, resource_name, ip, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, log.UserID, log.Action, log.Resource, log.ResourceName, log.IP, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List devuelve registros paginados, más recientes primero.
func (r *ActivityLogRepo) List(ctx context.Context, filter repository.ActivityLogFilter, params repository.ListParams) ([]*entity.ActivityLog, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Action != "" {
		n++
		where += fmt.Sprintf(` AND action = $%d`, n)
		args = append(args, filter.Action)
	}
	if filter.Resource != "" {
		n++
		where += fmt.Sprintf(` AND resource = $%d`, n)
		args = append(args, filter.Resource)
	}
	if params.Search != "" {
		n++
		where += fmt.Sprintf(` AND resource_name ILIKE $%d`, n)
		args = append(args, likePattern(params.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity logs: %w", err)
	}

	query := fmt.Sprintf(`SELECT id, user_id, action, resource, resource_name, ip, created_at
		FROM activity_logs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Resource, &l.ResourceName, &l.IP, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
