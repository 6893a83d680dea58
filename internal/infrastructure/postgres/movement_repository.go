package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// movementSortColumns whitelist de columnas ordenables del listado.
var movementSortColumns = map[string]string{
	"date":     "m.movement_date",
	"type":     "m.type",
	"quantity": "m.quantity",
}

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// El libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `m.id, m.item_id, m.user_id, m.department_id, m.type, m.quantity, m.movement_date, m.notes, m.created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.ItemID, &m.UserID, &m.DepartmentID, &m.Type, &m.Quantity,
		&m.MovementDate, &m.Notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create asienta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, user_id, department_id, type, quantity, movement_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ItemID, movement.UserID, movement.DepartmentID,
		movement.Type, movement.Quantity, movement.MovementDate, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m WHERE m.id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos paginados, más recientes primero por defecto.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, params repository.ListParams) ([]*entity.Movement, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Type != "" {
		n++
		where += fmt.Sprintf(` AND m.type = $%d`, n)
		args = append(args, filter.Type)
	}
	if filter.ItemID != "" {
		n++
		where += fmt.Sprintf(` AND m.item_id = $%d`, n)
		args = append(args, filter.ItemID)
	}
	if filter.DepartmentID != "" {
		n++
		where += fmt.Sprintf(` AND m.department_id = $%d`, n)
		args = append(args, filter.DepartmentID)
	}
	if params.Search != "" {
		n++
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM items i WHERE i.id = m.item_id AND (i.name ILIKE $%d OR i.code ILIKE $%d))`, n, n)
		args = append(args, likePattern(params.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM movements m`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	orderBy := sortColumn(movementSortColumns, params.SortBy, "m.movement_date")
	dir := sortDirection(params.SortDir)
	if params.SortBy == "" {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM movements m%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		movementColumns, where, orderBy, dir, n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListByItem historial completo de un ítem, más reciente primero.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements m WHERE m.item_id = $1 ORDER BY m.movement_date DESC, m.created_at DESC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
