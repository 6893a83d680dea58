package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// userSortColumns whitelist de columnas ordenables del listado de usuarios.
var userSortColumns = map[string]string{
	"code":      "u.code",
	"name":      "u.name",
	"email":     "u.email",
	"status":    "u.status",
	"join_date": "u.join_date",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.code, u.name, u.email, u.password_hash, u.role_id, u.department_id, u.status, u.join_date, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Code, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID,
		&u.DepartmentID, &u.Status, &u.JoinDate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, code, name, email, password_hash, role_id, department_id, status, join_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Code, user.Name, user.Email, user.PasswordHash, user.RoleID,
		user.DepartmentID, user.Status, user.JoinDate, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role_id = $5,
			department_id = $6, status = $7, join_date = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.RoleID,
		user.DepartmentID, user.Status, user.JoinDate, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// List devuelve usuarios paginados con búsqueda y filtro por rol.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter, params repository.ListParams) ([]*entity.User, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if params.Search != "" {
		n++
		where += fmt.Sprintf(` AND (u.name ILIKE $%d OR u.email ILIKE $%d OR u.code ILIKE $%d)`, n, n, n)
		args = append(args, likePattern(params.Search))
	}
	if filter.RoleName != "" {
		n++
		where += fmt.Sprintf(` AND u.role_id IN (SELECT id FROM roles WHERE name = $%d)`, n)
		args = append(args, filter.RoleName)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	orderBy := sortColumn(userSortColumns, params.SortBy, "u.created_at")
	query := fmt.Sprintf(`SELECT %s FROM users u%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		userColumns, where, orderBy, sortDirection(params.SortDir), n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// NextCode siguiente código secuencial de 4 dígitos con ceros a la izquierda.
func (r *UserRepo) NextCode(ctx context.Context) (string, error) {
	var next int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(code::int), 0) + 1 FROM users WHERE code ~ '^[0-9]+$'`,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next user code: %w", err)
	}
	return fmt.Sprintf("%04d", next), nil
}

// ListIDsWithCapability usuarios activos cuyo rol concede la capacidad,
// incluidos los roles super.
func (r *UserRepo) ListIDsWithCapability(ctx context.Context, capability entity.Capability) ([]string, error) {
	query := `
		SELECT u.id FROM users u
		JOIN roles ro ON ro.id = u.role_id
		WHERE u.status = 'active'
		  AND (ro.is_super OR EXISTS (
			SELECT 1 FROM role_capabilities rc WHERE rc.role_id = ro.id AND rc.capability = $1
		  ))`
	rows, err := r.q.Query(ctx, query, capability)
	if err != nil {
		return nil, fmt.Errorf("list users with capability: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
