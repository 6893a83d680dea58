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

var _ repository.DepartmentRepository = (*DepartmentRepo)(nil)

// departmentSortColumns whitelist de columnas ordenables.
var departmentSortColumns = map[string]string{
	"code": "code",
	"name": "name",
}

// DepartmentRepo implementación del puerto DepartmentRepository sobre PostgreSQL.
type DepartmentRepo struct {
	q Querier
}

// NewDepartmentRepository construye el adaptador de persistencia para departamentos. Pasar pool o tx (Querier).
func NewDepartmentRepository(q Querier) *DepartmentRepo {
	return &DepartmentRepo{q: q}
}

// Create persiste un departamento.
func (r *DepartmentRepo) Create(ctx context.Context, department *entity.Department) error {
	query := `INSERT INTO departments (id, code, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		department.ID, department.Code, department.Name, department.CreatedAt, department.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

func (r *DepartmentRepo) getBy(ctx context.Context, clause string, arg any) (*entity.Department, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM departments WHERE ` + clause
	var d entity.Department
	err := r.q.QueryRow(ctx, query, arg).Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get department: %w", err)
	}
	return &d, nil
}

// GetByID obtiene un departamento por ID.
func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*entity.Department, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByName obtiene un departamento por nombre.
func (r *DepartmentRepo) GetByName(ctx context.Context, name string) (*entity.Department, error) {
	return r.getBy(ctx, `name = $1`, name)
}

// Update actualiza un departamento. El código nunca cambia.
func (r *DepartmentRepo) Update(ctx context.Context, department *entity.Department) error {
	query := `UPDATE departments SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, department.ID, department.Name, department.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update department: %w", err)
	}
	return nil
}

// Delete elimina un departamento por ID.
func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}

// List devuelve departamentos paginados con búsqueda.
func (r *DepartmentRepo) List(ctx context.Context, params repository.ListParams) ([]*entity.Department, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if params.Search != "" {
		n++
		where += fmt.Sprintf(` AND (name ILIKE $%d OR code ILIKE $%d)`, n, n)
		args = append(args, likePattern(params.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM departments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count departments: %w", err)
	}

	orderBy := sortColumn(departmentSortColumns, params.SortBy, "name")
	query := fmt.Sprintf(`SELECT id, code, name, created_at, updated_at FROM departments%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		where, orderBy, sortDirection(params.SortDir), n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Department
	for rows.Next() {
		var d entity.Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan department: %w", err)
		}
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

// NextCode siguiente código secuencial de 4 dígitos con ceros a la izquierda.
func (r *DepartmentRepo) NextCode(ctx context.Context) (string, error) {
	var next int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(code::int), 0) + 1 FROM departments WHERE code ~ '^[0-9]+$'`,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next department code: %w", err)
	}
	return fmt.Sprintf("%04d", next), nil
}
