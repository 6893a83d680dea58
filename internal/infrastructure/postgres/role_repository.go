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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL. Las
// capacidades viven en role_capabilities, una fila por rol y capacidad.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create persiste un rol y sus capacidades.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	query := `
		INSERT INTO roles (id, name, description, is_super, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		role.ID, role.Name, role.Description, role.IsSuper, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return r.replaceCapabilities(ctx, role.ID, role.Capabilities)
}

func (r *RoleRepo) replaceCapabilities(ctx context.Context, roleID string, caps []entity.Capability) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_capabilities WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("clear role capabilities: %w", err)
	}
	for _, c := range caps {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO role_capabilities (role_id, capability) VALUES ($1, $2)`,
			roleID, c,
		); err != nil {
			return fmt.Errorf("insert role capability: %w", err)
		}
	}
	return nil
}

func (r *RoleRepo) loadCapabilities(ctx context.Context, roleID string) ([]entity.Capability, error) {
	rows, err := r.q.Query(ctx,
		`SELECT capability FROM role_capabilities WHERE role_id = $1 ORDER BY capability`, roleID)
	if err != nil {
		return nil, fmt.Errorf("load role capabilities: %w", err)
	}
	defer rows.Close()
	var caps []entity.Capability
	for rows.Next() {
		var c entity.Capability
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan capability: %w", err)
		}
		caps = append(caps, c)
	}
	return caps, rows.Err()
}

func (r *RoleRepo) getBy(ctx context.Context, clause string, arg any) (*entity.Role, error) {
	query := `SELECT id, name, description, is_super, created_at, updated_at FROM roles WHERE ` + clause
	var role entity.Role
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&role.ID, &role.Name, &role.Description, &role.IsSuper, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	caps, err := r.loadCapabilities(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Capabilities = caps
	return &role, nil
}

// GetByID obtiene un rol con capacidades cargadas.
func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.getBy(ctx, `id = $1`, id)
}

// GetByName obtiene un rol por nombre.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.getBy(ctx, `name = $1`, name)
}

// GetByUser obtiene el rol asignado a un usuario.
func (r *RoleRepo) GetByUser(ctx context.Context, userID string) (*entity.Role, error) {
	return r.getBy(ctx, `id = (SELECT role_id FROM users WHERE id = $1)`, userID)
}

// Update actualiza el rol y reemplaza sus capacidades. El flag is_super no se
// edita por la API.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	query := `UPDATE roles SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, role.ID, role.Name, role.Description, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	return r.replaceCapabilities(ctx, role.ID, role.Capabilities)
}

// Delete elimina un rol y sus capacidades.
func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_capabilities WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("delete role capabilities: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

// List devuelve todos los roles con capacidades cargadas, por nombre.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description, is_super, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsSuper, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, role := range list {
		caps, err := r.loadCapabilities(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		role.Capabilities = caps
	}
	return list, nil
}

// CountUsers cuántos usuarios tienen asignado el rol.
func (r *RoleRepo) CountUsers(ctx context.Context, roleID string) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role_id = $1`, roleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count role users: %w", err)
	}
	return count, nil
}
