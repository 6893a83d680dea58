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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// itemSortColumns whitelist de columnas ordenables del listado de ítems.
var itemSortColumns = map[string]string{
	"code":     "i.code",
	"name":     "i.name",
	"quantity": "i.quantity",
	"value":    "i.unit_value",
	"status":   "i.status",
	"date":     "i.created_at",
}

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `i.id, i.code, i.name, i.brand, i.description, COALESCE(i.category_id, ''), i.department_id,
	i.unit_value, i.status, i.quantity, i.min_stock, i.created_at, i.updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Brand, &it.Description, &it.CategoryID,
		&it.DepartmentID, &it.UnitValue, &it.Status, &it.Quantity, &it.MinStock, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO items (id, code, name, brand, description, category_id, department_id, unit_value, status, quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Code, item.Name, item.Brand, item.Description, item.CategoryID,
		item.DepartmentID, item.UnitValue, item.Status, item.Quantity, item.MinStock,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items i WHERE i.id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update actualiza los campos descriptivos. La cantidad se muta solo vía
// ApplyEntry/ApplyWithdrawal.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE items SET name = $2, brand = $3, description = $4, category_id = NULLIF($5, ''),
			department_id = $6, unit_value = $7, status = $8, min_stock = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Brand, item.Description, item.CategoryID,
		item.DepartmentID, item.UnitValue, item.Status, item.MinStock, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete elimina un ítem por ID. Los movimientos conservan el histórico.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List devuelve ítems con búsqueda, filtros, orden y paginación, más el total.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter, params repository.ListParams) ([]*entity.InventoryItem, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if params.Search != "" {
		n++
		// La búsqueda también alcanza el nombre del departamento actual.
		where += fmt.Sprintf(` AND (i.name ILIKE $%d OR i.code ILIKE $%d OR i.brand ILIKE $%d
			OR EXISTS (SELECT 1 FROM departments d WHERE d.id = i.department_id AND d.name ILIKE $%d))`, n, n, n, n)
		args = append(args, likePattern(params.Search))
	}
	if filter.CategoryID != "" {
		n++
		where += fmt.Sprintf(` AND i.category_id = $%d`, n)
		args = append(args, filter.CategoryID)
	}
	if filter.Status != "" {
		n++
		where += fmt.Sprintf(` AND i.status = $%d`, n)
		args = append(args, filter.Status)
	}
	if filter.OnlyAvailable {
		where += ` AND i.quantity > 0 AND i.status = 'available'`
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items i`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	orderBy := sortColumn(itemSortColumns, params.SortBy, "i.created_at")
	query := fmt.Sprintf(`SELECT %s FROM items i%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		itemColumns, where, orderBy, sortDirection(params.SortDir), n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, total, rows.Err()
}

// NextCode siguiente código secuencial de 4 dígitos con ceros a la izquierda.
func (r *ItemRepo) NextCode(ctx context.Context) (string, error) {
	var next int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(code::int), 0) + 1 FROM items WHERE code ~ '^[0-9]+$'`,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next item code: %w", err)
	}
	return fmt.Sprintf("%04d", next), nil
}

// ApplyEntry suma la cantidad de forma atómica; un ítem in_use con saldo
// resultante > 0 vuelve a available.
func (r *ItemRepo) ApplyEntry(ctx context.Context, itemID string, quantity int) error {
	query := `
		UPDATE items SET
			quantity = quantity + $2,
			status = CASE WHEN status = 'in_use' AND quantity + $2 > 0 THEN 'available' ELSE status END,
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("apply entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ApplyWithdrawal decremento condicional: solo descuenta si el saldo alcanza
// (quantity >= $2), reasigna el departamento y pasa a in_use al llegar a 0.
// Devuelve false sin error cuando el saldo era insuficiente.
func (r *ItemRepo) ApplyWithdrawal(ctx context.Context, itemID string, quantity int, departmentID string) (bool, error) {
	query := `
		UPDATE items SET
			quantity = quantity - $2,
			department_id = $3,
			status = CASE WHEN quantity - $2 = 0 THEN 'in_use' ELSE status END,
			updated_at = now()
		WHERE id = $1 AND quantity >= $2`
	cmd, err := r.q.Exec(ctx, query, itemID, quantity, departmentID)
	if err != nil {
		return false, fmt.Errorf("apply withdrawal: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
