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

var _ repository.FixedAssetRepository = (*FixedAssetRepo)(nil)

// assetSortColumns whitelist de columnas ordenables del listado de patrimonio.
var assetSortColumns = map[string]string{
	"patrimony_code":   "a.patrimony_code",
	"name":             "a.name",
	"status":           "a.status",
	"acquisition_date": "a.acquisition_date",
	"date":             "a.created_at",
}

// FixedAssetRepo implementación del puerto FixedAssetRepository sobre PostgreSQL.
type FixedAssetRepo struct {
	q Querier
}

// NewFixedAssetRepository construye el adaptador de persistencia para patrimonio. Pasar pool o tx (Querier).
func NewFixedAssetRepository(q Querier) *FixedAssetRepo {
	return &FixedAssetRepo{q: q}
}

const assetColumns = `a.id, a.patrimony_code, a.serial_number, a.name, a.brand, a.description,
	COALESCE(a.category_id, ''), COALESCE(a.department_id, ''), a.status, a.acquisition_date,
	a.acquisition_value, a.invoice_number, a.created_at, a.updated_at`

func scanAsset(row pgx.Row) (*entity.FixedAsset, error) {
	var a entity.FixedAsset
	err := row.Scan(&a.ID, &a.PatrimonyCode, &a.SerialNumber, &a.Name, &a.Brand, &a.Description,
		&a.CategoryID, &a.DepartmentID, &a.Status, &a.AcquisitionDate, &a.AcquisitionValue,
		&a.InvoiceNumber, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un bien patrimonial.
func (r *FixedAssetRepo) Create(ctx context.Context, asset *entity.FixedAsset) error {
	query := `
		INSERT INTO fixed_assets (id, patrimony_code, serial_number, name, brand, description,
			category_id, department_id, status, acquisition_date, acquisition_value, invoice_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		asset.ID, asset.PatrimonyCode, asset.SerialNumber, asset.Name, asset.Brand, asset.Description,
		asset.CategoryID, asset.DepartmentID, asset.Status, asset.AcquisitionDate,
		asset.AcquisitionValue, asset.InvoiceNumber, asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fixed asset: %w", err)
	}
	return nil
}

// GetByID obtiene un bien por ID.
func (r *FixedAssetRepo) GetByID(ctx context.Context, id string) (*entity.FixedAsset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM fixed_assets a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fixed asset: %w", err)
	}
	return a, nil
}

// GetByPatrimonyCode obtiene un bien por su etiqueta patrimonial.
func (r *FixedAssetRepo) GetByPatrimonyCode(ctx context.Context, code string) (*entity.FixedAsset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM fixed_assets a WHERE a.patrimony_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fixed asset by code: %w", err)
	}
	return a, nil
}

// Update actualiza un bien existente.
func (r *FixedAssetRepo) Update(ctx context.Context, asset *entity.FixedAsset) error {
	query := `
		UPDATE fixed_assets SET patrimony_code = $2, serial_number = $3, name = $4, brand = $5,
			description = $6, category_id = NULLIF($7, ''), department_id = NULLIF($8, ''),
			status = $9, acquisition_date = $10, acquisition_value = $11, invoice_number = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		asset.ID, asset.PatrimonyCode, asset.SerialNumber, asset.Name, asset.Brand, asset.Description,
		asset.CategoryID, asset.DepartmentID, asset.Status, asset.AcquisitionDate,
		asset.AcquisitionValue, asset.InvoiceNumber, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update fixed asset: %w", err)
	}
	return nil
}

// Delete elimina un bien por ID.
func (r *FixedAssetRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM fixed_assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fixed asset: %w", err)
	}
	return nil
}

// List devuelve bienes paginados con búsqueda y filtros.
func (r *FixedAssetRepo) List(ctx context.Context, filter repository.FixedAssetFilter, params repository.ListParams) ([]*entity.FixedAsset, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if params.Search != "" {
		n++
		where += fmt.Sprintf(` AND (a.name ILIKE $%d OR a.patrimony_code ILIKE $%d OR a.serial_number ILIKE $%d)`, n, n, n)
		args = append(args, likePattern(params.Search))
	}
	if filter.CategoryID != "" {
		n++
		where += fmt.Sprintf(` AND a.category_id = $%d`, n)
		args = append(args, filter.CategoryID)
	}
	if filter.DepartmentID != "" {
		n++
		where += fmt.Sprintf(` AND a.department_id = $%d`, n)
		args = append(args, filter.DepartmentID)
	}
	if filter.Status != "" {
		n++
		where += fmt.Sprintf(` AND a.status = $%d`, n)
		args = append(args, filter.Status)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM fixed_assets a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count fixed assets: %w", err)
	}

	orderBy := sortColumn(assetSortColumns, params.SortBy, "a.patrimony_code")
	query := fmt.Sprintf(`SELECT %s FROM fixed_assets a%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		assetColumns, where, orderBy, sortDirection(params.SortDir), n+1, n+2)
	args = append(args, params.PerPage, params.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list fixed assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.FixedAsset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan fixed asset: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}
