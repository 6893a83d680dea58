package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only de agregación para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador de consultas del dashboard. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// GetStockTotals agregados globales del inventario en una sola consulta.
func (r *DashboardRepo) GetStockTotals(ctx context.Context) (*repository.StockTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(unit_value * quantity), 0),
			COALESCE(SUM(quantity) FILTER (WHERE status = 'in_use'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE status = 'available'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE status = 'maintenance'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE status = 'discarded'), 0),
			COUNT(*) FILTER (WHERE quantity <= COALESCE(min_stock, 0))
		FROM items`
	var t repository.StockTotals
	err := r.q.QueryRow(ctx, query).Scan(
		&t.TotalUnits, &t.TotalValue, &t.InUse, &t.Available, &t.Maintenance, &t.Discarded, &t.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stock totals: %w", err)
	}
	return &t, nil
}

// GetConsumptionValue valor de las retiradas del período (cantidad × valor unitario).
func (r *DashboardRepo) GetConsumptionValue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(m.quantity * i.unit_value), 0)
		FROM movements m
		JOIN items i ON i.id = m.item_id
		WHERE m.type <> 'entry' AND m.movement_date >= $1 AND m.movement_date <= $2`
	var value decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&value); err != nil {
		return decimal.Zero, fmt.Errorf("consumption value: %w", err)
	}
	return value, nil
}

// GetTopConsumedItems ítems con mayor cantidad retirada en el período.
func (r *DashboardRepo) GetTopConsumedItems(ctx context.Context, from, to time.Time, limit int) ([]repository.TopConsumedItem, error) {
	query := `
		SELECT i.id, i.name, i.code, SUM(m.quantity)::int
		FROM movements m
		JOIN items i ON i.id = m.item_id
		WHERE m.type = 'withdrawal' AND m.movement_date >= $1 AND m.movement_date <= $2
		GROUP BY i.id, i.name, i.code
		ORDER BY SUM(m.quantity) DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top consumed items: %w", err)
	}
	defer rows.Close()
	var list []repository.TopConsumedItem
	for rows.Next() {
		var it repository.TopConsumedItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Code, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan top consumed: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetSpendingByDepartment valor consumido por departamento en el período.
func (r *DashboardRepo) GetSpendingByDepartment(ctx context.Context, from, to time.Time, limit int) ([]repository.DepartmentSpending, error) {
	query := `
		SELECT d.id, d.name, COALESCE(SUM(m.quantity * i.unit_value), 0)
		FROM movements m
		JOIN items i ON i.id = m.item_id
		JOIN departments d ON d.id = m.department_id
		WHERE m.type = 'withdrawal' AND m.movement_date >= $1 AND m.movement_date <= $2
		GROUP BY d.id, d.name
		ORDER BY SUM(m.quantity * i.unit_value) DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("spending by department: %w", err)
	}
	defer rows.Close()
	var list []repository.DepartmentSpending
	for rows.Next() {
		var s repository.DepartmentSpending
		if err := rows.Scan(&s.DepartmentID, &s.Name, &s.Value); err != nil {
			return nil, fmt.Errorf("scan department spending: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetMovementValueByMonth valores de entrada y salida agregados por mes.
func (r *DashboardRepo) GetMovementValueByMonth(ctx context.Context, from time.Time) ([]repository.MonthlyMovementValue, error) {
	query := `
		SELECT to_char(date_trunc('month', m.movement_date), 'YYYY-MM'),
			COALESCE(SUM(m.quantity * i.unit_value) FILTER (WHERE m.type = 'entry'), 0),
			COALESCE(SUM(m.quantity * i.unit_value) FILTER (WHERE m.type = 'withdrawal'), 0)
		FROM movements m
		JOIN items i ON i.id = m.item_id
		WHERE m.movement_date >= $1
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("movement value by month: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlyMovementValue
	for rows.Next() {
		var m repository.MonthlyMovementValue
		if err := rows.Scan(&m.Month, &m.EntryValue, &m.WithdrawalValue); err != nil {
			return nil, fmt.Errorf("scan monthly value: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetRecentMovements movimientos más recientes con referencias resueltas.
func (r *DashboardRepo) GetRecentMovements(ctx context.Context, limit int) ([]repository.RecentMovement, error) {
	query := `
		SELECT m.id, m.type, m.quantity, m.movement_date, i.id, i.name, i.code,
			COALESCE(u.name, ''), COALESCE(d.name, '')
		FROM movements m
		JOIN items i ON i.id = m.item_id
		LEFT JOIN users u ON u.id = m.user_id
		LEFT JOIN departments d ON d.id = m.department_id
		ORDER BY m.movement_date DESC, m.created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	defer rows.Close()
	var list []repository.RecentMovement
	for rows.Next() {
		var m repository.RecentMovement
		if err := rows.Scan(&m.ID, &m.Type, &m.Quantity, &m.MovementDate,
			&m.ItemID, &m.ItemName, &m.ItemCode, &m.UserName, &m.DepartmentName); err != nil {
			return nil, fmt.Errorf("scan recent movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListLowStockItems ítems con quantity <= COALESCE(min_stock, 0).
func (r *DashboardRepo) ListLowStockItems(ctx context.Context) ([]repository.LowStockItem, error) {
	query := `
		SELECT i.id, i.code, i.name, i.brand, i.quantity, COALESCE(i.min_stock, 0), i.unit_value,
			COALESCE(c.name, ''), COALESCE(d.name, 'Almacén')
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		LEFT JOIN departments d ON d.id = i.department_id
		WHERE i.quantity <= COALESCE(i.min_stock, 0)
		ORDER BY i.quantity ASC, i.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock items: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockItem
	for rows.Next() {
		var it repository.LowStockItem
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Brand, &it.Quantity, &it.MinStock,
			&it.UnitValue, &it.CategoryName, &it.Location); err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListSectorConsumption retiradas individuales de un departamento en el período.
func (r *DashboardRepo) ListSectorConsumption(ctx context.Context, departmentID string, from, to time.Time) ([]repository.SectorConsumptionLine, error) {
	query := `
		SELECT m.id, i.name, i.code, m.quantity, i.unit_value, m.movement_date, COALESCE(u.name, '')
		FROM movements m
		JOIN items i ON i.id = m.item_id
		LEFT JOIN users u ON u.id = m.user_id
		WHERE m.type = 'withdrawal' AND m.department_id = $1
		  AND m.movement_date >= $2 AND m.movement_date <= $3
		ORDER BY m.movement_date DESC`
	rows, err := r.q.Query(ctx, query, departmentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sector consumption: %w", err)
	}
	defer rows.Close()
	var list []repository.SectorConsumptionLine
	for rows.Next() {
		var l repository.SectorConsumptionLine
		if err := rows.Scan(&l.MovementID, &l.ItemName, &l.ItemCode, &l.Quantity, &l.UnitValue,
			&l.MovementDate, &l.UserName); err != nil {
			return nil, fmt.Errorf("scan sector consumption: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
