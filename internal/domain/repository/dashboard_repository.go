package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotals agregados globales del inventario.
type StockTotals struct {
	TotalUnits    int
	TotalValue    decimal.Decimal // Σ unit_value × quantity
	InUse         int             // unidades por estado
	Available     int
	Maintenance   int
	Discarded     int
	LowStockCount int // ítems con quantity <= COALESCE(min_stock, 0)
}

// TopConsumedItem ítem con mayor cantidad retirada en el período.
type TopConsumedItem struct {
	ItemID   string
	Name     string
	Code     string
	Quantity int
}

// DepartmentSpending valor consumido por un departamento en el período.
type DepartmentSpending struct {
	DepartmentID string
	Name         string
	Value        decimal.Decimal
}

// MonthlyMovementValue valores de entrada y salida agregados por mes (YYYY-MM).
type MonthlyMovementValue struct {
	Month           string
	EntryValue      decimal.Decimal
	WithdrawalValue decimal.Decimal
}

// RecentMovement movimiento reciente con sus referencias resueltas.
type RecentMovement struct {
	ID             string
	Type           string
	Quantity       int
	MovementDate   time.Time
	ItemID         string
	ItemName       string
	ItemCode       string
	UserName       string
	DepartmentName string
}

// LowStockItem ítem en o por debajo de su stock mínimo.
type LowStockItem struct {
	ID           string
	Code         string
	Name         string
	Brand        string
	Quantity     int
	MinStock     int
	UnitValue    decimal.Decimal
	CategoryName string
	Location     string // nombre del departamento o "Almacén"
}

// SectorConsumptionLine retirada individual de un departamento en el período.
type SectorConsumptionLine struct {
	MovementID   string
	ItemName     string
	ItemCode     string
	Quantity     int
	UnitValue    decimal.Decimal
	MovementDate time.Time
	UserName     string
}

// DashboardRepository consultas read-only de agregación sobre el libro de
// movimientos y el inventario. Idempotentes, sin efectos; se recalculan en
// cada petición (sin caché).
type DashboardRepository interface {
	GetStockTotals(ctx context.Context) (*StockTotals, error)
	// GetConsumptionValue suma quantity × unit_value de los movimientos que no
	// son entradas dentro del rango.
	GetConsumptionValue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	GetTopConsumedItems(ctx context.Context, from, to time.Time, limit int) ([]TopConsumedItem, error)
	GetSpendingByDepartment(ctx context.Context, from, to time.Time, limit int) ([]DepartmentSpending, error)
	// GetMovementValueByMonth agrega valores de entrada y salida por mes desde from.
	GetMovementValueByMonth(ctx context.Context, from time.Time) ([]MonthlyMovementValue, error)
	GetRecentMovements(ctx context.Context, limit int) ([]RecentMovement, error)
	ListLowStockItems(ctx context.Context) ([]LowStockItem, error)
	ListSectorConsumption(ctx context.Context, departmentID string, from, to time.Time) ([]SectorConsumptionLine, error)
}
