package dto

import "github.com/shopspring/decimal"

// DashboardStats agregados del bloque "stats" del dashboard.
type DashboardStats struct {
	TotalItems              int             `json:"total_items"`
	TotalValue              decimal.Decimal `json:"total_value"`
	InUse                   int             `json:"in_use"`
	Available               int             `json:"available"`
	Maintenance             int             `json:"maintenance"`
	Discarded               int             `json:"discarded"`
	LowStockCount           int             `json:"low_stock_count"`
	MonthlyConsumptionValue decimal.Decimal `json:"monthly_consumption_value"`
}

// TopConsumedItemDTO ítem más retirado del mes.
type TopConsumedItemDTO struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// DepartmentSpendingDTO gasto del mes por departamento, con color estable
// para los gráficos.
type DepartmentSpendingDTO struct {
	DepartmentID string          `json:"department_id"`
	Name         string          `json:"name"`
	Value        decimal.Decimal `json:"value"`
	Color        string          `json:"color"`
}

// TrendPointDTO punto del gráfico de tendencia (valor de entradas vs salidas).
type TrendPointDTO struct {
	Month       string          `json:"month"` // YYYY-MM
	Label       string          `json:"label"` // ej. "mar/2026"
	Entries     decimal.Decimal `json:"entries"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
}

// DashboardResponse respuesta completa de GET /api/dashboard/stats.
type DashboardResponse struct {
	Stats             DashboardStats          `json:"stats"`
	TopConsumedItems  []TopConsumedItemDTO    `json:"top_consumed_products"`
	SpendingBySector  []DepartmentSpendingDTO `json:"spending_by_sector"`
	MovementsTrend    []TrendPointDTO         `json:"movements_trend"`
	RecentMovements   []MovementResponse      `json:"recent_movements"`
}

// LowStockItemDTO fila del reporte de stock bajo.
type LowStockItemDTO struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"min_stock"`
	UnitValue decimal.Decimal `json:"value"`
	Category  string          `json:"category,omitempty"`
	Location  string          `json:"location"`
}

// SectorConsumptionItemDTO retirada individual de un sector en el mes.
type SectorConsumptionItemDTO struct {
	ID           string          `json:"id"`
	ItemName     string          `json:"item_name"`
	ItemCode     string          `json:"item_code"`
	Quantity     int             `json:"quantity"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	TotalValue   decimal.Decimal `json:"total_value"`
	MovementDate string          `json:"movement_date"`
	UserName     string          `json:"user_name,omitempty"`
}

// SectorConsumptionResponse respuesta de GET /api/dashboard/sector-consumption.
type SectorConsumptionResponse struct {
	Items []SectorConsumptionItemDTO `json:"items"`
}
