// Package analytics construye los agregados del dashboard a partir del libro
// de movimientos y el inventario.
package analytics

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	topConsumedLimit     = 5
	spendingSectorsLimit = 5
	recentMovementsLimit = 10
	trendMonths          = 6
)

// sectorPalette colores fijos por nombre de departamento; el color de un
// sector no depende de su posición en el ranking.
var sectorPalette = map[string]string{
	"Almacén":    "#64748b",
	"Financiero": "#0c4a6e",
	"TI":         "#1e40af",
	"RRHH":       "#3b82f6",
	"Marketing":  "#60a5fa",
	"Ventas":     "#93c5fd",
}

// spanishMonths abreviaturas para las etiquetas del gráfico de tendencia.
var spanishMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// DashboardUseCase agrega las consultas del dashboard. Las secciones se
// consultan en paralelo; todas son read-only e idempotentes.
type DashboardUseCase struct {
	dashRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(dashRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo}
}

// GetStats arma la respuesta completa del dashboard para el mes vigente.
// now determina el mes; las consultas cubren el mes calendario completo para
// no excluir movimientos con fecha posterior dentro del mismo mes. Los
// valores monetarios se redondean a 2 decimales.
func (uc *DashboardUseCase) GetStats(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	trendStart := monthStart.AddDate(0, -(trendMonths - 1), 0)

	var (
		totals      *repository.StockTotals
		consumption decimal.Decimal
		topItems    []repository.TopConsumedItem
		spending    []repository.DepartmentSpending
		monthly     []repository.MonthlyMovementValue
		recent      []repository.RecentMovement
	)

	// Una goroutine por sección; el primer error gana.
	errCh := make(chan error, 6)
	go func() { var err error; totals, err = uc.dashRepo.GetStockTotals(ctx); errCh <- err }()
	go func() {
		var err error
		consumption, err = uc.dashRepo.GetConsumptionValue(ctx, monthStart, monthEnd)
		errCh <- err
	}()
	go func() {
		var err error
		topItems, err = uc.dashRepo.GetTopConsumedItems(ctx, monthStart, monthEnd, topConsumedLimit)
		errCh <- err
	}()
	go func() {
		var err error
		spending, err = uc.dashRepo.GetSpendingByDepartment(ctx, monthStart, monthEnd, spendingSectorsLimit)
		errCh <- err
	}()
	go func() {
		var err error
		monthly, err = uc.dashRepo.GetMovementValueByMonth(ctx, trendStart)
		errCh <- err
	}()
	go func() {
		var err error
		recent, err = uc.dashRepo.GetRecentMovements(ctx, recentMovementsLimit)
		errCh <- err
	}()
	for i := 0; i < 6; i++ {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalItems:              totals.TotalUnits,
			TotalValue:              totals.TotalValue.Round(2),
			InUse:                   totals.InUse,
			Available:               totals.Available,
			Maintenance:             totals.Maintenance,
			Discarded:               totals.Discarded,
			LowStockCount:           totals.LowStockCount,
			MonthlyConsumptionValue: consumption.Round(2),
		},
		TopConsumedItems: make([]dto.TopConsumedItemDTO, 0, len(topItems)),
		SpendingBySector: make([]dto.DepartmentSpendingDTO, 0, len(spending)),
		MovementsTrend:   buildTrend(monthly, monthStart),
		RecentMovements:  make([]dto.MovementResponse, 0, len(recent)),
	}
	for _, it := range topItems {
		resp.TopConsumedItems = append(resp.TopConsumedItems, dto.TopConsumedItemDTO{
			Name:     it.Name,
			Code:     it.Code,
			Quantity: it.Quantity,
		})
	}
	for _, s := range spending {
		resp.SpendingBySector = append(resp.SpendingBySector, dto.DepartmentSpendingDTO{
			DepartmentID: s.DepartmentID,
			Name:         s.Name,
			Value:        s.Value.Round(2),
			Color:        sectorColor(s.Name),
		})
	}
	for _, m := range recent {
		resp.RecentMovements = append(resp.RecentMovements, dto.MovementResponse{
			ID:             m.ID,
			ItemID:         m.ItemID,
			ItemName:       m.ItemName,
			ItemCode:       m.ItemCode,
			UserName:       m.UserName,
			DepartmentName: m.DepartmentName,
			Type:           m.Type,
			Quantity:       m.Quantity,
			MovementDate:   m.MovementDate.Format("2006-01-02"),
		})
	}
	return resp, nil
}

// buildTrend rellena los últimos trendMonths meses, con cero en los meses sin
// movimientos, terminando en el mes de monthStart.
func buildTrend(monthly []repository.MonthlyMovementValue, monthStart time.Time) []dto.TrendPointDTO {
	byMonth := make(map[string]repository.MonthlyMovementValue, len(monthly))
	for _, m := range monthly {
		byMonth[m.Month] = m
	}
	points := make([]dto.TrendPointDTO, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		t := monthStart.AddDate(0, -i, 0)
		key := t.Format("2006-01")
		m := byMonth[key]
		points = append(points, dto.TrendPointDTO{
			Month:       key,
			Label:       fmt.Sprintf("%s/%d", spanishMonths[t.Month()-1], t.Year()),
			Entries:     m.EntryValue.Round(2),
			Withdrawals: m.WithdrawalValue.Round(2),
		})
	}
	return points
}

// sectorColor color estable por nombre de sector: paleta fija para los
// departamentos conocidos y un tono derivado del md5 del nombre para el
// resto. El mismo nombre produce siempre el mismo color.
func sectorColor(name string) string {
	if color, ok := sectorPalette[name]; ok {
		return color
	}
	sum := md5.Sum([]byte(name))
	return fmt.Sprintf("#%02x%02x%02x", sum[0], sum[1], sum[2])
}

// ListLowStock reporte de ítems en o por debajo de su stock mínimo.
func (uc *DashboardUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.dashRepo.ListLowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			ID:        it.ID,
			Code:      it.Code,
			Name:      it.Name,
			Brand:     it.Brand,
			Quantity:  it.Quantity,
			MinStock:  it.MinStock,
			UnitValue: it.UnitValue.Round(2),
			Category:  it.CategoryName,
			Location:  it.Location,
		})
	}
	return out, nil
}

// SectorConsumption retiradas de un departamento en el mes vigente.
func (uc *DashboardUseCase) SectorConsumption(ctx context.Context, departmentID string, now time.Time) (*dto.SectorConsumptionResponse, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	lines, err := uc.dashRepo.ListSectorConsumption(ctx, departmentID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	resp := &dto.SectorConsumptionResponse{Items: make([]dto.SectorConsumptionItemDTO, 0, len(lines))}
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.SectorConsumptionItemDTO{
			ID:           l.MovementID,
			ItemName:     l.ItemName,
			ItemCode:     l.ItemCode,
			Quantity:     l.Quantity,
			UnitValue:    l.UnitValue.Round(2),
			TotalValue:   l.UnitValue.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2),
			MovementDate: l.MovementDate.Format("2006-01-02"),
			UserName:     l.UserName,
		})
	}
	return resp, nil
}
