package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de agregados. Captura los rangos y límites con los que
// lo llaman; el mutex cubre las goroutines paralelas de GetStats.
// ──────────────────────────────────────────────────────────────────────────────

type fakeDashRepo struct {
	mu sync.Mutex

	spending []repository.DepartmentSpending

	topLimit       int
	spendingLimit  int
	recentLimit    int
	consumptionEnd time.Time
	topEnd         time.Time
	spendingEnd    time.Time
	sectorEnd      time.Time
}

func (r *fakeDashRepo) GetStockTotals(_ context.Context) (*repository.StockTotals, error) {
	return &repository.StockTotals{}, nil
}

func (r *fakeDashRepo) GetConsumptionValue(_ context.Context, _, to time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumptionEnd = to
	return decimal.Zero, nil
}

func (r *fakeDashRepo) GetTopConsumedItems(_ context.Context, _, to time.Time, limit int) ([]repository.TopConsumedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topEnd = to
	r.topLimit = limit
	return nil, nil
}

func (r *fakeDashRepo) GetSpendingByDepartment(_ context.Context, _, to time.Time, limit int) ([]repository.DepartmentSpending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spendingEnd = to
	r.spendingLimit = limit
	return r.spending, nil
}

func (r *fakeDashRepo) GetMovementValueByMonth(_ context.Context, _ time.Time) ([]repository.MonthlyMovementValue, error) {
	return nil, nil
}

func (r *fakeDashRepo) GetRecentMovements(_ context.Context, limit int) ([]repository.RecentMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recentLimit = limit
	return nil, nil
}

func (r *fakeDashRepo) ListLowStockItems(_ context.Context) ([]repository.LowStockItem, error) {
	return nil, nil
}

func (r *fakeDashRepo) ListSectorConsumption(_ context.Context, _ string, _, to time.Time) ([]repository.SectorConsumptionLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sectorEnd = to
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStats
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStats_LimitesDeTopYRecientes(t *testing.T) {
	repo := &fakeDashRepo{}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetStats(context.Background(), time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 5, repo.topLimit, "top de ítems consumidos es top-5")
	assert.Equal(t, 5, repo.spendingLimit, "top de departamentos es top-5")
	assert.Equal(t, 10, repo.recentLimit, "movimientos recientes son los últimos 10")
}

func TestGetStats_RangoCubreElMesCompleto(t *testing.T) {
	repo := &fakeDashRepo{}
	uc := analytics.NewDashboardUseCase(repo)

	// Mitad de mes: los movimientos con fecha posterior dentro del mismo mes
	// también cuentan.
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	_, err := uc.GetStats(context.Background(), now)
	require.NoError(t, err)

	wantEnd := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	assert.Equal(t, wantEnd, repo.consumptionEnd)
	assert.Equal(t, wantEnd, repo.topEnd)
	assert.Equal(t, wantEnd, repo.spendingEnd)
	assert.True(t, repo.consumptionEnd.After(now), "el límite superior no puede ser `now`")
}

func TestSectorConsumption_RangoCubreElMesCompleto(t *testing.T) {
	repo := &fakeDashRepo{}
	uc := analytics.NewDashboardUseCase(repo)

	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.SectorConsumption(context.Background(), "dep-1", now)
	require.NoError(t, err)

	wantEnd := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	assert.Equal(t, wantEnd, repo.sectorEnd)
}

// ──────────────────────────────────────────────────────────────────────────────
// Colores por sector
// ──────────────────────────────────────────────────────────────────────────────

// El color de un departamento depende solo de su nombre: cambiar de posición
// en el ranking no lo cambia.
func TestGetStats_ColorPorNombreEstableAnteElRanking(t *testing.T) {
	spendingAsc := []repository.DepartmentSpending{
		{DepartmentID: "d1", Name: "TI", Value: decimal.NewFromInt(100)},
		{DepartmentID: "d2", Name: "Laboratorio", Value: decimal.NewFromInt(50)},
	}
	spendingDesc := []repository.DepartmentSpending{
		{DepartmentID: "d2", Name: "Laboratorio", Value: decimal.NewFromInt(500)},
		{DepartmentID: "d1", Name: "TI", Value: decimal.NewFromInt(100)},
	}

	colors := func(spending []repository.DepartmentSpending) map[string]string {
		repo := &fakeDashRepo{spending: spending}
		uc := analytics.NewDashboardUseCase(repo)
		resp, err := uc.GetStats(context.Background(), time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		out := make(map[string]string, len(resp.SpendingBySector))
		for _, s := range resp.SpendingBySector {
			out[s.Name] = s.Color
		}
		return out
	}

	first := colors(spendingAsc)
	second := colors(spendingDesc)

	assert.Equal(t, "#1e40af", first["TI"], "departamento conocido usa la paleta fija")
	assert.Equal(t, first["TI"], second["TI"])
	assert.Equal(t, first["Laboratorio"], second["Laboratorio"],
		"el tono derivado del nombre es el mismo en cualquier posición")
	assert.NotEmpty(t, first["Laboratorio"])
	assert.NotEqual(t, first["TI"], first["Laboratorio"])
}
