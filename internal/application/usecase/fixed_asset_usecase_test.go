package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	assets map[string]*entity.FixedAsset // por ID
}

func (r *fakeAssetRepo) Create(_ context.Context, asset *entity.FixedAsset) error {
	cp := *asset
	r.assets[asset.ID] = &cp
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id string) (*entity.FixedAsset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	cp := *asset
	return &cp, nil
}

func (r *fakeAssetRepo) GetByPatrimonyCode(_ context.Context, code string) (*entity.FixedAsset, error) {
	for _, asset := range r.assets {
		if asset.PatrimonyCode == code {
			cp := *asset
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssetRepo) Update(_ context.Context, asset *entity.FixedAsset) error {
	cp := *asset
	r.assets[asset.ID] = &cp
	return nil
}

func (r *fakeAssetRepo) Delete(_ context.Context, id string) error {
	delete(r.assets, id)
	return nil
}

func (r *fakeAssetRepo) List(_ context.Context, _ repository.FixedAssetFilter, _ repository.ListParams) ([]*entity.FixedAsset, int, error) {
	out := make([]*entity.FixedAsset, 0, len(r.assets))
	for _, asset := range r.assets {
		cp := *asset
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type fakeCatRepo struct {
	cats map[string]*entity.Category // por nombre
}

func (r *fakeCatRepo) Create(_ context.Context, cat *entity.Category) error {
	r.cats[cat.Name] = cat
	return nil
}

func (r *fakeCatRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	for _, cat := range r.cats {
		if cat.ID == id {
			return cat, nil
		}
	}
	return nil, nil
}

func (r *fakeCatRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	return r.cats[name], nil
}

func (r *fakeCatRepo) Update(_ context.Context, cat *entity.Category) error {
	r.cats[cat.Name] = cat
	return nil
}

func (r *fakeCatRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *fakeCatRepo) List(_ context.Context, _ repository.ListParams) ([]*entity.Category, int, error) {
	return nil, 0, nil
}

type fakeDeptRepo struct {
	depts map[string]*entity.Department // por nombre
}

func (r *fakeDeptRepo) Create(_ context.Context, dept *entity.Department) error {
	r.depts[dept.Name] = dept
	return nil
}

func (r *fakeDeptRepo) GetByID(_ context.Context, id string) (*entity.Department, error) {
	for _, dept := range r.depts {
		if dept.ID == id {
			return dept, nil
		}
	}
	return nil, nil
}

func (r *fakeDeptRepo) GetByName(_ context.Context, name string) (*entity.Department, error) {
	return r.depts[name], nil
}

func (r *fakeDeptRepo) Update(_ context.Context, dept *entity.Department) error {
	r.depts[dept.Name] = dept
	return nil
}

func (r *fakeDeptRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *fakeDeptRepo) List(_ context.Context, _ repository.ListParams) ([]*entity.Department, int, error) {
	return nil, 0, nil
}

func (r *fakeDeptRepo) NextCode(_ context.Context) (string, error) { return "0001", nil }

type noopRecorder struct{}

func (noopRecorder) Record(_ context.Context, _ audit.Entry) {}

func newAssetFixture() (*usecase.FixedAssetUseCase, *fakeAssetRepo) {
	assetRepo := &fakeAssetRepo{assets: map[string]*entity.FixedAsset{}}
	uc := usecase.NewFixedAssetUseCase(
		assetRepo,
		&fakeCatRepo{cats: map[string]*entity.Category{}},
		&fakeDeptRepo{depts: map[string]*entity.Department{}},
		noopRecorder{},
	)
	return uc, assetRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de planilla
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_PersisteEstadoFechaValorYFactura(t *testing.T) {
	uc, assetRepo := newAssetFixture()
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)

	rows := []usecase.ImportRow{{
		Line:             2,
		PatrimonyCode:    "77",
		Name:             "Notebook Dell",
		CategoryName:     "Informática",
		DeptName:         "TI",
		Status:           "Mantenimiento",
		AcquisitionDate:  "2023-05-10",
		AcquisitionValue: "$ 1234,56",
		InvoiceNumber:    "NF-889",
	}}

	result, err := uc.Import(context.Background(), "admin-1", rows, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, result.Errors)

	created, err := assetRepo.GetByPatrimonyCode(context.Background(), "00077")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.AssetStatusMaintenance, created.Status)
	require.NotNil(t, created.AcquisitionDate)
	assert.Equal(t, time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC), *created.AcquisitionDate)
	require.NotNil(t, created.AcquisitionValue)
	assert.True(t, created.AcquisitionValue.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "NF-889", created.InvoiceNumber)
}

func TestImport_EstadoDesconocidoQuedaComoBaja(t *testing.T) {
	uc, assetRepo := newAssetFixture()
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)

	rows := []usecase.ImportRow{
		{Line: 2, PatrimonyCode: "10", Name: "Silla", Status: "quién sabe"},
		{Line: 3, PatrimonyCode: "11", Name: "Mesa"}, // sin columna de estado
		{Line: 4, PatrimonyCode: "12", Name: "Proyector", Status: "Activo"},
	}

	result, err := uc.Import(context.Background(), "admin-1", rows, now)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)

	silla, _ := assetRepo.GetByPatrimonyCode(context.Background(), "00010")
	mesa, _ := assetRepo.GetByPatrimonyCode(context.Background(), "00011")
	proyector, _ := assetRepo.GetByPatrimonyCode(context.Background(), "00012")
	require.NotNil(t, silla)
	require.NotNil(t, mesa)
	require.NotNil(t, proyector)
	assert.Equal(t, entity.AssetStatusWrittenOff, silla.Status)
	assert.Equal(t, entity.AssetStatusWrittenOff, mesa.Status)
	assert.Equal(t, entity.AssetStatusActive, proyector.Status)
}

func TestImport_FechaYValorIlegiblesQuedanVacios(t *testing.T) {
	uc, assetRepo := newAssetFixture()
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)

	rows := []usecase.ImportRow{{
		Line:             2,
		PatrimonyCode:    "20",
		Name:             "Impresora",
		Status:           "activo",
		AcquisitionDate:  "pronto",
		AcquisitionValue: "a confirmar",
	}}

	result, err := uc.Import(context.Background(), "admin-1", rows, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported, "la fila se importa aunque fecha y valor no se entiendan")

	created, _ := assetRepo.GetByPatrimonyCode(context.Background(), "00020")
	require.NotNil(t, created)
	assert.Nil(t, created.AcquisitionDate)
	assert.Nil(t, created.AcquisitionValue)
}

func TestImport_EtiquetaDuplicadaSeSaltaSinAbortar(t *testing.T) {
	uc, assetRepo := newAssetFixture()
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)

	rows := []usecase.ImportRow{
		{Line: 2, PatrimonyCode: "30", Name: "Monitor", Status: "activo"},
		{Line: 3, PatrimonyCode: "00030", Name: "Monitor repetido", Status: "activo"},
		{Line: 4, PatrimonyCode: "31", Name: "Teclado", Status: "activo"},
	}

	result, err := uc.Import(context.Background(), "admin-1", rows, now)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Fila 3")
	assert.Len(t, assetRepo.assets, 2)
}
