package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// FixedAssetUseCase CRUD del registro patrimonial. La etiqueta se normaliza
// a 5 dígitos con ceros a la izquierda y es única.
type FixedAssetUseCase struct {
	assetRepo repository.FixedAssetRepository
	catRepo   repository.CategoryRepository
	deptRepo  repository.DepartmentRepository
	recorder  audit.Recorder
}

// NewFixedAssetUseCase construye el caso de uso de patrimonio.
func NewFixedAssetUseCase(
	assetRepo repository.FixedAssetRepository,
	catRepo repository.CategoryRepository,
	deptRepo repository.DepartmentRepository,
	recorder audit.Recorder,
) *FixedAssetUseCase {
	return &FixedAssetUseCase{assetRepo: assetRepo, catRepo: catRepo, deptRepo: deptRepo, recorder: recorder}
}

func (uc *FixedAssetUseCase) validateRefs(ctx context.Context, categoryID, departmentID string) error {
	if categoryID != "" {
		cat, err := uc.catRepo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.NewValidationError("category_id", "categoría no encontrada")
		}
	}
	if departmentID != "" {
		dept, err := uc.deptRepo.GetByID(ctx, departmentID)
		if err != nil {
			return err
		}
		if dept == nil {
			return domain.NewValidationError("department_id", "departamento no encontrado")
		}
	}
	return nil
}

func parseAcquisitionDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.NewValidationError("acquisition_date", "fecha inválida; formato esperado YYYY-MM-DD")
	}
	return &t, nil
}

// Create da de alta un bien patrimonial.
func (uc *FixedAssetUseCase) Create(ctx context.Context, actorID string, req dto.FixedAssetRequest, now time.Time) (*entity.FixedAsset, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if req.PatrimonyCode == "" {
		return nil, domain.NewValidationError("patrimony_code", "la etiqueta patrimonial es obligatoria")
	}
	code := entity.NormalizePatrimonyCode(req.PatrimonyCode)
	existing, err := uc.assetRepo.GetByPatrimonyCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("patrimony_code", "ya existe un bien con esa etiqueta")
	}
	status := entity.AssetStatus(req.Status)
	if req.Status == "" {
		status = entity.AssetStatusActive
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	if err := uc.validateRefs(ctx, req.CategoryID, req.DepartmentID); err != nil {
		return nil, err
	}
	acqDate, err := parseAcquisitionDate(req.AcquisitionDate)
	if err != nil {
		return nil, err
	}

	asset := &entity.FixedAsset{
		ID:               uuid.New().String(),
		PatrimonyCode:    code,
		SerialNumber:     req.SerialNumber,
		Name:             req.Name,
		Brand:            req.Brand,
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		DepartmentID:     req.DepartmentID,
		Status:           status,
		AcquisitionDate:  acqDate,
		AcquisitionValue: req.AcquisitionValue,
		InvoiceNumber:    req.InvoiceNumber,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceAsset,
		ResourceName: asset.Name + " (" + asset.PatrimonyCode + ")",
	})
	return asset, nil
}

// Update reemplaza los campos del bien. La etiqueta puede cambiar si la nueva
// sigue siendo única.
func (uc *FixedAssetUseCase) Update(ctx context.Context, actorID, id string, req dto.FixedAssetRequest, now time.Time) (*entity.FixedAsset, error) {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if req.PatrimonyCode != "" {
		code := entity.NormalizePatrimonyCode(req.PatrimonyCode)
		if code != asset.PatrimonyCode {
			other, err := uc.assetRepo.GetByPatrimonyCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, domain.NewValidationError("patrimony_code", "ya existe un bien con esa etiqueta")
			}
			asset.PatrimonyCode = code
		}
	}
	if req.Status != "" {
		status := entity.AssetStatus(req.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "estado desconocido")
		}
		asset.Status = status
	}
	if err := uc.validateRefs(ctx, req.CategoryID, req.DepartmentID); err != nil {
		return nil, err
	}
	acqDate, err := parseAcquisitionDate(req.AcquisitionDate)
	if err != nil {
		return nil, err
	}
	if acqDate != nil {
		asset.AcquisitionDate = acqDate
	}

	asset.Name = req.Name
	asset.SerialNumber = req.SerialNumber
	asset.Brand = req.Brand
	asset.Description = req.Description
	if req.CategoryID != "" {
		asset.CategoryID = req.CategoryID
	}
	if req.DepartmentID != "" {
		asset.DepartmentID = req.DepartmentID
	}
	if req.AcquisitionValue != nil {
		asset.AcquisitionValue = req.AcquisitionValue
	}
	asset.InvoiceNumber = req.InvoiceNumber
	asset.UpdatedAt = now

	if err := uc.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceAsset,
		ResourceName: asset.Name + " (" + asset.PatrimonyCode + ")",
	})
	return asset, nil
}

// Delete elimina un bien patrimonial.
func (uc *FixedAssetUseCase) Delete(ctx context.Context, actorID, id string) error {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	if err := uc.assetRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionDeleted,
		Resource:     audit.ResourceAsset,
		ResourceName: asset.Name + " (" + asset.PatrimonyCode + ")",
	})
	return nil
}

// List devuelve bienes paginados con búsqueda y filtros.
func (uc *FixedAssetUseCase) List(ctx context.Context, filter repository.FixedAssetFilter, params repository.ListParams) ([]*entity.FixedAsset, int, error) {
	return uc.assetRepo.List(ctx, filter, params)
}

// Get devuelve un bien por ID.
func (uc *FixedAssetUseCase) Get(ctx context.Context, id string) (*entity.FixedAsset, error) {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return asset, nil
}

// ImportRow fila ya extraída de una planilla de importación. Estado, fecha y
// valor llegan como texto crudo; la normalización ocurre al importar.
type ImportRow struct {
	Line             int // fila de la planilla, para mensajes de error
	PatrimonyCode    string
	SerialNumber     string
	Name             string
	Brand            string
	Description      string
	CategoryName     string
	DeptName         string
	Status           string
	AcquisitionDate  string // YYYY-MM-DD o el texto original de la celda
	AcquisitionValue string
	InvoiceNumber    string
}

// ImportResult resumen de la importación.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
}

// Import incorpora filas de planilla: resuelve categoría y departamento por
// nombre (creándolos si faltan), normaliza etiquetas y salta duplicados sin
// abortar el resto.
func (uc *FixedAssetUseCase) Import(ctx context.Context, actorID string, rows []ImportRow, now time.Time) (*ImportResult, error) {
	result := &ImportResult{}
	for _, row := range rows {
		if row.Name == "" || row.PatrimonyCode == "" {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(row.Line, "nombre y etiqueta patrimonial son obligatorios"))
			continue
		}
		code := entity.NormalizePatrimonyCode(row.PatrimonyCode)
		existing, err := uc.assetRepo.GetByPatrimonyCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(row.Line, "etiqueta duplicada: "+code))
			continue
		}

		categoryID, err := uc.resolveCategory(ctx, row.CategoryName, now)
		if err != nil {
			return nil, err
		}
		departmentID, err := uc.resolveDepartment(ctx, row.DeptName, now)
		if err != nil {
			return nil, err
		}

		asset := &entity.FixedAsset{
			ID:               uuid.New().String(),
			PatrimonyCode:    code,
			SerialNumber:     row.SerialNumber,
			Name:             row.Name,
			Brand:            row.Brand,
			Description:      row.Description,
			CategoryID:       categoryID,
			DepartmentID:     departmentID,
			Status:           normalizeImportStatus(row.Status),
			AcquisitionDate:  parseImportDate(row.AcquisitionDate),
			AcquisitionValue: parseImportValue(row.AcquisitionValue),
			InvoiceNumber:    row.InvoiceNumber,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := uc.assetRepo.Create(ctx, asset); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(row.Line, err.Error()))
			continue
		}
		result.Imported++
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceAsset,
		ResourceName: importSummary(result),
	})
	return result, nil
}

func (uc *FixedAssetUseCase) resolveCategory(ctx context.Context, name string, now time.Time) (string, error) {
	if name == "" {
		return "", nil
	}
	cat, err := uc.catRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if cat != nil {
		return cat.ID, nil
	}
	cat = &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.catRepo.Create(ctx, cat); err != nil {
		return "", err
	}
	return cat.ID, nil
}

func (uc *FixedAssetUseCase) resolveDepartment(ctx context.Context, name string, now time.Time) (string, error) {
	if name == "" {
		return "", nil
	}
	dept, err := uc.deptRepo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if dept != nil {
		return dept.ID, nil
	}
	code, err := uc.deptRepo.NextCode(ctx)
	if err != nil {
		return "", err
	}
	dept = &entity.Department{ID: uuid.New().String(), Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.deptRepo.Create(ctx, dept); err != nil {
		return "", err
	}
	return dept.ID, nil
}

// normalizeImportStatus traduce el estado libre de la planilla a uno conocido.
// Vacío o irreconocible queda como baja.
func normalizeImportStatus(s string) entity.AssetStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activo", "ativo", "active", "1", "si", "sim":
		return entity.AssetStatusActive
	case "mantenimiento", "manutencao", "maintenance":
		return entity.AssetStatusMaintenance
	case "reservado", "reserved":
		return entity.AssetStatusReserved
	}
	return entity.AssetStatusWrittenOff
}

// parseImportDate acepta YYYY-MM-DD o DD/MM/YYYY; una fecha ilegible queda en
// nil sin abortar la fila.
func parseImportDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseImportValue limpia símbolos de moneda y acepta coma decimal.
func parseImportValue(s string) *decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}

func rowError(line int, msg string) string {
	return "Fila " + strconv.Itoa(line) + ": " + msg
}

func importSummary(r *ImportResult) string {
	return "Importación de patrimonio: " + strconv.Itoa(r.Imported) + " incorporados, " + strconv.Itoa(r.Skipped) + " saltados"
}
