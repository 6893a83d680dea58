package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DepartmentUseCase CRUD de departamentos. El código secuencial lo asigna el
// sistema; el nombre es único.
type DepartmentUseCase struct {
	deptRepo repository.DepartmentRepository
	recorder audit.Recorder
}

// NewDepartmentUseCase construye el caso de uso de departamentos.
func NewDepartmentUseCase(deptRepo repository.DepartmentRepository, recorder audit.Recorder) *DepartmentUseCase {
	return &DepartmentUseCase{deptRepo: deptRepo, recorder: recorder}
}

// Create da de alta un departamento con código secuencial.
func (uc *DepartmentUseCase) Create(ctx context.Context, actorID, name string, now time.Time) (*entity.Department, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	existing, err := uc.deptRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("name", "ya existe un departamento con ese nombre")
	}
	code, err := uc.deptRepo.NextCode(ctx)
	if err != nil {
		return nil, err
	}
	dept := &entity.Department{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceDepartment,
		ResourceName: dept.Name,
	})
	return dept, nil
}

// Update renombra un departamento. El código nunca cambia.
func (uc *DepartmentUseCase) Update(ctx context.Context, actorID, id, name string, now time.Time) (*entity.Department, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	dept, err := uc.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	if other, err := uc.deptRepo.GetByName(ctx, name); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.NewValidationError("name", "ya existe un departamento con ese nombre")
	}
	dept.Name = name
	dept.UpdatedAt = now
	if err := uc.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceDepartment,
		ResourceName: dept.Name,
	})
	return dept, nil
}

// Delete elimina un departamento.
func (uc *DepartmentUseCase) Delete(ctx context.Context, actorID, id string) error {
	dept, err := uc.deptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if dept == nil {
		return domain.ErrNotFound
	}
	if err := uc.deptRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionDeleted,
		Resource:     audit.ResourceDepartment,
		ResourceName: dept.Name,
	})
	return nil
}

// List devuelve departamentos paginados.
func (uc *DepartmentUseCase) List(ctx context.Context, params repository.ListParams) ([]*entity.Department, int, error) {
	return uc.deptRepo.List(ctx, params)
}

// Get devuelve un departamento por ID.
func (uc *DepartmentUseCase) Get(ctx context.Context, id string) (*entity.Department, error) {
	dept, err := uc.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrNotFound
	}
	return dept, nil
}
