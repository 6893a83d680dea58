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

// CategoryUseCase CRUD de categorías. El nombre es único.
type CategoryUseCase struct {
	catRepo  repository.CategoryRepository
	recorder audit.Recorder
}

// NewCategoryUseCase construye el caso de uso de categorías.
func NewCategoryUseCase(catRepo repository.CategoryRepository, recorder audit.Recorder) *CategoryUseCase {
	return &CategoryUseCase{catRepo: catRepo, recorder: recorder}
}

// Create da de alta una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, actorID, name string, now time.Time) (*entity.Category, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	existing, err := uc.catRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("name", "ya existe una categoría con ese nombre")
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.catRepo.Create(ctx, cat); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceCategory,
		ResourceName: cat.Name,
	})
	return cat, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, actorID, id, name string, now time.Time) (*entity.Category, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	cat, err := uc.catRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if other, err := uc.catRepo.GetByName(ctx, name); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.NewValidationError("name", "ya existe una categoría con ese nombre")
	}
	cat.Name = name
	cat.UpdatedAt = now
	if err := uc.catRepo.Update(ctx, cat); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceCategory,
		ResourceName: cat.Name,
	})
	return cat, nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, actorID, id string) error {
	cat, err := uc.catRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	if err := uc.catRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionDeleted,
		Resource:     audit.ResourceCategory,
		ResourceName: cat.Name,
	})
	return nil
}

// List devuelve categorías paginadas.
func (uc *CategoryUseCase) List(ctx context.Context, params repository.ListParams) ([]*entity.Category, int, error) {
	return uc.catRepo.List(ctx, params)
}

// Get devuelve una categoría por ID.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.catRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	return cat, nil
}
