// Package usecase contiene los casos de uso CRUD de los recursos del almacén.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ItemUseCase CRUD de ítems de inventario. La cantidad solo se muta vía
// movimientos (paquete inventory) o solicitudes (paquete stockrequest).
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	catRepo  repository.CategoryRepository
	movRepo  repository.MovementRepository
	recorder audit.Recorder
}

// NewItemUseCase construye el caso de uso de ítems.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	catRepo repository.CategoryRepository,
	movRepo repository.MovementRepository,
	recorder audit.Recorder,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, catRepo: catRepo, movRepo: movRepo, recorder: recorder}
}

// Create da de alta un ítem con código secuencial asignado por el sistema.
func (uc *ItemUseCase) Create(ctx context.Context, actorID string, req dto.CreateItemRequest, now time.Time) (*entity.InventoryItem, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if req.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
	}
	if req.MinStock < 0 {
		return nil, domain.NewValidationError("min_stock", "el stock mínimo no puede ser negativo")
	}
	status := entity.ItemStatus(req.Status)
	if req.Status == "" {
		status = entity.ItemStatusAvailable
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	if req.CategoryID != "" {
		cat, err := uc.catRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.NewValidationError("category_id", "categoría no encontrada")
		}
	}

	code, err := uc.itemRepo.NextCode(ctx)
	if err != nil {
		return nil, err
	}
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         req.Name,
		Brand:        req.Brand,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		DepartmentID: req.DepartmentID,
		UnitValue:    decimal.NewFromFloat(req.UnitValue),
		Status:       status,
		Quantity:     req.Quantity,
		MinStock:     req.MinStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceItem,
		ResourceName: item.Name,
	})
	return item, nil
}

// Get devuelve un ítem con su historial de movimientos.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*entity.InventoryItem, []*entity.Movement, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return item, movements, nil
}

// Update actualiza los campos descriptivos presentes en la petición.
// La cantidad nunca se edita por aquí.
func (uc *ItemUseCase) Update(ctx context.Context, actorID, id string, req dto.UpdateItemRequest, now time.Time) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domain.NewValidationError("name", "el nombre es obligatorio")
		}
		item.Name = *req.Name
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			cat, err := uc.catRepo.GetByID(ctx, *req.CategoryID)
			if err != nil {
				return nil, err
			}
			if cat == nil {
				return nil, domain.NewValidationError("category_id", "categoría no encontrada")
			}
		}
		item.CategoryID = *req.CategoryID
	}
	if req.DepartmentID != nil {
		item.DepartmentID = req.DepartmentID
	}
	if req.UnitValue != nil {
		item.UnitValue = decimal.NewFromFloat(*req.UnitValue)
	}
	if req.Status != nil {
		status := entity.ItemStatus(*req.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "estado desconocido")
		}
		item.Status = status
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, domain.NewValidationError("min_stock", "el stock mínimo no puede ser negativo")
		}
		item.MinStock = *req.MinStock
	}
	item.UpdatedAt = now

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceItem,
		ResourceName: item.Name,
	})
	return item, nil
}

// Delete elimina un ítem. Sus movimientos históricos se conservan.
func (uc *ItemUseCase) Delete(ctx context.Context, actorID, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionDeleted,
		Resource:     audit.ResourceItem,
		ResourceName: item.Name,
	})
	return nil
}

// List devuelve ítems paginados con búsqueda y filtros.
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter, params repository.ListParams) ([]*entity.InventoryItem, int, error) {
	return uc.itemRepo.List(ctx, filter, params)
}

// Catalog devuelve el catálogo solicitable: ítems disponibles con stock.
func (uc *ItemUseCase) Catalog(ctx context.Context, params repository.ListParams) ([]*entity.InventoryItem, int, error) {
	return uc.itemRepo.List(ctx, repository.ItemFilter{OnlyAvailable: true}, params)
}
