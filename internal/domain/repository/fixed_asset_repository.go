package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// FixedAssetFilter filtros del listado de patrimonio.
type FixedAssetFilter struct {
	CategoryID   string
	DepartmentID string
	Status       entity.AssetStatus
}

// FixedAssetRepository puerto de persistencia para FixedAsset (DIP).
type FixedAssetRepository interface {
	Create(ctx context.Context, asset *entity.FixedAsset) error
	GetByID(ctx context.Context, id string) (*entity.FixedAsset, error)
	GetByPatrimonyCode(ctx context.Context, code string) (*entity.FixedAsset, error)
	Update(ctx context.Context, asset *entity.FixedAsset) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter FixedAssetFilter, params ListParams) ([]*entity.FixedAsset, int, error)
}
