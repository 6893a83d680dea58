package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockRequestFilter filtros del listado de solicitudes.
type StockRequestFilter struct {
	// RequesterID limita a las solicitudes del propio usuario; vacío = todas.
	RequesterID string
	Status      entity.RequestStatus
}

// StockRequestRepository puerto de persistencia del workflow de solicitudes.
type StockRequestRepository interface {
	// Create persiste la solicitud y todas sus líneas como una unidad.
	Create(ctx context.Context, request *entity.StockRequest) error
	// GetByID devuelve la solicitud con sus líneas cargadas.
	GetByID(ctx context.Context, id string) (*entity.StockRequest, error)
	UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) error
	// UpdateStatusFrom cambia el estado solo si el actual está en `from`;
	// devuelve false si otra transacción ya lo movió. Es la guarda que evita
	// atender dos veces la misma solicitud bajo concurrencia.
	UpdateStatusFrom(ctx context.Context, id string, to entity.RequestStatus, from ...entity.RequestStatus) (bool, error)
	List(ctx context.Context, filter StockRequestFilter, params ListParams) ([]*entity.StockRequest, int, error)
}
