package stockrequest

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, entregando los repositorios
// ligados a esa transacción. Si fn devuelve error se hace rollback completo.
type TxRunner interface {
	RunFulfillment(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		requestRepo repository.StockRequestRepository,
	) error) error
}

// Notifier reparte notificaciones a los usuarios interesados. Los fallos de
// notificación no deben abortar la operación que los origina.
type Notifier interface {
	NotifyRequestCreated(ctx context.Context, req *entity.StockRequest, requesterName string)
}
