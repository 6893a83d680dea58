package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ItemFilter filtros de igualdad del listado de ítems.
type ItemFilter struct {
	CategoryID string
	Status     entity.ItemStatus
	// OnlyAvailable restringe al catálogo solicitable: quantity > 0 y status available.
	OnlyAvailable bool
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// Las mutaciones de cantidad NO pasan por Update: usan ApplyEntry/ApplyWithdrawal,
// que son updates condicionales atómicos para preservar quantity >= 0 bajo concurrencia.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update persiste los campos descriptivos (no toca quantity).
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter, params ListParams) ([]*entity.InventoryItem, int, error)
	// NextCode devuelve el siguiente código secuencial de 4 dígitos.
	NextCode(ctx context.Context) (string, error)

	// ApplyEntry suma quantity de forma atómica y pasa status in_use -> available
	// cuando la cantidad resultante es > 0.
	ApplyEntry(ctx context.Context, itemID string, quantity int) error
	// ApplyWithdrawal resta quantity solo si el saldo alcanza
	// (UPDATE ... WHERE quantity >= n), reasigna el departamento y pasa el
	// status a in_use cuando la cantidad llega a 0. Devuelve false sin error
	// cuando el saldo era insuficiente.
	ApplyWithdrawal(ctx context.Context, itemID string, quantity int, departmentID string) (bool, error)
}
