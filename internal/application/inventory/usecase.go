// Package inventory contiene los casos de uso de mutación directa del stock:
// entradas y retiradas fuera del workflow de solicitudes.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase registra entradas y retiradas de forma transaccional. La cantidad
// se muta con updates condicionales atómicos; nunca read-then-write.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	deptRepo repository.DepartmentRepository
	recorder audit.Recorder
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	deptRepo repository.DepartmentRepository,
	recorder audit.Recorder,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		userRepo: userRepo,
		deptRepo: deptRepo,
		recorder: recorder,
	}
}

// EntryInput entrada para RegisterEntry.
type EntryInput struct {
	ItemID       string
	Quantity     int
	Notes        string
	MovementDate time.Time // cero = now
}

// RegisterEntry asienta una entrada: crea el Movement(entry) y suma la
// cantidad al ítem en una sola transacción. Un ítem in_use con cantidad
// resultante > 0 vuelve a available. actorID y now son explícitos.
func (uc *UseCase) RegisterEntry(ctx context.Context, actorID string, in EntryInput, now time.Time) (*entity.Movement, error) {
	if in.Quantity < 1 {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser un entero mayor o igual a 1")
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	movementDate := in.MovementDate
	if movementDate.IsZero() {
		movementDate = now
	}
	mov := &entity.Movement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		UserID:       actorID,
		DepartmentID: nil, // las entradas no tienen destino
		Type:         entity.MovementTypeEntry,
		Quantity:     in.Quantity,
		MovementDate: movementDate,
		Notes:        in.Notes,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		if err := itemRepo.ApplyEntry(ctx, item.ID, in.Quantity); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceMovement,
		ResourceName: movementSummary(mov, item),
	})
	return mov, nil
}

// WithdrawInput entrada para RegisterWithdrawal.
type WithdrawInput struct {
	ItemID       string
	UserID       string // receptor de la retirada
	DepartmentID string // destino
	Quantity     int    // por defecto 1
	Notes        string
	MovementDate time.Time // cero = now
}

// RegisterWithdrawal asienta una retirada: decremento condicional atómico
// (falla con InsufficientStockError si el saldo no alcanza), reasignación del
// departamento del ítem, paso a in_use al llegar a 0 y Movement(withdrawal),
// todo en una transacción.
func (uc *UseCase) RegisterWithdrawal(ctx context.Context, actorID string, in WithdrawInput, now time.Time) (*entity.Movement, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return nil, domain.NewValidationError("quantity", "la cantidad debe ser un entero mayor o igual a 1")
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	receiver, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, domain.NewValidationError("user_id", "usuario no encontrado")
	}
	dept, err := uc.deptRepo.GetByID(ctx, in.DepartmentID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.NewValidationError("department_id", "departamento no encontrado")
	}

	movementDate := in.MovementDate
	if movementDate.IsZero() {
		movementDate = now
	}
	mov := &entity.Movement{
		ID:           uuid.New().String(),
		ItemID:       item.ID,
		UserID:       in.UserID,
		DepartmentID: &dept.ID,
		Type:         entity.MovementTypeWithdrawal,
		Quantity:     in.Quantity,
		MovementDate: movementDate,
		Notes:        in.Notes,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		ok, err := itemRepo.ApplyWithdrawal(ctx, item.ID, in.Quantity, dept.ID)
		if err != nil {
			return err
		}
		if !ok {
			// Releer dentro de la tx para reportar el saldo vigente.
			current, err := itemRepo.GetByID(ctx, item.ID)
			if err != nil {
				return err
			}
			available := 0
			if current != nil {
				available = current.Quantity
			}
			return &domain.InsufficientStockError{
				ItemName:  item.Name,
				ItemCode:  item.Code,
				Available: available,
				Requested: in.Quantity,
			}
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceMovement,
		ResourceName: movementSummary(mov, item),
	})
	return mov, nil
}

func movementSummary(m *entity.Movement, item *entity.InventoryItem) string {
	return fmt.Sprintf("%s · %d un. · %s", m.Type.Label(), m.Quantity, item.Name)
}
