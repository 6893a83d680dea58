// Package stockrequest implementa el workflow de solicitudes de productos:
// creación del carrito, separación, atención con decremento atómico de stock
// y cancelación.
package stockrequest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de las solicitudes de stock.
type UseCase struct {
	txRunner    TxRunner
	requestRepo repository.StockRequestRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	authz       *authz.Service
	notifier    Notifier
	recorder    audit.Recorder
}

// NewUseCase construye el caso de uso del workflow de solicitudes.
func NewUseCase(
	txRunner TxRunner,
	requestRepo repository.StockRequestRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	authzService *authz.Service,
	notifier Notifier,
	recorder audit.Recorder,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		authz:       authzService,
		notifier:    notifier,
		recorder:    recorder,
	}
}

// CreateItemInput línea del carrito al crear una solicitud.
type CreateItemInput struct {
	ItemID   string
	Quantity int
}

// CreateInput entrada para Create.
type CreateInput struct {
	Notes string
	Items []CreateItemInput
}

// Create registra una solicitud pending con sus líneas. Valida contra el stock
// visible en ese momento; la validación definitiva ocurre al atender. Notifica
// a los usuarios con acceso al workflow, excepto al propio solicitante.
func (uc *UseCase) Create(ctx context.Context, requesterID string, in CreateInput, now time.Time) (*entity.StockRequest, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "la solicitud debe tener al menos un ítem")
	}

	req := &entity.StockRequest{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		Status:      entity.RequestStatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return nil, domain.NewValidationError("items", "la cantidad de cada ítem debe ser mayor o igual a 1")
		}
		item, err := uc.itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NewValidationError("items", fmt.Sprintf("ítem %s no encontrado", line.ItemID))
		}
		// Foto del stock al crear: el mensaje nombra el ítem para que el
		// solicitante sepa qué línea corregir.
		if line.Quantity > item.Quantity {
			return nil, &domain.InsufficientStockError{
				ItemName:  item.Name,
				ItemCode:  item.Code,
				Available: item.Quantity,
				Requested: line.Quantity,
			}
		}
		req.Items = append(req.Items, entity.StockRequestItem{
			ID:        uuid.New().String(),
			RequestID: req.ID,
			ItemID:    item.ID,
			Quantity:  line.Quantity,
		})
	}

	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	requesterName := requesterID
	if requester, err := uc.userRepo.GetByID(ctx, requesterID); err == nil && requester != nil {
		requesterName = requester.Name
	}
	uc.notifier.NotifyRequestCreated(ctx, req, requesterName)

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       requesterID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceStockRequest,
		ResourceName: requestSummary(req),
	})
	return req, nil
}

// Get devuelve una solicitud. Los usuarios sin acceso al workflow solo pueden
// ver sus propias solicitudes.
func (uc *UseCase) Get(ctx context.Context, actorID, requestID string) (*entity.StockRequest, error) {
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.RequesterID != actorID {
		ok, err := uc.authz.Can(ctx, actorID, entity.CapViewStockRequests)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
	}
	return req, nil
}

// List devuelve solicitudes paginadas. Sin acceso al workflow, el listado se
// restringe a las solicitudes del propio actor.
func (uc *UseCase) List(ctx context.Context, actorID string, filter repository.StockRequestFilter, params repository.ListParams) ([]*entity.StockRequest, int, error) {
	ok, err := uc.authz.Can(ctx, actorID, entity.CapViewStockRequests)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		filter.RequesterID = actorID
	}
	return uc.requestRepo.List(ctx, filter, params)
}

// StartSeparation marca una solicitud pending como en separación: el almacén
// está juntando físicamente los ítems.
func (uc *UseCase) StartSeparation(ctx context.Context, actorID, requestID string, now time.Time) (*entity.StockRequest, error) {
	if err := uc.authz.Require(ctx, actorID, entity.CapUpdate); err != nil {
		return nil, err
	}
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending {
		return nil, &domain.InvalidStateError{Current: string(req.Status), Action: "separar"}
	}
	if err := uc.requestRepo.UpdateStatus(ctx, requestID, entity.RequestStatusSeparation); err != nil {
		return nil, err
	}
	req.Status = entity.RequestStatusSeparation
	req.UpdatedAt = now

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceStockRequest,
		ResourceName: requestSummary(req) + " → " + req.Status.Label(),
	})
	return req, nil
}

// UpdateStatus cambia el estado de una solicitud respetando la tabla de
// transiciones. Repetir el estado actual es un no-op válido. Para atender
// (fulfilled) delega en Fulfill, que mueve el stock.
func (uc *UseCase) UpdateStatus(ctx context.Context, actorID, requestID string, to entity.RequestStatus, now time.Time) (*entity.StockRequest, error) {
	if err := uc.authz.Require(ctx, actorID, entity.CapUpdate); err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	if to == entity.RequestStatusFulfilled {
		return uc.Fulfill(ctx, actorID, requestID, now)
	}

	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status == to {
		return req, nil
	}
	if !req.Status.CanTransition(to) {
		return nil, &domain.InvalidStateError{Current: string(req.Status), Action: "pasar a " + string(to)}
	}
	if err := uc.requestRepo.UpdateStatus(ctx, requestID, to); err != nil {
		return nil, err
	}
	req.Status = to
	req.UpdatedAt = now

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceStockRequest,
		ResourceName: requestSummary(req) + " → " + to.Label(),
	})
	return req, nil
}

// Cancel cancela una solicitud no terminal sin tocar el stock.
func (uc *UseCase) Cancel(ctx context.Context, actorID, requestID string, now time.Time) (*entity.StockRequest, error) {
	return uc.UpdateStatus(ctx, actorID, requestID, entity.RequestStatusCancelled, now)
}

// Fulfill atiende una solicitud pending o en separación: en una sola
// transacción decrementa condicionalmente cada línea, reasigna los ítems al
// departamento del solicitante y asienta un movimiento de retirada por línea.
// Cualquier línea sin saldo revierte todo; la solicitud queda intacta.
func (uc *UseCase) Fulfill(ctx context.Context, actorID, requestID string, now time.Time) (*entity.StockRequest, error) {
	if err := uc.authz.Require(ctx, actorID, entity.CapUpdate); err != nil {
		return nil, err
	}
	req, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.RequestStatusPending && req.Status != entity.RequestStatusSeparation {
		return nil, &domain.InvalidStateError{Current: string(req.Status), Action: "atender"}
	}

	requester, err := uc.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, domain.ErrUserNotFound
	}
	if requester.DepartmentID == nil || *requester.DepartmentID == "" {
		return nil, domain.NewValidationError("department_id", "el solicitante no tiene departamento asignado; no es posible atender la solicitud")
	}
	destDept := *requester.DepartmentID

	err = uc.txRunner.RunFulfillment(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		requestRepo repository.StockRequestRepository,
	) error {
		// El cambio de estado es condicional y va primero: si otra
		// transacción ya atendió la solicitud, aquí se ven 0 filas y se
		// aborta sin tocar el stock. Evita el doble decremento.
		flipped, err := requestRepo.UpdateStatusFrom(ctx, req.ID,
			entity.RequestStatusFulfilled,
			entity.RequestStatusPending, entity.RequestStatusSeparation,
		)
		if err != nil {
			return err
		}
		if !flipped {
			current := string(entity.RequestStatusFulfilled)
			if cur, err := requestRepo.GetByID(ctx, req.ID); err == nil && cur != nil {
				current = string(cur.Status)
			}
			return &domain.InvalidStateError{Current: current, Action: "atender"}
		}
		for _, line := range req.Items {
			ok, err := itemRepo.ApplyWithdrawal(ctx, line.ItemID, line.Quantity, destDept)
			if err != nil {
				return err
			}
			if !ok {
				item, err := itemRepo.GetByID(ctx, line.ItemID)
				if err != nil {
					return err
				}
				name, code := line.ItemID, ""
				available := 0
				if item != nil {
					name, code, available = item.Name, item.Code, item.Quantity
				}
				return &domain.InsufficientStockError{
					ItemName:  name,
					ItemCode:  code,
					Available: available,
					Requested: line.Quantity,
				}
			}
			mov := &entity.Movement{
				ID:           uuid.New().String(),
				ItemID:       line.ItemID,
				UserID:       req.RequesterID,
				DepartmentID: &destDept,
				Type:         entity.MovementTypeWithdrawal,
				Quantity:     line.Quantity,
				MovementDate: now,
				Notes:        fmt.Sprintf("Atención de solicitud de stock #%s", shortID(req.ID)),
				CreatedAt:    now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.Status = entity.RequestStatusFulfilled
	req.UpdatedAt = now

	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceStockRequest,
		ResourceName: requestSummary(req) + " → " + req.Status.Label(),
	})
	return req, nil
}

func requestSummary(req *entity.StockRequest) string {
	return fmt.Sprintf("Solicitud #%s (%d líneas)", shortID(req.ID), len(req.Items))
}

// shortID primeros 8 caracteres del UUID, suficiente para el log humano.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
