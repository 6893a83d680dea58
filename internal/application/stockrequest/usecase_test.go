package stockrequest_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/audit"
	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/application/stockrequest"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El TxRunner falso toma una foto de los almacenes antes de ejecutar la
// función y la restaura si falla, imitando el rollback de la transacción
// real de PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	existing, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	qty := existing.Quantity
	cp := *item
	cp.Quantity = qty // Update nunca toca la cantidad
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, _ repository.ItemFilter, _ repository.ListParams) ([]*entity.InventoryItem, int, error) {
	out := make([]*entity.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeItemRepo) NextCode(_ context.Context) (string, error) { return "0001", nil }

func (r *fakeItemRepo) ApplyEntry(_ context.Context, itemID string, quantity int) error {
	item, ok := r.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity += quantity
	if item.Status == entity.ItemStatusInUse && item.Quantity > 0 {
		item.Status = entity.ItemStatusAvailable
	}
	return nil
}

func (r *fakeItemRepo) ApplyWithdrawal(_ context.Context, itemID string, quantity int, departmentID string) (bool, error) {
	item, ok := r.items[itemID]
	if !ok || item.Quantity < quantity {
		return false, nil
	}
	item.Quantity -= quantity
	item.DepartmentID = &departmentID
	if item.Quantity == 0 {
		item.Status = entity.ItemStatusInUse
	}
	return true, nil
}

func (r *fakeItemRepo) snapshot() map[string]*entity.InventoryItem {
	snap := make(map[string]*entity.InventoryItem, len(r.items))
	for id, item := range r.items {
		cp := *item
		snap[id] = &cp
	}
	return snap
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.UserFilter, _ repository.ListParams) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) NextCode(_ context.Context) (string, error) { return "0001", nil }

func (r *fakeUserRepo) ListIDsWithCapability(_ context.Context, _ entity.Capability) ([]string, error) {
	return nil, nil
}

type fakeRoleRepo struct {
	byUser map[string]*entity.Role
}

func (r *fakeRoleRepo) Create(_ context.Context, _ *entity.Role) error { return nil }
func (r *fakeRoleRepo) GetByID(_ context.Context, _ string) (*entity.Role, error) {
	return nil, nil
}
func (r *fakeRoleRepo) GetByName(_ context.Context, _ string) (*entity.Role, error) {
	return nil, nil
}
func (r *fakeRoleRepo) GetByUser(_ context.Context, userID string) (*entity.Role, error) {
	return r.byUser[userID], nil
}
func (r *fakeRoleRepo) Update(_ context.Context, _ *entity.Role) error { return nil }
func (r *fakeRoleRepo) Delete(_ context.Context, _ string) error       { return nil }
func (r *fakeRoleRepo) List(_ context.Context) ([]*entity.Role, error) { return nil, nil }
func (r *fakeRoleRepo) CountUsers(_ context.Context, _ string) (int, error) {
	return 0, nil
}

type fakeRequestRepo struct {
	requests   map[string]*entity.StockRequest
	lastFilter repository.StockRequestFilter
}

func (r *fakeRequestRepo) Create(_ context.Context, req *entity.StockRequest) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (*entity.StockRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status entity.RequestStatus) error {
	req, ok := r.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	return nil
}

func (r *fakeRequestRepo) UpdateStatusFrom(_ context.Context, id string, to entity.RequestStatus, from ...entity.RequestStatus) (bool, error) {
	req, ok := r.requests[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if req.Status == s {
			req.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) List(_ context.Context, filter repository.StockRequestFilter, _ repository.ListParams) ([]*entity.StockRequest, int, error) {
	r.lastFilter = filter
	out := make([]*entity.StockRequest, 0)
	for _, req := range r.requests {
		if filter.RequesterID != "" && req.RequesterID != filter.RequesterID {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRequestRepo) statuses() map[string]entity.RequestStatus {
	snap := make(map[string]entity.RequestStatus, len(r.requests))
	for id, req := range r.requests {
		snap[id] = req.Status
	}
	return snap
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, _ string) (*entity.Movement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context, _ repository.MovementFilter, _ repository.ListParams) ([]*entity.Movement, int, error) {
	return r.movements, len(r.movements), nil
}

func (r *fakeMovementRepo) ListByItem(_ context.Context, _ string) ([]*entity.Movement, error) {
	return nil, nil
}

// fakeTxRunner ejecuta la función contra los fakes y revierte todos los
// cambios si falla, como lo haría la transacción real. El gancho `before`
// corre justo antes de abrir la transacción y permite imitar a una atención
// concurrente que confirma primero.
type fakeTxRunner struct {
	itemRepo    *fakeItemRepo
	movRepo     *fakeMovementRepo
	requestRepo *fakeRequestRepo
	before      func()
}

func (t *fakeTxRunner) RunFulfillment(_ context.Context, fn func(repository.ItemRepository, repository.MovementRepository, repository.StockRequestRepository) error) error {
	if t.before != nil {
		t.before()
	}
	itemSnap := t.itemRepo.snapshot()
	movCount := len(t.movRepo.movements)
	statusSnap := t.requestRepo.statuses()

	if err := fn(t.itemRepo, t.movRepo, t.requestRepo); err != nil {
		t.itemRepo.items = itemSnap
		t.movRepo.movements = t.movRepo.movements[:movCount]
		for id, status := range statusSnap {
			t.requestRepo.requests[id].Status = status
		}
		return err
	}
	return nil
}

type fakeNotifier struct {
	requests   []*entity.StockRequest
	requesters []string
}

func (n *fakeNotifier) NotifyRequestCreated(_ context.Context, req *entity.StockRequest, requesterName string) {
	n.requests = append(n.requests, req)
	n.requesters = append(n.requesters, requesterName)
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (r *fakeRecorder) Record(_ context.Context, e audit.Entry) {
	r.entries = append(r.entries, e)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	requesterID = "00000000-0000-0000-0000-0000000000aa"
	almacenID   = "00000000-0000-0000-0000-0000000000bb" // actor con acceso al workflow
	viewerID    = "00000000-0000-0000-0000-0000000000cc" // sin capacidades de workflow
	deptID      = "00000000-0000-0000-0000-0000000000d1"
	itemTornID  = "00000000-0000-0000-0000-000000000e01"
	itemCableID = "00000000-0000-0000-0000-000000000e02"
)

type fixture struct {
	uc          *stockrequest.UseCase
	tx          *fakeTxRunner
	itemRepo    *fakeItemRepo
	userRepo    *fakeUserRepo
	movRepo     *fakeMovementRepo
	requestRepo *fakeRequestRepo
	notifier    *fakeNotifier
	recorder    *fakeRecorder
	now         time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dept := deptID

	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		requesterID: {ID: requesterID, Name: "Juana Solicita", Status: entity.UserStatusActive, DepartmentID: &dept},
		almacenID:   {ID: almacenID, Name: "Pedro Almacén", Status: entity.UserStatusActive},
		viewerID:    {ID: viewerID, Name: "Vito Visualiza", Status: entity.UserStatusActive},
	}}
	roleRepo := &fakeRoleRepo{byUser: map[string]*entity.Role{
		requesterID: {ID: "r1", Name: "Visualizador", Capabilities: []entity.Capability{entity.CapRequestProducts}},
		almacenID:   {ID: "r2", Name: "Almacenero", Capabilities: []entity.Capability{entity.CapViewStockRequests, entity.CapUpdate}},
		viewerID:    {ID: "r1", Name: "Visualizador", Capabilities: []entity.Capability{entity.CapRequestProducts}},
	}}
	itemRepo := &fakeItemRepo{items: map[string]*entity.InventoryItem{
		itemTornID:  {ID: itemTornID, Code: "0001", Name: "Tornillos", Quantity: 10, Status: entity.ItemStatusAvailable},
		itemCableID: {ID: itemCableID, Code: "0002", Name: "Cable UTP", Quantity: 3, Status: entity.ItemStatusAvailable},
	}}
	movRepo := &fakeMovementRepo{}
	requestRepo := &fakeRequestRepo{requests: map[string]*entity.StockRequest{}}
	notifier := &fakeNotifier{}
	recorder := &fakeRecorder{}

	tx := &fakeTxRunner{itemRepo: itemRepo, movRepo: movRepo, requestRepo: requestRepo}
	uc := stockrequest.NewUseCase(
		tx,
		requestRepo,
		itemRepo,
		userRepo,
		authz.NewService(userRepo, roleRepo),
		notifier,
		recorder,
	)
	return &fixture{
		uc:          uc,
		tx:          tx,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		movRepo:     movRepo,
		requestRepo: requestRepo,
		notifier:    notifier,
		recorder:    recorder,
		now:         time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) crearSolicitud(t *testing.T, lines ...stockrequest.CreateItemInput) *entity.StockRequest {
	t.Helper()
	req, err := f.uc.Create(context.Background(), requesterID, stockrequest.CreateInput{Items: lines}, f.now)
	require.NoError(t, err)
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SolicitudValida(t *testing.T) {
	f := newFixture(t)

	req := f.crearSolicitud(t,
		stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 4},
		stockrequest.CreateItemInput{ItemID: itemCableID, Quantity: 1},
	)

	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Len(t, req.Items, 2)
	assert.Equal(t, requesterID, req.RequesterID)

	// Crear no mueve stock: eso ocurre recién al atender.
	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	assert.Equal(t, 10, torn.Quantity, "crear la solicitud no debe descontar stock")

	// Se notifica con el nombre del solicitante resuelto.
	require.Len(t, f.notifier.requests, 1)
	assert.Equal(t, "Juana Solicita", f.notifier.requesters[0])
}

func TestCreate_SinItems(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), requesterID, stockrequest.CreateInput{}, f.now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CantidadCero(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), requesterID, stockrequest.CreateInput{
		Items: []stockrequest.CreateItemInput{{ItemID: itemTornID, Quantity: 0}},
	}, f.now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ItemInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), requesterID, stockrequest.CreateInput{
		Items: []stockrequest.CreateItemInput{{ItemID: "no-existe", Quantity: 1}},
	}, f.now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_StockInsuficienteNombraElItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), requesterID, stockrequest.CreateInput{
		Items: []stockrequest.CreateItemInput{{ItemID: itemCableID, Quantity: 5}},
	}, f.now)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Cable UTP", stockErr.ItemName)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
}

// Ida y vuelta: las líneas recuperadas coinciden, como conjunto, con las
// creadas — mismo (ítem, cantidad), sin importar el orden.
func TestCreateYGet_LineasIdaYVuelta(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t,
		stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 4},
		stockrequest.CreateItemInput{ItemID: itemCableID, Quantity: 1},
	)

	got, err := f.uc.Get(context.Background(), requesterID, req.ID)
	require.NoError(t, err)

	type line struct {
		ItemID   string
		Quantity int
	}
	have := make([]line, 0, len(got.Items))
	for _, it := range got.Items {
		have = append(have, line{it.ItemID, it.Quantity})
	}
	assert.ElementsMatch(t,
		[]line{{itemTornID, 4}, {itemCableID, 1}},
		have,
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get y List — visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_PropietarioSiempreVe(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	got, err := f.uc.Get(context.Background(), requesterID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)
}

func TestGet_AjenoSinWorkflowProhibido(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	_, err := f.uc.Get(context.Background(), viewerID, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGet_AjenoConWorkflowVe(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	got, err := f.uc.Get(context.Background(), almacenID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)
}

func TestGet_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Get(context.Background(), requesterID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_SinWorkflowSoloVeLasPropias(t *testing.T) {
	f := newFixture(t)
	f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	_, _, err := f.uc.List(context.Background(), viewerID, repository.StockRequestFilter{}, repository.ListParams{Page: 1, PerPage: 15})
	require.NoError(t, err)
	assert.Equal(t, viewerID, f.requestRepo.lastFilter.RequesterID,
		"el filtro debe forzarse al propio actor")
}

func TestList_ConWorkflowVeTodas(t *testing.T) {
	f := newFixture(t)
	f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	_, _, err := f.uc.List(context.Background(), almacenID, repository.StockRequestFilter{}, repository.ListParams{Page: 1, PerPage: 15})
	require.NoError(t, err)
	assert.Empty(t, f.requestRepo.lastFilter.RequesterID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestStartSeparation_DesdePending(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})

	got, err := f.uc.StartSeparation(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusSeparation, got.Status)
}

func TestStartSeparation_SoloDesdePending(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})
	_, err := f.uc.StartSeparation(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)

	_, err = f.uc.StartSeparation(context.Background(), almacenID, req.ID, f.now)
	var stateErr *domain.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

func TestStartSeparation_SinWorkflowProhibido(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})

	_, err := f.uc.StartSeparation(context.Background(), viewerID, req.ID, f.now)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})

	_, err := f.uc.UpdateStatus(context.Background(), almacenID, req.ID, "approved", f.now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_MismoEstadoEsNoOp(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})

	got, err := f.uc.UpdateStatus(context.Background(), almacenID, req.ID, entity.RequestStatusPending, f.now)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, got.Status)
}

func TestUpdateStatus_SeparationVuelveAPending(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})
	_, err := f.uc.StartSeparation(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)

	got, err := f.uc.UpdateStatus(context.Background(), almacenID, req.ID, entity.RequestStatusPending, f.now)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, got.Status)
}

func TestCancel_NoMueveStock(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 4})

	got, err := f.uc.Cancel(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusCancelled, got.Status)

	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	assert.Equal(t, 10, torn.Quantity)
	assert.Empty(t, f.movRepo.movements)
}

func TestCancel_SolicitudAtendidaNoSeCancela(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})
	_, err := f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), almacenID, req.ID, f.now)
	var stateErr *domain.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fulfill — atención atómica
// ──────────────────────────────────────────────────────────────────────────────

func TestFulfill_DescuentaYAsientaMovimientos(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t,
		stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 4},
		stockrequest.CreateItemInput{ItemID: itemCableID, Quantity: 3},
	)

	got, err := f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusFulfilled, got.Status)

	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	cable, _ := f.itemRepo.GetByID(context.Background(), itemCableID)
	assert.Equal(t, 6, torn.Quantity)
	assert.Equal(t, 0, cable.Quantity)
	assert.Equal(t, entity.ItemStatusInUse, cable.Status,
		"el ítem que llega a 0 pasa a in_use")
	require.NotNil(t, torn.DepartmentID)
	assert.Equal(t, deptID, *torn.DepartmentID,
		"los ítems se reasignan al departamento del solicitante")

	require.Len(t, f.movRepo.movements, 2)
	for _, mov := range f.movRepo.movements {
		assert.Equal(t, entity.MovementTypeWithdrawal, mov.Type)
		assert.Equal(t, requesterID, mov.UserID, "el movimiento registra al solicitante como receptor")
		require.NotNil(t, mov.DepartmentID)
		assert.Equal(t, deptID, *mov.DepartmentID)
		assert.Contains(t, mov.Notes, "Atención de solicitud de stock #")
	}
}

func TestFulfill_DesdeSeparacion(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})
	_, err := f.uc.StartSeparation(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)

	got, err := f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusFulfilled, got.Status)
}

func TestFulfill_LineaSinSaldoRevierteTodo(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t,
		stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 4},
		stockrequest.CreateItemInput{ItemID: itemCableID, Quantity: 2},
	)

	// Otro consumo deja corta la segunda línea después de crear la solicitud.
	ok, err := f.itemRepo.ApplyWithdrawal(context.Background(), itemCableID, 2, deptID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Cable UTP", stockErr.ItemName)
	assert.Equal(t, 1, stockErr.Available, "el error refleja el saldo real dentro de la transacción")

	// Rollback: la primera línea también se revierte y la solicitud sigue viva.
	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	assert.Equal(t, 10, torn.Quantity, "la retirada de la primera línea debe revertirse")
	stored, _ := f.requestRepo.GetByID(context.Background(), req.ID)
	assert.Equal(t, entity.RequestStatusPending, stored.Status, "la solicitud queda intacta para reintentar")
	assert.Empty(t, f.movRepo.movements, "no deben quedar movimientos del intento fallido")
}

func TestFulfill_DobleAtencion(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})
	_, err := f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)

	_, err = f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	assert.Equal(t, 8, torn.Quantity, "la segunda atención no debe descontar de nuevo")
}

// Dos atenciones concurrentes pueden leer la solicitud en pending antes de
// que ninguna confirme. La que pierde la carrera debe abortar dentro de la
// transacción, sin descontar stock ni asentar movimientos.
func TestFulfill_CarreraConcurrenteNoDescuentaDosVeces(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 2})

	// La otra atención confirma después de que esta pasó la validación
	// previa pero antes de que abra su transacción.
	f.tx.before = func() {
		f.tx.before = nil
		f.requestRepo.requests[req.ID].Status = entity.RequestStatusFulfilled
	}

	_, err := f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	var stateErr *domain.InvalidStateError
	require.ErrorAs(t, err, &stateErr)

	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	assert.Equal(t, 10, torn.Quantity, "la atención perdedora no debe descontar")
	assert.Empty(t, f.movRepo.movements, "la atención perdedora no debe asentar movimientos")
	stored, _ := f.requestRepo.GetByID(context.Background(), req.ID)
	assert.Equal(t, entity.RequestStatusFulfilled, stored.Status)
}

func TestFulfill_SolicitanteSinDepartamento(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	// El solicitante pierde su departamento antes de la atención.
	f.userRepo.users[requesterID].DepartmentID = nil

	_, err := f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "department_id", validationErr.Field)

	// El stock no se toca si la validación previa falla.
	torn, _ := f.itemRepo.GetByID(context.Background(), itemTornID)
	assert.Equal(t, 10, torn.Quantity)
}

func TestFulfill_SinWorkflowProhibido(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})

	_, err := f.uc.Fulfill(context.Background(), viewerID, req.ID, f.now)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Verifica que el error de estado inválido es inspeccionable con errors.Is.
func TestInvalidStateError_EsErrInvalidState(t *testing.T) {
	f := newFixture(t)
	req := f.crearSolicitud(t, stockrequest.CreateItemInput{ItemID: itemTornID, Quantity: 1})
	_, err := f.uc.Cancel(context.Background(), almacenID, req.ID, f.now)
	require.NoError(t, err)

	_, err = f.uc.Fulfill(context.Background(), almacenID, req.ID, f.now)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}
