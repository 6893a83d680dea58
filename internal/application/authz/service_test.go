package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ── fakes mínimos ─────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *stubUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }
func (r *stubUserRepo) Delete(_ context.Context, _ string) error       { return nil }
func (r *stubUserRepo) List(_ context.Context, _ repository.UserFilter, _ repository.ListParams) ([]*entity.User, int, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) NextCode(_ context.Context) (string, error) { return "0001", nil }
func (r *stubUserRepo) ListIDsWithCapability(_ context.Context, _ entity.Capability) ([]string, error) {
	return nil, nil
}

type stubRoleRepo struct {
	byUser map[string]*entity.Role
}

func (r *stubRoleRepo) Create(_ context.Context, _ *entity.Role) error            { return nil }
func (r *stubRoleRepo) GetByID(_ context.Context, _ string) (*entity.Role, error) { return nil, nil }
func (r *stubRoleRepo) GetByName(_ context.Context, _ string) (*entity.Role, error) {
	return nil, nil
}
func (r *stubRoleRepo) GetByUser(_ context.Context, userID string) (*entity.Role, error) {
	return r.byUser[userID], nil
}
func (r *stubRoleRepo) Update(_ context.Context, _ *entity.Role) error      { return nil }
func (r *stubRoleRepo) Delete(_ context.Context, _ string) error            { return nil }
func (r *stubRoleRepo) List(_ context.Context) ([]*entity.Role, error)      { return nil, nil }
func (r *stubRoleRepo) CountUsers(_ context.Context, _ string) (int, error) { return 0, nil }

const (
	superID    = "u-super"
	operarioID = "u-operario"
	inactivoID = "u-inactivo"
	sinRolID   = "u-sin-rol"
)

func newService() *authz.Service {
	userRepo := &stubUserRepo{users: map[string]*entity.User{
		superID:    {ID: superID, Status: entity.UserStatusActive},
		operarioID: {ID: operarioID, Status: entity.UserStatusActive},
		inactivoID: {ID: inactivoID, Status: entity.UserStatusInactive},
		sinRolID:   {ID: sinRolID, Status: entity.UserStatusActive},
	}}
	roleRepo := &stubRoleRepo{byUser: map[string]*entity.Role{
		superID:    {ID: "r-admin", Name: "Administrador", IsSuper: true},
		operarioID: {ID: "r-op", Name: "Operario", Capabilities: []entity.Capability{entity.CapRead, entity.CapRequestProducts}},
		inactivoID: {ID: "r-admin", Name: "Administrador", IsSuper: true},
	}}
	return authz.NewService(userRepo, roleRepo)
}

func TestCan_RolSuperConcedeTodo(t *testing.T) {
	svc := newService()
	for _, cap := range entity.AllCapabilities() {
		ok, err := svc.Can(context.Background(), superID, cap)
		require.NoError(t, err)
		assert.True(t, ok, "un rol super debe conceder %s sin asignación explícita", cap)
	}
}

func TestCan_RolComunSoloLoAsignado(t *testing.T) {
	svc := newService()

	ok, err := svc.Can(context.Background(), operarioID, entity.CapRead)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Can(context.Background(), operarioID, entity.CapManageUsers)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCan_UsuarioInactivoNoTieneCapacidades(t *testing.T) {
	svc := newService()
	// Aunque su rol sea super, un usuario inactivo no posee ninguna capacidad.
	ok, err := svc.Can(context.Background(), inactivoID, entity.CapRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCan_UsuarioSinRol(t *testing.T) {
	svc := newService()
	ok, err := svc.Can(context.Background(), sinRolID, entity.CapRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCan_UsuarioInexistente(t *testing.T) {
	svc := newService()
	ok, err := svc.Can(context.Background(), "no-existe", entity.CapRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequire_Denegado(t *testing.T) {
	svc := newService()
	err := svc.Require(context.Background(), operarioID, entity.CapManageRoles)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRequire_Concedido(t *testing.T) {
	svc := newService()
	assert.NoError(t, svc.Require(context.Background(), operarioID, entity.CapRead))
}

func TestCapabilities_SuperRecibeTodas(t *testing.T) {
	svc := newService()
	caps, err := svc.Capabilities(context.Background(), superID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.AllCapabilities(), caps)
}

func TestCapabilities_RolComunRecibeLasSuyas(t *testing.T) {
	svc := newService()
	caps, err := svc.Capabilities(context.Background(), operarioID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.Capability{entity.CapRead, entity.CapRequestProducts}, caps)
}
