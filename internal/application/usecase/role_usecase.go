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
)

// RoleUseCase gestión de roles y sus capacidades.
type RoleUseCase struct {
	roleRepo repository.RoleRepository
	recorder audit.Recorder
}

// NewRoleUseCase construye el caso de uso de roles.
func NewRoleUseCase(roleRepo repository.RoleRepository, recorder audit.Recorder) *RoleUseCase {
	return &RoleUseCase{roleRepo: roleRepo, recorder: recorder}
}

func parseCapabilities(names []string) ([]entity.Capability, error) {
	caps := make([]entity.Capability, 0, len(names))
	for _, name := range names {
		c := entity.Capability(name)
		if !c.Valid() {
			return nil, domain.NewValidationError("permissions", "capacidad desconocida: "+name)
		}
		caps = append(caps, c)
	}
	return caps, nil
}

// Create da de alta un rol. IsSuper solo se asigna al sembrar la base; los
// roles creados por la API siempre enumeran sus capacidades.
func (uc *RoleUseCase) Create(ctx context.Context, actorID string, req dto.RoleRequest, now time.Time) (*entity.Role, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	existing, err := uc.roleRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewValidationError("name", "ya existe un rol con ese nombre")
	}
	caps, err := parseCapabilities(req.Permissions)
	if err != nil {
		return nil, err
	}
	role := &entity.Role{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Capabilities: caps,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceRole,
		ResourceName: role.Name,
	})
	return role, nil
}

// Update modifica nombre, descripción y capacidades. El flag super no se
// edita por la API.
func (uc *RoleUseCase) Update(ctx context.Context, actorID, id string, req dto.RoleRequest, now time.Time) (*entity.Role, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if req.Name != "" && req.Name != role.Name {
		other, err := uc.roleRepo.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.NewValidationError("name", "ya existe un rol con ese nombre")
		}
		role.Name = req.Name
	}
	role.Description = req.Description
	caps, err := parseCapabilities(req.Permissions)
	if err != nil {
		return nil, err
	}
	role.Capabilities = caps
	role.UpdatedAt = now

	if err := uc.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceRole,
		ResourceName: role.Name,
	})
	return role, nil
}

// Delete elimina un rol sin usuarios asignados. Los roles super no se
// eliminan, para no dejar el sistema sin administrador.
func (uc *RoleUseCase) Delete(ctx context.Context, actorID, id string) error {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}
	if role.IsSuper {
		return domain.NewValidationError("id", "el rol de administrador no puede eliminarse")
	}
	count, err := uc.roleRepo.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewValidationError("id", "el rol tiene usuarios asignados")
	}
	if err := uc.roleRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionDeleted,
		Resource:     audit.ResourceRole,
		ResourceName: role.Name,
	})
	return nil
}

// Get devuelve un rol con su recuento de usuarios asignados.
func (uc *RoleUseCase) Get(ctx context.Context, id string) (*entity.Role, int, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if role == nil {
		return nil, 0, domain.ErrNotFound
	}
	count, err := uc.roleRepo.CountUsers(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return role, count, nil
}

// List devuelve todos los roles con su recuento de usuarios.
func (uc *RoleUseCase) List(ctx context.Context) ([]*entity.Role, map[string]int, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	counts := make(map[string]int, len(roles))
	for _, role := range roles {
		n, err := uc.roleRepo.CountUsers(ctx, role.ID)
		if err != nil {
			return nil, nil, err
		}
		counts[role.ID] = n
	}
	return roles, counts, nil
}

// Permissions devuelve el catálogo completo de capacidades con etiquetas.
func (uc *RoleUseCase) Permissions() []dto.PermissionResponse {
	all := entity.AllCapabilities()
	out := make([]dto.PermissionResponse, 0, len(all))
	for _, c := range all {
		out = append(out, dto.PermissionResponse{Name: string(c), Label: c.Label()})
	}
	return out
}
