// Package authz centraliza la verificación de capacidades: un único punto de
// decisión consultado por todos los endpoints en lugar de comparaciones de
// strings repartidas por los handlers.
package authz

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Service resuelve si un usuario posee una capacidad. Grant binario por
// capacidad; sin chequeos por recurso (la única excepción, "ver mi propia
// solicitud", vive en el use case de solicitudes).
type Service struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewService construye el servicio de autorización.
func NewService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *Service {
	return &Service{userRepo: userRepo, roleRepo: roleRepo}
}

// Can indica si el usuario posee la capacidad. Un rol super concede todas las
// capacidades sin consultar la tabla de asignaciones. Usuarios inactivos no
// poseen ninguna.
func (s *Service) Can(ctx context.Context, userID string, cap entity.Capability) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil || user.Status != entity.UserStatusActive {
		return false, nil
	}
	role, err := s.roleRepo.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	return role.Grants(cap), nil
}

// Require como Can, pero devuelve ErrForbidden cuando la capacidad no está
// concedida. Para uso directo desde los use cases.
func (s *Service) Require(ctx context.Context, userID string, cap entity.Capability) error {
	ok, err := s.Can(ctx, userID, cap)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// Role devuelve el rol asignado al usuario, o nil si no tiene.
func (s *Service) Role(ctx context.Context, userID string) (*entity.Role, error) {
	return s.roleRepo.GetByUser(ctx, userID)
}

// Capabilities devuelve la lista efectiva de capacidades del usuario
// (todas para roles super).
func (s *Service) Capabilities(ctx context.Context, userID string) ([]entity.Capability, error) {
	role, err := s.roleRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	if role.IsSuper {
		return entity.AllCapabilities(), nil
	}
	return role.Capabilities, nil
}
