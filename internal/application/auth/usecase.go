// Package auth implementa autenticación con JWT y gestión del propio perfil.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// DefaultRoleName rol asignado a los registros de autoservicio.
const DefaultRoleName = "Visualizador"

// Config parámetros de emisión de tokens.
type Config struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase login, registro de autoservicio y perfil propio.
type UseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	cfg      Config
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, cfg Config) *UseCase {
	return &UseCase{userRepo: userRepo, roleRepo: roleRepo, cfg: cfg}
}

// Login valida credenciales y emite un JWT. Los usuarios inactivos no pueden
// iniciar sesión. El mensaje de error no distingue email inexistente de
// contraseña incorrecta.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, "", domain.ErrUnauthorized
	}
	role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, "", err
	}
	roleName := ""
	if role != nil {
		roleName = role.Name
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, roleName, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register autoservicio: alta con el rol por defecto y sesión inmediata.
func (uc *UseCase) Register(ctx context.Context, name, email, password string, now time.Time) (*entity.User, string, error) {
	if name == "" {
		return nil, "", domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if email == "" {
		return nil, "", domain.NewValidationError("email", "el email es obligatorio")
	}
	if len(password) < 8 {
		return nil, "", domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByName(ctx, DefaultRoleName)
	if err != nil {
		return nil, "", err
	}
	if role == nil {
		return nil, "", domain.NewValidationError("role", "el rol por defecto no está sembrado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	code, err := uc.userRepo.NextCode(ctx)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       entity.UserStatusActive,
		JoinDate:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, role.Name, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Me devuelve el usuario autenticado con su rol cargado.
func (uc *UseCase) Me(ctx context.Context, userID string) (*entity.User, *entity.Role, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}
	role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, nil, err
	}
	return user, role, nil
}

// UpdateProfile edición del propio perfil: nombre, email y contraseña.
// El rol y el departamento no se tocan por aquí.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID, name, email, password string, now time.Time) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != userID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = email
	}
	if password != "" {
		if len(password) < 8 {
			return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
