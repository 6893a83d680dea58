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
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase gestión administrativa de usuarios (alta, edición, baja).
type UserUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	deptRepo repository.DepartmentRepository
	recorder audit.Recorder
}

// NewUserUseCase construye el caso de uso de gestión de usuarios.
func NewUserUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	deptRepo repository.DepartmentRepository,
	recorder audit.Recorder,
) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, roleRepo: roleRepo, deptRepo: deptRepo, recorder: recorder}
}

// Create da de alta un usuario con código secuencial y contraseña bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, req dto.CreateUserRequest, now time.Time) (*entity.User, error) {
	if req.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if req.Email == "" {
		return nil, domain.NewValidationError("email", "el email es obligatorio")
	}
	if len(req.Password) < 8 {
		return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByName(ctx, req.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NewValidationError("role", "rol no encontrado")
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		dept, err := uc.deptRepo.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			return nil, err
		}
		if dept == nil {
			return nil, domain.NewValidationError("department_id", "departamento no encontrado")
		}
	}
	status := req.Status
	if status == "" {
		status = entity.UserStatusActive
	}
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, domain.NewValidationError("status", "estado desconocido")
	}
	joinDate := now
	if req.JoinDate != "" {
		joinDate, err = time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return nil, domain.NewValidationError("join_date", "fecha inválida; formato esperado YYYY-MM-DD")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code, err := uc.userRepo.NextCode(ctx)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		DepartmentID: req.DepartmentID,
		Status:       status,
		JoinDate:     joinDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionCreated,
		Resource:     audit.ResourceUser,
		ResourceName: user.Name,
	})
	return user, nil
}

// Update aplica los campos presentes en la petición.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, req dto.UpdateUserRequest, now time.Time) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, domain.NewValidationError("name", "el nombre es obligatorio")
		}
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 8 {
			return nil, domain.NewValidationError("password", "la contraseña debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		role, err := uc.roleRepo.GetByName(ctx, *req.Role)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.NewValidationError("role", "rol no encontrado")
		}
		user.RoleID = role.ID
	}
	if req.DepartmentID != nil {
		if *req.DepartmentID != "" {
			dept, err := uc.deptRepo.GetByID(ctx, *req.DepartmentID)
			if err != nil {
				return nil, err
			}
			if dept == nil {
				return nil, domain.NewValidationError("department_id", "departamento no encontrado")
			}
		}
		user.DepartmentID = req.DepartmentID
	}
	if req.Status != nil {
		if *req.Status != entity.UserStatusActive && *req.Status != entity.UserStatusInactive {
			return nil, domain.NewValidationError("status", "estado desconocido")
		}
		user.Status = *req.Status
	}
	if req.JoinDate != nil && *req.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", *req.JoinDate)
		if err != nil {
			return nil, domain.NewValidationError("join_date", "fecha inválida; formato esperado YYYY-MM-DD")
		}
		user.JoinDate = joinDate
	}
	user.UpdatedAt = now

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionUpdated,
		Resource:     audit.ResourceUser,
		ResourceName: user.Name,
	})
	return user, nil
}

// Delete elimina un usuario. Un usuario no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.NewValidationError("id", "no puedes eliminar tu propio usuario")
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		UserID:       actorID,
		Action:       entity.LogActionDeleted,
		Resource:     audit.ResourceUser,
		ResourceName: user.Name,
	})
	return nil
}

// List devuelve usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, filter repository.UserFilter, params repository.ListParams) ([]*entity.User, int, error) {
	return uc.userRepo.List(ctx, filter, params)
}

// Get devuelve un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
