package dto

// LoginRequest body para POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest body para POST /api/register (autoservicio).
type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
}

// UpdateProfileRequest body para PUT /api/me.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest body para POST /api/users (gestión).
type CreateUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"` // nombre del rol
	DepartmentID *string `json:"department_id"`
	Status       string  `json:"status"`
	JoinDate     string  `json:"join_date"` // YYYY-MM-DD
}

// UpdateUserRequest body para PUT /api/users/{id}.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	DepartmentID *string `json:"department_id"`
	Status       *string `json:"status"`
	JoinDate     *string `json:"join_date"`
}

// UserResponse representación de un usuario.
type UserResponse struct {
	ID           string   `json:"id"`
	Code         string   `json:"code,omitempty"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions,omitempty"`
	Department   string   `json:"department,omitempty"`
	DepartmentID *string  `json:"department_id"`
	Status       string   `json:"status"`
	StatusKey    string   `json:"status_key"`
	JoinDate     string   `json:"join_date,omitempty"`
}

// RoleRequest body para crear/actualizar roles.
type RoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// RoleResponse representación de un rol.
type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IsSuper     bool     `json:"is_super"`
	Permissions []string `json:"permissions"`
	UserCount   int      `json:"user_count"`
}

// PermissionResponse capacidad con su etiqueta, para pantallas de administración.
type PermissionResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}
