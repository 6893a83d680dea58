package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema con un único rol asignado.
// DepartmentID es el departamento de origen; las solicitudes atendidas se
// envían a ese departamento.
type User struct {
	ID           string
	Code         string // secuencial de 4 dígitos con ceros a la izquierda
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	RoleID       string
	DepartmentID *string
	Status       string // active, inactive
	JoinDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
