package entity

import "time"

// Acciones registradas en el log de actividad.
const (
	LogActionCreated = "created"
	LogActionUpdated = "updated"
	LogActionDeleted = "deleted"
)

// ActivityLog registro de auditoría de una mutación administrativa.
type ActivityLog struct {
	ID           string
	UserID       *string // nil = sistema
	Action       string  // created, updated, deleted
	Resource     string  // Producto, Usuario, Movimiento, Permiso...
	ResourceName string
	IP           string
	CreatedAt    time.Time
}
