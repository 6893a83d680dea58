package entity

import "time"

// Tipos de notificación conocidos.
const (
	NotificationTypeStockRequestCreated = "stock_request_created"
)

// Notification notificación in-app dirigida a un usuario.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Link      string
	Type      string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Read indica si la notificación ya fue leída.
func (n *Notification) Read() bool { return n.ReadAt != nil }
