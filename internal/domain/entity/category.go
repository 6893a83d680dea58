package entity

import "time"

// Category categoría de ítems de inventario y de patrimonio.
type Category struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
	UpdatedAt time.Time
}
