package entity

import "time"

// MovementType tipo de movimiento del libro de inventario.
type MovementType string

// Tipos de movimiento. El libro es append-only: un Movement nunca se modifica
// después de creado; es la fuente de verdad de los cambios de cantidad.
const (
	MovementTypeEntry      MovementType = "entry"
	MovementTypeWithdrawal MovementType = "withdrawal"
)

// Valid indica si el tipo es conocido.
func (t MovementType) Valid() bool {
	return t == MovementTypeEntry || t == MovementTypeWithdrawal
}

// Label etiqueta legible del tipo.
func (t MovementType) Label() string {
	if t == MovementTypeEntry {
		return "Entrada"
	}
	return "Salida"
}

// Movement asiento inmutable del libro: una entrada o retirada sobre un ítem.
// DepartmentID es el destino de la retirada (nil en entradas). UserID es el
// actor que registró el movimiento o el receptor de la retirada directa.
type Movement struct {
	ID           string
	ItemID       string
	UserID       string
	DepartmentID *string
	Type         MovementType
	Quantity     int // siempre > 0; el signo lo da Type
	MovementDate time.Time
	Notes        string
	CreatedAt    time.Time
}
