package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus estado de un ítem de inventario.
type ItemStatus string

// Estados válidos para InventoryItem. El estado cambia solo: una retirada que
// deja la cantidad en 0 pasa el ítem a in_use; una entrada sobre un ítem
// in_use con cantidad >0 lo devuelve a available.
const (
	ItemStatusInUse       ItemStatus = "in_use"
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusMaintenance ItemStatus = "maintenance"
	ItemStatusDiscarded   ItemStatus = "discarded"
)

// Valid indica si el estado es uno de los conocidos.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusInUse, ItemStatusAvailable, ItemStatusMaintenance, ItemStatusDiscarded:
		return true
	}
	return false
}

// itemStatusLabels etiquetas legibles por estado.
var itemStatusLabels = map[ItemStatus]string{
	ItemStatusInUse:       "En Uso",
	ItemStatusAvailable:   "Disponible",
	ItemStatusMaintenance: "Mantenimiento",
	ItemStatusDiscarded:   "Descartado",
}

// Label devuelve la etiqueta legible del estado.
func (s ItemStatus) Label() string {
	if l, ok := itemStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// InventoryItem representa un producto consumible de almacén con saldo de
// cantidad mutable. Invariante: Quantity >= 0 siempre; las mutaciones de
// cantidad pasan por el libro de movimientos, nunca por update directo.
type InventoryItem struct {
	ID           string
	Code         string // secuencial de 4 dígitos con ceros a la izquierda
	Name         string
	Brand        string
	Description  string
	CategoryID   string
	DepartmentID *string // ubicación actual; nil = almacén central
	UnitValue    decimal.Decimal
	Status       ItemStatus
	Quantity     int
	MinStock     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el ítem está en o por debajo de su stock mínimo.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinStock
}

// TotalValue devuelve UnitValue × Quantity redondeado a 2 decimales.
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return i.UnitValue.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}
