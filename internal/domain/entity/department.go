package entity

import "time"

// Department departamento/sector de la organización. Referenciado por ítems
// (ubicación actual), movimientos (destino) y usuarios (origen).
type Department struct {
	ID        string
	Code      string // secuencial único de 4 dígitos
	Name      string // único
	CreatedAt time.Time
	UpdatedAt time.Time
}
