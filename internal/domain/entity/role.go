package entity

import "time"

// Role función asignable a usuarios: nombre + conjunto de capacidades.
// IsSuper concede todas las capacidades sin mirar la tabla de asignaciones;
// reemplaza la comparación por nombre "Admin" para sobrevivir renombres.
type Role struct {
	ID           string
	Name         string
	Description  string
	IsSuper      bool
	Capabilities []Capability
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Grants indica si el rol concede la capacidad.
func (r *Role) Grants(c Capability) bool {
	if r.IsSuper {
		return true
	}
	for _, cap := range r.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}
