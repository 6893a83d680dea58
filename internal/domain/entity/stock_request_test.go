package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones del workflow de solicitudes.
//
// pending es inicial, separation es intermedio opcional y reversible,
// fulfilled y cancelled son terminales. Cualquier cambio accidental en la
// tabla rompe estos tests antes de llegar a producción.
// ──────────────────────────────────────────────────────────────────────────────

func TestRequestStatus_TransicionesPermitidas(t *testing.T) {
	casos := []struct {
		desde entity.RequestStatus
		hacia entity.RequestStatus
	}{
		{entity.RequestStatusPending, entity.RequestStatusSeparation},
		{entity.RequestStatusPending, entity.RequestStatusFulfilled},
		{entity.RequestStatusPending, entity.RequestStatusCancelled},
		{entity.RequestStatusSeparation, entity.RequestStatusPending},
		{entity.RequestStatusSeparation, entity.RequestStatusFulfilled},
		{entity.RequestStatusSeparation, entity.RequestStatusCancelled},
	}
	for _, c := range casos {
		assert.True(t, c.desde.CanTransition(c.hacia),
			"la transición %s -> %s debe estar permitida", c.desde, c.hacia)
	}
}

func TestRequestStatus_EstadosTerminalesNoTransicionan(t *testing.T) {
	todos := []entity.RequestStatus{
		entity.RequestStatusPending,
		entity.RequestStatusSeparation,
		entity.RequestStatusFulfilled,
		entity.RequestStatusCancelled,
	}
	for _, terminal := range []entity.RequestStatus{entity.RequestStatusFulfilled, entity.RequestStatusCancelled} {
		assert.True(t, terminal.Terminal())
		for _, destino := range todos {
			assert.False(t, terminal.CanTransition(destino),
				"un estado terminal (%s) no debe transicionar a %s", terminal, destino)
		}
	}
}

func TestRequestStatus_NoHayAutoTransiciones(t *testing.T) {
	for _, s := range []entity.RequestStatus{
		entity.RequestStatusPending,
		entity.RequestStatusSeparation,
		entity.RequestStatusFulfilled,
		entity.RequestStatusCancelled,
	} {
		assert.False(t, s.CanTransition(s), "la tabla no incluye auto-transiciones (%s)", s)
	}
}

func TestRequestStatus_Valid(t *testing.T) {
	assert.True(t, entity.RequestStatusPending.Valid())
	assert.True(t, entity.RequestStatusSeparation.Valid())
	assert.True(t, entity.RequestStatusFulfilled.Valid())
	assert.True(t, entity.RequestStatusCancelled.Valid())
	assert.False(t, entity.RequestStatus("approved").Valid(),
		"estados desconocidos deben rechazarse")
	assert.False(t, entity.RequestStatus("").Valid())
}

func TestRequestStatus_Labels(t *testing.T) {
	assert.Equal(t, "Pendiente", entity.RequestStatusPending.Label())
	assert.Equal(t, "En Separación", entity.RequestStatusSeparation.Label())
	assert.Equal(t, "Atendida", entity.RequestStatusFulfilled.Label())
	assert.Equal(t, "Cancelada", entity.RequestStatusCancelled.Label())
	// Estado desconocido: se devuelve tal cual, nunca cadena vacía.
	assert.Equal(t, "otro", entity.RequestStatus("otro").Label())
}
