package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestNormalizePatrimonyCode(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"7", "00007"},
		{"123", "00123"},
		{"12345", "12345"},
		{"123456", "123456"}, // más largo que el canónico: se respeta
		{"  42  ", "00042"},  // espacios de planillas
		{"", "00000"},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, entity.NormalizePatrimonyCode(c.entrada),
			"entrada %q", c.entrada)
	}
}

func TestAssetStatus_Valid(t *testing.T) {
	for _, s := range []entity.AssetStatus{
		entity.AssetStatusActive,
		entity.AssetStatusMaintenance,
		entity.AssetStatusWrittenOff,
		entity.AssetStatusReserved,
	} {
		assert.True(t, s.Valid(), "%s debe ser válido", s)
	}
	assert.False(t, entity.AssetStatus("lost").Valid())
	assert.False(t, entity.AssetStatus("").Valid())
}
