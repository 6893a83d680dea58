package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

func TestInventoryItem_LowStock(t *testing.T) {
	casos := []struct {
		nombre   string
		quantity int
		minStock int
		bajo     bool
	}{
		{"por debajo del mínimo", 2, 5, true},
		{"exactamente en el mínimo", 5, 5, true},
		{"por encima del mínimo", 6, 5, false},
		{"sin mínimo configurado y con stock", 1, 0, false},
		{"sin mínimo configurado y agotado", 0, 0, true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			item := &entity.InventoryItem{Quantity: c.quantity, MinStock: c.minStock}
			assert.Equal(t, c.bajo, item.LowStock())
		})
	}
}

func TestInventoryItem_TotalValue_RedondeaADosDecimales(t *testing.T) {
	item := &entity.InventoryItem{
		UnitValue: decimal.RequireFromString("3.333"),
		Quantity:  3,
	}
	assert.True(t, decimal.RequireFromString("10.00").Equal(item.TotalValue()),
		"3.333 × 3 = 9.999 debe redondear a 10.00")
}

func TestInventoryItem_TotalValue_CantidadCero(t *testing.T) {
	item := &entity.InventoryItem{
		UnitValue: decimal.RequireFromString("99.90"),
		Quantity:  0,
	}
	assert.True(t, item.TotalValue().IsZero())
}

func TestItemStatus_Valid(t *testing.T) {
	for _, s := range []entity.ItemStatus{
		entity.ItemStatusInUse,
		entity.ItemStatusAvailable,
		entity.ItemStatusMaintenance,
		entity.ItemStatusDiscarded,
	} {
		assert.True(t, s.Valid(), "%s debe ser válido", s)
	}
	assert.False(t, entity.ItemStatus("broken").Valid())
}

func TestItemStatus_Labels(t *testing.T) {
	assert.Equal(t, "Disponible", entity.ItemStatusAvailable.Label())
	assert.Equal(t, "En Uso", entity.ItemStatusInUse.Label())
	assert.Equal(t, "Mantenimiento", entity.ItemStatusMaintenance.Label())
	assert.Equal(t, "Descartado", entity.ItemStatusDiscarded.Label())
}
