package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PatrimonyCodeLength largo canónico de la etiqueta patrimonial.
const PatrimonyCodeLength = 5

// NormalizePatrimonyCode normaliza la etiqueta rellenando con ceros a la
// izquierda hasta el largo canónico.
func NormalizePatrimonyCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) >= PatrimonyCodeLength {
		return trimmed
	}
	return strings.Repeat("0", PatrimonyCodeLength-len(trimmed)) + trimmed
}

// AssetStatus estado de un bien patrimonial.
type AssetStatus string

// Estados válidos para FixedAsset.
const (
	AssetStatusActive      AssetStatus = "active"
	AssetStatusMaintenance AssetStatus = "maintenance"
	AssetStatusWrittenOff  AssetStatus = "written_off"
	AssetStatusReserved    AssetStatus = "reserved"
)

// Valid indica si el estado es conocido.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusActive, AssetStatusMaintenance, AssetStatusWrittenOff, AssetStatusReserved:
		return true
	}
	return false
}

// FixedAsset bien de capital: una fila por unidad física, sin concepto de
// cantidad ni movimientos. Independiente de InventoryItem.
type FixedAsset struct {
	ID               string
	PatrimonyCode    string // etiqueta única de 5 dígitos con ceros a la izquierda
	SerialNumber     string
	Name             string
	Brand            string
	Description      string
	CategoryID       string
	DepartmentID     string
	Status           AssetStatus
	AcquisitionDate  *time.Time
	AcquisitionValue *decimal.Decimal
	InvoiceNumber    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
