package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, cells := range rows {
		for c, value := range cells {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestRead_ReconoceEstadoFechaValorYFactura(t *testing.T) {
	src := buildSheet(t, [][]interface{}{
		{"Etiqueta", "Nombre", "Marca", "Status", "Data Aquisição", "Valor", "Nota Fiscal"},
		{"77", "Notebook", "Dell", "ativo", 45056, "1234,56", "NF-889"},
		{"78", "Monitor", "LG", "Mantenimiento", "2022-01-15", "$ 800", "NF-900"},
	})

	rows, err := excel.NewFixedAssetReader().Read(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, usecase.ImportRow{
		Line:             2,
		PatrimonyCode:    "77",
		Name:             "Notebook",
		Brand:            "Dell",
		Status:           "ativo",
		AcquisitionDate:  "2023-05-10", // serial de Excel 45056
		AcquisitionValue: "1234,56",
		InvoiceNumber:    "NF-889",
	}, rows[0])

	assert.Equal(t, "2022-01-15", rows[1].AcquisitionDate, "las fechas en texto pasan tal cual")
	assert.Equal(t, "$ 800", rows[1].AcquisitionValue)
	assert.Equal(t, "Mantenimiento", rows[1].Status)
}

func TestRead_SaltaFilasVaciasYColumnasDesconocidas(t *testing.T) {
	src := buildSheet(t, [][]interface{}{
		{"Etiqueta", "Nombre", "Observaciones internas"},
		{"10", "Silla", "no importar esto"},
		{"", "", ""},
		{"11", "Mesa", ""},
	})

	rows, err := excel.NewFixedAssetReader().Read(src)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Silla", rows[0].Name)
	assert.Empty(t, rows[0].Description, "una columna sin encabezado conocido se ignora")
	assert.Equal(t, 4, rows[1].Line)
}
