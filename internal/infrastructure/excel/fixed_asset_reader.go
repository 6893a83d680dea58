// Package excel lee planillas de importación de patrimonio con excelize.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/xuri/excelize/v2"
)

// Encabezados reconocidos (sin acentos ni mayúsculas). La planilla puede
// traerlos en cualquier orden; las columnas sin encabezado conocido se ignoran.
var headerAliases = map[string]string{
	"patrimonio":        "patrimony_code",
	"etiqueta":          "patrimony_code",
	"codigo":            "patrimony_code",
	"serie":             "serial_number",
	"numero serie":      "serial_number",
	"nombre":            "name",
	"descripcion":       "description",
	"marca":             "brand",
	"categoria":         "category",
	"departamento":      "department",
	"sector":            "department",
	"status":            "status",
	"estado":            "status",
	"fecha adquisicion": "acquisition_date",
	"data aquisicao":    "acquisition_date",
	"fecha":             "acquisition_date",
	"data":              "acquisition_date",
	"valor":             "acquisition_value",
	"valor adquisicion": "acquisition_value",
	"nota fiscal":       "invoice_number",
	"factura":           "invoice_number",
}

// FixedAssetReader extrae filas de importación desde un .xlsx.
type FixedAssetReader struct{}

// NewFixedAssetReader construye el lector.
func NewFixedAssetReader() *FixedAssetReader { return &FixedAssetReader{} }

// Read parsea la primera hoja: la fila 1 son encabezados, el resto datos.
// Las filas completamente vacías se saltan.
func (r *FixedAssetReader) Read(src io.Reader) ([]usecase.ImportRow, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("la planilla no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("la planilla no tiene filas de datos")
	}

	// Mapear columna -> campo según la fila de encabezados.
	columns := map[int]string{}
	for i, header := range rows[0] {
		if field, ok := headerAliases[normalizeHeader(header)]; ok {
			columns[i] = field
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("ningún encabezado reconocido en la primera fila")
	}

	var out []usecase.ImportRow
	for i, cells := range rows[1:] {
		row := usecase.ImportRow{Line: i + 2}
		empty := true
		for col, field := range columns {
			if col >= len(cells) {
				continue
			}
			value := strings.TrimSpace(cells[col])
			if value == "" {
				continue
			}
			empty = false
			switch field {
			case "patrimony_code":
				row.PatrimonyCode = value
			case "serial_number":
				row.SerialNumber = value
			case "name":
				row.Name = value
			case "brand":
				row.Brand = value
			case "description":
				row.Description = value
			case "category":
				row.CategoryName = value
			case "department":
				row.DeptName = value
			case "status":
				row.Status = value
			case "acquisition_date":
				row.AcquisitionDate = normalizeCellDate(value)
			case "acquisition_value":
				row.AcquisitionValue = value
			case "invoice_number":
				row.InvoiceNumber = value
			}
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// normalizeHeader minúsculas, sin acentos ni espacios sobrantes.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
		"ã", "a", "õ", "o", "ç", "c", "â", "a", "ê", "e", "º", "", ".", "",
	)
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// normalizeCellDate convierte seriales de fecha de Excel a YYYY-MM-DD; el
// resto de los valores pasa tal cual.
func normalizeCellDate(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}
