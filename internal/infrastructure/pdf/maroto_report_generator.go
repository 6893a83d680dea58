// Package pdf genera los reportes imprimibles del almacén con Maroto v2:
// la lista de separación de una solicitud y el reporte de stock bajo.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 185, Green: 28, Blue: 28}
)

// PickingLine línea imprimible de la lista de separación.
type PickingLine struct {
	ItemCode string
	ItemName string
	Brand    string
	Quantity int
	Location string
}

// PickingListData datos de cabecera + líneas de la lista de separación.
type PickingListData struct {
	RequestID     string
	RequesterName string
	Department    string
	Status        string
	CreatedAt     time.Time
	Notes         string
	Lines         []PickingLine
}

// MarotoReportGenerator genera los reportes PDF del almacén usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// GeneratePickingList genera la lista de separación de una solicitud: lo que
// el operario lleva en mano mientras junta los ítems.
func (g *MarotoReportGenerator) GeneratePickingList(_ context.Context, data PickingListData) ([]byte, error) {
	m := newDocument("Lista de separación")

	m.AddRows(row.New(16).Add(
		col.New(7).Add(
			text.New("LISTA DE SEPARACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Solicitud #"+shortID(data.RequestID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+data.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Estado: "+data.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(12).Add(col.New(12).Add(
		text.New("SOLICITANTE", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(fmt.Sprintf("%s   |   Destino: %s",
			data.RequesterName, nonEmpty(data.Department, "—"),
		), props.Text{Size: 9, Top: 7}),
	)))
	if data.Notes != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+data.Notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeader(
		headerCell("Cód.", 2, align.Center),
		headerCell("Ítem", 5, align.Left),
		headerCell("Marca", 2, align.Left),
		headerCell("Cant.", 1, align.Center),
		headerCell("Ubicación", 2, align.Left),
	))
	for _, l := range data.Lines {
		m.AddRows(row.New(7).Add(
			col.New(2).Add(text.New(l.ItemCode, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.Brand, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(nonEmpty(l.Location, "Almacén"), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(14).Add(
		col.New(6).Add(
			text.New("_____________________________", props.Text{Size: 9, Align: align.Center, Top: 4}),
			text.New("Separado por", props.Text{Size: 8, Align: align.Center, Top: 10, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("_____________________________", props.Text{Size: 9, Align: align.Center, Top: 4}),
			text.New("Recibido por", props.Text{Size: 8, Align: align.Center, Top: 10, Color: colorGray}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar lista de separación: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateLowStockReport genera el reporte de ítems en o por debajo de su
// stock mínimo.
func (g *MarotoReportGenerator) GenerateLowStockReport(_ context.Context, items []dto.LowStockItemDTO, generatedAt time.Time) ([]byte, error) {
	m := newDocument("Reporte de stock bajo")

	m.AddRows(row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorAlert, Top: 1,
			}),
			text.New(fmt.Sprintf("%d ítem(s) en o por debajo de su mínimo", len(items)), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAlert, Thickness: 0.5}))

	m.AddRows(tableHeader(
		headerCell("Cód.", 1, align.Center),
		headerCell("Ítem", 4, align.Left),
		headerCell("Categoría", 2, align.Left),
		headerCell("Ubicación", 2, align.Left),
		headerCell("Stock", 1, align.Center),
		headerCell("Mínimo", 1, align.Center),
		headerCell("Valor", 1, align.Right),
	))
	for _, it := range items {
		m.AddRows(row.New(7).Add(
			col.New(1).Add(text.New(it.Code, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(it.Category, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Location, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorAlert,
			})),
			col.New(1).Add(text.New(strconv.Itoa(it.MinStock), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New("$"+it.UnitValue.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de stock bajo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func tableHeader(cols ...core.Col) core.Row {
	return row.New(8).Add(cols...)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
