// Package pdf exporta las tablas del panel a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────┐
//	│  TÍTULO de la página                        │
//	│  Subtítulo: usuario · fecha                 │
//	│  ─────────────────────────────────────────  │
//	│  CABECERA: una columna por campo visible    │
//	│  FILAS: textos ya formateados               │
//	│  ─────────────────────────────────────────  │
//	│  PIE: total de filas                        │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cddiller/dashboard-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// A partir de este número de columnas la página pasa a horizontal.
const landscapeFrom = 6

var _ ports.TableExporter = (*TableExporter)(nil)

// TableExporter implementa ports.TableExporter con Maroto v2.
type TableExporter struct {
	author string
}

// NewTableExporter construye el exportador; author va en los metadatos del PDF.
func NewTableExporter(author string) *TableExporter { return &TableExporter{author: author} }

// ExportTable genera el PDF y devuelve sus bytes.
func (e *TableExporter) ExportTable(ctx context.Context, doc ports.TableDocument) ([]byte, error) {
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("pdf: la tabla %q no tiene columnas", doc.Title)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grid := len(doc.Headers)

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithMaxGridSize(grid).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true).
		WithAuthor(e.author, true)
	if grid >= landscapeFrom {
		b = b.WithOrientation(orientation.Horizontal)
	}
	m := maroto.New(b.Build())

	m.AddRows(titleRow(doc, grid))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(doc.Headers))
	for i, cells := range doc.Rows {
		m.AddRows(bodyRow(cells, grid, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(doc.Rows), grid))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func titleRow(doc ports.TableDocument, grid int) core.Row {
	return row.New(16).Add(
		col.New(grid).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Subtitle, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
	)
}

func headerRow(headers []string) core.Row {
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = col.New(1).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cols...)
}

// bodyRow rellena con vacío las celdas que falten para no romper la grilla.
func bodyRow(cells []string, grid int, striped bool) core.Row {
	cols := make([]core.Col, grid)
	for i := range cols {
		var v string
		if i < len(cells) {
			v = cells[i]
		}
		cols[i] = col.New(1).Add(text.New(v, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1,
		}))
	}
	r := row.New(7).Add(cols...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func footerRow(n, grid int) core.Row {
	return row.New(8).Add(col.New(grid).Add(
		text.New(fmt.Sprintf("Filas: %d", n), props.Text{
			Size: 7, Align: align.Right, Color: colorGray, Top: 2,
		}),
	))
}
