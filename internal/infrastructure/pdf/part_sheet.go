// Package pdf genera la hoja de datos de una pieza.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + categoría      │  N° de pieza              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Footprint / Lugar / Unidad / Stock / Mínimo / Precio │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fabricante | N° de parte                             │
//	│  TABLA: Distribuidor | N° de pedido | Empaque | Precio       │
//	│  TABLA: Parámetro | Valor                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id + comentario                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PartSheetGenerator implementa inventory.PartSheetGenerator usando Maroto v2.
type PartSheetGenerator struct {
	author string
}

// NewPartSheetGenerator construye el generador; author va en los metadatos del PDF.
func NewPartSheetGenerator(author string) *PartSheetGenerator {
	return &PartSheetGenerator{author: author}
}

// QRContent texto codificado en el QR de la hoja.
func QRContent(partID int64) string {
	return fmt.Sprintf("partdb:part:%d", partID)
}

// GeneratePartSheet genera el PDF y devuelve sus bytes.
func (g *PartSheetGenerator) GeneratePartSheet(ctx context.Context, p entity.PartSnapshot, tr domain.Translator) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(p.Name, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p, tr))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRows(p, tr)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(p.Manufacturers) > 0 {
		rows := make([][]string, 0, len(p.Manufacturers))
		for _, pm := range p.Manufacturers {
			rows = append(rows, []string{deref(pm.ManufacturerName), pm.PartNumber})
		}
		m.AddRows(table(tr.T("Manufacturers"), []column{{tr.T("Manufacturer"), 6}, {tr.T("Part Number"), 6}}, rows)...)
	}
	if len(p.Distributors) > 0 {
		rows := make([][]string, 0, len(p.Distributors))
		for _, pd := range p.Distributors {
			price := "-"
			if pd.Price != nil {
				price = pd.Price.StringFixed(4)
			}
			rows = append(rows, []string{deref(pd.DistributorName), pd.OrderNumber, fmt.Sprint(pd.PackagingUnit), price})
		}
		m.AddRows(table(tr.T("Distributors"), []column{
			{tr.T("Distributor"), 4}, {tr.T("Order Number"), 4}, {tr.T("Packaging Unit"), 2}, {tr.T("Price"), 2},
		}, rows)...)
	}
	if len(p.Parameters) > 0 {
		rows := make([][]string, 0, len(p.Parameters))
		for _, pp := range p.Parameters {
			rows = append(rows, []string{pp.Name, pp.Value.String() + " " + pp.Unit})
		}
		m.AddRows(table(tr.T("Parameters"), []column{{tr.T("Name"), 6}, {tr.T("Value"), 6}}, rows)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(p, tr))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de la pieza %d: %w", p.ID, err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y categoría (izq), número de pieza (der).
func headerRow(p entity.PartSnapshot, tr domain.Translator) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(tr.T("Category")+": "+nonEmpty(deref(p.CategoryName), "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%s #%d", tr.T("Part"), p.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
		),
	)
}

// detailRows: pares etiqueta/valor en dos columnas.
func detailRows(p entity.PartSnapshot, tr domain.Translator) []core.Row {
	avg := "-"
	if p.AveragePrice != nil {
		avg = p.AveragePrice.StringFixed(4)
	}
	unit := p.PartUnitName
	if p.PartUnitShortName != "" {
		unit += " (" + p.PartUnitShortName + ")"
	}
	pairs := [][2]string{
		{tr.T("Footprint"), nonEmpty(deref(p.FootprintName), "-")},
		{tr.T("Storage Location"), nonEmpty(deref(p.StorageLocationName), "-")},
		{tr.T("Part Unit"), unit},
		{tr.T("Stock"), fmt.Sprint(p.StockLevel)},
		{tr.T("Minimum Stock"), fmt.Sprint(p.MinStockLevel)},
		{tr.T("Average Price"), avg},
	}
	rows := make([]core.Row, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		r := row.New(6)
		for _, pair := range pairs[i:min(i+2, len(pairs))] {
			r.Add(
				col.New(3).Add(text.New(pair[0]+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
				col.New(3).Add(text.New(pair[1], props.Text{Size: 8, Top: 1})),
			)
		}
		rows = append(rows, r)
	}
	return rows
}

type column struct {
	title string
	size  int
}

// table: título, cabecera y una fila por registro.
func table(title string, cols []column, data [][]string) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}))),
	}
	header := row.New(6)
	for _, c := range cols {
		header.Add(col.New(c.size).Add(text.New(c.title, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	rows = append(rows, header)
	for _, values := range data {
		r := row.New(5)
		for i, c := range cols {
			r.Add(col.New(c.size).Add(text.New(values[i], props.Text{Size: 8, Top: 0.5, Left: 1})))
		}
		rows = append(rows, r)
	}
	return rows
}

// footerRow: QR con el id de la pieza y el comentario.
func footerRow(p entity.PartSnapshot, tr domain.Translator) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(QRContent(p.ID), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(tr.T("Comment")+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Left: 3}),
			text.New(nonEmpty(p.Comment, "-"), props.Text{Size: 8, Top: 7, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
