// Package pdf implementa el reporte imprimible del libro de movimientos,
// pensado para conciliar el conteo físico contra el estado del sistema.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Libro de movimientos (período)                      │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cant | Valor | Usuario     │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES: entradas / salidas / gastos del período            │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/Almacen-api/internal/application/analytics"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoLedgerGenerator implementa analytics.LedgerPDFGenerator usando Maroto v2.
type MarotoLedgerGenerator struct{}

var _ analytics.LedgerPDFGenerator = (*MarotoLedgerGenerator)(nil)

// NewMarotoLedgerGenerator construye el generador.
func NewMarotoLedgerGenerator() *MarotoLedgerGenerator { return &MarotoLedgerGenerator{} }

// GenerateLedgerPDF genera el PDF y devuelve sus bytes.
func (g *MarotoLedgerGenerator) GenerateLedgerPDF(
	_ context.Context,
	title string,
	entries []dto.LedgerEntryDTO,
	totals dto.LedgerTotalsDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, e := range entries {
		m.AddRows(entryRow(e))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header("Fecha", 2),
		header("Producto", 3),
		header("Tipo", 2),
		header("Cant.", 1),
		header("Valor", 1),
		header("Usuario", 3),
	)
}

func entryRow(e dto.LedgerEntryDTO) core.Row {
	qty := ""
	if e.Quantity != nil {
		qty = strconv.FormatInt(*e.Quantity, 10)
	}
	amount := ""
	if e.Amount != nil {
		amount = e.Amount.StringFixed(2)
	}
	cell := func(value string, size int, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: alignment}))
	}
	return row.New(6).Add(
		cell(e.OccurredAt, 2, align.Left),
		cell(e.ProductName, 3, align.Left),
		cell(e.Kind, 2, align.Left),
		cell(qty, 1, align.Right),
		cell(amount, 1, align.Right),
		cell(e.Actor, 3, align.Left),
	)
}

func totalsRow(totals dto.LedgerTotalsDTO) core.Row {
	summary := fmt.Sprintf(
		"Entradas: %d   Salidas: %d   Gastos: %s",
		totals.Incoming, totals.Outgoing, totals.Expenses.StringFixed(2),
	)
	return row.New(10).Add(
		col.New(12).Add(
			text.New(summary, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorGray, Top: 2, Align: align.Right,
			}),
		),
	)
}
