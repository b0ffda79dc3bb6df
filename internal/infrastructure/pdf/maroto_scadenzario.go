// Package pdf implementa la generazione dello scadenzario in PDF:
// l'elenco delle scadenze in attesa dello studio, una riga per scadenza,
// con cliente, priorità, data e importo in formato italiano.
//
// Layout della pagina A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome studio  │  "Scadenzario" + data generazione   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELLA: Scadenza | Cliente | Priorità | Data | Importo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALE IMPORTI                                              │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fab128k/gestionale-adempimenti-fiscali/internal/application/report"
)

// ── Palette colori ────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var priorityLabels = map[string]string{
	"urgent": "Urgente",
	"high":   "Alta",
	"normal": "Normale",
	"low":    "Bassa",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoScadenzarioGenerator implementa report.ScadenzarioGenerator con Maroto v2.
type MarotoScadenzarioGenerator struct {
	printer *message.Printer
}

// NewMarotoScadenzarioGenerator costruisce il generatore con il printer it-IT.
func NewMarotoScadenzarioGenerator() *MarotoScadenzarioGenerator {
	return &MarotoScadenzarioGenerator{printer: message.NewPrinter(language.Italian)}
}

// GenerateScadenzarioPDF genera il PDF e ne restituisce i byte.
func (g *MarotoScadenzarioGenerator) GenerateScadenzarioPDF(_ context.Context, data report.ScadenzarioData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Scadenzario", true).
		WithAuthor(data.StudioName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(data.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(data.TotalAmount))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generare documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sezioni ───────────────────────────────────────────────────────────────────

func (g *MarotoScadenzarioGenerator) headerRow(data report.ScadenzarioData) core.Row {
	studio := data.StudioName
	if studio == "" {
		studio = "Studio"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(studio, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("SCADENZARIO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generato il "+data.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Scadenza", 3, align.Left),
		h("Cliente", 4, align.Left),
		h("Priorità", 1, align.Center),
		h("Data", 2, align.Center),
		h("Importo", 2, align.Right),
	)
}

func (g *MarotoScadenzarioGenerator) tableRows(rows []report.Row) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		d := r.Deadline
		denominazione := "—"
		if r.Client != nil {
			denominazione = r.Client.Denominazione
		}
		dateColor := colorGray
		if r.Overdue {
			dateColor = colorRed
		}
		priorita, ok := priorityLabels[d.Priority]
		if !ok {
			priorita = d.Priority
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				d.Type,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				denominazione,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				priorita,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				d.DueDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: dateColor},
			)),
			col.New(2).Add(text.New(
				g.formatAmount(d.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func (g *MarotoScadenzarioGenerator) totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8).Add(text.New("TOTALE IMPORTI", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New(g.formatAmount(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// formatAmount formatta l'importo in locale it-IT (separatore migliaia,
// virgola decimale).
func (g *MarotoScadenzarioGenerator) formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "—"
	}
	f, _ := amount.Float64()
	return "€ " + g.printer.Sprintf("%.2f", f)
}
