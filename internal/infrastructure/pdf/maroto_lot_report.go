// Package pdf genera el reporte de lotes próximos a vencer con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + subtítulo  │  Fecha de generación + umbral │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOTES POR VENCER (N)                                        │
//	│  Producto | Categoría | Lote | Ingreso | Vence | Días | ...  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LOTES VENCIDOS (N)                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/lot-expiry-notifications/internal/application/dto"
	"github.com/jhoicas/lot-expiry-notifications/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 242, Green: 245, Blue: 250}
)

var _ report.ReportPDFGenerator = (*MarotoLotReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLotReportGenerator implementa report.ReportPDFGenerator usando Maroto v2.
type MarotoLotReportGenerator struct {
	author string
}

// NewMarotoLotReportGenerator construye el generador. author va en los metadatos del PDF.
func NewMarotoLotReportGenerator(author string) *MarotoLotReportGenerator {
	return &MarotoLotReportGenerator{author: author}
}

// GenerateLotReport genera el PDF y devuelve sus bytes.
func (g *MarotoLotReportGenerator) GenerateLotReport(ctx context.Context, data report.ReportData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(data.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow(fmt.Sprintf("LOTES PRÓXIMOS A VENCER (%d)", len(data.Expiring)), colorPrimary))
	m.AddRows(lotTableRows(data.Expiring, colorPrimary,
		fmt.Sprintf("No hay lotes que venzan en los próximos %d días.", data.DaysThreshold))...)

	if len(data.Expired) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(sectionRow(fmt.Sprintf("LOTES VENCIDOS (%d)", len(data.Expired)), colorDanger))
		m.AddRows(lotTableRows(data.Expired, colorDanger, "")...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y subtítulo (izq), fecha de generación y umbral (der).
func headerRow(data report.ReportData) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(data.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+nonEmpty(data.GeneratedAt, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Umbral: %d días", data.DaysThreshold), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

func sectionRow(title string, color *props.Color) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: color, Top: 2}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

var lotColumns = []column{
	{"Producto", 3, align.Left},
	{"Categoría", 2, align.Left},
	{"Lote", 1, align.Left},
	{"Ingreso", 1, align.Center},
	{"Vence", 1, align.Center},
	{"Días", 1, align.Center},
	{"Ubicación", 2, align.Left},
	{"Cantidad", 1, align.Right},
}

// lotTableRows: cabecera con fondo de color y una fila por lote (filas alternas sombreadas).
func lotTableRows(lines []dto.LotLineDTO, headerColor *props.Color, emptyMessage string) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New(emptyMessage, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}

	header := make([]core.Col, 0, len(lotColumns))
	for _, c := range lotColumns {
		header = append(header, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	rows := []core.Row{row.New(7).Add(header...).WithStyle(&props.Cell{BackgroundColor: headerColor})}

	for i, l := range lines {
		values := []string{
			l.ProductName,
			l.CategoryName,
			l.LotName,
			nonEmpty(l.InDate, "-"),
			l.ExpirationDate,
			daysLabel(l.DaysLeft),
			l.LocationName,
			formatQuantity(l.Quantity),
		}
		cols := make([]core.Col, 0, len(lotColumns))
		for j, c := range lotColumns {
			cols = append(cols, col.New(c.size).Add(text.New(values[j], props.Text{
				Size: 7, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Reporte generado automáticamente. Solo incluye existencias en ubicaciones internas con cantidad disponible.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// daysLabel "hoy", "5 d" o "hace 3 d".
func daysLabel(days int) string {
	switch {
	case days == 0:
		return "hoy"
	case days < 0:
		return fmt.Sprintf("hace %d d", -days)
	default:
		return fmt.Sprintf("%d d", days)
	}
}

// formatQuantity puntos de miles y coma decimal, sin ceros sobrantes.
// Ej: 25000 → "25.000", 1234.50 → "1.234,5"
func formatQuantity(q decimal.Decimal) string {
	s := q.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
