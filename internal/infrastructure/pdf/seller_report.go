// Package pdf genera el informe de ventas del vendedor en A4.
//
// Layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + vendedor     │  Informe de ventas + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ventas / ingresos / beneficio / valoración ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: productos más vendidos                              │
//	│  TABLA: ventas por mes                                      │
//	│  TABLA: pedidos recientes                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al panel + leyenda                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxTableRows límite de filas por tabla para que el informe quepa en pocas páginas.
const maxTableRows = 15

// ── Generator ─────────────────────────────────────────────────────────────────

// SellerReportGenerator informe PDF de estadísticas del vendedor sobre Maroto v2.
type SellerReportGenerator struct {
	storeName    string
	dashboardURL string
}

// NewSellerReportGenerator construye el generador. dashboardURL vacío omite el QR.
func NewSellerReportGenerator(storeName, dashboardURL string) *SellerReportGenerator {
	return &SellerReportGenerator{storeName: nonEmpty(storeName, "Storefront"), dashboardURL: dashboardURL}
}

// GenerateSellerReport genera el PDF y devuelve sus bytes.
func (g *SellerReportGenerator) GenerateSellerReport(
	_ context.Context,
	client *entity.Client,
	stats *entity.SellerStats,
	generatedAt time.Time,
) ([]byte, error) {
	if stats == nil {
		stats = &entity.SellerStats{}
	}
	seller := "—"
	if client != nil {
		seller = nonEmpty(client.FullName, nonEmpty(client.Username, client.ID.String()))
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de ventas", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, seller, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(stats)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(tableHeaderRow([]string{"Producto", "Ventas", "Ingresos"}, []int{8, 2, 2}))
	m.AddRows(topProductRows(stats.TopProducts)...)

	m.AddRows(sectionTitle("VENTAS POR MES"))
	m.AddRows(tableHeaderRow([]string{"Mes", "Ventas", "Ingresos"}, []int{8, 2, 2}))
	m.AddRows(monthlyRows(stats.SalesByMonth)...)

	m.AddRows(sectionTitle("PEDIDOS RECIENTES"))
	m.AddRows(tableHeaderRow([]string{"Pedido", "Producto", "Estado", "Fecha", "Importe"}, []int{2, 4, 2, 2, 2}))
	m.AddRows(orderRows(stats.RecentOrders)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(store, seller string, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(store, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Vendedor: "+seller, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INFORME DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRows(s *entity.SellerStats) []core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			cell("Ventas", fmt.Sprintf("%d", s.TotalSales)),
			cell("Ingresos", formatAmount(s.TotalRevenue)),
			cell("Beneficio", formatAmount(s.TotalProfit)),
			cell("Valoración media", s.AverageRating.StringFixed(1)),
		),
		row.New(14).Add(
			cell("Vistas", fmt.Sprintf("%d", s.TotalViews)),
			cell("Pedidos", fmt.Sprintf("%d", s.TotalOrders)),
			cell("Pendientes", fmt.Sprintf("%d", s.PendingOrders)),
			cell("Completados", fmt.Sprintf("%d", s.CompletedOrders)),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, label := range labels {
		a := align.Left
		if i == len(labels)-1 {
			a = align.Right
		}
		cols[i] = col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func cellText(s string, a align.Type) core.Component {
	return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
}

func emptyRow() core.Row {
	return row.New(6).Add(col.New(12).Add(text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1})))
}

func topProductRows(items []entity.TopProduct) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, min(len(items), maxTableRows))
	for _, p := range items[:min(len(items), maxTableRows)] {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(cellText(truncate(p.Name, 70), align.Left)),
			col.New(2).Add(cellText(fmt.Sprintf("%d", p.Sales), align.Left)),
			col.New(2).Add(cellText(formatAmount(p.Revenue), align.Right)),
		))
	}
	return rows
}

func monthlyRows(items []entity.MonthlySales) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, min(len(items), maxTableRows))
	for _, m := range items[:min(len(items), maxTableRows)] {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(cellText(m.Month, align.Left)),
			col.New(2).Add(cellText(fmt.Sprintf("%d", m.Sales), align.Left)),
			col.New(2).Add(cellText(formatAmount(m.Revenue), align.Right)),
		))
	}
	return rows
}

func orderRows(items []entity.SellerOrder) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := make([]core.Row, 0, min(len(items), maxTableRows))
	for _, o := range items[:min(len(items), maxTableRows)] {
		date := "—"
		if !o.CreatedAt.IsZero() {
			date = o.CreatedAt.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(cellText("#"+o.ID.String(), align.Left)),
			col.New(4).Add(cellText(truncate(o.ProductName, 40), align.Left)),
			col.New(2).Add(cellText(o.Status, align.Left)),
			col.New(2).Add(cellText(date, align.Left)),
			col.New(2).Add(cellText(formatAmount(o.Amount), align.Right)),
		))
	}
	return rows
}

func (g *SellerReportGenerator) footerRows() []core.Row {
	legend := text.New("Cifras informadas por el marketplace en el momento de la generación.", props.Text{
		Size: 6.5, Color: colorGray, Top: 2,
	})
	if g.dashboardURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(legend))}
	}
	return []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(g.dashboardURL, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Escanea el código QR para abrir\ntu panel de vendedor.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(legend)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount "1234567.5" → "1 234 567.50 RUB".
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "." + frac + " RUB"
}

// groupThousands inserta espacios de miles: "1000000" → "1 000 000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
