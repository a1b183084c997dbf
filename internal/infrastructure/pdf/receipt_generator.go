// Package pdf genera el comprobante de reserva en PDF (A4).
//
// Layout:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: marca        │  N° reserva + estado │
//	│  HUÉSPED: nombre + email                     │
//	│  ALOJAMIENTO: título, ubicación, categoría   │
//	│  ESTANCIA: entrada | salida | noches         │
//	│  TOTALES: precio/noche × noches = total      │
//	│  FOOTER: QR con el ID + leyenda              │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/booking"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/stay"
)

var _ booking.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 255, Green: 56, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa booking.ReceiptGenerator con Maroto v2.
type ReceiptGenerator struct {
	brand string
}

// NewReceiptGenerator construye el generador; brand aparece en la cabecera.
func NewReceiptGenerator(brand string) *ReceiptGenerator {
	if strings.TrimSpace(brand) == "" {
		brand = "StayBook"
	}
	return &ReceiptGenerator{brand: brand}
}

// GenerateReceipt devuelve los bytes del PDF.
func (g *ReceiptGenerator) GenerateReceipt(
	_ context.Context,
	b *entity.Booking,
	listing *entity.Listing,
	guest *entity.User,
) ([]byte, error) {
	if b == nil || listing == nil || guest == nil {
		return nil, fmt.Errorf("pdf: reserva, alojamiento y huésped son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de reserva", true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(section("HUÉSPED", guest.Name, guest.Email))
	m.AddRows(section("ALOJAMIENTO", listing.Title, joinNonEmpty(" · ", listing.Location, listing.Category)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(stayRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(b))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(b))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(b *entity.Booking) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.brand, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Comprobante de reserva", props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RESERVA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(b.ID, props.Text{Size: 7, Align: align.Right, Top: 6}),
			text.New("Estado: "+strings.ToUpper(string(b.Status)), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 12,
			}),
		),
	)
}

func section(title, main, detail string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(main, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(nonEmpty(detail, "—"), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func stayRow(b *entity.Booking) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Size: 10, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Entrada", b.CheckIn.Format(stay.DateLayout)),
		cell("Salida", b.CheckOut.Format(stay.DateLayout)),
		cell("Noches", fmt.Sprintf("%d", b.Nights)),
	)
}

// totalLine una fila de la columna de importes.
type totalLine struct {
	label, value string
	top          float64
	bold         bool
}

// totalsLines usa la tarifa congelada en la reserva, no el precio actual del alojamiento.
func totalsLines(b *entity.Booking) []totalLine {
	return []totalLine{
		{label: "Precio por noche:", value: formatMoney(stay.NightlyRate(b.TotalPrice, b.Nights)), top: 1},
		{label: "Noches:", value: fmt.Sprintf("× %d", b.Nights), top: 6},
		{label: "TOTAL:", value: formatMoney(b.TotalPrice), top: 12, bold: true},
	}
}

func totalsRow(b *entity.Booking) core.Row {
	labels, values := col.New(3), col.New(3)
	for _, l := range totalsLines(b) {
		p := props.Text{Size: 9, Align: align.Right, Right: 2, Top: l.top}
		if l.bold {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		labels.Add(text.New(l.label, p))
		values.Add(text.New(l.value, p))
	}
	return row.New(20).Add(col.New(6), labels, values)
}

func footerRow(b *entity.Booking) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(b.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Presente este código al llegar al alojamiento.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Emitido el "+b.CreatedAt.UTC().Format(stay.DateLayout), props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// formatMoney "$1,234.50" con separador de miles.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
