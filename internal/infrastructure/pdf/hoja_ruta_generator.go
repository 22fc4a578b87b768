// Package pdf genera la hoja de ruta diaria de un mensajero.
//
// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│  HEADER: Magic Stars + Mensajero     │  Fecha + cantidad de pedidos │
//	│  ─────────────────────────────────────────────────────────────────  │
//	│  TABLA: # | Pedido | Cliente | Dirección | Envío | Productos | Valor │
//	│  ─────────────────────────────────────────────────────────────────  │
//	│  TOTALES: Mensajería / Encomienda / Total a cobrar                   │
//	│  FOOTER: espacio para firma                                          │
//	└─────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/magicstars/ops-api/internal/application/ports"
)

var _ ports.HojaRutaGenerator = (*HojaRutaGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 45, Blue: 145}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 235, Green: 228, Blue: 245}
)

const (
	tipoMensajeria = "MENSAJERIA"
	tipoEncomienda = "ENCOMIENDA"
)

// ── Generator ─────────────────────────────────────────────────────────────────

// HojaRutaGenerator implementa ports.HojaRutaGenerator usando Maroto v2.
type HojaRutaGenerator struct{}

// NewHojaRutaGenerator construye el generador.
func NewHojaRutaGenerator() *HojaRutaGenerator { return &HojaRutaGenerator{} }

// GenerateHojaRuta genera el PDF y devuelve sus bytes.
func (g *HojaRutaGenerator) GenerateHojaRuta(
	_ context.Context,
	mensajero string,
	fecha time.Time,
	lineas []ports.HojaRutaLinea,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Hoja de ruta "+mensajero, true).
		WithAuthor("Magic Stars", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(mensajero, fecha, len(lineas)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lineas)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lineas))

	m.AddRows(line.NewRow(12))
	m.AddRows(firmaRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de ruta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(mensajero string, fecha time.Time, n int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("MAGIC STARS · HOJA DE RUTA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mensajero: "+mensajero, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+fecha.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("%d pedidos", n), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Pedido", 1, align.Left),
		h("Cliente", 2, align.Left),
		h("Dirección", 3, align.Left),
		h("Envío", 1, align.Center),
		h("Productos", 2, align.Left),
		h("Estado", 1, align.Center),
		h("Valor", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRows(lineas []ports.HojaRutaLinea) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for i, l := range lineas {
		p := l.Pedido
		result = append(result, row.New(10).Add(
			cell(strconv.Itoa(i+1), 1, align.Center),
			cell(p.IDPedido, 1, align.Left),
			cell(p.Cliente, 2, align.Left),
			cell(direccion(p.Provincia, p.Canton, p.Distrito), 3, align.Left),
			cell(nonEmpty(l.TipoEnvio, "-"), 1, align.Center),
			cell(p.Productos, 2, align.Left),
			cell(p.Estado, 1, align.Center),
			cell(formatColones(p.ValorTotal), 1, align.Right),
		))
	}
	return result
}

func totalsRow(lineas []ports.HojaRutaLinea) core.Row {
	var mensajeria, encomienda int
	total := decimal.Zero
	for _, l := range lineas {
		switch l.TipoEnvio {
		case tipoMensajeria:
			mensajeria++
		case tipoEncomienda:
			encomienda++
		}
		total = total.Add(l.Pedido.ValorTotal)
	}

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Mensajería:", 0),
			label("Encomienda:", 5),
			text.New("TOTAL A COBRAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 11,
			}),
		),
		col.New(3).Add(
			value(strconv.Itoa(mensajeria), 0),
			value(strconv.Itoa(encomienda), 5),
			text.New(formatColones(total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 11,
			}),
		),
	)
}

func firmaRow() core.Row {
	return row.New(10).Add(
		col.New(6).Add(text.New("Firma mensajero: ______________________________", props.Text{
			Size: 9, Color: colorGray, Top: 2,
		})),
		col.New(6).Add(text.New("Recibido por: ______________________________", props.Text{
			Size: 9, Color: colorGray, Top: 2, Align: align.Right,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func direccion(partes ...string) string {
	out := make([]string, 0, len(partes))
	for _, p := range partes {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return nonEmpty(strings.Join(out, ", "), "-")
}

// formatColones redondea a colones enteros con puntos de miles.
// Ej: 25000 → "CRC 25.000"
func formatColones(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return "CRC " + sign + formatMoney(s)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
