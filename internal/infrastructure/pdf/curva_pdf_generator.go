// Package pdf genera el reporte PDF de la curva de producción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Curva de Producción + variedad │ Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ciclos │ siembras │ plantas y tallos               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GRÁFICO (PNG)                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Día | Índice prom. | Mín | Máx | N° datos            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 241, Green: 248, Blue: 233}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reportes.CurvaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

var _ reportes.CurvaPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateCurvaPDF genera el PDF y devuelve sus bytes. grafico es el PNG de la curva;
// si viene vacío la sección del gráfico se omite.
func (g *MarotoPDFGenerator) GenerateCurvaPDF(
	_ context.Context,
	curva *dto.CurvaResponse,
	grafico []byte,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Curva de Producción "+curva.Variedad, true).
		WithAuthor("cpc-api", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(curva, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumenRows(curva)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(grafico) > 0 {
		m.AddRows(row.New(110).Add(
			col.New(12).Add(image.NewFromBytes(grafico, extension.Png, props.Rect{
				Percent: 100,
				Center:  true,
			})),
		))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(tableHeaderRow())
	m.AddRows(tablePuntosRows(curva.Puntos)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Índice = tallos acumulados / plantas sembradas × 100, promediado por día desde el inicio de corte.",
			props.Text{Size: 6.5, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y variedad (izq), fecha de generación (der).
func headerRow(c *dto.CurvaResponse, ahora time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New("CURVA DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s · %s · %s", c.Flor, c.Color, c.Variedad), props.Text{
				Size: 10, Top: 9,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+ahora.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// resumenRows: ciclos, siembras y producción en tres columnas.
func resumenRows(c *dto.CurvaResponse) []core.Row {
	titulo := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
	}
	dato := func(label, valor string, top float64) core.Component {
		return text.New(label+": "+valor, props.Text{Size: 8, Top: top, Color: colorGray})
	}
	return []core.Row{
		row.New(24).Add(
			col.New(4).Add(
				titulo("CICLOS (DÍAS)"),
				dato("Vegetativo", strconv.Itoa(c.CicloVegetativo), 6),
				dato("Productivo", strconv.Itoa(c.CicloProductivo), 11),
				dato("Total", strconv.Itoa(c.CicloTotal), 16),
			),
			col.New(4).Add(
				titulo("SIEMBRAS"),
				dato("Analizadas", strconv.Itoa(c.TotalSiembras), 6),
				dato("Con datos", strconv.Itoa(c.SiembrasConDatos), 11),
				dato("Ciclo máx. histórico", strconv.Itoa(c.MaxCicloHistorico), 16),
			),
			col.New(4).Add(
				titulo("PRODUCCIÓN"),
				dato("Plantas", formatMiles(c.TotalPlantas), 6),
				dato("Tallos", formatMiles(c.TotalTallos), 11),
				dato("Promedio", strconv.FormatFloat(c.PromedioProduccion, 'f', 2, 64)+"%", 16),
			),
		),
	}
}

// tableHeaderRow: cabecera de la tabla de puntos.
func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center,
			Color: colorWhite, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Día", 2),
		h("Índice promedio (%)", 3),
		h("Mínimo (%)", 2),
		h("Máximo (%)", 2),
		h("N° datos", 3),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tablePuntosRows: una fila por punto de la curva, con filas alternas sombreadas.
func tablePuntosRows(puntos []produccion.Punto) []core.Row {
	if len(puntos) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin datos de producción para los filtros indicados.", props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: colorGray,
			}),
		))}
	}
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: align.Center, Top: 1}))
	}
	pct := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	result := make([]core.Row, 0, len(puntos))
	for i, p := range puntos {
		r := row.New(6).Add(
			cell(strconv.Itoa(p.Dia), 2),
			cell(pct(p.IndicePromedio), 3),
			cell(pct(p.MinIndice), 2),
			cell(pct(p.MaxIndice), 2),
			cell(strconv.Itoa(p.NumDatos), 3),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		result = append(result, r)
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMiles inserta puntos de miles.
// Ej: 25000 → "25.000", 1000000 → "1.000.000"
func formatMiles(n int) string {
	s := strconv.Itoa(n)
	signo := ""
	if n < 0 {
		signo, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return signo + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return signo + string(buf)
}
