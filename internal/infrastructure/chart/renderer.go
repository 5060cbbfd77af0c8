// Package chart dibuja los gráficos de reportes como PNG con gonum/plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorBarra     = color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	colorTendencia = color.RGBA{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF}
	colorPuntos    = color.RGBA{R: 0x15, G: 0x65, B: 0xC0, A: 0xFF}
	colorCiclo     = color.RGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xFF}
)

var punteada = []vg.Length{vg.Points(4), vg.Points(3)}

// Renderer implementa reportes.ChartRenderer.
type Renderer struct {
	Ancho vg.Length
	Alto  vg.Length
}

var _ reportes.ChartRenderer = (*Renderer)(nil)

// NewRenderer crea el renderer con tamaño 10x6 pulgadas.
func NewRenderer() *Renderer {
	return &Renderer{Ancho: 10 * vg.Inch, Alto: 6 * vg.Inch}
}

// Barras dibuja un gráfico de barras vertical u horizontal, con rótulos de porcentaje
// y línea de tendencia opcionales.
func (r *Renderer) Barras(g reportes.GraficoBarras) ([]byte, error) {
	if len(g.Etiquetas) != len(g.Valores) {
		return nil, fmt.Errorf("chart: %d etiquetas para %d valores", len(g.Etiquetas), len(g.Valores))
	}
	p := plot.New()
	p.Title.Text = g.Titulo
	p.X.Label.Text = g.EjeX
	p.Y.Label.Text = g.EjeY

	if len(g.Valores) > 0 {
		bars, err := plotter.NewBarChart(plotter.Values(g.Valores), vg.Points(18))
		if err != nil {
			return nil, fmt.Errorf("chart: barras: %w", err)
		}
		bars.Horizontal = g.Horizontal
		bars.Color = colorBarra
		bars.LineStyle.Width = 0
		p.Add(bars)

		if g.Porcentaje {
			etiquetas, err := rotulos(g)
			if err != nil {
				return nil, err
			}
			p.Add(etiquetas)
		}
		if g.Tendencia != nil && len(g.Valores) > 1 {
			l, err := lineaTendencia(g)
			if err != nil {
				return nil, err
			}
			p.Add(l)
			p.Legend.Add("Tendencia", l)
		}
	}

	// el eje de categorías lleva las etiquetas; el de valores arranca en cero
	valores, categorias := &p.Y, &p.X
	if g.Horizontal {
		valores, categorias = &p.X, &p.Y
		p.X.Label.Text, p.Y.Label.Text = g.EjeY, g.EjeX
	}
	switch {
	case len(g.Etiquetas) == 0:
		categorias.Min, categorias.Max = -1, 1
	case g.Horizontal:
		p.NominalY(g.Etiquetas...)
	default:
		p.NominalX(g.Etiquetas...)
	}
	valores.Min = 0
	switch {
	case g.YMax > 0:
		valores.Max = g.YMax
	case len(g.Valores) == 0 || valores.Max <= 0:
		valores.Max = 1
	default:
		valores.Max *= 1.1
	}
	p.Add(plotter.NewGrid())
	return r.png(p)
}

// Curva dibuja los puntos (con su rango mínimo-máximo), la tendencia y las líneas
// verticales de los ciclos vegetativo y total.
func (r *Renderer) Curva(g reportes.GraficoCurva) ([]byte, error) {
	p := plot.New()
	p.Title.Text = g.Titulo
	p.X.Label.Text = "Días desde inicio de corte"
	p.Y.Label.Text = "Índice (%)"
	p.Legend.Top = true

	yMax := g.YMax
	xMax := float64(max(g.CicloTotal, g.CicloVegetativo))
	if len(g.Puntos) > 0 {
		pts := make(rangos, len(g.Puntos))
		for i, pt := range g.Puntos {
			pts[i] = rango{x: float64(pt.Dia), y: pt.IndicePromedio, bajo: pt.MinIndice, alto: pt.MaxIndice}
			xMax = math.Max(xMax, float64(pt.Dia))
			if g.YMax <= 0 {
				yMax = math.Max(yMax, pt.MaxIndice)
			}
		}
		errs, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: rangos: %w", err)
		}
		errs.LineStyle.Color = colorPuntos
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: puntos: %w", err)
		}
		s.GlyphStyle.Color = colorPuntos
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(errs, s)
		p.Legend.Add("Índice promedio", s)
	}

	if len(g.Tendencia.X) > 1 {
		l, err := plotter.NewLine(serie(g.Tendencia.X, g.Tendencia.Y))
		if err != nil {
			return nil, fmt.Errorf("chart: tendencia: %w", err)
		}
		l.LineStyle.Color = colorTendencia
		l.LineStyle.Width = vg.Points(2)
		nombre := "Tendencia lineal"
		if g.Tendencia.Suavizada {
			nombre = "Tendencia suavizada"
		}
		p.Add(l)
		p.Legend.Add(nombre, l)
	}

	if yMax <= 0 {
		yMax = 1
	}
	for _, c := range []struct {
		dia    int
		nombre string
	}{
		{g.CicloVegetativo, fmt.Sprintf("Ciclo vegetativo (%d días)", g.CicloVegetativo)},
		{g.CicloTotal, fmt.Sprintf("Ciclo total (%d días)", g.CicloTotal)},
	} {
		if c.dia <= 0 {
			continue
		}
		l, err := plotter.NewLine(serie([]float64{float64(c.dia), float64(c.dia)}, []float64{0, yMax}))
		if err != nil {
			return nil, fmt.Errorf("chart: ciclo: %w", err)
		}
		l.LineStyle.Color = colorCiclo
		l.LineStyle.Dashes = punteada
		p.Add(l)
		p.Legend.Add(c.nombre, l)
	}

	p.X.Min, p.X.Max = 0, xMax+5
	p.Y.Min, p.Y.Max = 0, yMax
	p.Add(plotter.NewGrid())
	return r.png(p)
}

func (r *Renderer) png(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(r.Ancho, r.Alto, "png")
	if err != nil {
		return nil, fmt.Errorf("chart: png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: png: %w", err)
	}
	return buf.Bytes(), nil
}

// rotulos ubica "v%" al final de cada barra.
func rotulos(g reportes.GraficoBarras) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(g.Valores))
	textos := make([]string, len(g.Valores))
	for i, v := range g.Valores {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		if g.Horizontal {
			xys[i] = plotter.XY{X: v, Y: float64(i)}
		}
		textos[i] = fmt.Sprintf("%.1f%%", v)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: textos})
	if err != nil {
		return nil, fmt.Errorf("chart: rótulos: %w", err)
	}
	return l, nil
}

func lineaTendencia(g reportes.GraficoBarras) (*plotter.Line, error) {
	n := len(g.Valores)
	pos := []float64{0, float64(n - 1)}
	val := []float64{
		g.Tendencia.Intercepto,
		g.Tendencia.Intercepto + g.Tendencia.Pendiente*float64(n-1),
	}
	xys := serie(pos, val)
	if g.Horizontal {
		xys = serie(val, pos)
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("chart: tendencia: %w", err)
	}
	l.LineStyle.Color = colorTendencia
	l.LineStyle.Width = vg.Points(2)
	l.LineStyle.Dashes = punteada
	return l, nil
}

func serie(xs, ys []float64) plotter.XYs {
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return out
}

// rango punto de la curva con su dispersión mínimo-máximo.
type rango struct{ x, y, bajo, alto float64 }

type rangos []rango

func (r rangos) Len() int                    { return len(r) }
func (r rangos) XY(i int) (float64, float64) { return r[i].x, r[i].y }
func (r rangos) YError(i int) (float64, float64) {
	return math.Max(r[i].y-r[i].bajo, 0), math.Max(r[i].alto-r[i].y, 0)
}
