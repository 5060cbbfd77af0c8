package produccion

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

const (
	muestrasSuavizado = 200
	muestrasLineal    = 100
	margenEjeY        = 1.2
	limiteEjeY        = 50.0
	ejeYSinDatos      = 20.0
)

// Serie par de coordenadas para graficar.
type Serie struct {
	X []float64
	Y []float64
}

// Tendencia línea de tendencia suavizada de la curva.
type Tendencia struct {
	Serie
	Suavizada bool // false: interpolación lineal
}

// SuavizarCurva ajusta una cúbica monótona (Fritsch-Butland) sobre los puntos cuando hay al
// menos minPuntos; si no, interpola linealmente. Los valores se recortan a [0, 1.2·máx].
func SuavizarCurva(puntos []Punto, cicloTotal, minPuntos int) Tendencia {
	xs, ys := coordenadas(puntos)
	if len(xs) < 2 {
		return Tendencia{Serie: Serie{X: xs, Y: ys}}
	}
	tope := floats.Max(ys) * margenEjeY

	if len(xs) >= minPuntos && len(xs) >= 3 {
		var fb interp.FritschButland
		if err := fb.Fit(xs, ys); err == nil {
			return Tendencia{Serie: muestrear(&fb, xs, cicloTotal, muestrasSuavizado, tope), Suavizada: true}
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return Tendencia{Serie: Serie{X: xs, Y: ys}}
	}
	return Tendencia{Serie: muestrear(&pl, xs, cicloTotal, muestrasLineal, tope)}
}

// LimiteEjeY es min(50, 1.2 × índice máximo), o 20 sin datos.
func LimiteEjeY(puntos []Punto) float64 {
	_, ys := coordenadas(puntos)
	if len(ys) == 0 || floats.Max(ys) <= 0 {
		return ejeYSinDatos
	}
	return min(limiteEjeY, floats.Max(ys)*margenEjeY)
}

// TendenciaLineal ajusta y = a + b·x por mínimos cuadrados.
func TendenciaLineal(xs, ys []float64) (a, b float64) {
	if len(xs) < 2 {
		return 0, 0
	}
	return stat.LinearRegression(xs, ys, nil, false)
}

func coordenadas(puntos []Punto) (xs, ys []float64) {
	xs = make([]float64, 0, len(puntos))
	ys = make([]float64, 0, len(puntos))
	for _, p := range puntos {
		// días ordenados; el origen y los cortes del día 0 comparten x y queda el origen
		if len(xs) > 0 && float64(p.Dia) <= xs[len(xs)-1] {
			continue
		}
		xs = append(xs, float64(p.Dia))
		ys = append(ys, p.IndicePromedio)
	}
	return xs, ys
}

func muestrear(p interp.Predictor, xs []float64, cicloTotal, n int, tope float64) Serie {
	desde, hasta := 0.0, float64(cicloTotal)
	if hasta <= desde {
		hasta = xs[len(xs)-1]
	}
	out := Serie{X: make([]float64, n), Y: make([]float64, n)}
	floats.Span(out.X, desde, hasta)
	for i, x := range out.X {
		xc := min(max(x, xs[0]), xs[len(xs)-1])
		y := p.Predict(xc)
		out.Y[i] = min(max(y, 0), tope)
	}
	return out
}
