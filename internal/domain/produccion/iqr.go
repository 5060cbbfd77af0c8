package produccion

import (
	"math"
	"sort"
)

// FactorIQR multiplicador estándar del rango intercuartil.
const FactorIQR = 1.5

// minMuestrasIQR por debajo de este tamaño el filtro no se aplica.
const minMuestrasIQR = 5

// Percentil calcula el percentil p (0-100) con interpolación lineal entre rangos vecinos,
// la misma convención que usan las hojas de cálculo (PERCENTILE.INC).
func Percentil(valores []float64, p float64) float64 {
	if len(valores) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), valores...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// FiltrarOutliersIQR descarta valores fuera de [Q1 − f·IQR, Q3 + f·IQR] conservando el orden.
// Con menos de 5 valores, o si IQR es 0, devuelve la entrada sin cambios.
func FiltrarOutliersIQR(valores []float64, factor float64) []float64 {
	if len(valores) < minMuestrasIQR {
		return valores
	}
	q1 := Percentil(valores, 25)
	q3 := Percentil(valores, 75)
	iqr := q3 - q1
	if iqr == 0 {
		return valores
	}
	inf := q1 - factor*iqr
	sup := q3 + factor*iqr
	out := make([]float64, 0, len(valores))
	for _, v := range valores {
		if v >= inf && v <= sup {
			out = append(out, v)
		}
	}
	return out
}

func enterosAFloat(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
