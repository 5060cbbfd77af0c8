package produccion

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AnalisisCiclos resume los ciclos observados de una variedad.
type AnalisisCiclos struct {
	CicloVegetativo  int     `json:"ciclo_vegetativo"`
	CicloTotal       int     `json:"ciclo_total"`
	CicloProductivo  int     `json:"ciclo_productivo"`
	CortesPromedio   float64 `json:"cortes_promedio"`
	NumSiembras      int     `json:"num_siembras"`
	SiembrasConDatos int     `json:"siembras_con_datos"`
}

// AnalizarCiclos estima ciclos promedio con rangos más amplios que la curva
// (vegetativo 30..110, total 45..150) y valores por defecto 65/90.
func AnalizarCiclos(siembras []SiembraMuestra) AnalisisCiclos {
	var vegetativos, totales []float64
	var numCortes []float64
	a := AnalisisCiclos{NumSiembras: len(siembras)}

	for _, s := range siembras {
		if len(s.Cortes) == 0 {
			continue
		}
		a.SiembrasConDatos++
		cortes := append([]CorteMuestra(nil), s.Cortes...)
		sort.Slice(cortes, func(i, j int) bool { return cortes[i].Fecha.Before(cortes[j].Fecha) })

		if veg := DiasEntre(s.FechaSiembra, cortes[0].Fecha); veg >= 30 && veg <= 110 {
			vegetativos = append(vegetativos, float64(veg))
		}
		if tot := DiasEntre(s.FechaSiembra, cortes[len(cortes)-1].Fecha); tot >= 45 && tot <= 150 {
			totales = append(totales, float64(tot))
		}
		numCortes = append(numCortes, float64(len(cortes)))
	}

	veg := 65.0
	if f := FiltrarOutliersIQR(vegetativos, FactorIQR); len(f) > 0 {
		veg = stat.Mean(f, nil)
	}
	tot := 90.0
	if f := FiltrarOutliersIQR(totales, FactorIQR); len(f) > 0 {
		tot = stat.Mean(f, nil)
	}
	if len(numCortes) > 0 {
		a.CortesPromedio = Redondear(stat.Mean(numCortes, nil), 1)
	}
	if veg >= tot {
		veg = tot * 0.7
	}

	a.CicloVegetativo = int(math.RoundToEven(veg))
	a.CicloTotal = int(math.RoundToEven(tot))
	a.CicloProductivo = int(math.RoundToEven(tot - veg))
	return a
}
