package produccion

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Valores por defecto de los ciclos cuando no hay datos suficientes (días).
const (
	CicloVegetativoDefecto = 75
	CicloTotalDefecto      = 84
	CicloTotalRealDefecto  = 90
	CicloVegetativoMinimo  = 45
	MaximoCicloAbsoluto    = 93
	SuavizadoMinimoPuntos  = 4
)

// Rangos aceptados al muestrear ciclos por siembra.
const (
	vegetativoMin = 40
	vegetativoMax = 110
	totalMin      = 60
	totalMax      = 150
)

// Parametros ajustables de la curva (vienen de configuración).
type Parametros struct {
	MaximoCicloAbsoluto   int
	SuavizadoMinimoPuntos int
}

// ParametrosPorDefecto devuelve 93 días de ciclo máximo y 4 puntos mínimos para suavizar.
func ParametrosPorDefecto() Parametros {
	return Parametros{
		MaximoCicloAbsoluto:   MaximoCicloAbsoluto,
		SuavizadoMinimoPuntos: SuavizadoMinimoPuntos,
	}
}

// CorteMuestra es un corte reducido a fecha y tallos.
type CorteMuestra struct {
	Fecha  time.Time
	Tallos int
}

// SiembraMuestra es una siembra con sus plantas y cortes, entrada de la curva.
type SiembraMuestra struct {
	ID           string
	FechaSiembra time.Time
	Plantas      int
	Cortes       []CorteMuestra
}

// Punto de la curva: índice promedio de un día desde la siembra.
type Punto struct {
	Dia            int     `json:"dia"`
	IndicePromedio float64 `json:"indice_promedio"`
	MinIndice      float64 `json:"min_indice"`
	MaxIndice      float64 `json:"max_indice"`
	NumDatos       int     `json:"num_datos"`
}

// Curva resultado del cálculo para una variedad.
type Curva struct {
	Puntos             []Punto
	CicloVegetativo    int
	CicloProductivo    int
	CicloTotal         int
	MaxCicloHistorico  int
	TotalSiembras      int
	SiembrasConDatos   int
	TotalPlantas       int
	TotalTallos        int
	PromedioProduccion float64
}

// FiltroPeriodo restringe por semana ISO de siembra, ambos extremos YYYYWW inclusivos.
// El valor cero desactiva el filtro.
type FiltroPeriodo struct {
	Desde int
	Hasta int
}

// Activo indica si ambos extremos están definidos.
func (f FiltroPeriodo) Activo() bool {
	return f.Desde > 0 && f.Hasta > 0
}

// Contiene evalúa la fecha de siembra contra el rango YYYYWW.
func (f FiltroPeriodo) Contiene(t time.Time) bool {
	if !f.Activo() {
		return true
	}
	p := PeriodoDe(t)
	return f.Desde <= p && p <= f.Hasta
}

// CalcularCurva construye la curva de producción a partir de las siembras de una variedad.
func CalcularCurva(siembras []SiembraMuestra, periodo FiltroPeriodo, params Parametros) Curva {
	if params.MaximoCicloAbsoluto <= 0 {
		params.MaximoCicloAbsoluto = MaximoCicloAbsoluto
	}

	var c Curva
	var vegetativos, totales []int
	porDia := make(map[int][]float64)

	for _, s := range siembras {
		if s.FechaSiembra.IsZero() {
			continue
		}
		c.TotalSiembras++
		if len(s.Cortes) == 0 || s.Plantas <= 0 {
			continue
		}
		if !periodo.Contiene(s.FechaSiembra) {
			continue
		}
		c.SiembrasConDatos++
		c.TotalPlantas += s.Plantas

		primero, ultimo := s.Cortes[0].Fecha, s.Cortes[0].Fecha
		for _, ct := range s.Cortes[1:] {
			if ct.Fecha.Before(primero) {
				primero = ct.Fecha
			}
			if ct.Fecha.After(ultimo) {
				ultimo = ct.Fecha
			}
		}
		if veg := DiasEntre(s.FechaSiembra, primero); veg >= vegetativoMin && veg <= vegetativoMax {
			vegetativos = append(vegetativos, veg)
		}
		if tot := DiasEntre(s.FechaSiembra, ultimo); tot >= totalMin && tot <= totalMax {
			totales = append(totales, tot)
		}

		for _, ct := range s.Cortes {
			dia := DiasEntre(s.FechaSiembra, ct.Fecha)
			porDia[dia] = append(porDia[dia], Indice(ct.Tallos, s.Plantas))
			c.TotalTallos += ct.Tallos
		}
	}

	c.CicloVegetativo = CicloVegetativoDefecto
	if f := FiltrarOutliersIQR(enterosAFloat(vegetativos), FactorIQR); len(f) > 0 {
		c.CicloVegetativo = int(stat.Mean(f, nil))
	}

	maxReal := CicloTotalRealDefecto
	if len(totales) > 0 {
		maxReal = maxInt(totales)
	}
	c.CicloTotal = CicloTotalDefecto
	if f := FiltrarOutliersIQR(enterosAFloat(totales), FactorIQR); len(f) > 0 {
		c.CicloTotal = int(stat.Mean(f, nil))
	}
	c.CicloTotal = min(c.CicloTotal, maxReal, params.MaximoCicloAbsoluto)

	if c.CicloVegetativo >= c.CicloTotal {
		c.CicloVegetativo = max(CicloVegetativoMinimo, c.CicloTotal-10)
	}
	c.CicloProductivo = max(0, c.CicloTotal-c.CicloVegetativo)

	c.MaxCicloHistorico = c.CicloTotal
	if len(totales) > 0 {
		c.MaxCicloHistorico = maxInt(totales)
	}

	c.Puntos = puntosCurva(porDia, c.CicloTotal, c.SiembrasConDatos)

	if c.TotalPlantas > 0 {
		c.PromedioProduccion = IndiceAprovechamiento(c.TotalTallos, c.TotalPlantas)
	}
	return c
}

// puntosCurva agrega los índices por día hasta cicloTotal. El primer punto es siempre
// el origen (0, 0); cortes del día 0 van en un segundo punto con dia 0.
func puntosCurva(porDia map[int][]float64, cicloTotal, siembrasConDatos int) []Punto {
	dias := make([]int, 0, len(porDia))
	for d := range porDia {
		if d <= cicloTotal {
			dias = append(dias, d)
		}
	}
	sort.Ints(dias)

	puntos := make([]Punto, 0, len(dias)+1)
	puntos = append(puntos, Punto{Dia: 0, NumDatos: siembrasConDatos})
	for _, d := range dias {
		raw := porDia[d]
		filtrados := raw
		if len(raw) >= minMuestrasIQR {
			filtrados = FiltrarOutliersIQR(raw, FactorIQR)
		}
		if len(filtrados) == 0 {
			continue
		}
		puntos = append(puntos, Punto{
			Dia:            d,
			IndicePromedio: Redondear(stat.Mean(filtrados, nil), 2),
			MinIndice:      Redondear(floats.Min(filtrados), 2),
			MaxIndice:      Redondear(floats.Max(filtrados), 2),
			NumDatos:       len(raw),
		})
	}
	return puntos
}

func maxInt(v []int) int {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
