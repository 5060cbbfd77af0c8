// Package produccion contiene los cálculos puros de producción: índices de
// aprovechamiento, filtro de valores atípicos, ciclos y curva de producción.
package produccion

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// PlantasTotales devuelve las plantas sembradas: área (m²) × densidad (plantas/m²), truncado.
func PlantasTotales(area, densidad decimal.Decimal) int {
	return int(area.Mul(densidad).IntPart())
}

// Indice devuelve tallos/plantas × 100 sin redondear; 0 si no hay plantas.
func Indice(tallos, plantas int) float64 {
	if plantas <= 0 {
		return 0
	}
	return float64(tallos) / float64(plantas) * 100
}

// IndiceAprovechamiento es Indice redondeado a 2 decimales.
func IndiceAprovechamiento(tallos, plantas int) float64 {
	return Redondear(Indice(tallos, plantas), 2)
}

// Redondear redondea v a dec decimales.
func Redondear(v float64, dec int) float64 {
	p := math.Pow(10, float64(dec))
	return math.Round(v*p) / p
}

// PlantasDisponibles son las plantas que aún no se han cortado ni perdido, nunca negativas.
func PlantasDisponibles(plantas, tallos, perdidas int) int {
	d := plantas - tallos - perdidas
	if d < 0 {
		return 0
	}
	return d
}

// DiasEntre cuenta días calendario de desde a hasta (negativo si hasta es anterior).
func DiasEntre(desde, hasta time.Time) int {
	a := time.Date(desde.Year(), desde.Month(), desde.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(hasta.Year(), hasta.Month(), hasta.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DiasCiclo días desde la siembra hasta el fin de corte, el último corte o hoy (en ese orden).
func DiasCiclo(fechaSiembra time.Time, fechaFinCorte, ultimoCorte *time.Time, hoy time.Time) int {
	fin := hoy
	switch {
	case fechaFinCorte != nil:
		fin = *fechaFinCorte
	case ultimoCorte != nil:
		fin = *ultimoCorte
	}
	d := DiasEntre(fechaSiembra, fin)
	if d < 0 {
		return 0
	}
	return d
}
