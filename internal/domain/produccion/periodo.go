package produccion

import (
	"fmt"
	"strconv"
	"time"
)

// ParsePeriodo valida un periodo YYYYWW (semana ISO 1..53) y lo devuelve como entero.
func ParsePeriodo(s string) (int, error) {
	if len(s) != 6 {
		return 0, fmt.Errorf("periodo %q: se espera YYYYWW", s)
	}
	anio, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, fmt.Errorf("periodo %q: año inválido", s)
	}
	semana, err := strconv.Atoi(s[4:])
	if err != nil || semana < 1 || semana > 53 {
		return 0, fmt.Errorf("periodo %q: semana inválida", s)
	}
	return anio*100 + semana, nil
}

// PeriodoDe devuelve año calendario × 100 + semana ISO. En los bordes de año no usa el
// año ISO: 2024-12-30 (semana 1 de 2025) da 202401.
func PeriodoDe(t time.Time) int {
	_, w := t.ISOWeek()
	return t.Year()*100 + w
}
