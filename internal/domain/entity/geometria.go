package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Area de siembra en m². Nombre (columna siembra) es único.
type Area struct {
	ID     string
	Nombre string
	Area   decimal.Decimal
}

// NombreAreaCalculada etiqueta un área creada a partir de plantas/densidad.
func NombreAreaCalculada(m2 float64) string {
	return fmt.Sprintf("ÁREA %.2fm²", m2)
}

// Densidad de siembra en plantas/m².
type Densidad struct {
	ID       string
	Densidad string
	Valor    decimal.Decimal
}

// Etiqueta devuelve "NOMBRE (v.v plantas/m²)".
func (d *Densidad) Etiqueta() string {
	return fmt.Sprintf("%s (%s plantas/m²)", d.Densidad, d.Valor.StringFixed(1))
}
