package produccion_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/cpc-api/internal/domain/produccion"
)

func TestPercentil_InterpolacionLineal(t *testing.T) {
	v := []float64{4, 1, 3, 2}
	assert.InDelta(t, 1.75, produccion.Percentil(v, 25), 1e-9)
	assert.InDelta(t, 3.25, produccion.Percentil(v, 75), 1e-9)
	assert.InDelta(t, 2.5, produccion.Percentil(v, 50), 1e-9)
	assert.Equal(t, []float64{4, 1, 3, 2}, v, "no debe modificar la entrada")
}

func TestPercentil_CasosBorde(t *testing.T) {
	assert.True(t, math.IsNaN(produccion.Percentil(nil, 25)))
	assert.Equal(t, 7.0, produccion.Percentil([]float64{7}, 75))
}

func TestFiltrarOutliersIQR(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  []float64
	}{
		{
			name:  "descarta el atípico y conserva el orden",
			input: []float64{10, 12, 11, 13, 12, 100},
			want:  []float64{10, 12, 11, 13, 12},
		},
		{
			name:  "menos de cinco valores no filtra",
			input: []float64{1, 2, 1000, 3},
			want:  []float64{1, 2, 1000, 3},
		},
		{
			name:  "IQR cero no filtra",
			input: []float64{5, 5, 5, 5, 5, 9},
			want:  []float64{5, 5, 5, 5, 5, 9},
		},
		{
			name:  "atípico inferior",
			input: []float64{-50, 20, 21, 22, 23, 24},
			want:  []float64{20, 21, 22, 23, 24},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := produccion.FiltrarOutliersIQR(tt.input, produccion.FactorIQR)
			assert.Equal(t, tt.want, got)
		})
	}
}
