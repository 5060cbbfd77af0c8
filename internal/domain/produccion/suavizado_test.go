package produccion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cpc-api/internal/domain/produccion"
)

func puntos(pares ...float64) []produccion.Punto {
	var out []produccion.Punto
	for i := 0; i+1 < len(pares); i += 2 {
		out = append(out, produccion.Punto{Dia: int(pares[i]), IndicePromedio: pares[i+1]})
	}
	return out
}

func TestSuavizarCurva_PocosPuntosInterpolaLineal(t *testing.T) {
	tr := produccion.SuavizarCurva(puntos(0, 0, 70, 10, 80, 5), 80, 4)

	assert.False(t, tr.Suavizada)
	require.Len(t, tr.X, 100)
	assert.Equal(t, 0.0, tr.X[0])
	assert.Equal(t, 80.0, tr.X[len(tr.X)-1])
	assert.InDelta(t, 5.0, tr.Y[len(tr.Y)-1], 1e-9)
}

func TestSuavizarCurva_MonotonaRecortada(t *testing.T) {
	tr := produccion.SuavizarCurva(puntos(0, 0, 60, 2, 70, 10, 75, 30, 80, 5), 85, 4)

	assert.True(t, tr.Suavizada)
	require.Len(t, tr.Y, 200)
	for _, y := range tr.Y {
		assert.GreaterOrEqual(t, y, 0.0)
		assert.LessOrEqual(t, y, 36.0+1e-9)
	}
	assert.Equal(t, 85.0, tr.X[len(tr.X)-1])
}

func TestSuavizarCurva_UnPunto(t *testing.T) {
	tr := produccion.SuavizarCurva(puntos(0, 0), 80, 4)
	assert.False(t, tr.Suavizada)
	assert.Len(t, tr.X, 1)
}

func TestLimiteEjeY(t *testing.T) {
	assert.InDelta(t, 12.0, produccion.LimiteEjeY(puntos(0, 0, 70, 10)), 1e-9)
	assert.Equal(t, 50.0, produccion.LimiteEjeY(puntos(0, 0, 70, 60)))
	assert.Equal(t, 20.0, produccion.LimiteEjeY(nil))
}

func TestTendenciaLineal(t *testing.T) {
	a, b := produccion.TendenciaLineal([]float64{1, 2, 3}, []float64{3, 5, 7})
	assert.InDelta(t, 1.0, a, 1e-9)
	assert.InDelta(t, 2.0, b, 1e-9)
}
