package produccion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cpc-api/internal/domain/produccion"
)

func TestPredecir_UsaVentanaDeCincoDias(t *testing.T) {
	refs := []produccion.Referencia{
		{DiasDesdeSiembra: 70, Indice: 10},
		{DiasDesdeSiembra: 74, Indice: 12},
		{DiasDesdeSiembra: 80, Indice: 50},
		{DiasDesdeSiembra: 67, Indice: 11},
	}

	p := produccion.Predecir(13, 72, refs)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.NumReferencias)
	assert.Equal(t, 11.0, p.IndicePromedio)
	assert.Equal(t, 12.0, p.IndiceMaximo)
	assert.Equal(t, 10.0, p.IndiceMinimo)
	assert.Equal(t, 2.0, p.Diferencia)
	assert.Equal(t, 13.0, p.IndiceActual)
}

func TestPredecir_SinReferenciasDevuelveNil(t *testing.T) {
	assert.Nil(t, produccion.Predecir(10, 70, nil))
	assert.Nil(t, produccion.Predecir(10, 70, []produccion.Referencia{{DiasDesdeSiembra: 90, Indice: 5}}))
}
