package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Taxonomía ───────────────────────────────────────────────────────────────

func TestTaxonomia_NombresNormalizadosYDuplicados(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.taxonomia.CreateFlor(ctx, dto.FlorRequest{Flor: "  clavel ", FlorAbrev: "cl"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	f, err := e.taxonomia.CreateFlor(ctx, dto.FlorRequest{Flor: "mini  clavel", FlorAbrev: "mc"})
	require.NoError(t, err)
	assert.Equal(t, "MINI CLAVEL", f.Flor)

	_, err = e.taxonomia.CreateFlor(ctx, dto.FlorRequest{Flor: "  ", FlorAbrev: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTaxonomia_VariedadNombreCompletoYFiltros(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	v, err := e.taxonomia.GetVariedad(ctx, e.variedadID)
	require.NoError(t, err)
	assert.Equal(t, "CLAVEL ROJO DON PEDRO", v.NombreCompleto)

	list, err := e.taxonomia.ListVariedades(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = e.taxonomia.ListVariedades(ctx, "otra-flor", "")
	require.NoError(t, err)
	assert.Empty(t, list)

	conSiembras, err := e.taxonomia.ListVariedadesConSiembras(ctx)
	require.NoError(t, err)
	assert.Empty(t, conSiembras)

	e.sembrar(t, "2024-01-01")
	conSiembras, err = e.taxonomia.ListVariedadesConSiembras(ctx)
	require.NoError(t, err)
	assert.Len(t, conSiembras, 1)
}

// ── Ubicación ───────────────────────────────────────────────────────────────

func TestUbicacion_LadoUnicoPorDefecto(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	u, err := e.ubicacion.CreateBloqueCamaLado(ctx, dto.BloqueCamaLadoRequest{BloqueID: e.bloqueID, CamaID: e.camaID})
	require.NoError(t, err)
	assert.Equal(t, "ÚNICO", u.Lado)
	assert.Equal(t, "12-03-ÚNICO", u.Etiqueta)

	_, err = e.ubicacion.CreateBloqueCamaLado(ctx, dto.BloqueCamaLadoRequest{BloqueID: e.bloqueID, CamaID: e.camaID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	lados, err := e.ubicacion.ListLados(ctx)
	require.NoError(t, err)
	assert.Len(t, lados, 1)
}

// ── Geometría ───────────────────────────────────────────────────────────────

func TestCalcularArea_SugiereAreaCercana(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	out, err := e.geometria.CalcularArea(ctx, dto.CalcularAreaRequest{CantidadPlantas: 1000, DensidadID: e.densidadID})
	require.NoError(t, err)
	assert.Equal(t, 20.0, out.AreaCalculada)
	assert.Equal(t, 50.0, out.DensidadValor)
	assert.Nil(t, out.AreaSugerida)

	_, err = e.geometria.CreateArea(ctx, dto.AreaRequest{Nombre: "Nave 30", Area: decimal.NewFromInt(30)})
	require.NoError(t, err)
	cerca, err := e.geometria.CreateArea(ctx, dto.AreaRequest{Nombre: "Cama estandar", Area: decimal.RequireFromString("20.5")})
	require.NoError(t, err)

	out, err = e.geometria.CalcularArea(ctx, dto.CalcularAreaRequest{CantidadPlantas: 1000, DensidadID: e.densidadID})
	require.NoError(t, err)
	require.NotNil(t, out.AreaSugerida)
	assert.Equal(t, cerca.ID, out.AreaSugerida.ID)
}

func TestAreaPorPlantas(t *testing.T) {
	m2, err := usecase.AreaPorPlantas(1000, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, 333.33, m2)

	_, err = usecase.AreaPorPlantas(1000, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Causas ──────────────────────────────────────────────────────────────────

func TestCausa_DuplicadoSinDistinguirMayusculas(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.causas.Create(ctx, dto.CausaRequest{Nombre: "trips"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	c, err := e.causas.Create(ctx, dto.CausaRequest{Nombre: "Botrytis"})
	require.NoError(t, err)
	require.NoError(t, e.causas.Delete(ctx, c.ID))

	_, err = e.causas.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
