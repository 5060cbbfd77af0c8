package reportes_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sembrarConCortes crea una variedad con una siembra de 1000 plantas y cortes en los días 70 y 80.
func sembrarConCortes(t *testing.T) (*memory.Store, string) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	r := s.Repos()

	tax := usecase.NewTaxonomiaUseCase(r.Flores, r.Colores, r.FlorColores, r.Variedades)
	ubi := usecase.NewUbicacionUseCase(r.Bloques, r.Camas, r.Lados, r.BloqueCamaLados)
	geo := usecase.NewGeometriaUseCase(r.Areas, r.Densidades)
	siembras := usecase.NewSiembraUseCase(s, r.Siembras, r.Cortes, r.Perdidas, memory.NewLaborRepo(s))
	cortes := usecase.NewCorteUseCase(s, r.Cortes, r.Siembras)

	f, err := tax.CreateFlor(ctx, dto.FlorRequest{Flor: "Clavel", FlorAbrev: "CL"})
	require.NoError(t, err)
	c, err := tax.CreateColor(ctx, dto.ColorRequest{Color: "Rojo", ColorAbrev: "RJ"})
	require.NoError(t, err)
	fc, err := tax.CreateFlorColor(ctx, dto.FlorColorRequest{FlorID: f.ID, ColorID: c.ID})
	require.NoError(t, err)
	v, err := tax.CreateVariedad(ctx, dto.VariedadRequest{Variedad: "Don Pedro", FlorColorID: fc.ID})
	require.NoError(t, err)
	b, err := ubi.CreateBloque(ctx, dto.NombreRequest{Nombre: "1"})
	require.NoError(t, err)
	cama, err := ubi.CreateCama(ctx, dto.NombreRequest{Nombre: "1"})
	require.NoError(t, err)
	d, err := geo.CreateDensidad(ctx, dto.DensidadRequest{Densidad: "Normal", Valor: decimal.NewFromInt(50)})
	require.NoError(t, err)

	sm, err := siembras.Create(ctx, "u-1", dto.CreateSiembraRequest{
		BloqueID: b.ID, CamaID: cama.ID, VariedadID: v.ID, CantidadPlantas: 1000, DensidadID: d.ID, FechaSiembra: "2024-01-01",
	})
	require.NoError(t, err)
	_, err = siembras.RegistrarInicioCorte(ctx, sm.ID, dto.FechaRequest{Fecha: "2024-03-10"})
	require.NoError(t, err)
	_, err = cortes.Create(ctx, "u-1", sm.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-11", CantidadTallos: 100})
	require.NoError(t, err)
	_, err = cortes.Create(ctx, "u-1", sm.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-21", CantidadTallos: 200})
	require.NoError(t, err)
	return s, v.ID
}

func TestCurva_CalculaYGrafica(t *testing.T) {
	s, variedadID := sembrarConCortes(t)
	r := s.Repos()
	charts := &fakeCharts{}
	uc := reportes.NewCurvaUseCase(r.Variedades, r.Siembras, charts, &fakePDF{}, produccion.ParametrosPorDefecto())

	out, err := uc.Curva(context.Background(), variedadID, dto.CurvaRequest{})
	require.NoError(t, err)

	assert.Equal(t, "DON PEDRO", out.Variedad)
	assert.Equal(t, 70, out.CicloVegetativo)
	assert.Equal(t, 80, out.CicloTotal)
	assert.Equal(t, 10, out.CicloProductivo)
	assert.Equal(t, 1, out.SiembrasConDatos)
	assert.Equal(t, 300, out.TotalTallos)
	assert.Equal(t, 30.0, out.PromedioProduccion)
	require.Len(t, out.Puntos, 3)
	assert.Equal(t, 0, out.Puntos[0].Dia)
	assert.Equal(t, 70, out.Puntos[1].Dia)
	assert.Equal(t, 10.0, out.Puntos[1].IndicePromedio)
	assert.Equal(t, 20.0, out.Puntos[2].IndicePromedio)
	assert.Equal(t, "cG5n", out.Grafico)

	require.Len(t, charts.curvas, 1)
	g := charts.curvas[0]
	assert.Equal(t, "Curva de Producción: CLAVEL ROJO DON PEDRO", g.Titulo)
	assert.False(t, g.Tendencia.Suavizada)
	assert.InDelta(t, 24.0, g.YMax, 1e-9)
}

func TestCurva_FiltroPeriodo(t *testing.T) {
	s, variedadID := sembrarConCortes(t)
	r := s.Repos()
	uc := reportes.NewCurvaUseCase(r.Variedades, r.Siembras, &fakeCharts{}, &fakePDF{}, produccion.ParametrosPorDefecto())
	ctx := context.Background()

	out, err := uc.Curva(ctx, variedadID, dto.CurvaRequest{PeriodoInicio: "202410", PeriodoFin: "202420"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalSiembras)
	assert.Zero(t, out.SiembrasConDatos)

	_, err = uc.Curva(ctx, variedadID, dto.CurvaRequest{PeriodoInicio: "202401"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Curva(ctx, variedadID, dto.CurvaRequest{PeriodoInicio: "202420", PeriodoFin: "202401"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Curva(ctx, variedadID, dto.CurvaRequest{PeriodoInicio: "2024W1", PeriodoFin: "202402"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCurva_VariedadInexistente(t *testing.T) {
	s := memory.NewStore()
	r := s.Repos()
	uc := reportes.NewCurvaUseCase(r.Variedades, r.Siembras, &fakeCharts{}, &fakePDF{}, produccion.ParametrosPorDefecto())

	_, err := uc.Curva(context.Background(), "no-existe", dto.CurvaRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurvaPDF(t *testing.T) {
	s, variedadID := sembrarConCortes(t)
	r := s.Repos()
	pdf := &fakePDF{}
	uc := reportes.NewCurvaUseCase(r.Variedades, r.Siembras, &fakeCharts{}, pdf, produccion.ParametrosPorDefecto())

	data, nombre, err := uc.CurvaPDF(context.Background(), variedadID, dto.CurvaRequest{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.True(t, strings.HasPrefix(nombre, "curva_DON_PEDRO_"))
	require.NotNil(t, pdf.curva)
	assert.Equal(t, []byte("png"), pdf.grafico)
	assert.Empty(t, pdf.curva.Grafico)
}

func TestCiclos(t *testing.T) {
	s, variedadID := sembrarConCortes(t)
	r := s.Repos()
	uc := reportes.NewCurvaUseCase(r.Variedades, r.Siembras, &fakeCharts{}, &fakePDF{}, produccion.ParametrosPorDefecto())

	a, err := uc.Ciclos(context.Background(), variedadID)
	require.NoError(t, err)
	assert.Equal(t, 70, a.CicloVegetativo)
	assert.Equal(t, 80, a.CicloTotal)
	assert.Equal(t, 10, a.CicloProductivo)
	assert.Equal(t, 2.0, a.CortesPromedio)
	assert.Equal(t, 1, a.SiembrasConDatos)
}
