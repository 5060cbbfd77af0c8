package reportes_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduccionPorVariedad_GraficaTop10(t *testing.T) {
	repo := &fakeReportes{}
	for i := range 12 {
		repo.variedades = append(repo.variedades, repository.ProduccionVariedad{
			VariedadID:  fmt.Sprintf("v%d", i),
			Variedad:    fmt.Sprintf("VAR %d", i),
			TotalTallos: 1000 - i*10,
		})
	}
	charts := &fakeCharts{}
	uc := reportes.NewReporteUseCase(repo, charts, &fakeXLSX{})

	out, err := uc.ProduccionPorVariedad(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Items, 12)
	require.Len(t, charts.barras, 1)
	assert.Len(t, charts.barras[0].Etiquetas, 10)
	assert.Equal(t, "VAR 0", charts.barras[0].Etiquetas[0])
	assert.NotEmpty(t, out.Grafico)
}

func TestProduccionPorBloque_Promedio(t *testing.T) {
	repo := &fakeReportes{bloques: []repository.ProduccionBloque{
		{BloqueID: "b1", Bloque: "1", TotalTallos: 1000, TotalSiembras: 3},
		{BloqueID: "b2", Bloque: "2", TotalTallos: 0, TotalSiembras: 0},
	}}
	uc := reportes.NewReporteUseCase(repo, &fakeCharts{}, &fakeXLSX{})

	out, err := uc.ProduccionPorBloque(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 333.33, out.Items[0].PromedioPorSiembra)
	assert.Zero(t, out.Items[1].PromedioPorSiembra)
}

func TestProduccionPorBloque_ErrorDelGrafico(t *testing.T) {
	repo := &fakeReportes{bloques: []repository.ProduccionBloque{{BloqueID: "b1", Bloque: "1", TotalTallos: 10, TotalSiembras: 1}}}
	uc := reportes.NewReporteUseCase(repo, &fakeCharts{err: errors.New("sin fuente")}, &fakeXLSX{})

	_, err := uc.ProduccionPorBloque(context.Background())
	assert.ErrorContains(t, err, "sin fuente")
}

func TestDiasProduccion_TendenciaPorVariedad(t *testing.T) {
	repo := &fakeReportes{dias: []repository.DiasCorte{
		{VariedadID: "v1", Variedad: "DON PEDRO", Flor: "CLAVEL", Color: "ROJO", NumCorte: 1, DiasPromedio: 80, DiasMinimo: 78, DiasMaximo: 82, TotalSiembras: 4},
		{VariedadID: "v1", Variedad: "DON PEDRO", Flor: "CLAVEL", Color: "ROJO", NumCorte: 2, DiasPromedio: 87.04, DiasMinimo: 85, DiasMaximo: 90, TotalSiembras: 4},
		{VariedadID: "v1", Variedad: "DON PEDRO", Flor: "CLAVEL", Color: "ROJO", NumCorte: 3, DiasPromedio: 94, DiasMinimo: 93, DiasMaximo: 95, TotalSiembras: 3},
		{VariedadID: "v2", Variedad: "MOONLIGHT", Flor: "CLAVEL", Color: "BLANCO", NumCorte: 1, DiasPromedio: 70, DiasMinimo: 70, DiasMaximo: 70, TotalSiembras: 1},
	}}
	charts := &fakeCharts{}
	uc := reportes.NewReporteUseCase(repo, charts, &fakeXLSX{})

	out, err := uc.DiasProduccion(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Variedades, 2)

	v1 := out.Variedades[0]
	require.Len(t, v1.Cortes, 3)
	assert.Equal(t, 87.0, v1.Cortes[1].DiasPromedio)
	assert.InDelta(t, 7.0, v1.Pendiente, 1e-9)
	assert.InDelta(t, 80.0, v1.Intercepto, 1e-9)

	assert.Zero(t, out.Variedades[1].Pendiente)

	require.Len(t, charts.barras, 2)
	assert.Equal(t, []string{"Corte 1", "Corte 2", "Corte 3"}, charts.barras[0].Etiquetas)
	require.NotNil(t, charts.barras[0].Tendencia)
	assert.Nil(t, charts.barras[1].Tendencia)
}

func TestDiagnostico(t *testing.T) {
	repo := &fakeReportes{diag: &repository.Diagnostico{
		TotalSiembras:     10,
		SiembrasSinCortes: 2,
		CortesIndiceAlto:  1,
		VariedadesConCurvas: []repository.VariedadConDatos{
			{VariedadID: "v1", Variedad: "DON PEDRO", Siembras: 4, Cortes: 20},
		},
	}}
	uc := reportes.NewReporteUseCase(repo, &fakeCharts{}, &fakeXLSX{})

	out, err := uc.Diagnostico(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, out.TotalSiembras)
	assert.Equal(t, 2, out.SiembrasSinCortes)
	require.Len(t, out.VariedadesConCurvas, 1)
	assert.Equal(t, 20, out.VariedadesConCurvas[0].Cortes)
}

func TestExportar(t *testing.T) {
	inicio := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportes{
		expS: []repository.ExportSiembra{{
			ID: "s1", Bloque: "1", Cama: "2", Lado: "ÚNICO", Variedad: "DON PEDRO", Flor: "CLAVEL", Color: "ROJO",
			FechaSiembra: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), FechaInicioCorte: &inicio, Estado: "Activa",
		}},
		expC: []repository.ExportCorte{{
			ID: "c1", SiembraID: "s1", NumCorte: 1, CantidadTallos: 50,
			FechaCorte: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), FechaSiembra: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), DiasDesdeSiembra: 75,
		}},
	}
	xlsx := &fakeXLSX{}
	uc := reportes.NewReporteUseCase(repo, &fakeCharts{}, xlsx)
	ctx := context.Background()

	var buf bytes.Buffer
	nombre, err := uc.Exportar(ctx, reportes.ExportSiembras, &buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(nombre, "siembras_"))
	assert.True(t, strings.HasSuffix(nombre, ".xlsx"))
	assert.Equal(t, "xlsx", buf.String())
	assert.Equal(t, "Siembras", xlsx.tabla.Hoja)
	assert.Equal(t, "ID Siembra", xlsx.tabla.Encabezados[0])
	require.Len(t, xlsx.tabla.Filas, 1)
	assert.Equal(t, "05/01/2024", xlsx.tabla.Filas[0][7])
	assert.Equal(t, "15/03/2024", xlsx.tabla.Filas[0][8])

	_, err = uc.Exportar(ctx, reportes.ExportCortes, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "Cortes", xlsx.tabla.Hoja)
	assert.Len(t, xlsx.tabla.Encabezados, 11)
	assert.Equal(t, 75, xlsx.tabla.Filas[0][10])

	_, err = uc.Exportar(ctx, "perdidas", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
