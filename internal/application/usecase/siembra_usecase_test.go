package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────────────────────────────────────

func TestSiembraCreate_CalculaAreaYUbicacion(t *testing.T) {
	e := nuevoEntorno(t)

	s := e.sembrar(t, "2024-01-01")

	assert.Equal(t, entity.EstadoActiva, s.Estado)
	assert.Equal(t, "12-03-ÚNICO", s.Ubicacion)
	assert.Equal(t, "CLAVEL ROJO DON PEDRO", s.Variedad)
	assert.Equal(t, "20", s.Area.String())
	assert.Equal(t, 1000, s.TotalPlantas)
	assert.Equal(t, "u-1", s.UsuarioID)
	assert.Nil(t, s.FechaInicioCorte)
}

func TestSiembraCreate_ReutilizaUbicacionYArea(t *testing.T) {
	e := nuevoEntorno(t)

	a := e.sembrar(t, "2024-01-01")
	b := e.sembrar(t, "2024-02-01")

	assert.Equal(t, a.BloqueCamaLadoID, b.BloqueCamaLadoID)
	assert.Equal(t, a.AreaID, b.AreaID)
}

func TestSiembraCreate_SinAreaNiPlantas(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.siembras.Create(context.Background(), "u-1", dto.CreateSiembraRequest{
		BloqueID:     e.bloqueID,
		CamaID:       e.camaID,
		VariedadID:   e.variedadID,
		DensidadID:   e.densidadID,
		FechaSiembra: "2024-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSiembraCreate_VariedadInexistenteNoDejaUbicacion(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.siembras.Create(ctx, "u-1", dto.CreateSiembraRequest{
		BloqueID:        e.bloqueID,
		CamaID:          e.camaID,
		VariedadID:      "no-existe",
		CantidadPlantas: 100,
		DensidadID:      e.densidadID,
		FechaSiembra:    "2024-01-01",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	ubicaciones, err := e.ubicacion.ListBloqueCamaLado(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, ubicaciones)
}

func TestSiembraCreate_FechaInvalida(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.siembras.Create(context.Background(), "u-1", dto.CreateSiembraRequest{
		BloqueID:        e.bloqueID,
		CamaID:          e.camaID,
		VariedadID:      e.variedadID,
		CantidadPlantas: 100,
		DensidadID:      e.densidadID,
		FechaSiembra:    "01/02/2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────────────────────
// Inicio de corte y finalización
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrarInicioCorte_Reglas(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrar(t, "2024-01-10")

	_, err := e.siembras.RegistrarInicioCorte(ctx, s.ID, dto.FechaRequest{Fecha: "2024-01-09"})
	assert.ErrorIs(t, err, domain.ErrFechaInvalida)

	out, err := e.siembras.RegistrarInicioCorte(ctx, s.ID, dto.FechaRequest{Fecha: "2024-03-20"})
	require.NoError(t, err)
	require.NotNil(t, out.FechaInicioCorte)
	assert.Equal(t, "2024-03-20", *out.FechaInicioCorte)

	_, err = e.siembras.RegistrarInicioCorte(ctx, s.ID, dto.FechaRequest{Fecha: "2024-03-21"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFinalizar_UsaFechaDelUltimoCorte(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrarEnCorte(t, "2024-01-01", "2024-03-15")

	_, err := e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-20", CantidadTallos: 100})
	require.NoError(t, err)
	_, err = e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-28", CantidadTallos: 50})
	require.NoError(t, err)

	out, err := e.siembras.Finalizar(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoFinalizada, out.Estado)
	require.NotNil(t, out.FechaFinCorte)
	assert.Equal(t, "2024-03-28", *out.FechaFinCorte)

	_, err = e.siembras.Finalizar(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSiembraInactiva)

	_, err = e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-04-01", CantidadTallos: 1})
	assert.ErrorIs(t, err, domain.ErrSiembraInactiva)

	_, err = e.siembras.Update(ctx, s.ID, dto.UpdateSiembraRequest{FechaSiembra: ptr("2024-01-02")})
	assert.ErrorIs(t, err, domain.ErrSiembraInactiva)
}

// ─────────────────────────────────────────────────────────────────────────────
// Detalle, listado, edición y borrado
// ─────────────────────────────────────────────────────────────────────────────

func TestSiembraGet_Estadisticas(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrarEnCorte(t, "2024-01-01", "2024-03-15")

	_, err := e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-20", CantidadTallos: 100})
	require.NoError(t, err)
	_, err = e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-27", CantidadTallos: 150})
	require.NoError(t, err)
	_, err = e.perdidas.Create(ctx, "u-1", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 30, FechaPerdida: "2024-03-01"})
	require.NoError(t, err)

	det, err := e.siembras.Get(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, 1000, det.Stats.TotalPlantas)
	assert.Equal(t, 250, det.Stats.TotalTallos)
	assert.Equal(t, 30, det.Stats.TotalPerdidas)
	assert.Equal(t, 720, det.Stats.PlantasDisponibles)
	assert.Equal(t, 2, det.Stats.NumCortes)
	assert.Equal(t, 25.0, det.Stats.IndiceAprovechamiento)
	assert.Equal(t, 86, det.Stats.DiasCiclo) // 2024-01-01 → 2024-03-27

	require.Len(t, det.Cortes, 2)
	assert.Equal(t, 10.0, det.Cortes[0].Indice)
	assert.Equal(t, 15.0, det.Cortes[1].Indice)
	assert.Equal(t, 25.0, det.Cortes[1].IndiceAcumulado)

	require.Len(t, det.PerdidasPorCausa, 1)
	assert.Equal(t, "TRIPS", det.PerdidasPorCausa[0].Causa)
	assert.Equal(t, 30, det.PerdidasPorCausa[0].Total)
}

func TestSiembraList_OrdenYFiltros(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	vieja := e.sembrar(t, "2023-06-01")
	nueva := e.sembrar(t, "2024-06-01")
	_, err := e.siembras.Finalizar(ctx, vieja.ID)
	require.NoError(t, err)

	all, err := e.siembras.List(ctx, repository.SiembraFiltro{}, 20, 0)
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, nueva.ID, all.Items[0].ID)
	assert.Equal(t, 2, all.Page.Total)

	activas, err := e.siembras.List(ctx, repository.SiembraFiltro{Estado: entity.EstadoActiva}, 20, 0)
	require.NoError(t, err)
	require.Len(t, activas.Items, 1)
	assert.Equal(t, nueva.ID, activas.Items[0].ID)

	_, err = e.siembras.List(ctx, repository.SiembraFiltro{Estado: "Otra"}, 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSiembraUpdate_CambiaCamaYArea(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrar(t, "2024-01-01")
	cama, err := e.ubicacion.CreateCama(ctx, dto.NombreRequest{Nombre: "04"})
	require.NoError(t, err)

	out, err := e.siembras.Update(ctx, s.ID, dto.UpdateSiembraRequest{CamaID: &cama.ID, CantidadPlantas: ptr(500)})
	require.NoError(t, err)
	assert.Equal(t, "12-04-ÚNICO", out.Ubicacion)
	assert.Equal(t, 500, out.TotalPlantas)
	assert.Equal(t, "2024-01-01", out.FechaSiembra)
}

func TestSiembraUpdate_FechaPosteriorAlInicioDeCorte(t *testing.T) {
	e := nuevoEntorno(t)
	s := e.sembrarEnCorte(t, "2024-01-01", "2024-03-15")

	_, err := e.siembras.Update(context.Background(), s.ID, dto.UpdateSiembraRequest{FechaSiembra: ptr("2024-03-16")})
	assert.ErrorIs(t, err, domain.ErrFechaInvalida)
}

func TestSiembraDelete_ConDependencias(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrarEnCorte(t, "2024-01-01", "2024-03-15")
	libre := e.sembrar(t, "2024-02-01")

	_, err := e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-20", CantidadTallos: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, e.siembras.Delete(ctx, s.ID), domain.ErrEnUso)
	require.NoError(t, e.siembras.Delete(ctx, libre.ID))
	_, err = e.siembras.Get(ctx, libre.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
