package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// entorno casos de uso conectados a un store en memoria con catálogos básicos.
type entorno struct {
	store      *memory.Store
	taxonomia  *usecase.TaxonomiaUseCase
	ubicacion  *usecase.UbicacionUseCase
	geometria  *usecase.GeometriaUseCase
	causas     *usecase.CausaUseCase
	tiposLabor *usecase.TipoLaborUseCase
	siembras   *usecase.SiembraUseCase
	cortes     *usecase.CorteUseCase
	perdidas   *usecase.PerdidaUseCase
	labores    *usecase.LaborUseCase

	variedadID string
	bloqueID   string
	camaID     string
	densidadID string // 50 plantas/m²
	causaID    string
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	r := s.Repos()
	tipos := memory.NewTipoLaborRepo(s)
	labores := memory.NewLaborRepo(s)

	e := &entorno{
		store:      s,
		taxonomia:  usecase.NewTaxonomiaUseCase(r.Flores, r.Colores, r.FlorColores, r.Variedades),
		ubicacion:  usecase.NewUbicacionUseCase(r.Bloques, r.Camas, r.Lados, r.BloqueCamaLados),
		geometria:  usecase.NewGeometriaUseCase(r.Areas, r.Densidades),
		causas:     usecase.NewCausaUseCase(r.Causas),
		tiposLabor: usecase.NewTipoLaborUseCase(tipos, r.Flores),
		siembras:   usecase.NewSiembraUseCase(s, r.Siembras, r.Cortes, r.Perdidas, labores),
		cortes:     usecase.NewCorteUseCase(s, r.Cortes, r.Siembras),
		perdidas:   usecase.NewPerdidaUseCase(s, r.Perdidas, r.Siembras),
		labores:    usecase.NewLaborUseCase(labores, tipos, r.Siembras),
	}

	flor, err := e.taxonomia.CreateFlor(ctx, dto.FlorRequest{Flor: "Clavel", FlorAbrev: "CL"})
	require.NoError(t, err)
	color, err := e.taxonomia.CreateColor(ctx, dto.ColorRequest{Color: "Rojo", ColorAbrev: "RJ"})
	require.NoError(t, err)
	fc, err := e.taxonomia.CreateFlorColor(ctx, dto.FlorColorRequest{FlorID: flor.ID, ColorID: color.ID})
	require.NoError(t, err)
	v, err := e.taxonomia.CreateVariedad(ctx, dto.VariedadRequest{Variedad: "Don Pedro", FlorColorID: fc.ID})
	require.NoError(t, err)
	b, err := e.ubicacion.CreateBloque(ctx, dto.NombreRequest{Nombre: "12"})
	require.NoError(t, err)
	c, err := e.ubicacion.CreateCama(ctx, dto.NombreRequest{Nombre: "03"})
	require.NoError(t, err)
	d, err := e.geometria.CreateDensidad(ctx, dto.DensidadRequest{Densidad: "Normal", Valor: decimal.NewFromInt(50)})
	require.NoError(t, err)
	causa, err := e.causas.Create(ctx, dto.CausaRequest{Nombre: "Trips"})
	require.NoError(t, err)

	e.variedadID, e.bloqueID, e.camaID, e.densidadID, e.causaID = v.ID, b.ID, c.ID, d.ID, causa.ID
	return e
}

// sembrar crea una siembra de 1000 plantas (20 m² a 50 plantas/m²).
func (e *entorno) sembrar(t *testing.T, fecha string) *dto.SiembraResponse {
	t.Helper()
	s, err := e.siembras.Create(context.Background(), "u-1", dto.CreateSiembraRequest{
		BloqueID:        e.bloqueID,
		CamaID:          e.camaID,
		VariedadID:      e.variedadID,
		CantidadPlantas: 1000,
		DensidadID:      e.densidadID,
		FechaSiembra:    fecha,
	})
	require.NoError(t, err)
	return s
}

// sembrarEnCorte crea una siembra con inicio de corte registrado.
func (e *entorno) sembrarEnCorte(t *testing.T, fecha, inicio string) *dto.SiembraResponse {
	t.Helper()
	s := e.sembrar(t, fecha)
	_, err := e.siembras.RegistrarInicioCorte(context.Background(), s.ID, dto.FechaRequest{Fecha: inicio})
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T { return &v }
