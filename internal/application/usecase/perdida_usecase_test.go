package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerdidaCreate_LimiteDePlantasDisponibles(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrarEnCorte(t, "2024-01-01", "2024-03-15")
	_, err := e.cortes.Create(ctx, "u-1", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-20", CantidadTallos: 600})
	require.NoError(t, err)

	p, err := e.perdidas.Create(ctx, "u-1", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 300, FechaPerdida: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, "TRIPS", p.Causa)

	_, err = e.perdidas.Create(ctx, "u-1", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 101, FechaPerdida: "2024-02-02"})
	assert.ErrorIs(t, err, domain.ErrExcedePlantas)

	_, err = e.perdidas.Create(ctx, "u-1", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 100, FechaPerdida: "2024-02-02"})
	assert.NoError(t, err)
}

func TestPerdidaCreate_Validaciones(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrar(t, "2024-01-10")

	tests := []struct {
		name string
		in   dto.CreatePerdidaRequest
		want error
	}{
		{"cantidad en cero", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, FechaPerdida: "2024-02-01"}, domain.ErrInvalidInput},
		{"causa inexistente", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: "x", Cantidad: 1, FechaPerdida: "2024-02-01"}, domain.ErrNotFound},
		{"siembra inexistente", dto.CreatePerdidaRequest{SiembraID: "x", CausaID: e.causaID, Cantidad: 1, FechaPerdida: "2024-02-01"}, domain.ErrNotFound},
		{"fecha antes de la siembra", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 1, FechaPerdida: "2024-01-01"}, domain.ErrFechaInvalida},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.perdidas.Create(ctx, "u-1", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPerdidaUpdate_ExcluyeLaPropia(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrar(t, "2024-01-01")
	p, err := e.perdidas.Create(ctx, "u-1", dto.CreatePerdidaRequest{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 900, FechaPerdida: "2024-02-01"})
	require.NoError(t, err)

	out, err := e.perdidas.Update(ctx, p.ID, dto.UpdatePerdidaRequest{Cantidad: ptr(1000)})
	require.NoError(t, err)
	assert.Equal(t, 1000, out.Cantidad)

	_, err = e.perdidas.Update(ctx, p.ID, dto.UpdatePerdidaRequest{Cantidad: ptr(1001)})
	assert.ErrorIs(t, err, domain.ErrExcedePlantas)
}

func TestPerdidaResumenYCausaEnUso(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrar(t, "2024-01-01")
	hongo, err := e.causas.Create(ctx, dto.CausaRequest{Nombre: "hongo"})
	require.NoError(t, err)

	for _, in := range []dto.CreatePerdidaRequest{
		{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 10, FechaPerdida: "2024-02-01"},
		{SiembraID: s.ID, CausaID: e.causaID, Cantidad: 5, FechaPerdida: "2024-02-08"},
		{SiembraID: s.ID, CausaID: hongo.ID, Cantidad: 40, FechaPerdida: "2024-02-08"},
	} {
		_, err := e.perdidas.Create(ctx, "u-1", in)
		require.NoError(t, err)
	}

	r, err := e.perdidas.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, 55, r.Total)
	require.Len(t, r.PorCausa, 2)
	assert.Equal(t, "HONGO", r.PorCausa[0].Causa)
	assert.Equal(t, 40, r.PorCausa[0].Total)
	assert.Equal(t, 2, r.PorCausa[1].Registros)

	list, err := e.perdidas.List(ctx, dto.PerdidaFiltroRequest{CausaID: hongo.ID}, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 40, list.Items[0].Cantidad)

	assert.ErrorIs(t, e.causas.Delete(ctx, hongo.ID), domain.ErrEnUso)
}
