package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabor_DiasHastaInicioCorte(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	tipo, err := e.tiposLabor.Create(ctx, dto.TipoLaborRequest{Nombre: "Pinch"})
	require.NoError(t, err)
	s := e.sembrar(t, "2024-01-01")

	l, err := e.labores.Create(ctx, "u-1", s.ID, dto.CreateLaborRequest{TipoLaborID: tipo.ID, FechaLabor: "2024-02-01"})
	require.NoError(t, err)
	assert.Nil(t, l.DiasHastaInicioCorte)

	_, err = e.siembras.RegistrarInicioCorte(ctx, s.ID, dto.FechaRequest{Fecha: "2024-03-15"})
	require.NoError(t, err)

	list, err := e.labores.ListBySiembra(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].DiasHastaInicioCorte)
	assert.Equal(t, 43, *list[0].DiasHastaInicioCorte)

	out, err := e.labores.Update(ctx, l.ID, dto.UpdateLaborRequest{Observaciones: ptr("  segundo pinch ")})
	require.NoError(t, err)
	assert.Equal(t, "segundo pinch", out.Observaciones)
}

func TestLabor_TipoInexistenteYSiembraFinalizada(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	s := e.sembrar(t, "2024-01-01")

	_, err := e.labores.Create(ctx, "u-1", s.ID, dto.CreateLaborRequest{TipoLaborID: "x", FechaLabor: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tipo, err := e.tiposLabor.Create(ctx, dto.TipoLaborRequest{Nombre: "Riego"})
	require.NoError(t, err)
	_, err = e.siembras.Finalizar(ctx, s.ID)
	require.NoError(t, err)

	_, err = e.labores.Create(ctx, "u-1", s.ID, dto.CreateLaborRequest{TipoLaborID: tipo.ID, FechaLabor: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrSiembraInactiva)
}
