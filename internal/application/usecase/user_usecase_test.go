package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nuevoUsuarioUseCase(t *testing.T) *usecase.UsuarioUseCase {
	t.Helper()
	s := memory.NewStore()
	roles := memory.NewRolRepo(s)
	roles.AgregarRol(entity.Rol{
		ID:     "r-admin",
		Nombre: entity.RolAdmin,
		Permisos: []entity.Permiso{
			{ID: "p-1", Codigo: entity.PermisoAdministrarUsuarios},
			{ID: "p-2", Codigo: entity.PermisoImportarDatos},
		},
	})
	roles.AgregarRol(entity.Rol{ID: "r-op", Nombre: entity.RolOperador})
	return usecase.NewUsuarioUseCase(memory.NewUsuarioRepo(s), roles)
}

func TestUsuarioCreate(t *testing.T) {
	uc := nuevoUsuarioUseCase(t)
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUsuarioRequest{
		Nombre1:   "Ana",
		Apellido1: "Rojas",
		Username:  "  ARojas ",
		Password:  "secreto123",
		Rol:       "Admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "arojas", u.Username)
	assert.Equal(t, entity.RolAdmin, u.Rol)
	assert.ElementsMatch(t, []string{entity.PermisoAdministrarUsuarios, entity.PermisoImportarDatos}, u.Permisos)
	assert.True(t, u.Activo)

	_, err = uc.Create(ctx, dto.CreateUsuarioRequest{Nombre1: "Otra", Apellido1: "X", Username: "arojas", Password: "secreto123", Rol: "operador"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateUsuarioRequest{Nombre1: "Otra", Apellido1: "X", Username: "otra", Password: "corta", Rol: "operador"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateUsuarioRequest{Nombre1: "Otra", Apellido1: "X", Username: "otra", Password: "secreto123", Rol: "jefe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsuarioUpdateYDelete(t *testing.T) {
	uc := nuevoUsuarioUseCase(t)
	ctx := context.Background()
	u, err := uc.Create(ctx, dto.CreateUsuarioRequest{Nombre1: "Luis", Apellido1: "Mora", Username: "lmora", Password: "secreto123", Rol: "operador"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, u.ID, dto.UpdateUsuarioRequest{Rol: ptr("admin"), Activo: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, entity.RolAdmin, out.Rol)
	assert.False(t, out.Activo)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateUsuarioRequest{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, u.ID, u.ID), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, "otro-admin", u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
