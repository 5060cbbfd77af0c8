//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/ports"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cpc-api/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// nuevaBD levanta PostgreSQL en un contenedor y aplica las migraciones.
func nuevaBD(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	c, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("cpc"),
		tcpostgres.WithUsername("cpc"),
		tcpostgres.WithPassword("cpc"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := c.Terminate(ctx); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	aplicadas, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_schema", "0002_seed"}, aplicadas)

	again, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again, "las migraciones aplicadas no se repiten")
	return pool
}

type fixture struct {
	variedad  *entity.Variedad
	ubicacion *entity.BloqueCamaLado
	area      *entity.Area
	densidad  *entity.Densidad
}

func sembrarCatalogo(t *testing.T, ctx context.Context, r ports.Repos) fixture {
	t.Helper()
	flor := &entity.Flor{ID: uuid.NewString(), Flor: "CLAVEL", FlorAbrev: "CL"}
	color := &entity.Color{ID: uuid.NewString(), Color: "ROJO", ColorAbrev: "RO"}
	require.NoError(t, r.Flores.Create(ctx, flor))
	require.NoError(t, r.Colores.Create(ctx, color))
	fc := &entity.FlorColor{ID: uuid.NewString(), FlorID: flor.ID, ColorID: color.ID}
	require.NoError(t, r.FlorColores.Create(ctx, fc))
	v := &entity.Variedad{ID: uuid.NewString(), Variedad: "DON PEDRO", FlorColorID: fc.ID}
	require.NoError(t, r.Variedades.Create(ctx, v))

	b := &entity.Bloque{ID: uuid.NewString(), Bloque: "12"}
	cama := &entity.Cama{ID: uuid.NewString(), Cama: "03"}
	lado := &entity.Lado{ID: uuid.NewString(), Lado: "A"}
	require.NoError(t, r.Bloques.Create(ctx, b))
	require.NoError(t, r.Camas.Create(ctx, cama))
	require.NoError(t, r.Lados.Create(ctx, lado))
	u := &entity.BloqueCamaLado{ID: uuid.NewString(), BloqueID: b.ID, CamaID: cama.ID, LadoID: lado.ID}
	require.NoError(t, r.BloqueCamaLados.Create(ctx, u))

	a := &entity.Area{ID: uuid.NewString(), Nombre: entity.NombreAreaCalculada(10.5), Area: decimal.RequireFromString("10.5")}
	d := &entity.Densidad{ID: uuid.NewString(), Densidad: "Alta", Valor: decimal.RequireFromString("3.3")}
	require.NoError(t, r.Areas.Create(ctx, a))
	require.NoError(t, r.Densidades.Create(ctx, d))

	v, err := r.Variedades.GetByID(ctx, v.ID)
	require.NoError(t, err)
	u, err = r.BloqueCamaLados.GetByID(ctx, u.ID)
	require.NoError(t, err)
	return fixture{variedad: v, ubicacion: u, area: a, densidad: d}
}

func fecha(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestRepositorios(t *testing.T) {
	pool := nuevaBD(t)
	ctx := context.Background()
	r := postgres.NewRepos(pool)
	fx := sembrarCatalogo(t, ctx, r)

	t.Run("catálogo", func(t *testing.T) {
		assert.Equal(t, "CLAVEL ROJO DON PEDRO", fx.variedad.NombreCompleto())
		assert.Equal(t, "12-03-A", fx.ubicacion.Etiqueta())

		err := r.Flores.Create(ctx, &entity.Flor{ID: uuid.NewString(), Flor: "CLAVEL", FlorAbrev: "CX"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		d, err := r.Densidades.GetByNombre(ctx, "ALTA")
		require.NoError(t, err)
		require.NotNil(t, d, "densidad sin distinguir mayúsculas")

		a, err := r.Areas.FindAproximada(ctx, 10.7, 0.05)
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, fx.area.ID, a.ID)

		a, err = r.Areas.FindAproximada(ctx, 20, 0.05)
		require.NoError(t, err)
		assert.Nil(t, a)

		missing, err := r.Flores.GetByID(ctx, "no-es-uuid")
		require.NoError(t, err)
		assert.Nil(t, missing)

		assert.ErrorIs(t, r.Bloques.Update(ctx, &entity.Bloque{ID: uuid.NewString(), Bloque: "99"}), domain.ErrNotFound)
	})

	s := &entity.Siembra{
		ID:               uuid.NewString(),
		BloqueCamaLadoID: fx.ubicacion.ID,
		VariedadID:       fx.variedad.ID,
		AreaID:           fx.area.ID,
		DensidadID:       fx.densidad.ID,
		FechaSiembra:     fecha("2024-01-01"),
		Estado:           entity.EstadoActiva,
		FechaRegistro:    time.Now(),
	}
	require.NoError(t, r.Siembras.Create(ctx, s))

	t.Run("siembra y cortes", func(t *testing.T) {
		for i, f := range []string{"2024-03-10", "2024-03-17"} {
			require.NoError(t, r.Cortes.Create(ctx, &entity.Corte{
				ID:             uuid.NewString(),
				SiembraID:      s.ID,
				NumCorte:       i + 1,
				FechaCorte:     fecha(f),
				CantidadTallos: 10 * (i + 1),
				FechaRegistro:  time.Now(),
			}))
		}
		err := r.Cortes.Create(ctx, &entity.Corte{
			ID: uuid.NewString(), SiembraID: s.ID, NumCorte: 1, FechaCorte: fecha("2024-03-20"), CantidadTallos: 1,
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		tot, err := r.Siembras.Totales(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 34, tot.Plantas)
		assert.Equal(t, 30, tot.Tallos)
		assert.Equal(t, 2, tot.NumCortes)
		require.NotNil(t, tot.UltimoCorte)
		assert.True(t, fecha("2024-03-17").Equal(*tot.UltimoCorte))

		_, err = r.Siembras.Totales(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)

		n, err := r.Cortes.SumTallos(ctx, s.ID, "")
		require.NoError(t, err)
		assert.Equal(t, 30, n)
		ultimo, err := r.Cortes.MaxNumCorte(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, ultimo)

		det, err := r.Siembras.GetDetalle(ctx, s.ID)
		require.NoError(t, err)
		require.NotNil(t, det)
		assert.Equal(t, "DON PEDRO", det.Variedad)
		assert.InDelta(t, 10.5, det.Area, 1e-9)

		listado, total, err := r.Cortes.List(ctx, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, listado, 1)
		assert.Equal(t, "12-03-A", listado[0].Ubicacion)
		assert.Equal(t, "CLAVEL ROJO DON PEDRO", listado[0].Variedad)
		assert.Equal(t, 2, listado[0].NumCorte, "el más reciente primero")

		muestras, err := r.Siembras.ListMuestras(ctx, repository.MuestraFiltro{VariedadID: fx.variedad.ID})
		require.NoError(t, err)
		require.Len(t, muestras, 1)
		assert.Equal(t, 34, muestras[0].Plantas)
		assert.Len(t, muestras[0].Cortes, 2)

		assert.ErrorIs(t, r.Siembras.Delete(ctx, s.ID), domain.ErrConflict)
		deps, err := r.Siembras.CountDependencias(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, deps)
	})

	t.Run("pérdidas por causa", func(t *testing.T) {
		causa, err := r.Causas.GetByNombre(ctx, "delgados")
		require.NoError(t, err)
		require.NotNil(t, causa, "causa predefinida sembrada por la migración")

		require.NoError(t, r.Perdidas.Create(ctx, &entity.Perdida{
			ID: uuid.NewString(), SiembraID: s.ID, CausaID: causa.ID, Cantidad: 3,
			FechaPerdida: fecha("2024-02-15"), FechaRegistro: time.Now(),
		}))
		resumen, err := r.Perdidas.ResumenPorCausa(ctx, "")
		require.NoError(t, err)
		require.Len(t, resumen, 1)
		assert.Equal(t, 3, resumen[0].Total)

		assert.ErrorIs(t, r.Causas.Delete(ctx, causa.ID), domain.ErrConflict)
	})

	t.Run("usuarios con permisos del rol", func(t *testing.T) {
		rr := postgres.NewRolRepository(pool)
		rol, err := rr.GetByNombre(ctx, entity.RolOperador)
		require.NoError(t, err)
		require.NotNil(t, rol)
		assert.Len(t, rol.Permisos, 2)

		ur := postgres.NewUsuarioRepository(pool)
		u := &entity.Usuario{
			ID: uuid.NewString(), Nombre1: "Ana", Apellido1: "Gómez", Username: "ana",
			PasswordHash: "x", RolID: rol.ID, Activo: true, CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		require.NoError(t, ur.Create(ctx, u))
		got, err := ur.GetByUsername(ctx, "ana")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.RolOperador, got.Rol)
		assert.ElementsMatch(t, []string{entity.PermisoImportarDatos, entity.PermisoVerReportes}, got.Permisos)
		assert.True(t, got.TienePermiso(entity.PermisoVerReportes))
	})

	t.Run("reportes", func(t *testing.T) {
		s.Estado = entity.EstadoFinalizada
		require.NoError(t, r.Siembras.Update(ctx, s))

		rep := postgres.NewReporteRepository(pool)
		filas, err := rep.Aprovechamiento(ctx, repository.DashboardFiltro{})
		require.NoError(t, err)
		require.Len(t, filas, 1)
		assert.Equal(t, 30, filas[0].Tallos)
		assert.Equal(t, 34, filas[0].Plantas, "las plantas se cuentan una vez por siembra")

		dias, err := rep.DiasProduccion(ctx)
		require.NoError(t, err)
		require.Len(t, dias, 2)
		assert.InDelta(t, 69, dias[0].DiasPromedio, 1e-9)

		diag, err := rep.Diagnostico(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, diag.TotalSiembras)
		assert.Equal(t, 0, diag.SiembrasSinCortes)
		require.Len(t, diag.VariedadesConCurvas, 1)
		assert.Equal(t, 2, diag.VariedadesConCurvas[0].Cortes)
	})

	t.Run("tx revierte", func(t *testing.T) {
		runner := postgres.NewTxRunner(pool)
		err := runner.Run(ctx, func(tx ports.Repos) error {
			require.NoError(t, tx.Lados.Create(ctx, &entity.Lado{ID: uuid.NewString(), Lado: "B"}))
			return domain.ErrInvalidInput
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		l, err := r.Lados.GetByNombre(ctx, "B")
		require.NoError(t, err)
		assert.Nil(t, l)
	})
}

// Cortes simultáneos sobre la misma siembra: el bloqueo de la fila serializa el chequeo
// de capacidad, así que solo entran los que caben en las plantas.
func TestCortesConcurrentesNoSuperanPlantas(t *testing.T) {
	pool := nuevaBD(t)
	ctx := context.Background()
	r := postgres.NewRepos(pool)
	fx := sembrarCatalogo(t, ctx, r)

	inicio := fecha("2024-03-01")
	s := &entity.Siembra{
		ID:               uuid.NewString(),
		BloqueCamaLadoID: fx.ubicacion.ID,
		VariedadID:       fx.variedad.ID,
		AreaID:           fx.area.ID,
		DensidadID:       fx.densidad.ID,
		FechaSiembra:     fecha("2024-01-01"),
		FechaInicioCorte: &inicio,
		Estado:           entity.EstadoActiva,
		FechaRegistro:    time.Now(),
	}
	require.NoError(t, r.Siembras.Create(ctx, s))

	uc := usecase.NewCorteUseCase(postgres.NewTxRunner(pool), r.Cortes, r.Siembras)

	// 34 plantas; 8 cortes de 10 tallos: caben 3.
	const intentos = 8
	errs := make([]error, intentos)
	var wg sync.WaitGroup
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(ctx, "", s.ID, dto.CreateCorteRequest{FechaCorte: "2024-03-10", CantidadTallos: 10})
		}(i)
	}
	wg.Wait()

	var ok, excedidos int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrExcedePlantas)
		excedidos++
	}
	assert.Equal(t, 3, ok)
	assert.Equal(t, intentos-3, excedidos)

	tot, err := r.Siembras.Totales(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, tot.Tallos)
	assert.LessOrEqual(t, tot.Tallos, tot.Plantas)
	assert.Equal(t, 3, tot.NumCortes)
	ultimo, err := r.Cortes.MaxNumCorte(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, ultimo, "num_corte consecutivo bajo concurrencia")
}
