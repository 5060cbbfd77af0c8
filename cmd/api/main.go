package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/cpc-api/internal/application/auth"
	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/infrastructure/chart"
	infrapdf "github.com/jhoicas/cpc-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cpc-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/cpc-api/internal/interfaces/http"
	"github.com/jhoicas/cpc-api/pkg/config"
	"github.com/jhoicas/cpc-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       CPC API
// @version                     1.0
// @description                 Registro de siembras, cortes y pérdidas de un cultivo de flores, con curvas de producción y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	aplicadas, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(aplicadas) > 0 {
		log.Info().Strs("versiones", aplicadas).Msg("migraciones aplicadas")
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	tipoLaborRepo := postgres.NewTipoLaborRepository(pool)
	laborRepo := postgres.NewLaborRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)

	renderer := chart.NewRenderer()
	params := produccion.Parametros{
		MaximoCicloAbsoluto:   cfg.Reportes.MaxCicloAbsoluto,
		SuavizadoMinimoPuntos: cfg.Reportes.SuavizadoMinimoPuntos,
	}

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// multipart de importación más margen para los campos del formulario
		BodyLimit: cfg.Import.MaxBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (generar con swag init -g cmd/api/main.go)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "CPC API",
		}))
	} else {
		log.Warn().Str("archivo", swaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TaxonomiaUC:    usecase.NewTaxonomiaUseCase(repos.Flores, repos.Colores, repos.FlorColores, repos.Variedades),
		UbicacionUC:    usecase.NewUbicacionUseCase(repos.Bloques, repos.Camas, repos.Lados, repos.BloqueCamaLados),
		GeometriaUC:    usecase.NewGeometriaUseCase(repos.Areas, repos.Densidades),
		CausaUC:        usecase.NewCausaUseCase(repos.Causas),
		TipoLaborUC:    usecase.NewTipoLaborUseCase(tipoLaborRepo, repos.Flores),
		SiembraUC:      usecase.NewSiembraUseCase(txRunner, repos.Siembras, repos.Cortes, repos.Perdidas, laborRepo),
		CorteUC:        usecase.NewCorteUseCase(txRunner, repos.Cortes, repos.Siembras),
		PerdidaUC:      usecase.NewPerdidaUseCase(txRunner, repos.Perdidas, repos.Siembras),
		LaborUC:        usecase.NewLaborUseCase(laborRepo, tipoLaborRepo, repos.Siembras),
		UsuarioUC:      usecase.NewUsuarioUseCase(usuarioRepo, postgres.NewRolRepository(pool)),
		ReporteUC:      reportes.NewReporteUseCase(reporteRepo, renderer, spreadsheet.NewWriter()),
		CurvaUC:        reportes.NewCurvaUseCase(repos.Variedades, repos.Siembras, renderer, infrapdf.NewMarotoPDFGenerator(), params),
		DashboardUC:    reportes.NewDashboardUseCase(reporteRepo, renderer),
		ImportUC:       importacion.NewImportUseCase(txRunner, spreadsheet.NewReader(), log),
		ImportMaxBytes: cfg.Import.MaxBytes,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
