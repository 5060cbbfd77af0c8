package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cpc-api/internal/infrastructure/postgres"
	"github.com/jhoicas/cpc-api/pkg/config"
	"github.com/jhoicas/cpc-api/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL      string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "cpcctl",
	Short: "Operaciones de mantenimiento de la base de producción de flores",
	Long: `cpcctl ejecuta tareas operativas contra la misma base de datos que usa la API:

  migrate      - aplica las migraciones embebidas pendientes
  crear-admin  - crea un usuario con rol admin
  importar     - carga un archivo CSV/XLSX de catálogos o histórico
  exportar     - genera el Excel de siembras o cortes

La conexión se toma de DATABASE_URL / DB_* salvo que se indique --db.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "URL de conexión (reemplaza DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "salida en JSON")
}

// entorno recursos compartidos por los subcomandos.
type entorno struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func conectar(ctx context.Context) (*entorno, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbURL != "" {
		cfg.DB.DatabaseURL = dbURL
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &entorno{cfg: cfg, log: log, pool: pool}, nil
}

func (e *entorno) Close() {
	e.pool.Close()
}
