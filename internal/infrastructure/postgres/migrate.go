package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateLockID llave del advisory lock que serializa migraciones concurrentes.
const migrateLockID = 7_351_002

// Migrate aplica en orden las migraciones embebidas que aún no estén registradas en
// schema_migrations. Cada archivo corre en su propia transacción. Devuelve las versiones aplicadas.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, fmt.Errorf("migrate: crear schema_migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("migrate: listar: %w", err)
	}
	slices.Sort(files)

	var aplicadas []string
	for _, f := range files {
		version := strings.TrimSuffix(path.Base(f), ".sql")
		ok, err := aplicarMigracion(ctx, pool, f, version)
		if err != nil {
			return aplicadas, err
		}
		if ok {
			aplicadas = append(aplicadas, version)
		}
	}
	return aplicadas, nil
}

func aplicarMigracion(ctx context.Context, pool *pgxpool.Pool, file, version string) (bool, error) {
	sql, err := migrationsFS.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("migrate: leer %s: %w", file, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrateLockID); err != nil {
		return false, fmt.Errorf("migrate: lock: %w", err)
	}
	var existe bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&existe); err != nil {
		return false, fmt.Errorf("migrate: consultar %s: %w", version, err)
	}
	if existe {
		return false, nil
	}
	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return false, fmt.Errorf("migrate: aplicar %s: %w", version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return false, fmt.Errorf("migrate: registrar %s: %w", version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}
