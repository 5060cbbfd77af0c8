package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cpc-api/pkg/config"
)

const (
	applicationName = "cpc-api"
	pingIntentos    = 5
	pingEspera      = 2 * time.Second
)

// NewPool crea el pool de conexiones con DATABASE_URL o con el DSN armado desde DB_*.
// Reintenta el ping unas veces porque en docker compose la base suele arrancar después de la API.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = int32(max(cfg.MaxConns, 1))
	poolConfig.MinConns = min(2, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second
	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	// NUMERIC (área, densidad) <-> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pingConReintentos(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func pingConReintentos(ctx context.Context, pool *pgxpool.Pool) error {
	var err error
	for i := 1; i <= pingIntentos; i++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		if i == pingIntentos {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping DB: %w", ctx.Err())
		case <-time.After(pingEspera * time.Duration(i)):
		}
	}
	return fmt.Errorf("ping DB tras %d intentos: %w", pingIntentos, err)
}
