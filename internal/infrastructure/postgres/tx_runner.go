package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/cpc-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios transaccionales sobre q (pool o tx).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Flores:          NewFlorRepository(q),
		Colores:         NewColorRepository(q),
		FlorColores:     NewFlorColorRepository(q),
		Variedades:      NewVariedadRepository(q),
		Bloques:         NewBloqueRepository(q),
		Camas:           NewCamaRepository(q),
		Lados:           NewLadoRepository(q),
		BloqueCamaLados: NewBloqueCamaLadoRepository(q),
		Areas:           NewAreaRepository(q),
		Densidades:      NewDensidadRepository(q),
		Siembras:        NewSiembraRepository(q),
		Cortes:          NewCorteRepository(q),
		Causas:          NewCausaRepository(q),
		Perdidas:        NewPerdidaRepository(q),
	}
}
