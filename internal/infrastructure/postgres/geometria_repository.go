package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.AreaRepository     = (*AreaRepo)(nil)
	_ repository.DensidadRepository = (*DensidadRepo)(nil)
)

// AreaRepo áreas sembradas en m². La columna "siembra" guarda la etiqueta del área.
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador.
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

func scanArea(row pgx.Row, a *entity.Area) error {
	return row.Scan(&a.ID, &a.Nombre, &a.Area)
}

func (r *AreaRepo) Create(ctx context.Context, a *entity.Area) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO areas (id, siembra, area) VALUES ($1, $2, $3)`, a.ID, a.Nombre, a.Area); err != nil {
		return writeErr("insert area", err)
	}
	return nil
}

func (r *AreaRepo) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, siembra, area FROM areas WHERE id = $1`, id), "get area", scanArea)
}

func (r *AreaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Area, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, siembra, area FROM areas WHERE siembra = $1`, nombre), "get area by nombre", scanArea)
}

// FindAproximada busca el área más cercana a m2 dentro de m2·(1±tolerancia).
func (r *AreaRepo) FindAproximada(ctx context.Context, m2, tolerancia float64) (*entity.Area, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, siembra, area FROM areas
		WHERE area BETWEEN $1::numeric AND $2::numeric
		ORDER BY ABS(area - $3::numeric), id
		LIMIT 1`, m2*(1-tolerancia), m2*(1+tolerancia), m2)
	return getOne(row, "find area aproximada", scanArea)
}

func (r *AreaRepo) List(ctx context.Context) ([]*entity.Area, error) {
	rows, err := r.q.Query(ctx, `SELECT id, siembra, area FROM areas ORDER BY area, siembra`)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return listAll(rows, "scan area", scanArea)
}

func (r *AreaRepo) Update(ctx context.Context, a *entity.Area) error {
	return execOne(ctx, r.q, "update area", `UPDATE areas SET siembra = $2, area = $3 WHERE id = $1`, a.ID, a.Nombre, a.Area)
}

func (r *AreaRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete area", `DELETE FROM areas WHERE id = $1`, id)
}

// DensidadRepo densidades de siembra en plantas/m²; el nombre es único sin distinguir mayúsculas.
type DensidadRepo struct {
	q Querier
}

// NewDensidadRepository construye el adaptador.
func NewDensidadRepository(q Querier) *DensidadRepo {
	return &DensidadRepo{q: q}
}

func scanDensidad(row pgx.Row, d *entity.Densidad) error {
	return row.Scan(&d.ID, &d.Densidad, &d.Valor)
}

func (r *DensidadRepo) Create(ctx context.Context, d *entity.Densidad) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO densidades (id, densidad, valor) VALUES ($1, $2, $3)`, d.ID, d.Densidad, d.Valor); err != nil {
		return writeErr("insert densidad", err)
	}
	return nil
}

func (r *DensidadRepo) GetByID(ctx context.Context, id string) (*entity.Densidad, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, densidad, valor FROM densidades WHERE id = $1`, id), "get densidad", scanDensidad)
}

func (r *DensidadRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Densidad, error) {
	row := r.q.QueryRow(ctx, `SELECT id, densidad, valor FROM densidades WHERE UPPER(densidad) = UPPER($1)`, nombre)
	return getOne(row, "get densidad by nombre", scanDensidad)
}

func (r *DensidadRepo) List(ctx context.Context) ([]*entity.Densidad, error) {
	rows, err := r.q.Query(ctx, `SELECT id, densidad, valor FROM densidades ORDER BY valor, densidad`)
	if err != nil {
		return nil, fmt.Errorf("list densidades: %w", err)
	}
	return listAll(rows, "scan densidad", scanDensidad)
}

func (r *DensidadRepo) Update(ctx context.Context, d *entity.Densidad) error {
	return execOne(ctx, r.q, "update densidad",
		`UPDATE densidades SET densidad = $2, valor = $3 WHERE id = $1`, d.ID, d.Densidad, d.Valor)
}

func (r *DensidadRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete densidad", `DELETE FROM densidades WHERE id = $1`, id)
}
