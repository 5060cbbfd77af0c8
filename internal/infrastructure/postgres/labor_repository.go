package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.TipoLaborRepository = (*TipoLaborRepo)(nil)
	_ repository.LaborRepository     = (*LaborRepo)(nil)
)

// TipoLaborRepo tipos de labor cultural, opcionalmente ligados a una flor.
type TipoLaborRepo struct {
	q Querier
}

// NewTipoLaborRepository construye el adaptador.
func NewTipoLaborRepository(q Querier) *TipoLaborRepo {
	return &TipoLaborRepo{q: q}
}

const selectTipoLabor = `SELECT id, nombre, descripcion, flor_id::text FROM tipos_labor`

func scanTipoLabor(row pgx.Row, t *entity.TipoLabor) error {
	return row.Scan(&t.ID, &t.Nombre, &t.Descripcion, &t.FlorID)
}

func (r *TipoLaborRepo) Create(ctx context.Context, t *entity.TipoLabor) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tipos_labor (id, nombre, descripcion, flor_id) VALUES ($1, $2, $3, $4)`,
		t.ID, t.Nombre, t.Descripcion, t.FlorID)
	if err != nil {
		return writeErr("insert tipo labor", err)
	}
	return nil
}

func (r *TipoLaborRepo) GetByID(ctx context.Context, id string) (*entity.TipoLabor, error) {
	return getOne(r.q.QueryRow(ctx, selectTipoLabor+` WHERE id = $1`, id), "get tipo labor", scanTipoLabor)
}

func (r *TipoLaborRepo) List(ctx context.Context) ([]*entity.TipoLabor, error) {
	rows, err := r.q.Query(ctx, selectTipoLabor+` ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list tipos labor: %w", err)
	}
	return listAll(rows, "scan tipo labor", scanTipoLabor)
}

func (r *TipoLaborRepo) Update(ctx context.Context, t *entity.TipoLabor) error {
	return execOne(ctx, r.q, "update tipo labor",
		`UPDATE tipos_labor SET nombre = $2, descripcion = $3, flor_id = $4 WHERE id = $1`,
		t.ID, t.Nombre, t.Descripcion, t.FlorID)
}

func (r *TipoLaborRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete tipo labor", `DELETE FROM tipos_labor WHERE id = $1`, id)
}

// LaborRepo labores culturales realizadas sobre una siembra.
type LaborRepo struct {
	q Querier
}

// NewLaborRepository construye el adaptador.
func NewLaborRepository(q Querier) *LaborRepo {
	return &LaborRepo{q: q}
}

const selectLabor = `
	SELECT lc.id, lc.siembra_id, lc.tipo_labor_id, t.nombre, lc.fecha_labor, lc.observaciones,
		COALESCE(lc.usuario_id::text, ''), lc.fecha_registro
	FROM labores_culturales lc
	JOIN tipos_labor t ON t.id = lc.tipo_labor_id`

func scanLabor(row pgx.Row, l *entity.LaborCultural) error {
	return row.Scan(&l.ID, &l.SiembraID, &l.TipoLaborID, &l.TipoLabor, &l.FechaLabor, &l.Observaciones,
		&l.UsuarioID, &l.FechaRegistro)
}

func (r *LaborRepo) Create(ctx context.Context, l *entity.LaborCultural) error {
	query := `
		INSERT INTO labores_culturales (id, siembra_id, tipo_labor_id, fecha_labor, observaciones, usuario_id, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.SiembraID, l.TipoLaborID, l.FechaLabor, l.Observaciones, nullable(l.UsuarioID), l.FechaRegistro)
	if err != nil {
		return writeErr("insert labor", err)
	}
	return nil
}

func (r *LaborRepo) GetByID(ctx context.Context, id string) (*entity.LaborCultural, error) {
	return getOne(r.q.QueryRow(ctx, selectLabor+` WHERE lc.id = $1`, id), "get labor", scanLabor)
}

func (r *LaborRepo) ListBySiembra(ctx context.Context, siembraID string) ([]*entity.LaborCultural, error) {
	rows, err := r.q.Query(ctx, selectLabor+` WHERE lc.siembra_id::text = $1 ORDER BY lc.fecha_labor, lc.id`, siembraID)
	if err != nil {
		return nil, fmt.Errorf("list labores: %w", err)
	}
	return listAll(rows, "scan labor", scanLabor)
}

func (r *LaborRepo) Update(ctx context.Context, l *entity.LaborCultural) error {
	return execOne(ctx, r.q, "update labor", `
		UPDATE labores_culturales SET tipo_labor_id = $2, fecha_labor = $3, observaciones = $4
		WHERE id = $1`, l.ID, l.TipoLaborID, l.FechaLabor, l.Observaciones)
}

func (r *LaborRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete labor", `DELETE FROM labores_culturales WHERE id = $1`, id)
}
