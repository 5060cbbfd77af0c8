package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var _ repository.CorteRepository = (*CorteRepo)(nil)

// CorteRepo implementación del puerto CorteRepository sobre PostgreSQL.
type CorteRepo struct {
	q Querier
}

// NewCorteRepository construye el adaptador.
func NewCorteRepository(q Querier) *CorteRepo {
	return &CorteRepo{q: q}
}

const columnasCorte = `c.id, c.siembra_id, c.num_corte, c.fecha_corte, c.cantidad_tallos,
	COALESCE(c.usuario_id::text, ''), c.fecha_registro`

func scanCorte(row pgx.Row, c *entity.Corte) error {
	return row.Scan(&c.ID, &c.SiembraID, &c.NumCorte, &c.FechaCorte, &c.CantidadTallos, &c.UsuarioID, &c.FechaRegistro)
}

func (r *CorteRepo) Create(ctx context.Context, c *entity.Corte) error {
	query := `
		INSERT INTO cortes (id, siembra_id, num_corte, fecha_corte, cantidad_tallos, usuario_id, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.SiembraID, c.NumCorte, c.FechaCorte, c.CantidadTallos, nullable(c.UsuarioID), c.FechaRegistro)
	if err != nil {
		return writeErr("insert corte", err)
	}
	return nil
}

func (r *CorteRepo) GetByID(ctx context.Context, id string) (*entity.Corte, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT `+columnasCorte+` FROM cortes c WHERE c.id = $1`, id), "get corte", scanCorte)
}

func (r *CorteRepo) Update(ctx context.Context, c *entity.Corte) error {
	return execOne(ctx, r.q, "update corte", `
		UPDATE cortes SET siembra_id = $2, num_corte = $3, fecha_corte = $4, cantidad_tallos = $5
		WHERE id = $1`, c.ID, c.SiembraID, c.NumCorte, c.FechaCorte, c.CantidadTallos)
}

func (r *CorteRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete corte", `DELETE FROM cortes WHERE id = $1`, id)
}

// List pagina todos los cortes por fecha descendente con ubicación "B-C-L", variedad y plantas.
func (r *CorteRepo) List(ctx context.Context, limit, offset int) ([]*repository.CorteListado, int, error) {
	total, err := contar(ctx, r.q, "count cortes", `SELECT COUNT(*) FROM cortes`)
	if err != nil {
		return nil, 0, err
	}
	var c condiciones
	query := `
		SELECT ` + columnasCorte + `,
			b.bloque || '-' || cm.cama || '-' || l.lado,
			CONCAT_WS(' ', f.flor, co.color, v.variedad),
			` + plantasSQL + `
		FROM cortes c
		JOIN siembras s ON s.id = c.siembra_id
		JOIN bloque_cama_lado u ON u.id = s.bloque_cama_id
		JOIN bloques b ON b.id = u.bloque_id
		JOIN camas cm ON cm.id = u.cama_id
		JOIN lados l ON l.id = u.lado_id
		JOIN variedades v ON v.id = s.variedad_id
		JOIN flor_color fc ON fc.id = v.flor_color_id
		JOIN flores f ON f.id = fc.flor_id
		JOIN colores co ON co.id = fc.color_id
		JOIN areas a ON a.id = s.area_id
		JOIN densidades d ON d.id = s.densidad_id
		ORDER BY c.fecha_corte DESC, c.id` + c.paginar(limit, offset)
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cortes: %w", err)
	}
	list, err := listAll(rows, "scan corte", func(row pgx.Row, x *repository.CorteListado) error {
		return row.Scan(&x.ID, &x.SiembraID, &x.NumCorte, &x.FechaCorte, &x.CantidadTallos, &x.UsuarioID,
			&x.FechaRegistro, &x.Ubicacion, &x.Variedad, &x.Plantas)
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *CorteRepo) ListBySiembra(ctx context.Context, siembraID string) ([]*entity.Corte, error) {
	rows, err := r.q.Query(ctx, `SELECT `+columnasCorte+` FROM cortes c
		WHERE c.siembra_id::text = $1 ORDER BY c.num_corte`, siembraID)
	if err != nil {
		return nil, fmt.Errorf("list cortes by siembra: %w", err)
	}
	return listAll(rows, "scan corte", scanCorte)
}

func (r *CorteRepo) SumTallos(ctx context.Context, siembraID, excluirID string) (int, error) {
	return contar(ctx, r.q, "sum tallos", `
		SELECT COALESCE(SUM(cantidad_tallos), 0)::int FROM cortes
		WHERE siembra_id::text = $1 AND id::text <> $2`, siembraID, excluirID)
}

func (r *CorteRepo) MaxNumCorte(ctx context.Context, siembraID string) (int, error) {
	return contar(ctx, r.q, "max num corte",
		`SELECT COALESCE(MAX(num_corte), 0) FROM cortes WHERE siembra_id::text = $1`, siembraID)
}

func (r *CorteRepo) ExisteNumCorte(ctx context.Context, siembraID string, numCorte int, excluirID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM cortes WHERE siembra_id::text = $1 AND num_corte = $2 AND id::text <> $3)`,
		siembraID, numCorte, excluirID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("existe num corte: %w", err)
	}
	return ok, nil
}

// ListReferencias devuelve días desde la siembra, tallos y plantas de los cortes de otras
// siembras de la misma variedad.
func (r *CorteRepo) ListReferencias(ctx context.Context, variedadID, excluirSiembraID string) ([]repository.CorteReferencia, error) {
	rows, err := r.q.Query(ctx, `
		SELECT (c.fecha_corte - s.fecha_siembra), c.cantidad_tallos, `+plantasSQL+`
		FROM cortes c
		JOIN siembras s ON s.id = c.siembra_id
		JOIN areas a ON a.id = s.area_id
		JOIN densidades d ON d.id = s.densidad_id
		WHERE s.variedad_id::text = $1 AND s.id::text <> $2
		ORDER BY s.fecha_siembra, c.num_corte`, variedadID, excluirSiembraID)
	if err != nil {
		return nil, fmt.Errorf("list referencias: %w", err)
	}
	defer rows.Close()
	var out []repository.CorteReferencia
	for rows.Next() {
		var ref repository.CorteReferencia
		if err := rows.Scan(&ref.DiasDesdeSiembra, &ref.Tallos, &ref.Plantas); err != nil {
			return nil, fmt.Errorf("scan referencia: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
