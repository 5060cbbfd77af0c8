package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.PerdidaRepository = (*PerdidaRepo)(nil)
	_ repository.CausaRepository   = (*CausaRepo)(nil)
)

// ── Pérdidas ──────────────────────────────────────────────────────────────────

// PerdidaRepo implementación del puerto PerdidaRepository sobre PostgreSQL.
type PerdidaRepo struct {
	q Querier
}

// NewPerdidaRepository construye el adaptador.
func NewPerdidaRepository(q Querier) *PerdidaRepo {
	return &PerdidaRepo{q: q}
}

const columnasPerdida = `p.id, p.siembra_id, p.causa_id, p.cantidad, p.fecha_perdida, p.observaciones,
	COALESCE(p.usuario_id::text, ''), p.fecha_registro`

func scanPerdida(row pgx.Row, p *entity.Perdida) error {
	return row.Scan(&p.ID, &p.SiembraID, &p.CausaID, &p.Cantidad, &p.FechaPerdida, &p.Observaciones,
		&p.UsuarioID, &p.FechaRegistro)
}

// fromPerdidaListado resuelve causa, ubicación y variedad de cada pérdida.
const fromPerdidaListado = `
	FROM perdidas p
	JOIN causas_perdida ca ON ca.id = p.causa_id
	JOIN siembras s ON s.id = p.siembra_id
	JOIN bloque_cama_lado u ON u.id = s.bloque_cama_id
	JOIN bloques b ON b.id = u.bloque_id
	JOIN camas cm ON cm.id = u.cama_id
	JOIN lados l ON l.id = u.lado_id
	JOIN variedades v ON v.id = s.variedad_id
	JOIN flor_color fc ON fc.id = v.flor_color_id
	JOIN flores f ON f.id = fc.flor_id
	JOIN colores co ON co.id = fc.color_id`

func (r *PerdidaRepo) Create(ctx context.Context, p *entity.Perdida) error {
	query := `
		INSERT INTO perdidas (id, siembra_id, causa_id, cantidad, fecha_perdida, observaciones, usuario_id, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SiembraID, p.CausaID, p.Cantidad, p.FechaPerdida, p.Observaciones, nullable(p.UsuarioID), p.FechaRegistro)
	if err != nil {
		return writeErr("insert perdida", err)
	}
	return nil
}

func (r *PerdidaRepo) GetByID(ctx context.Context, id string) (*entity.Perdida, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT `+columnasPerdida+` FROM perdidas p WHERE p.id = $1`, id), "get perdida", scanPerdida)
}

func (r *PerdidaRepo) Update(ctx context.Context, p *entity.Perdida) error {
	return execOne(ctx, r.q, "update perdida", `
		UPDATE perdidas SET siembra_id = $2, causa_id = $3, cantidad = $4, fecha_perdida = $5, observaciones = $6
		WHERE id = $1`, p.ID, p.SiembraID, p.CausaID, p.Cantidad, p.FechaPerdida, p.Observaciones)
}

func (r *PerdidaRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete perdida", `DELETE FROM perdidas WHERE id = $1`, id)
}

// List filtra por siembra, causa y rango de fechas; pagina por fecha descendente.
func (r *PerdidaRepo) List(ctx context.Context, f repository.PerdidaFiltro, limit, offset int) ([]*repository.PerdidaListado, int, error) {
	var c condiciones
	if f.SiembraID != "" {
		c.add("p.siembra_id::text = $%d", f.SiembraID)
	}
	if f.CausaID != "" {
		c.add("p.causa_id::text = $%d", f.CausaID)
	}
	if f.FechaDesde != nil {
		c.add("p.fecha_perdida >= $%d", *f.FechaDesde)
	}
	if f.FechaHasta != nil {
		c.add("p.fecha_perdida <= $%d", *f.FechaHasta)
	}
	total, err := contar(ctx, r.q, "count perdidas", `SELECT COUNT(*) FROM perdidas p`+c.sql(), c.args...)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + columnasPerdida + `, ca.nombre, CONCAT_WS(' ', f.flor, co.color, v.variedad),
		b.bloque || '-' || cm.cama || '-' || l.lado` + fromPerdidaListado + c.sql() +
		` ORDER BY p.fecha_perdida DESC, p.id`
	query += c.paginar(limit, offset)
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list perdidas: %w", err)
	}
	list, err := listAll(rows, "scan perdida", func(row pgx.Row, x *repository.PerdidaListado) error {
		return row.Scan(&x.ID, &x.SiembraID, &x.CausaID, &x.Cantidad, &x.FechaPerdida, &x.Observaciones,
			&x.UsuarioID, &x.FechaRegistro, &x.Causa, &x.Variedad, &x.Ubicacion)
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *PerdidaRepo) SumCantidad(ctx context.Context, siembraID, excluirID string) (int, error) {
	return contar(ctx, r.q, "sum perdidas", `
		SELECT COALESCE(SUM(cantidad), 0)::int FROM perdidas
		WHERE siembra_id::text = $1 AND id::text <> $2`, siembraID, excluirID)
}

func (r *PerdidaRepo) ResumenPorCausa(ctx context.Context, siembraID string) ([]repository.ResumenCausa, error) {
	var c condiciones
	if siembraID != "" {
		c.add("p.siembra_id::text = $%d", siembraID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT ca.id, ca.nombre, SUM(p.cantidad)::int, COUNT(*)::int
		FROM perdidas p
		JOIN causas_perdida ca ON ca.id = p.causa_id`+c.sql()+`
		GROUP BY ca.id, ca.nombre
		ORDER BY 3 DESC, ca.nombre`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("resumen perdidas por causa: %w", err)
	}
	defer rows.Close()
	var out []repository.ResumenCausa
	for rows.Next() {
		var x repository.ResumenCausa
		if err := rows.Scan(&x.CausaID, &x.Causa, &x.Total, &x.Registros); err != nil {
			return nil, fmt.Errorf("scan resumen causa: %w", err)
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

func (r *PerdidaRepo) ResumenPorVariedadCausa(ctx context.Context) ([]repository.ResumenVariedadCausa, error) {
	rows, err := r.q.Query(ctx, `
		SELECT v.id, CONCAT_WS(' ', f.flor, co.color, v.variedad), ca.id, ca.nombre, SUM(p.cantidad)::int
		FROM perdidas p
		JOIN causas_perdida ca ON ca.id = p.causa_id
		JOIN siembras s ON s.id = p.siembra_id
		JOIN variedades v ON v.id = s.variedad_id
		JOIN flor_color fc ON fc.id = v.flor_color_id
		JOIN flores f ON f.id = fc.flor_id
		JOIN colores co ON co.id = fc.color_id
		GROUP BY v.id, f.flor, co.color, v.variedad, ca.id, ca.nombre
		ORDER BY 2, 5 DESC`)
	if err != nil {
		return nil, fmt.Errorf("resumen perdidas por variedad: %w", err)
	}
	defer rows.Close()
	var out []repository.ResumenVariedadCausa
	for rows.Next() {
		var x repository.ResumenVariedadCausa
		if err := rows.Scan(&x.VariedadID, &x.Variedad, &x.CausaID, &x.Causa, &x.Total); err != nil {
			return nil, fmt.Errorf("scan resumen variedad causa: %w", err)
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

// ── Causas ────────────────────────────────────────────────────────────────────

// CausaRepo causas de pérdida; el nombre es único sin distinguir mayúsculas.
type CausaRepo struct {
	q Querier
}

// NewCausaRepository construye el adaptador.
func NewCausaRepository(q Querier) *CausaRepo {
	return &CausaRepo{q: q}
}

const selectCausa = `SELECT id, nombre, descripcion, es_predefinida FROM causas_perdida`

func scanCausa(row pgx.Row, c *entity.CausaPerdida) error {
	return row.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.EsPredefinida)
}

func (r *CausaRepo) Create(ctx context.Context, c *entity.CausaPerdida) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO causas_perdida (id, nombre, descripcion, es_predefinida) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Nombre, c.Descripcion, c.EsPredefinida)
	if err != nil {
		return writeErr("insert causa", err)
	}
	return nil
}

func (r *CausaRepo) GetByID(ctx context.Context, id string) (*entity.CausaPerdida, error) {
	return getOne(r.q.QueryRow(ctx, selectCausa+` WHERE id = $1`, id), "get causa", scanCausa)
}

func (r *CausaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.CausaPerdida, error) {
	return getOne(r.q.QueryRow(ctx, selectCausa+` WHERE UPPER(nombre) = UPPER($1)`, nombre), "get causa by nombre", scanCausa)
}

func (r *CausaRepo) List(ctx context.Context) ([]*entity.CausaPerdida, error) {
	rows, err := r.q.Query(ctx, selectCausa+` ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list causas: %w", err)
	}
	return listAll(rows, "scan causa", scanCausa)
}

func (r *CausaRepo) Update(ctx context.Context, c *entity.CausaPerdida) error {
	return execOne(ctx, r.q, "update causa",
		`UPDATE causas_perdida SET nombre = $2, descripcion = $3, es_predefinida = $4 WHERE id = $1`,
		c.ID, c.Nombre, c.Descripcion, c.EsPredefinida)
}

func (r *CausaRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete causa", `DELETE FROM causas_perdida WHERE id = $1`, id)
}

func (r *CausaRepo) CountPerdidas(ctx context.Context, id string) (int, error) {
	return contar(ctx, r.q, "count perdidas de causa", `SELECT COUNT(*) FROM perdidas WHERE causa_id::text = $1`, id)
}
