package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de solo lectura para reportes, dashboard y exportaciones.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador de reportes.
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// joinVariedad resuelve flor y color de la variedad v.
const joinVariedad = `
	JOIN flor_color fc ON fc.id = v.flor_color_id
	JOIN flores     f  ON f.id  = fc.flor_id
	JOIN colores    co ON co.id = fc.color_id`

// ProduccionPorVariedad suma los tallos cortados por variedad, de mayor a menor.
func (r *ReporteRepo) ProduccionPorVariedad(ctx context.Context) ([]repository.ProduccionVariedad, error) {
	const query = `
	SELECT
	    v.id,
	    v.variedad,
	    f.flor,
	    co.color,
	    SUM(c.cantidad_tallos)::int AS total_tallos
	FROM cortes c
	JOIN siembras   s ON s.id = c.siembra_id
	JOIN variedades v ON v.id = s.variedad_id` + joinVariedad + `
	GROUP BY v.id, v.variedad, f.flor, co.color
	ORDER BY total_tallos DESC, v.variedad`

	return coleccionar(ctx, r.q, "reporte.ProduccionPorVariedad", query, nil,
		func(row pgx.Row, x *repository.ProduccionVariedad) error {
			return row.Scan(&x.VariedadID, &x.Variedad, &x.Flor, &x.Color, &x.TotalTallos)
		})
}

// ProduccionPorBloque suma tallos y cuenta siembras distintas por bloque.
func (r *ReporteRepo) ProduccionPorBloque(ctx context.Context) ([]repository.ProduccionBloque, error) {
	const query = `
	SELECT
	    b.id,
	    b.bloque,
	    SUM(c.cantidad_tallos)::int  AS total_tallos,
	    COUNT(DISTINCT s.id)::int    AS total_siembras
	FROM cortes c
	JOIN siembras         s ON s.id = c.siembra_id
	JOIN bloque_cama_lado u ON u.id = s.bloque_cama_id
	JOIN bloques          b ON b.id = u.bloque_id
	GROUP BY b.id, b.bloque
	ORDER BY LENGTH(b.bloque), b.bloque`

	return coleccionar(ctx, r.q, "reporte.ProduccionPorBloque", query, nil,
		func(row pgx.Row, x *repository.ProduccionBloque) error {
			return row.Scan(&x.BloqueID, &x.Bloque, &x.TotalTallos, &x.TotalSiembras)
		})
}

// DiasProduccion estadística de días desde la siembra por variedad y número de corte.
func (r *ReporteRepo) DiasProduccion(ctx context.Context) ([]repository.DiasCorte, error) {
	const query = `
	SELECT
	    v.id,
	    v.variedad,
	    f.flor,
	    co.color,
	    c.num_corte,
	    AVG(c.fecha_corte - s.fecha_siembra)::float8 AS dias_promedio,
	    MIN(c.fecha_corte - s.fecha_siembra)::int    AS dias_minimo,
	    MAX(c.fecha_corte - s.fecha_siembra)::int    AS dias_maximo,
	    COUNT(DISTINCT s.id)::int                    AS total_siembras
	FROM cortes c
	JOIN siembras   s ON s.id = c.siembra_id
	JOIN variedades v ON v.id = s.variedad_id` + joinVariedad + `
	GROUP BY v.id, v.variedad, f.flor, co.color, c.num_corte
	ORDER BY v.variedad, v.id, c.num_corte`

	return coleccionar(ctx, r.q, "reporte.DiasProduccion", query, nil,
		func(row pgx.Row, x *repository.DiasCorte) error {
			return row.Scan(&x.VariedadID, &x.Variedad, &x.Flor, &x.Color, &x.NumCorte,
				&x.DiasPromedio, &x.DiasMinimo, &x.DiasMaximo, &x.TotalSiembras)
		})
}

// rangoFechas agrega el rango inclusivo del filtro sobre la columna col.
func rangoFechas(c *condiciones, col string, f repository.DashboardFiltro) {
	if f.Desde != nil {
		c.add(col+" >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		c.add(col+" <= $%d", *f.Hasta)
	}
}

// ConteoSiembras cuenta siembras activas y totales por fecha de siembra y variedad.
func (r *ReporteRepo) ConteoSiembras(ctx context.Context, f repository.DashboardFiltro) (repository.ConteoSiembras, error) {
	var c condiciones
	rangoFechas(&c, "s.fecha_siembra", f)
	if f.VariedadID != "" {
		c.add("s.variedad_id::text = $%d", f.VariedadID)
	}
	var out repository.ConteoSiembras
	err := r.q.QueryRow(ctx, `
	SELECT
	    COUNT(*) FILTER (WHERE s.estado = 'Activa')::int,
	    COUNT(*)::int
	FROM siembras s`+c.sql(), c.args...).Scan(&out.Activas, &out.Total)
	if err != nil {
		return out, fmt.Errorf("reporte.ConteoSiembras: %w", err)
	}
	return out, nil
}

// ConteoCortes cuenta cortes y siembras con cortes por fecha de corte y variedad.
func (r *ReporteRepo) ConteoCortes(ctx context.Context, f repository.DashboardFiltro) (repository.ConteoCortes, error) {
	var c condiciones
	rangoFechas(&c, "c.fecha_corte", f)
	if f.VariedadID != "" {
		c.add("s.variedad_id::text = $%d", f.VariedadID)
	}
	var out repository.ConteoCortes
	err := r.q.QueryRow(ctx, `
	SELECT COUNT(c.id)::int, COUNT(DISTINCT c.siembra_id)::int
	FROM cortes c
	JOIN siembras s ON s.id = c.siembra_id`+c.sql(), c.args...).Scan(&out.Cortes, &out.SiembrasConCortes)
	if err != nil {
		return out, fmt.Errorf("reporte.ConteoCortes: %w", err)
	}
	return out, nil
}

func (r *ReporteRepo) ContarVariedades(ctx context.Context) (int, error) {
	return contar(ctx, r.q, "reporte.ContarVariedades", `SELECT COUNT(*) FROM variedades`)
}

// Aprovechamiento agrupa por variedad y bloque los tallos y plantas de siembras finalizadas con
// cortes en el rango. Las plantas se calculan una vez por siembra, no por corte.
func (r *ReporteRepo) Aprovechamiento(ctx context.Context, f repository.DashboardFiltro) ([]repository.FilaAprovechamiento, error) {
	var c condiciones
	c.add("s.estado = $%d", entity.EstadoFinalizada)
	rangoFechas(&c, "s.fecha_siembra", f)
	rangoFechas(&c, "c.fecha_corte", f)
	if f.VariedadID != "" {
		c.add("s.variedad_id::text = $%d", f.VariedadID)
	}
	query := `
	WITH por_siembra AS (
	    SELECT
	        s.id,
	        s.variedad_id,
	        u.bloque_id,
	        SUM(c.cantidad_tallos)::int  AS tallos,
	        ` + plantasSQL + `           AS plantas
	    FROM siembras s
	    JOIN cortes           c ON c.siembra_id = s.id
	    JOIN bloque_cama_lado u ON u.id = s.bloque_cama_id
	    JOIN areas            a ON a.id = s.area_id
	    JOIN densidades       d ON d.id = s.densidad_id` + c.sql() + `
	    GROUP BY s.id, s.variedad_id, u.bloque_id, a.area, d.valor
	)
	SELECT
	    v.id,
	    v.variedad,
	    f.id,
	    f.flor,
	    co.color,
	    b.id,
	    b.bloque,
	    SUM(ps.tallos)::int   AS tallos,
	    SUM(ps.plantas)::int  AS plantas,
	    COUNT(*)::int         AS siembras
	FROM por_siembra ps
	JOIN variedades v ON v.id = ps.variedad_id
	JOIN bloques    b ON b.id = ps.bloque_id` + joinVariedad + `
	GROUP BY v.id, v.variedad, f.id, f.flor, co.color, b.id, b.bloque
	ORDER BY v.variedad, LENGTH(b.bloque), b.bloque`

	return coleccionar(ctx, r.q, "reporte.Aprovechamiento", query, c.args,
		func(row pgx.Row, x *repository.FilaAprovechamiento) error {
			return row.Scan(&x.VariedadID, &x.Variedad, &x.FlorID, &x.Flor, &x.Color,
				&x.BloqueID, &x.Bloque, &x.Tallos, &x.Plantas, &x.Siembras)
		})
}

// UltimasSiembras siembras más recientes, opcionalmente de una variedad.
func (r *ReporteRepo) UltimasSiembras(ctx context.Context, variedadID string, limit int) ([]*entity.SiembraDetalle, error) {
	var c condiciones
	if variedadID != "" {
		c.add("s.variedad_id::text = $%d", variedadID)
	}
	query := selectDetalle + c.sql() + ` ORDER BY s.fecha_siembra DESC, s.fecha_registro DESC, s.id`
	query += c.paginar(limit, 0)
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("reporte.UltimasSiembras: %w", err)
	}
	return listAll(rows, "reporte.UltimasSiembras", scanDetalle)
}

// Diagnostico métricas de calidad de datos. Un corte tiene índice alto cuando sus tallos
// superan 1.5 veces las plantas de la siembra.
func (r *ReporteRepo) Diagnostico(ctx context.Context) (*repository.Diagnostico, error) {
	var d repository.Diagnostico
	err := r.q.QueryRow(ctx, `
	SELECT
	    (SELECT COUNT(*) FROM siembras)::int,
	    (SELECT COUNT(*) FROM cortes)::int,
	    (SELECT COUNT(*) FROM variedades)::int,
	    (SELECT COUNT(*) FROM bloques)::int,
	    (SELECT COUNT(*) FROM camas)::int,
	    (SELECT COUNT(*) FROM siembras s
	      WHERE NOT EXISTS (SELECT 1 FROM cortes c WHERE c.siembra_id = s.id))::int,
	    (SELECT COUNT(*) FROM cortes c
	      JOIN siembras   s ON s.id = c.siembra_id
	      JOIN areas      a ON a.id = s.area_id
	      JOIN densidades d ON d.id = s.densidad_id
	      WHERE `+plantasSQL+` > 0 AND c.cantidad_tallos > 1.5 * `+plantasSQL+`)::int,
	    (SELECT COUNT(DISTINCT variedad_id) FROM siembras)::int`,
	).Scan(&d.TotalSiembras, &d.TotalCortes, &d.TotalVariedades, &d.TotalBloques, &d.TotalCamas,
		&d.SiembrasSinCortes, &d.CortesIndiceAlto, &d.VariedadesConSiembras)
	if err != nil {
		return nil, fmt.Errorf("reporte.Diagnostico: %w", err)
	}

	const query = `
	SELECT
	    v.id,
	    v.variedad,
	    f.flor,
	    co.color,
	    COUNT(DISTINCT s.id)::int AS siembras,
	    COUNT(c.id)::int          AS cortes
	FROM variedades v
	JOIN siembras s ON s.variedad_id = v.id
	JOIN cortes   c ON c.siembra_id  = s.id` + joinVariedad + `
	GROUP BY v.id, v.variedad, f.flor, co.color
	ORDER BY cortes DESC, v.variedad`
	d.VariedadesConCurvas, err = coleccionar(ctx, r.q, "reporte.Diagnostico", query, nil,
		func(row pgx.Row, x *repository.VariedadConDatos) error {
			return row.Scan(&x.VariedadID, &x.Variedad, &x.Flor, &x.Color, &x.Siembras, &x.Cortes)
		})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ExportSiembras filas de la hoja de siembras.
func (r *ReporteRepo) ExportSiembras(ctx context.Context) ([]repository.ExportSiembra, error) {
	const query = `
	SELECT s.id, b.bloque, cm.cama, l.lado, v.variedad, f.flor, co.color,
	       s.fecha_siembra, s.fecha_inicio_corte, s.estado
	FROM siembras s
	JOIN bloque_cama_lado u  ON u.id  = s.bloque_cama_id
	JOIN bloques          b  ON b.id  = u.bloque_id
	JOIN camas            cm ON cm.id = u.cama_id
	JOIN lados            l  ON l.id  = u.lado_id
	JOIN variedades       v  ON v.id  = s.variedad_id` + joinVariedad + `
	ORDER BY s.fecha_siembra DESC, s.id`

	return coleccionar(ctx, r.q, "reporte.ExportSiembras", query, nil,
		func(row pgx.Row, x *repository.ExportSiembra) error {
			return row.Scan(&x.ID, &x.Bloque, &x.Cama, &x.Lado, &x.Variedad, &x.Flor, &x.Color,
				&x.FechaSiembra, &x.FechaInicioCorte, &x.Estado)
		})
}

// ExportCortes filas de la hoja de cortes con días desde la siembra.
func (r *ReporteRepo) ExportCortes(ctx context.Context) ([]repository.ExportCorte, error) {
	const query = `
	SELECT c.id, s.id, b.bloque, cm.cama, l.lado, v.variedad, c.num_corte, c.fecha_corte,
	       c.cantidad_tallos, s.fecha_siembra, (c.fecha_corte - s.fecha_siembra) AS dias
	FROM cortes c
	JOIN siembras         s  ON s.id  = c.siembra_id
	JOIN bloque_cama_lado u  ON u.id  = s.bloque_cama_id
	JOIN bloques          b  ON b.id  = u.bloque_id
	JOIN camas            cm ON cm.id = u.cama_id
	JOIN lados            l  ON l.id  = u.lado_id
	JOIN variedades       v  ON v.id  = s.variedad_id
	ORDER BY c.fecha_corte DESC, s.id, c.num_corte`

	return coleccionar(ctx, r.q, "reporte.ExportCortes", query, nil,
		func(row pgx.Row, x *repository.ExportCorte) error {
			return row.Scan(&x.ID, &x.SiembraID, &x.Bloque, &x.Cama, &x.Lado, &x.Variedad, &x.NumCorte,
				&x.FechaCorte, &x.CantidadTallos, &x.FechaSiembra, &x.DiasDesdeSiembra)
		})
}

// coleccionar ejecuta query y escanea cada fila por valor.
func coleccionar[T any](ctx context.Context, q Querier, op, query string, args []any, scan func(pgx.Row, *T) error) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		var x T
		if err := scan(rows, &x); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, x)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
