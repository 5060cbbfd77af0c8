package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var _ repository.SiembraRepository = (*SiembraRepo)(nil)

// plantasSQL plantas de una siembra: área × densidad truncado. Requiere los alias a y d.
const plantasSQL = `TRUNC(a.area * d.valor)::int`

// SiembraRepo implementación del puerto SiembraRepository sobre PostgreSQL.
type SiembraRepo struct {
	q Querier
}

// NewSiembraRepository construye el adaptador.
func NewSiembraRepository(q Querier) *SiembraRepo {
	return &SiembraRepo{q: q}
}

const columnasSiembra = `s.id, s.bloque_cama_id, s.variedad_id, s.area_id, s.densidad_id, s.fecha_siembra,
	s.fecha_inicio_corte, s.fecha_fin_corte, s.estado, COALESCE(s.usuario_id::text, ''), s.fecha_registro`

func scanSiembra(row pgx.Row, s *entity.Siembra) error {
	return row.Scan(&s.ID, &s.BloqueCamaLadoID, &s.VariedadID, &s.AreaID, &s.DensidadID, &s.FechaSiembra,
		&s.FechaInicioCorte, &s.FechaFinCorte, &s.Estado, &s.UsuarioID, &s.FechaRegistro)
}

// fromDetalle une la siembra con ubicación, variedad, geometría y usuario.
const fromDetalle = `
	FROM siembras s
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
	LEFT JOIN usuarios us ON us.id = s.usuario_id`

const selectDetalle = `SELECT ` + columnasSiembra + `,
	b.bloque, cm.cama, l.lado, u.bloque_id, f.flor, co.color, v.variedad,
	a.siembra, a.area::float8, d.densidad, d.valor::float8, COALESCE(us.username, '')` + fromDetalle

func scanDetalle(row pgx.Row, s *entity.SiembraDetalle) error {
	return row.Scan(&s.ID, &s.BloqueCamaLadoID, &s.VariedadID, &s.AreaID, &s.DensidadID, &s.FechaSiembra,
		&s.FechaInicioCorte, &s.FechaFinCorte, &s.Estado, &s.UsuarioID, &s.FechaRegistro,
		&s.Bloque, &s.Cama, &s.Lado, &s.BloqueID, &s.Flor, &s.Color, &s.Variedad,
		&s.AreaNombre, &s.Area, &s.DensidadNombre, &s.Densidad, &s.Usuario)
}

// Create persiste una nueva siembra; referencias inexistentes devuelven ErrConflict.
func (r *SiembraRepo) Create(ctx context.Context, s *entity.Siembra) error {
	query := `
		INSERT INTO siembras (id, bloque_cama_id, variedad_id, area_id, densidad_id, fecha_siembra,
			fecha_inicio_corte, fecha_fin_corte, estado, usuario_id, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.BloqueCamaLadoID, s.VariedadID, s.AreaID, s.DensidadID, s.FechaSiembra,
		s.FechaInicioCorte, s.FechaFinCorte, s.Estado, nullable(s.UsuarioID), s.FechaRegistro,
	)
	if err != nil {
		return writeErr("insert siembra", err)
	}
	return nil
}

func (r *SiembraRepo) GetByID(ctx context.Context, id string) (*entity.Siembra, error) {
	row := r.q.QueryRow(ctx, `SELECT `+columnasSiembra+` FROM siembras s WHERE s.id = $1`, id)
	return getOne(row, "get siembra", scanSiembra)
}

// GetByIDForUpdate serializa las escrituras de cortes y pérdidas de una misma siembra:
// el chequeo de capacidad corre con la fila bloqueada.
func (r *SiembraRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Siembra, error) {
	row := r.q.QueryRow(ctx, `SELECT `+columnasSiembra+` FROM siembras s WHERE s.id = $1 FOR UPDATE`, id)
	return getOne(row, "lock siembra", scanSiembra)
}

func (r *SiembraRepo) GetDetalle(ctx context.Context, id string) (*entity.SiembraDetalle, error) {
	return getOne(r.q.QueryRow(ctx, selectDetalle+` WHERE s.id = $1`, id), "get siembra detalle", scanDetalle)
}

func (r *SiembraRepo) GetByClave(ctx context.Context, bloqueCamaLadoID, variedadID string, fechaSiembra time.Time) (*entity.Siembra, error) {
	row := r.q.QueryRow(ctx, `SELECT `+columnasSiembra+` FROM siembras s
		WHERE s.bloque_cama_id = $1 AND s.variedad_id = $2 AND s.fecha_siembra = $3
		ORDER BY s.fecha_registro LIMIT 1`, bloqueCamaLadoID, variedadID, fechaSiembra)
	return getOne(row, "get siembra by clave", scanSiembra)
}

// List filtra por estado, variedad y bloque; ordena por fecha de siembra descendente.
func (r *SiembraRepo) List(ctx context.Context, f repository.SiembraFiltro, limit, offset int) ([]*entity.SiembraDetalle, int, error) {
	var c condiciones
	if f.Estado != "" {
		c.add("s.estado = $%d", f.Estado)
	}
	if f.VariedadID != "" {
		c.add("s.variedad_id::text = $%d", f.VariedadID)
	}
	if f.BloqueID != "" {
		c.add("u.bloque_id::text = $%d", f.BloqueID)
	}
	total, err := contar(ctx, r.q, "count siembras", `SELECT COUNT(*)`+fromDetalle+c.sql(), c.args...)
	if err != nil {
		return nil, 0, err
	}
	query := selectDetalle + c.sql() + ` ORDER BY s.fecha_siembra DESC, s.id`
	query += c.paginar(limit, offset)
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list siembras: %w", err)
	}
	list, err := listAll(rows, "scan siembra", scanDetalle)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SiembraRepo) Update(ctx context.Context, s *entity.Siembra) error {
	return execOne(ctx, r.q, "update siembra", `
		UPDATE siembras SET bloque_cama_id = $2, variedad_id = $3, area_id = $4, densidad_id = $5,
			fecha_siembra = $6, fecha_inicio_corte = $7, fecha_fin_corte = $8, estado = $9
		WHERE id = $1`,
		s.ID, s.BloqueCamaLadoID, s.VariedadID, s.AreaID, s.DensidadID,
		s.FechaSiembra, s.FechaInicioCorte, s.FechaFinCorte, s.Estado)
}

// Delete elimina la siembra; si aún tiene cortes, pérdidas o labores devuelve ErrConflict.
func (r *SiembraRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete siembra", `DELETE FROM siembras WHERE id = $1`, id)
}

// Totales devuelve plantas, tallos, pérdidas y cortes de la siembra; inexistente → ErrNotFound.
func (r *SiembraRepo) Totales(ctx context.Context, id string) (repository.SiembraTotales, error) {
	var t repository.SiembraTotales
	err := r.q.QueryRow(ctx, `
		SELECT `+plantasSQL+`,
			COALESCE((SELECT SUM(c.cantidad_tallos) FROM cortes c WHERE c.siembra_id = s.id), 0)::int,
			COALESCE((SELECT SUM(p.cantidad) FROM perdidas p WHERE p.siembra_id = s.id), 0)::int,
			(SELECT COUNT(*) FROM cortes c WHERE c.siembra_id = s.id)::int,
			(SELECT MAX(c.fecha_corte) FROM cortes c WHERE c.siembra_id = s.id)
		FROM siembras s
		JOIN areas a ON a.id = s.area_id
		JOIN densidades d ON d.id = s.densidad_id
		WHERE s.id = $1`, id,
	).Scan(&t.Plantas, &t.Tallos, &t.Perdidas, &t.NumCortes, &t.UltimoCorte)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return t, domain.ErrNotFound
		}
		return t, fmt.Errorf("totales siembra: %w", err)
	}
	return t, nil
}

// CountDependencias cuenta cortes, pérdidas y labores que referencian la siembra.
func (r *SiembraRepo) CountDependencias(ctx context.Context, id string) (int, error) {
	return contar(ctx, r.q, "count dependencias siembra", `
		SELECT (SELECT COUNT(*) FROM cortes WHERE siembra_id = $1)
			+ (SELECT COUNT(*) FROM perdidas WHERE siembra_id = $1)
			+ (SELECT COUNT(*) FROM labores_culturales WHERE siembra_id = $1)`, id)
}

// ListMuestras carga en una sola consulta las siembras de la variedad con sus cortes por fecha.
func (r *SiembraRepo) ListMuestras(ctx context.Context, f repository.MuestraFiltro) ([]produccion.SiembraMuestra, error) {
	var c condiciones
	c.add("s.variedad_id::text = $%d", f.VariedadID)
	if f.BloqueID != "" {
		c.add("u.bloque_id::text = $%d", f.BloqueID)
	}
	if f.SembradaDesde != nil {
		c.add("s.fecha_siembra >= $%d", *f.SembradaDesde)
	}
	rows, err := r.q.Query(ctx, `
		SELECT s.id, s.fecha_siembra, `+plantasSQL+`, ct.fecha_corte, ct.cantidad_tallos
		FROM siembras s
		JOIN bloque_cama_lado u ON u.id = s.bloque_cama_id
		JOIN areas a ON a.id = s.area_id
		JOIN densidades d ON d.id = s.densidad_id
		LEFT JOIN cortes ct ON ct.siembra_id = s.id`+c.sql()+`
		ORDER BY s.fecha_siembra, s.id, ct.fecha_corte, ct.num_corte`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list muestras: %w", err)
	}
	defer rows.Close()

	var out []produccion.SiembraMuestra
	for rows.Next() {
		var (
			m      produccion.SiembraMuestra
			fecha  *time.Time
			tallos *int
		)
		if err := rows.Scan(&m.ID, &m.FechaSiembra, &m.Plantas, &fecha, &tallos); err != nil {
			return nil, fmt.Errorf("scan muestra: %w", err)
		}
		if n := len(out); n == 0 || out[n-1].ID != m.ID {
			out = append(out, m)
		}
		if fecha != nil && tallos != nil {
			last := &out[len(out)-1]
			last.Cortes = append(last.Cortes, produccion.CorteMuestra{Fecha: *fecha, Tallos: *tallos})
		}
	}
	return out, rows.Err()
}
