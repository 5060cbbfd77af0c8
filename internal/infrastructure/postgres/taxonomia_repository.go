package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.FlorRepository      = (*FlorRepo)(nil)
	_ repository.ColorRepository     = (*ColorRepo)(nil)
	_ repository.FlorColorRepository = (*FlorColorRepo)(nil)
	_ repository.VariedadRepository  = (*VariedadRepo)(nil)
)

// ── Flor ──────────────────────────────────────────────────────────────────────

// FlorRepo implementación del puerto FlorRepository sobre PostgreSQL (usable con pool o tx).
type FlorRepo struct {
	q Querier
}

// NewFlorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFlorRepository(q Querier) *FlorRepo {
	return &FlorRepo{q: q}
}

func scanFlor(row pgx.Row, f *entity.Flor) error {
	return row.Scan(&f.ID, &f.Flor, &f.FlorAbrev)
}

// Create persiste una nueva flor.
func (r *FlorRepo) Create(ctx context.Context, f *entity.Flor) error {
	_, err := r.q.Exec(ctx, `INSERT INTO flores (id, flor, flor_abrev) VALUES ($1, $2, $3)`, f.ID, f.Flor, f.FlorAbrev)
	if err != nil {
		return writeErr("insert flor", err)
	}
	return nil
}

// GetByID obtiene una flor por ID.
func (r *FlorRepo) GetByID(ctx context.Context, id string) (*entity.Flor, error) {
	row := r.q.QueryRow(ctx, `SELECT id, flor, flor_abrev FROM flores WHERE id = $1`, id)
	return getOne(row, "get flor", scanFlor)
}

// GetByNombre obtiene una flor por nombre exacto.
func (r *FlorRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Flor, error) {
	row := r.q.QueryRow(ctx, `SELECT id, flor, flor_abrev FROM flores WHERE flor = $1`, nombre)
	return getOne(row, "get flor by nombre", scanFlor)
}

// List lista las flores por nombre.
func (r *FlorRepo) List(ctx context.Context) ([]*entity.Flor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, flor, flor_abrev FROM flores ORDER BY flor`)
	if err != nil {
		return nil, fmt.Errorf("list flores: %w", err)
	}
	return listAll(rows, "scan flor", scanFlor)
}

// Update actualiza nombre y abreviatura.
func (r *FlorRepo) Update(ctx context.Context, f *entity.Flor) error {
	return execOne(ctx, r.q, "update flor",
		`UPDATE flores SET flor = $2, flor_abrev = $3 WHERE id = $1`, f.ID, f.Flor, f.FlorAbrev)
}

// Delete elimina una flor; con combinaciones asociadas devuelve ErrConflict.
func (r *FlorRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete flor", `DELETE FROM flores WHERE id = $1`, id)
}

// ── Color ─────────────────────────────────────────────────────────────────────

// ColorRepo implementación del puerto ColorRepository sobre PostgreSQL.
type ColorRepo struct {
	q Querier
}

// NewColorRepository construye el adaptador.
func NewColorRepository(q Querier) *ColorRepo {
	return &ColorRepo{q: q}
}

func scanColor(row pgx.Row, c *entity.Color) error {
	return row.Scan(&c.ID, &c.Color, &c.ColorAbrev)
}

func (r *ColorRepo) Create(ctx context.Context, c *entity.Color) error {
	_, err := r.q.Exec(ctx, `INSERT INTO colores (id, color, color_abrev) VALUES ($1, $2, $3)`, c.ID, c.Color, c.ColorAbrev)
	if err != nil {
		return writeErr("insert color", err)
	}
	return nil
}

func (r *ColorRepo) GetByID(ctx context.Context, id string) (*entity.Color, error) {
	row := r.q.QueryRow(ctx, `SELECT id, color, color_abrev FROM colores WHERE id = $1`, id)
	return getOne(row, "get color", scanColor)
}

func (r *ColorRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Color, error) {
	row := r.q.QueryRow(ctx, `SELECT id, color, color_abrev FROM colores WHERE color = $1`, nombre)
	return getOne(row, "get color by nombre", scanColor)
}

func (r *ColorRepo) List(ctx context.Context) ([]*entity.Color, error) {
	rows, err := r.q.Query(ctx, `SELECT id, color, color_abrev FROM colores ORDER BY color`)
	if err != nil {
		return nil, fmt.Errorf("list colores: %w", err)
	}
	return listAll(rows, "scan color", scanColor)
}

func (r *ColorRepo) Update(ctx context.Context, c *entity.Color) error {
	return execOne(ctx, r.q, "update color",
		`UPDATE colores SET color = $2, color_abrev = $3 WHERE id = $1`, c.ID, c.Color, c.ColorAbrev)
}

func (r *ColorRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete color", `DELETE FROM colores WHERE id = $1`, id)
}

// ── Flor-Color ────────────────────────────────────────────────────────────────

// FlorColorRepo combinaciones flor-color con nombres resueltos.
type FlorColorRepo struct {
	q Querier
}

// NewFlorColorRepository construye el adaptador.
func NewFlorColorRepository(q Querier) *FlorColorRepo {
	return &FlorColorRepo{q: q}
}

const selectFlorColor = `
	SELECT fc.id, fc.flor_id, fc.color_id, f.flor, c.color
	FROM flor_color fc
	JOIN flores f ON f.id = fc.flor_id
	JOIN colores c ON c.id = fc.color_id`

func scanFlorColor(row pgx.Row, fc *entity.FlorColor) error {
	return row.Scan(&fc.ID, &fc.FlorID, &fc.ColorID, &fc.Flor, &fc.Color)
}

// Create persiste la combinación; flor o color inexistentes devuelven ErrConflict.
func (r *FlorColorRepo) Create(ctx context.Context, fc *entity.FlorColor) error {
	_, err := r.q.Exec(ctx, `INSERT INTO flor_color (id, flor_id, color_id) VALUES ($1, $2, $3)`, fc.ID, fc.FlorID, fc.ColorID)
	if err != nil {
		return writeErr("insert flor_color", err)
	}
	return nil
}

func (r *FlorColorRepo) GetByID(ctx context.Context, id string) (*entity.FlorColor, error) {
	return getOne(r.q.QueryRow(ctx, selectFlorColor+` WHERE fc.id = $1`, id), "get flor_color", scanFlorColor)
}

func (r *FlorColorRepo) GetByPar(ctx context.Context, florID, colorID string) (*entity.FlorColor, error) {
	row := r.q.QueryRow(ctx, selectFlorColor+` WHERE fc.flor_id = $1 AND fc.color_id = $2`, florID, colorID)
	return getOne(row, "get flor_color by par", scanFlorColor)
}

func (r *FlorColorRepo) List(ctx context.Context) ([]*entity.FlorColor, error) {
	rows, err := r.q.Query(ctx, selectFlorColor+` ORDER BY f.flor, c.color`)
	if err != nil {
		return nil, fmt.Errorf("list flor_color: %w", err)
	}
	return listAll(rows, "scan flor_color", scanFlorColor)
}

func (r *FlorColorRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete flor_color", `DELETE FROM flor_color WHERE id = $1`, id)
}

// ── Variedad ──────────────────────────────────────────────────────────────────

// VariedadRepo variedades con flor y color resueltos.
type VariedadRepo struct {
	q Querier
}

// NewVariedadRepository construye el adaptador.
func NewVariedadRepository(q Querier) *VariedadRepo {
	return &VariedadRepo{q: q}
}

const selectVariedad = `
	SELECT v.id, v.variedad, v.flor_color_id, f.flor, c.color
	FROM variedades v
	JOIN flor_color fc ON fc.id = v.flor_color_id
	JOIN flores f ON f.id = fc.flor_id
	JOIN colores c ON c.id = fc.color_id`

func scanVariedad(row pgx.Row, v *entity.Variedad) error {
	return row.Scan(&v.ID, &v.Variedad, &v.FlorColorID, &v.Flor, &v.Color)
}

func (r *VariedadRepo) Create(ctx context.Context, v *entity.Variedad) error {
	_, err := r.q.Exec(ctx, `INSERT INTO variedades (id, variedad, flor_color_id) VALUES ($1, $2, $3)`, v.ID, v.Variedad, v.FlorColorID)
	if err != nil {
		return writeErr("insert variedad", err)
	}
	return nil
}

func (r *VariedadRepo) GetByID(ctx context.Context, id string) (*entity.Variedad, error) {
	return getOne(r.q.QueryRow(ctx, selectVariedad+` WHERE v.id = $1`, id), "get variedad", scanVariedad)
}

func (r *VariedadRepo) GetByNombre(ctx context.Context, nombre, florColorID string) (*entity.Variedad, error) {
	row := r.q.QueryRow(ctx, selectVariedad+` WHERE v.variedad = $1 AND v.flor_color_id = $2`, nombre, florColorID)
	return getOne(row, "get variedad by nombre", scanVariedad)
}

// List filtra opcionalmente por flor y color; ordena por nombre.
func (r *VariedadRepo) List(ctx context.Context, f repository.VariedadFiltro) ([]*entity.Variedad, error) {
	var c condiciones
	if f.FlorID != "" {
		c.add("fc.flor_id = $%d", f.FlorID)
	}
	if f.ColorID != "" {
		c.add("fc.color_id = $%d", f.ColorID)
	}
	rows, err := r.q.Query(ctx, selectVariedad+c.sql()+` ORDER BY v.variedad`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list variedades: %w", err)
	}
	return listAll(rows, "scan variedad", scanVariedad)
}

// ListConSiembras lista las variedades que tienen al menos una siembra.
func (r *VariedadRepo) ListConSiembras(ctx context.Context) ([]*entity.Variedad, error) {
	rows, err := r.q.Query(ctx, selectVariedad+`
		WHERE EXISTS (SELECT 1 FROM siembras s WHERE s.variedad_id = v.id)
		ORDER BY v.variedad`)
	if err != nil {
		return nil, fmt.Errorf("list variedades con siembras: %w", err)
	}
	return listAll(rows, "scan variedad", scanVariedad)
}

func (r *VariedadRepo) Update(ctx context.Context, v *entity.Variedad) error {
	return execOne(ctx, r.q, "update variedad",
		`UPDATE variedades SET variedad = $2, flor_color_id = $3 WHERE id = $1`, v.ID, v.Variedad, v.FlorColorID)
}

func (r *VariedadRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete variedad", `DELETE FROM variedades WHERE id = $1`, id)
}
