package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.BloqueRepository         = (*BloqueRepo)(nil)
	_ repository.CamaRepository           = (*CamaRepo)(nil)
	_ repository.LadoRepository           = (*LadoRepo)(nil)
	_ repository.BloqueCamaLadoRepository = (*BloqueCamaLadoRepo)(nil)
)

// BloqueRepo bloques del cultivo. Los nombres son texto ("01", "12A") y se ordenan por (largo, texto).
type BloqueRepo struct {
	q Querier
}

// NewBloqueRepository construye el adaptador.
func NewBloqueRepository(q Querier) *BloqueRepo {
	return &BloqueRepo{q: q}
}

func scanBloque(row pgx.Row, b *entity.Bloque) error {
	return row.Scan(&b.ID, &b.Bloque)
}

func (r *BloqueRepo) Create(ctx context.Context, b *entity.Bloque) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO bloques (id, bloque) VALUES ($1, $2)`, b.ID, b.Bloque); err != nil {
		return writeErr("insert bloque", err)
	}
	return nil
}

func (r *BloqueRepo) GetByID(ctx context.Context, id string) (*entity.Bloque, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, bloque FROM bloques WHERE id = $1`, id), "get bloque", scanBloque)
}

func (r *BloqueRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Bloque, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, bloque FROM bloques WHERE bloque = $1`, nombre), "get bloque by nombre", scanBloque)
}

func (r *BloqueRepo) List(ctx context.Context) ([]*entity.Bloque, error) {
	rows, err := r.q.Query(ctx, `SELECT id, bloque FROM bloques ORDER BY LENGTH(bloque), bloque`)
	if err != nil {
		return nil, fmt.Errorf("list bloques: %w", err)
	}
	return listAll(rows, "scan bloque", scanBloque)
}

func (r *BloqueRepo) Update(ctx context.Context, b *entity.Bloque) error {
	return execOne(ctx, r.q, "update bloque", `UPDATE bloques SET bloque = $2 WHERE id = $1`, b.ID, b.Bloque)
}

func (r *BloqueRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete bloque", `DELETE FROM bloques WHERE id = $1`, id)
}

// CamaRepo camas; mismo orden numérico que los bloques.
type CamaRepo struct {
	q Querier
}

// NewCamaRepository construye el adaptador.
func NewCamaRepository(q Querier) *CamaRepo {
	return &CamaRepo{q: q}
}

func scanCama(row pgx.Row, c *entity.Cama) error {
	return row.Scan(&c.ID, &c.Cama)
}

func (r *CamaRepo) Create(ctx context.Context, c *entity.Cama) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO camas (id, cama) VALUES ($1, $2)`, c.ID, c.Cama); err != nil {
		return writeErr("insert cama", err)
	}
	return nil
}

func (r *CamaRepo) GetByID(ctx context.Context, id string) (*entity.Cama, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, cama FROM camas WHERE id = $1`, id), "get cama", scanCama)
}

func (r *CamaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Cama, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, cama FROM camas WHERE cama = $1`, nombre), "get cama by nombre", scanCama)
}

func (r *CamaRepo) List(ctx context.Context) ([]*entity.Cama, error) {
	rows, err := r.q.Query(ctx, `SELECT id, cama FROM camas ORDER BY LENGTH(cama), cama`)
	if err != nil {
		return nil, fmt.Errorf("list camas: %w", err)
	}
	return listAll(rows, "scan cama", scanCama)
}

func (r *CamaRepo) Update(ctx context.Context, c *entity.Cama) error {
	return execOne(ctx, r.q, "update cama", `UPDATE camas SET cama = $2 WHERE id = $1`, c.ID, c.Cama)
}

func (r *CamaRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete cama", `DELETE FROM camas WHERE id = $1`, id)
}

// LadoRepo lados de cama (A, B, ÚNICO).
type LadoRepo struct {
	q Querier
}

// NewLadoRepository construye el adaptador.
func NewLadoRepository(q Querier) *LadoRepo {
	return &LadoRepo{q: q}
}

func scanLado(row pgx.Row, l *entity.Lado) error {
	return row.Scan(&l.ID, &l.Lado)
}

func (r *LadoRepo) Create(ctx context.Context, l *entity.Lado) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO lados (id, lado) VALUES ($1, $2)`, l.ID, l.Lado); err != nil {
		return writeErr("insert lado", err)
	}
	return nil
}

func (r *LadoRepo) GetByID(ctx context.Context, id string) (*entity.Lado, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, lado FROM lados WHERE id = $1`, id), "get lado", scanLado)
}

func (r *LadoRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Lado, error) {
	return getOne(r.q.QueryRow(ctx, `SELECT id, lado FROM lados WHERE lado = $1`, nombre), "get lado by nombre", scanLado)
}

func (r *LadoRepo) List(ctx context.Context) ([]*entity.Lado, error) {
	rows, err := r.q.Query(ctx, `SELECT id, lado FROM lados ORDER BY lado`)
	if err != nil {
		return nil, fmt.Errorf("list lados: %w", err)
	}
	return listAll(rows, "scan lado", scanLado)
}

func (r *LadoRepo) Update(ctx context.Context, l *entity.Lado) error {
	return execOne(ctx, r.q, "update lado", `UPDATE lados SET lado = $2 WHERE id = $1`, l.ID, l.Lado)
}

func (r *LadoRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete lado", `DELETE FROM lados WHERE id = $1`, id)
}

// ── Ubicaciones ───────────────────────────────────────────────────────────────

// BloqueCamaLadoRepo ubicaciones completas con los nombres de sus partes.
type BloqueCamaLadoRepo struct {
	q Querier
}

// NewBloqueCamaLadoRepository construye el adaptador.
func NewBloqueCamaLadoRepository(q Querier) *BloqueCamaLadoRepo {
	return &BloqueCamaLadoRepo{q: q}
}

const selectUbicacion = `
	SELECT u.id, u.bloque_id, u.cama_id, u.lado_id, b.bloque, c.cama, l.lado
	FROM bloque_cama_lado u
	JOIN bloques b ON b.id = u.bloque_id
	JOIN camas c ON c.id = u.cama_id
	JOIN lados l ON l.id = u.lado_id`

func scanUbicacion(row pgx.Row, u *entity.BloqueCamaLado) error {
	return row.Scan(&u.ID, &u.BloqueID, &u.CamaID, &u.LadoID, &u.Bloque, &u.Cama, &u.Lado)
}

func (r *BloqueCamaLadoRepo) Create(ctx context.Context, u *entity.BloqueCamaLado) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO bloque_cama_lado (id, bloque_id, cama_id, lado_id) VALUES ($1, $2, $3, $4)`,
		u.ID, u.BloqueID, u.CamaID, u.LadoID)
	if err != nil {
		return writeErr("insert bloque_cama_lado", err)
	}
	return nil
}

func (r *BloqueCamaLadoRepo) GetByID(ctx context.Context, id string) (*entity.BloqueCamaLado, error) {
	return getOne(r.q.QueryRow(ctx, selectUbicacion+` WHERE u.id = $1`, id), "get bloque_cama_lado", scanUbicacion)
}

func (r *BloqueCamaLadoRepo) GetByTripleta(ctx context.Context, bloqueID, camaID, ladoID string) (*entity.BloqueCamaLado, error) {
	row := r.q.QueryRow(ctx, selectUbicacion+` WHERE u.bloque_id = $1 AND u.cama_id = $2 AND u.lado_id = $3`,
		bloqueID, camaID, ladoID)
	return getOne(row, "get bloque_cama_lado by tripleta", scanUbicacion)
}

// List devuelve las ubicaciones, opcionalmente de un solo bloque.
func (r *BloqueCamaLadoRepo) List(ctx context.Context, bloqueID string) ([]*entity.BloqueCamaLado, error) {
	var c condiciones
	if bloqueID != "" {
		c.add("u.bloque_id = $%d", bloqueID)
	}
	rows, err := r.q.Query(ctx, selectUbicacion+c.sql()+`
		ORDER BY LENGTH(b.bloque), b.bloque, LENGTH(c.cama), c.cama, l.lado`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("list bloque_cama_lado: %w", err)
	}
	return listAll(rows, "scan bloque_cama_lado", scanUbicacion)
}

func (r *BloqueCamaLadoRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete bloque_cama_lado", `DELETE FROM bloque_cama_lado WHERE id = $1`, id)
}
