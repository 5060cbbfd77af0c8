package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/cpc-api/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isInvalidText detecta un valor que PostgreSQL no pudo convertir (22P02), p. ej. un UUID mal formado.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// writeErr traduce errores de escritura: único → ErrDuplicate, llave foránea → ErrConflict.
func writeErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	case isInvalidText(err):
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("%s: %w", op, err)
}

// execOne ejecuta un UPDATE/DELETE que debe afectar una fila; ninguna → ErrNotFound.
func execOne(ctx context.Context, q Querier, op, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if isInvalidText(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return writeErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// getOne escanea una fila; sin filas devuelve nil, nil.
func getOne[T any](row pgx.Row, op string, scan func(pgx.Row, *T) error) (*T, error) {
	var v T
	if err := scan(row, &v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

// contar ejecuta un SELECT COUNT(*) y devuelve el entero.
func contar(ctx context.Context, q Querier, op, sql string, args ...any) (int, error) {
	var n int
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// listAll recorre rows escaneando cada fila con scan.
func listAll[T any](rows pgx.Rows, op string, scan func(pgx.Row, *T) error) ([]*T, error) {
	defer rows.Close()
	var list []*T
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// nullable convierte "" en NULL para columnas uuid opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// condiciones arma un WHERE con placeholders numerados.
type condiciones struct {
	where []string
	args  []any
}

// add agrega expr (con un %d para el placeholder) y su argumento.
func (c *condiciones) add(expr string, v any) {
	c.args = append(c.args, v)
	c.where = append(c.where, fmt.Sprintf(expr, len(c.args)))
}

func (c *condiciones) sql() string {
	if len(c.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.where, " AND ")
}

// paginar agrega LIMIT/OFFSET; limit <= 0 devuelve todas las filas.
func (c *condiciones) paginar(limit, offset int) string {
	s := ""
	if limit > 0 {
		c.args = append(c.args, limit)
		s = fmt.Sprintf(" LIMIT $%d", len(c.args))
	}
	c.args = append(c.args, max(offset, 0))
	return s + fmt.Sprintf(" OFFSET $%d", len(c.args))
}
