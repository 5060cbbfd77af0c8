package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.UsuarioRepository = (*UsuarioRepo)(nil)
	_ repository.RolRepository     = (*RolRepo)(nil)
)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// selectUsuario trae el usuario con el nombre de su rol y los códigos de permiso del rol.
const selectUsuario = `
	SELECT u.id, u.nombre_1, u.nombre_2, u.apellido_1, u.apellido_2, u.cargo, u.num_doc,
		u.documento_id::text, u.username, u.password_hash, u.rol_id, r.nombre,
		ARRAY(
			SELECT p.codigo FROM rol_permisos rp
			JOIN permisos p ON p.id = rp.permiso_id
			WHERE rp.rol_id = u.rol_id ORDER BY p.codigo
		),
		u.activo, u.created_at, u.updated_at
	FROM usuarios u
	JOIN roles r ON r.id = u.rol_id`

func scanUsuario(row pgx.Row, u *entity.Usuario) error {
	return row.Scan(&u.ID, &u.Nombre1, &u.Nombre2, &u.Apellido1, &u.Apellido2, &u.Cargo, &u.NumDoc,
		&u.DocumentoID, &u.Username, &u.PasswordHash, &u.RolID, &u.Rol, &u.Permisos,
		&u.Activo, &u.CreatedAt, &u.UpdatedAt)
}

// Create persiste un nuevo usuario; username repetido devuelve ErrDuplicate.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nombre_1, nombre_2, apellido_1, apellido_2, cargo, num_doc, documento_id,
			username, password_hash, rol_id, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Nombre1, u.Nombre2, u.Apellido1, u.Apellido2, u.Cargo, u.NumDoc, u.DocumentoID,
		u.Username, u.PasswordHash, u.RolID, u.Activo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert usuario", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return getOne(r.q.QueryRow(ctx, selectUsuario+` WHERE u.id = $1`, id), "get usuario by id", scanUsuario)
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UsuarioRepo) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	return getOne(r.q.QueryRow(ctx, selectUsuario+` WHERE u.username = $1`, username), "get usuario by username", scanUsuario)
}

// List lista usuarios por username con paginación.
func (r *UsuarioRepo) List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error) {
	var c condiciones
	rows, err := r.q.Query(ctx, selectUsuario+` ORDER BY u.username`+c.paginar(limit, offset), c.args...)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return listAll(rows, "scan usuario", scanUsuario)
}

// Update actualiza datos personales, credenciales, rol y estado.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	return execOne(ctx, r.q, "update usuario", `
		UPDATE usuarios SET nombre_1 = $2, nombre_2 = $3, apellido_1 = $4, apellido_2 = $5, cargo = $6,
			num_doc = $7, documento_id = $8, username = $9, password_hash = $10, rol_id = $11,
			activo = $12, updated_at = $13
		WHERE id = $1`,
		u.ID, u.Nombre1, u.Nombre2, u.Apellido1, u.Apellido2, u.Cargo,
		u.NumDoc, u.DocumentoID, u.Username, u.PasswordHash, u.RolID,
		u.Activo, u.UpdatedAt)
}

// Delete elimina un usuario por ID; sus registros quedan sin usuario.
func (r *UsuarioRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.q, "delete usuario", `DELETE FROM usuarios WHERE id = $1`, id)
}

// ── Roles ─────────────────────────────────────────────────────────────────────

// RolRepo lectura de roles con sus permisos y del catálogo de documentos.
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador.
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

func scanRol(row pgx.Row, r *entity.Rol) error {
	return row.Scan(&r.ID, &r.Nombre, &r.Descripcion)
}

func (r *RolRepo) GetByID(ctx context.Context, id string) (*entity.Rol, error) {
	rol, err := getOne(r.q.QueryRow(ctx, `SELECT id, nombre, descripcion FROM roles WHERE id = $1`, id), "get rol", scanRol)
	if err != nil || rol == nil {
		return rol, err
	}
	return rol, r.cargarPermisos(ctx, rol)
}

func (r *RolRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Rol, error) {
	rol, err := getOne(r.q.QueryRow(ctx, `SELECT id, nombre, descripcion FROM roles WHERE nombre = $1`, nombre), "get rol by nombre", scanRol)
	if err != nil || rol == nil {
		return rol, err
	}
	return rol, r.cargarPermisos(ctx, rol)
}

func (r *RolRepo) List(ctx context.Context) ([]*entity.Rol, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, descripcion FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	roles, err := listAll(rows, "scan rol", scanRol)
	if err != nil {
		return nil, err
	}
	for _, rol := range roles {
		if err := r.cargarPermisos(ctx, rol); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

func (r *RolRepo) cargarPermisos(ctx context.Context, rol *entity.Rol) error {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.codigo, p.descripcion
		FROM rol_permisos rp JOIN permisos p ON p.id = rp.permiso_id
		WHERE rp.rol_id = $1 ORDER BY p.codigo`, rol.ID)
	if err != nil {
		return fmt.Errorf("list permisos de rol: %w", err)
	}
	permisos, err := listAll(rows, "scan permiso", func(row pgx.Row, p *entity.Permiso) error {
		return row.Scan(&p.ID, &p.Codigo, &p.Descripcion)
	})
	if err != nil {
		return err
	}
	rol.Permisos = make([]entity.Permiso, 0, len(permisos))
	for _, p := range permisos {
		rol.Permisos = append(rol.Permisos, *p)
	}
	return nil
}

// ListDocumentos lista los tipos de documento de identidad.
func (r *RolRepo) ListDocumentos(ctx context.Context) ([]*entity.Documento, error) {
	rows, err := r.q.Query(ctx, `SELECT id, documento FROM documentos ORDER BY documento`)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	return listAll(rows, "scan documento", func(row pgx.Row, d *entity.Documento) error {
		return row.Scan(&d.ID, &d.Documento)
	})
}
