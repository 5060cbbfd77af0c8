package repository

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Los Get* devuelven el usuario con el nombre de su rol y sus permisos.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*entity.Usuario, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
	Delete(ctx context.Context, id string) error
}

// RolRepository lectura de roles y permisos.
type RolRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Rol, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Rol, error)
	List(ctx context.Context) ([]*entity.Rol, error)
	ListDocumentos(ctx context.Context) ([]*entity.Documento, error)
}
