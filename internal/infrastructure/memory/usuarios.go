package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

var (
	_ repository.UsuarioRepository = (*UsuarioRepo)(nil)
	_ repository.RolRepository     = (*RolRepo)(nil)
)

// UsuarioRepo usuarios en memoria; resuelve rol y permisos desde los roles cargados.
type UsuarioRepo struct{ s *Store }

// NewUsuarioRepo construye el repositorio sobre el store.
func NewUsuarioRepo(s *Store) *UsuarioRepo { return &UsuarioRepo{s} }

func (d *datos) usuario(u entity.Usuario) *entity.Usuario {
	if rol, ok := d.roles[u.RolID]; ok {
		u.Rol = rol.Nombre
		u.Permisos = make([]string, 0, len(rol.Permisos))
		for _, p := range rol.Permisos {
			u.Permisos = append(u.Permisos, p.Codigo)
		}
	}
	return &u
}

func (r *UsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	return r.s.escribir(func(d *datos) error {
		if buscar(d.usuarios, func(x entity.Usuario) bool { return x.Username == u.Username }) != nil {
			return domain.ErrDuplicate
		}
		d.usuarios[u.ID] = *u
		return nil
	})
}

func (r *UsuarioRepo) GetByID(_ context.Context, id string) (out *entity.Usuario, err error) {
	r.s.leer(func(d *datos) {
		if u, ok := d.usuarios[id]; ok {
			out = d.usuario(u)
		}
	})
	return out, nil
}

func (r *UsuarioRepo) GetByUsername(_ context.Context, username string) (out *entity.Usuario, err error) {
	r.s.leer(func(d *datos) {
		if u := buscar(d.usuarios, func(x entity.Usuario) bool { return x.Username == username }); u != nil {
			out = d.usuario(*u)
		}
	})
	return out, nil
}

func (r *UsuarioRepo) List(_ context.Context, limit, offset int) (out []*entity.Usuario, err error) {
	r.s.leer(func(d *datos) {
		for _, u := range d.usuarios {
			out = append(out, d.usuario(u))
		}
	})
	slices.SortFunc(out, func(a, b *entity.Usuario) int { return cmp.Compare(a.Username, b.Username) })
	return paginar(out, limit, offset), nil
}

func (r *UsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	return r.s.escribir(func(d *datos) error {
		if _, ok := d.usuarios[u.ID]; !ok {
			return domain.ErrNotFound
		}
		d.usuarios[u.ID] = *u
		return nil
	})
}

func (r *UsuarioRepo) Delete(_ context.Context, id string) error {
	return r.s.escribir(func(d *datos) error { return borrar(d.usuarios, id) })
}

// RolRepo roles y documentos en memoria.
type RolRepo struct{ s *Store }

// NewRolRepo construye el repositorio sobre el store.
func NewRolRepo(s *Store) *RolRepo { return &RolRepo{s} }

// AgregarRol carga un rol con sus permisos.
func (r *RolRepo) AgregarRol(rol entity.Rol) {
	r.s.leer(func(d *datos) { d.roles[rol.ID] = rol })
}

// AgregarDocumento carga un tipo de documento.
func (r *RolRepo) AgregarDocumento(doc entity.Documento) {
	r.s.leer(func(d *datos) { d.documentos[doc.ID] = doc })
}

func (r *RolRepo) GetByID(_ context.Context, id string) (out *entity.Rol, err error) {
	r.s.leer(func(d *datos) { out = obtener(d.roles, id) })
	return out, nil
}

func (r *RolRepo) GetByNombre(_ context.Context, nombre string) (out *entity.Rol, err error) {
	r.s.leer(func(d *datos) {
		out = buscar(d.roles, func(x entity.Rol) bool { return x.Nombre == nombre })
	})
	return out, nil
}

func (r *RolRepo) List(_ context.Context) (out []*entity.Rol, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.roles, func(a, b entity.Rol) int { return cmp.Compare(a.Nombre, b.Nombre) })
	})
	return out, nil
}

func (r *RolRepo) ListDocumentos(_ context.Context) (out []*entity.Documento, err error) {
	r.s.leer(func(d *datos) {
		out = listar(d.documentos, func(a, b entity.Documento) int { return cmp.Compare(a.Documento, b.Documento) })
	})
	return out, nil
}
