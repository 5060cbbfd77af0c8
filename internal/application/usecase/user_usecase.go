package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UsuarioUseCase administración de usuarios y consulta de roles.
type UsuarioUseCase struct {
	repo  repository.UsuarioRepository
	roles repository.RolRepository
}

// NewUsuarioUseCase construye el caso de uso con los puertos de persistencia.
func NewUsuarioUseCase(repo repository.UsuarioRepository, roles repository.RolRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, roles: roles}
}

// Create crea un usuario activo: hashea el password con bcrypt. Username duplicado devuelve ErrDuplicate.
func (uc *UsuarioUseCase) Create(ctx context.Context, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || len(in.Password) < 8 {
		return nil, invalido("username y password (mínimo 8 caracteres) son obligatorios")
	}
	if existing, err := uc.repo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	rol, err := uc.rol(ctx, in.Rol)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre1:      strings.TrimSpace(in.Nombre1),
		Nombre2:      strings.TrimSpace(in.Nombre2),
		Apellido1:    strings.TrimSpace(in.Apellido1),
		Apellido2:    strings.TrimSpace(in.Apellido2),
		Cargo:        strings.TrimSpace(in.Cargo),
		NumDoc:       strings.TrimSpace(in.NumDoc),
		DocumentoID:  in.DocumentoID,
		Username:     username,
		PasswordHash: string(hash),
		RolID:        rol.ID,
		Rol:          rol.Nombre,
		Permisos:     codigosPermiso(rol),
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(u), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUsuarioResponse(u), nil
}

// List lista usuarios paginados.
func (uc *UsuarioUseCase) List(ctx context.Context, limit, offset int) (*dto.UsuarioListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUsuarioResponse(u))
	}
	return &dto.UsuarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita datos, rol, estado o password de un usuario.
func (uc *UsuarioUseCase) Update(ctx context.Context, id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	asignar := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	asignar(&u.Nombre1, in.Nombre1)
	asignar(&u.Nombre2, in.Nombre2)
	asignar(&u.Apellido1, in.Apellido1)
	asignar(&u.Apellido2, in.Apellido2)
	asignar(&u.Cargo, in.Cargo)
	asignar(&u.NumDoc, in.NumDoc)
	if in.Rol != nil {
		rol, err := uc.rol(ctx, *in.Rol)
		if err != nil {
			return nil, err
		}
		u.RolID = rol.ID
		u.Rol = rol.Nombre
		u.Permisos = codigosPermiso(rol)
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, invalido("password mínimo 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUsuarioResponse(u), nil
}

// Delete elimina un usuario; no se permite borrarse a sí mismo.
func (uc *UsuarioUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// ListRoles lista los roles con sus permisos.
func (uc *UsuarioUseCase) ListRoles(ctx context.Context) ([]dto.RolResponse, error) {
	list, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RolResponse{
			ID:          r.ID,
			Nombre:      r.Nombre,
			Descripcion: r.Descripcion,
			Permisos:    codigosPermiso(r),
		})
	}
	return out, nil
}

// ListDocumentos lista los tipos de documento de identidad.
func (uc *UsuarioUseCase) ListDocumentos(ctx context.Context) ([]dto.NombreResponse, error) {
	list, err := uc.roles.ListDocumentos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NombreResponse, 0, len(list))
	for _, d := range list {
		out = append(out, dto.NombreResponse{ID: d.ID, Nombre: d.Documento})
	}
	return out, nil
}

func (uc *UsuarioUseCase) rol(ctx context.Context, nombre string) (*entity.Rol, error) {
	rol, err := uc.roles.GetByNombre(ctx, strings.ToLower(strings.TrimSpace(nombre)))
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, invalido("rol %q no existe", nombre)
	}
	return rol, nil
}

func codigosPermiso(r *entity.Rol) []string {
	out := make([]string, 0, len(r.Permisos))
	for _, p := range r.Permisos {
		out = append(out, p.Codigo)
	}
	return out
}

// ToUsuarioResponse convierte la entidad a DTO sin el hash del password.
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	permisos := u.Permisos
	if permisos == nil {
		permisos = []string{}
	}
	return &dto.UsuarioResponse{
		ID:             u.ID,
		Username:       u.Username,
		NombreCompleto: u.NombreCompleto(),
		Nombre1:        u.Nombre1,
		Nombre2:        u.Nombre2,
		Apellido1:      u.Apellido1,
		Apellido2:      u.Apellido2,
		Cargo:          u.Cargo,
		NumDoc:         u.NumDoc,
		Rol:            u.Rol,
		Permisos:       permisos,
		Activo:         u.Activo,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
