package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// UbicacionUseCase CRUD de bloques, camas, lados y ubicaciones bloque-cama-lado.
type UbicacionUseCase struct {
	bloques   repository.BloqueRepository
	camas     repository.CamaRepository
	lados     repository.LadoRepository
	ubicacion repository.BloqueCamaLadoRepository
}

// NewUbicacionUseCase construye el caso de uso.
func NewUbicacionUseCase(
	bloques repository.BloqueRepository,
	camas repository.CamaRepository,
	lados repository.LadoRepository,
	ubicacion repository.BloqueCamaLadoRepository,
) *UbicacionUseCase {
	return &UbicacionUseCase{bloques: bloques, camas: camas, lados: lados, ubicacion: ubicacion}
}

// CreateBloque crea un bloque. Los ceros a la izquierda se conservan ("03" != "3").
func (uc *UbicacionUseCase) CreateBloque(ctx context.Context, in dto.NombreRequest) (*dto.NombreResponse, error) {
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("bloque obligatorio")
	}
	if existing, err := uc.bloques.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	b := &entity.Bloque{ID: uuid.New().String(), Bloque: nombre}
	if err := uc.bloques.Create(ctx, b); err != nil {
		return nil, err
	}
	return &dto.NombreResponse{ID: b.ID, Nombre: b.Bloque}, nil
}

// ListBloques lista bloques en orden numérico.
func (uc *UbicacionUseCase) ListBloques(ctx context.Context) ([]dto.NombreResponse, error) {
	list, err := uc.bloques.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NombreResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.NombreResponse{ID: b.ID, Nombre: b.Bloque})
	}
	return out, nil
}

// UpdateBloque renombra un bloque.
func (uc *UbicacionUseCase) UpdateBloque(ctx context.Context, id string, in dto.NombreRequest) (*dto.NombreResponse, error) {
	b, err := requerir(uc.bloques.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("bloque obligatorio")
	}
	if other, err := uc.bloques.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	b.Bloque = nombre
	if err := uc.bloques.Update(ctx, b); err != nil {
		return nil, err
	}
	return &dto.NombreResponse{ID: b.ID, Nombre: b.Bloque}, nil
}

// DeleteBloque elimina un bloque.
func (uc *UbicacionUseCase) DeleteBloque(ctx context.Context, id string) error {
	return uc.bloques.Delete(ctx, id)
}

// CreateCama crea una cama.
func (uc *UbicacionUseCase) CreateCama(ctx context.Context, in dto.NombreRequest) (*dto.NombreResponse, error) {
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("cama obligatoria")
	}
	if existing, err := uc.camas.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.Cama{ID: uuid.New().String(), Cama: nombre}
	if err := uc.camas.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.NombreResponse{ID: c.ID, Nombre: c.Cama}, nil
}

// ListCamas lista camas en orden numérico.
func (uc *UbicacionUseCase) ListCamas(ctx context.Context) ([]dto.NombreResponse, error) {
	list, err := uc.camas.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NombreResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NombreResponse{ID: c.ID, Nombre: c.Cama})
	}
	return out, nil
}

// UpdateCama renombra una cama.
func (uc *UbicacionUseCase) UpdateCama(ctx context.Context, id string, in dto.NombreRequest) (*dto.NombreResponse, error) {
	c, err := requerir(uc.camas.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("cama obligatoria")
	}
	if other, err := uc.camas.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	c.Cama = nombre
	if err := uc.camas.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.NombreResponse{ID: c.ID, Nombre: c.Cama}, nil
}

// DeleteCama elimina una cama.
func (uc *UbicacionUseCase) DeleteCama(ctx context.Context, id string) error {
	return uc.camas.Delete(ctx, id)
}

// CreateLado crea un lado.
func (uc *UbicacionUseCase) CreateLado(ctx context.Context, in dto.NombreRequest) (*dto.NombreResponse, error) {
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("lado obligatorio")
	}
	if existing, err := uc.lados.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	l := &entity.Lado{ID: uuid.New().String(), Lado: nombre}
	if err := uc.lados.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.NombreResponse{ID: l.ID, Nombre: l.Lado}, nil
}

// ListLados lista lados alfabéticamente.
func (uc *UbicacionUseCase) ListLados(ctx context.Context) ([]dto.NombreResponse, error) {
	list, err := uc.lados.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NombreResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.NombreResponse{ID: l.ID, Nombre: l.Lado})
	}
	return out, nil
}

// UpdateLado renombra un lado.
func (uc *UbicacionUseCase) UpdateLado(ctx context.Context, id string, in dto.NombreRequest) (*dto.NombreResponse, error) {
	l, err := requerir(uc.lados.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("lado obligatorio")
	}
	if other, err := uc.lados.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	l.Lado = nombre
	if err := uc.lados.Update(ctx, l); err != nil {
		return nil, err
	}
	return &dto.NombreResponse{ID: l.ID, Nombre: l.Lado}, nil
}

// DeleteLado elimina un lado.
func (uc *UbicacionUseCase) DeleteLado(ctx context.Context, id string) error {
	return uc.lados.Delete(ctx, id)
}

// CreateBloqueCamaLado registra una ubicación; sin lado se usa ÚNICO (se crea si no existe).
func (uc *UbicacionUseCase) CreateBloqueCamaLado(ctx context.Context, in dto.BloqueCamaLadoRequest) (*dto.BloqueCamaLadoResponse, error) {
	b, err := requerir(uc.bloques.GetByID(ctx, in.BloqueID))
	if err != nil {
		return nil, err
	}
	c, err := requerir(uc.camas.GetByID(ctx, in.CamaID))
	if err != nil {
		return nil, err
	}
	var l *entity.Lado
	if in.LadoID == "" {
		l, err = ladoUnico(ctx, uc.lados)
	} else {
		l, err = requerir(uc.lados.GetByID(ctx, in.LadoID))
	}
	if err != nil {
		return nil, err
	}
	if existing, err := uc.ubicacion.GetByTripleta(ctx, b.ID, c.ID, l.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	u := &entity.BloqueCamaLado{
		ID:       uuid.New().String(),
		BloqueID: b.ID,
		CamaID:   c.ID,
		LadoID:   l.ID,
		Bloque:   b.Bloque,
		Cama:     c.Cama,
		Lado:     l.Lado,
	}
	if err := uc.ubicacion.Create(ctx, u); err != nil {
		return nil, err
	}
	return toBloqueCamaLadoResponse(u), nil
}

// ListBloqueCamaLado lista ubicaciones; bloqueID vacío lista todas.
func (uc *UbicacionUseCase) ListBloqueCamaLado(ctx context.Context, bloqueID string) ([]dto.BloqueCamaLadoResponse, error) {
	list, err := uc.ubicacion.List(ctx, bloqueID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BloqueCamaLadoResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toBloqueCamaLadoResponse(u))
	}
	return out, nil
}

// DeleteBloqueCamaLado elimina una ubicación sin siembras.
func (uc *UbicacionUseCase) DeleteBloqueCamaLado(ctx context.Context, id string) error {
	return uc.ubicacion.Delete(ctx, id)
}

// ladoUnico obtiene (o crea) el lado ÚNICO.
func ladoUnico(ctx context.Context, lados repository.LadoRepository) (*entity.Lado, error) {
	l, err := lados.GetByNombre(ctx, entity.LadoUnico)
	if err != nil || l != nil {
		return l, err
	}
	l = &entity.Lado{ID: uuid.New().String(), Lado: entity.LadoUnico}
	if err := lados.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// resolverUbicacion devuelve la ubicación de la tripleta, creándola si no existe.
func resolverUbicacion(ctx context.Context, repo repository.BloqueCamaLadoRepository, b *entity.Bloque, c *entity.Cama, l *entity.Lado) (*entity.BloqueCamaLado, error) {
	u, err := repo.GetByTripleta(ctx, b.ID, c.ID, l.ID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	u = &entity.BloqueCamaLado{
		ID:       uuid.New().String(),
		BloqueID: b.ID,
		CamaID:   c.ID,
		LadoID:   l.ID,
		Bloque:   b.Bloque,
		Cama:     c.Cama,
		Lado:     l.Lado,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func toBloqueCamaLadoResponse(u *entity.BloqueCamaLado) *dto.BloqueCamaLadoResponse {
	return &dto.BloqueCamaLadoResponse{
		ID:       u.ID,
		BloqueID: u.BloqueID,
		CamaID:   u.CamaID,
		LadoID:   u.LadoID,
		Bloque:   u.Bloque,
		Cama:     u.Cama,
		Lado:     u.Lado,
		Etiqueta: u.Etiqueta(),
	}
}
