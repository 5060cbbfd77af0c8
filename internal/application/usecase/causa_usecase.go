package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// CausaUseCase CRUD de causas de pérdida.
type CausaUseCase struct {
	repo repository.CausaRepository
}

// NewCausaUseCase construye el caso de uso.
func NewCausaUseCase(repo repository.CausaRepository) *CausaUseCase {
	return &CausaUseCase{repo: repo}
}

// Create crea una causa; el nombre se compara sin distinguir mayúsculas.
func (uc *CausaUseCase) Create(ctx context.Context, in dto.CausaRequest) (*dto.CausaResponse, error) {
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("nombre obligatorio")
	}
	if existing, err := uc.repo.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.CausaPerdida{
		ID:          uuid.New().String(),
		Nombre:      nombre,
		Descripcion: strings.TrimSpace(in.Descripcion),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCausaResponse(c), nil
}

// GetByID obtiene una causa.
func (uc *CausaUseCase) GetByID(ctx context.Context, id string) (*dto.CausaResponse, error) {
	c, err := requerir(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toCausaResponse(c), nil
}

// List lista las causas por nombre.
func (uc *CausaUseCase) List(ctx context.Context) ([]dto.CausaResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CausaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCausaResponse(c))
	}
	return out, nil
}

// Update cambia nombre y descripción.
func (uc *CausaUseCase) Update(ctx context.Context, id string, in dto.CausaRequest) (*dto.CausaResponse, error) {
	c, err := requerir(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return nil, invalido("nombre obligatorio")
	}
	if other, err := uc.repo.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	c.Nombre = nombre
	c.Descripcion = strings.TrimSpace(in.Descripcion)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCausaResponse(c), nil
}

// Delete elimina una causa; con pérdidas registradas devuelve ErrEnUso.
func (uc *CausaUseCase) Delete(ctx context.Context, id string) error {
	if _, err := requerir(uc.repo.GetByID(ctx, id)); err != nil {
		return err
	}
	n, err := uc.repo.CountPerdidas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrEnUso
	}
	return uc.repo.Delete(ctx, id)
}

func toCausaResponse(c *entity.CausaPerdida) *dto.CausaResponse {
	return &dto.CausaResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Descripcion:   c.Descripcion,
		EsPredefinida: c.EsPredefinida,
	}
}
