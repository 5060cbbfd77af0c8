package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// TipoLaborUseCase CRUD de tipos de labor cultural.
type TipoLaborUseCase struct {
	repo   repository.TipoLaborRepository
	flores repository.FlorRepository
}

// NewTipoLaborUseCase construye el caso de uso.
func NewTipoLaborUseCase(repo repository.TipoLaborRepository, flores repository.FlorRepository) *TipoLaborUseCase {
	return &TipoLaborUseCase{repo: repo, flores: flores}
}

// Create crea un tipo de labor, opcionalmente ligado a una flor.
func (uc *TipoLaborUseCase) Create(ctx context.Context, in dto.TipoLaborRequest) (*dto.TipoLaborResponse, error) {
	t := &entity.TipoLabor{ID: uuid.New().String()}
	if err := uc.aplicar(ctx, t, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTipoLaborResponse(t), nil
}

// List lista los tipos de labor.
func (uc *TipoLaborUseCase) List(ctx context.Context) ([]dto.TipoLaborResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoLaborResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTipoLaborResponse(t))
	}
	return out, nil
}

// Update actualiza un tipo de labor.
func (uc *TipoLaborUseCase) Update(ctx context.Context, id string, in dto.TipoLaborRequest) (*dto.TipoLaborResponse, error) {
	t, err := requerir(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if err := uc.aplicar(ctx, t, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTipoLaborResponse(t), nil
}

// Delete elimina un tipo de labor sin labores registradas.
func (uc *TipoLaborUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *TipoLaborUseCase) aplicar(ctx context.Context, t *entity.TipoLabor, in dto.TipoLaborRequest) error {
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" {
		return invalido("nombre obligatorio")
	}
	t.Nombre = nombre
	t.Descripcion = strings.TrimSpace(in.Descripcion)
	t.FlorID = nil
	if in.FlorID != nil && *in.FlorID != "" {
		if _, err := requerir(uc.flores.GetByID(ctx, *in.FlorID)); err != nil {
			return err
		}
		t.FlorID = in.FlorID
	}
	return nil
}

func toTipoLaborResponse(t *entity.TipoLabor) *dto.TipoLaborResponse {
	return &dto.TipoLaborResponse{ID: t.ID, Nombre: t.Nombre, Descripcion: t.Descripcion, FlorID: t.FlorID}
}
