package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// TaxonomiaUseCase CRUD de flores, colores, combinaciones flor-color y variedades.
type TaxonomiaUseCase struct {
	flores      repository.FlorRepository
	colores     repository.ColorRepository
	florColores repository.FlorColorRepository
	variedades  repository.VariedadRepository
}

// NewTaxonomiaUseCase construye el caso de uso.
func NewTaxonomiaUseCase(
	flores repository.FlorRepository,
	colores repository.ColorRepository,
	florColores repository.FlorColorRepository,
	variedades repository.VariedadRepository,
) *TaxonomiaUseCase {
	return &TaxonomiaUseCase{flores: flores, colores: colores, florColores: florColores, variedades: variedades}
}

// ── Flores ──────────────────────────────────────────────────────────────────

// CreateFlor crea una flor; el nombre se normaliza a mayúsculas.
func (uc *TaxonomiaUseCase) CreateFlor(ctx context.Context, in dto.FlorRequest) (*dto.FlorResponse, error) {
	f := &entity.Flor{
		ID:        uuid.New().String(),
		Flor:      entity.NormalizarNombre(in.Flor),
		FlorAbrev: entity.NormalizarNombre(in.FlorAbrev),
	}
	if f.Flor == "" || f.FlorAbrev == "" {
		return nil, invalido("flor y abreviatura son obligatorias")
	}
	if existing, err := uc.flores.GetByNombre(ctx, f.Flor); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.flores.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFlorResponse(f), nil
}

// GetFlor obtiene una flor por ID.
func (uc *TaxonomiaUseCase) GetFlor(ctx context.Context, id string) (*dto.FlorResponse, error) {
	f, err := requerir(uc.flores.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toFlorResponse(f), nil
}

// ListFlores lista las flores por nombre.
func (uc *TaxonomiaUseCase) ListFlores(ctx context.Context) ([]dto.FlorResponse, error) {
	list, err := uc.flores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlorResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFlorResponse(f))
	}
	return out, nil
}

// UpdateFlor renombra una flor.
func (uc *TaxonomiaUseCase) UpdateFlor(ctx context.Context, id string, in dto.FlorRequest) (*dto.FlorResponse, error) {
	f, err := requerir(uc.flores.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Flor)
	if nombre == "" {
		return nil, invalido("flor obligatoria")
	}
	if other, err := uc.flores.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	f.Flor = nombre
	if abrev := entity.NormalizarNombre(in.FlorAbrev); abrev != "" {
		f.FlorAbrev = abrev
	}
	if err := uc.flores.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFlorResponse(f), nil
}

// DeleteFlor elimina una flor sin combinaciones asociadas.
func (uc *TaxonomiaUseCase) DeleteFlor(ctx context.Context, id string) error {
	return uc.flores.Delete(ctx, id)
}

// ── Colores ─────────────────────────────────────────────────────────────────

// CreateColor crea un color.
func (uc *TaxonomiaUseCase) CreateColor(ctx context.Context, in dto.ColorRequest) (*dto.ColorResponse, error) {
	c := &entity.Color{
		ID:         uuid.New().String(),
		Color:      entity.NormalizarNombre(in.Color),
		ColorAbrev: entity.NormalizarNombre(in.ColorAbrev),
	}
	if c.Color == "" || c.ColorAbrev == "" {
		return nil, invalido("color y abreviatura son obligatorios")
	}
	if existing, err := uc.colores.GetByNombre(ctx, c.Color); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.colores.Create(ctx, c); err != nil {
		return nil, err
	}
	return toColorResponse(c), nil
}

// GetColor obtiene un color por ID.
func (uc *TaxonomiaUseCase) GetColor(ctx context.Context, id string) (*dto.ColorResponse, error) {
	c, err := requerir(uc.colores.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toColorResponse(c), nil
}

// ListColores lista los colores.
func (uc *TaxonomiaUseCase) ListColores(ctx context.Context) ([]dto.ColorResponse, error) {
	list, err := uc.colores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColorResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toColorResponse(c))
	}
	return out, nil
}

// UpdateColor renombra un color.
func (uc *TaxonomiaUseCase) UpdateColor(ctx context.Context, id string, in dto.ColorRequest) (*dto.ColorResponse, error) {
	c, err := requerir(uc.colores.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Color)
	if nombre == "" {
		return nil, invalido("color obligatorio")
	}
	if other, err := uc.colores.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	c.Color = nombre
	if abrev := entity.NormalizarNombre(in.ColorAbrev); abrev != "" {
		c.ColorAbrev = abrev
	}
	if err := uc.colores.Update(ctx, c); err != nil {
		return nil, err
	}
	return toColorResponse(c), nil
}

// DeleteColor elimina un color.
func (uc *TaxonomiaUseCase) DeleteColor(ctx context.Context, id string) error {
	return uc.colores.Delete(ctx, id)
}

// ── Flor-Color ──────────────────────────────────────────────────────────────

// CreateFlorColor registra la combinación; el par (flor, color) es único.
func (uc *TaxonomiaUseCase) CreateFlorColor(ctx context.Context, in dto.FlorColorRequest) (*dto.FlorColorResponse, error) {
	f, err := requerir(uc.flores.GetByID(ctx, in.FlorID))
	if err != nil {
		return nil, err
	}
	c, err := requerir(uc.colores.GetByID(ctx, in.ColorID))
	if err != nil {
		return nil, err
	}
	if existing, err := uc.florColores.GetByPar(ctx, f.ID, c.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	fc := &entity.FlorColor{
		ID:      uuid.New().String(),
		FlorID:  f.ID,
		ColorID: c.ID,
		Flor:    f.Flor,
		Color:   c.Color,
	}
	if err := uc.florColores.Create(ctx, fc); err != nil {
		return nil, err
	}
	return toFlorColorResponse(fc), nil
}

// ListFlorColores lista las combinaciones.
func (uc *TaxonomiaUseCase) ListFlorColores(ctx context.Context) ([]dto.FlorColorResponse, error) {
	list, err := uc.florColores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlorColorResponse, 0, len(list))
	for _, fc := range list {
		out = append(out, *toFlorColorResponse(fc))
	}
	return out, nil
}

// DeleteFlorColor elimina una combinación sin variedades.
func (uc *TaxonomiaUseCase) DeleteFlorColor(ctx context.Context, id string) error {
	return uc.florColores.Delete(ctx, id)
}

// ── Variedades ──────────────────────────────────────────────────────────────

// CreateVariedad crea una variedad dentro de una combinación flor-color.
func (uc *TaxonomiaUseCase) CreateVariedad(ctx context.Context, in dto.VariedadRequest) (*dto.VariedadResponse, error) {
	fc, err := requerir(uc.florColores.GetByID(ctx, in.FlorColorID))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Variedad)
	if nombre == "" {
		return nil, invalido("variedad obligatoria")
	}
	if existing, err := uc.variedades.GetByNombre(ctx, nombre, fc.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	v := &entity.Variedad{
		ID:          uuid.New().String(),
		Variedad:    nombre,
		FlorColorID: fc.ID,
		Flor:        fc.Flor,
		Color:       fc.Color,
	}
	if err := uc.variedades.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVariedadResponse(v), nil
}

// GetVariedad obtiene una variedad con su flor y color.
func (uc *TaxonomiaUseCase) GetVariedad(ctx context.Context, id string) (*dto.VariedadResponse, error) {
	v, err := requerir(uc.variedades.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toVariedadResponse(v), nil
}

// ListVariedades lista variedades, opcionalmente filtradas por flor y/o color.
func (uc *TaxonomiaUseCase) ListVariedades(ctx context.Context, florID, colorID string) ([]dto.VariedadResponse, error) {
	list, err := uc.variedades.List(ctx, repository.VariedadFiltro{FlorID: florID, ColorID: colorID})
	if err != nil {
		return nil, err
	}
	return toVariedadResponses(list), nil
}

// ListVariedadesConSiembras lista las variedades que tienen al menos una siembra.
func (uc *TaxonomiaUseCase) ListVariedadesConSiembras(ctx context.Context) ([]dto.VariedadResponse, error) {
	list, err := uc.variedades.ListConSiembras(ctx)
	if err != nil {
		return nil, err
	}
	return toVariedadResponses(list), nil
}

// UpdateVariedad renombra o mueve una variedad a otra combinación.
func (uc *TaxonomiaUseCase) UpdateVariedad(ctx context.Context, id string, in dto.VariedadRequest) (*dto.VariedadResponse, error) {
	v, err := requerir(uc.variedades.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	fc, err := requerir(uc.florColores.GetByID(ctx, in.FlorColorID))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Variedad)
	if nombre == "" {
		return nil, invalido("variedad obligatoria")
	}
	if other, err := uc.variedades.GetByNombre(ctx, nombre, fc.ID); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	v.Variedad = nombre
	v.FlorColorID = fc.ID
	v.Flor = fc.Flor
	v.Color = fc.Color
	if err := uc.variedades.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVariedadResponse(v), nil
}

// DeleteVariedad elimina una variedad sin siembras.
func (uc *TaxonomiaUseCase) DeleteVariedad(ctx context.Context, id string) error {
	return uc.variedades.Delete(ctx, id)
}

func toFlorResponse(f *entity.Flor) *dto.FlorResponse {
	return &dto.FlorResponse{ID: f.ID, Flor: f.Flor, FlorAbrev: f.FlorAbrev}
}

func toColorResponse(c *entity.Color) *dto.ColorResponse {
	return &dto.ColorResponse{ID: c.ID, Color: c.Color, ColorAbrev: c.ColorAbrev}
}

func toFlorColorResponse(fc *entity.FlorColor) *dto.FlorColorResponse {
	return &dto.FlorColorResponse{
		ID:      fc.ID,
		FlorID:  fc.FlorID,
		ColorID: fc.ColorID,
		Flor:    fc.Flor,
		Color:   fc.Color,
	}
}

func toVariedadResponse(v *entity.Variedad) *dto.VariedadResponse {
	return &dto.VariedadResponse{
		ID:             v.ID,
		Variedad:       v.Variedad,
		FlorColorID:    v.FlorColorID,
		Flor:           v.Flor,
		Color:          v.Color,
		NombreCompleto: v.NombreCompleto(),
	}
}

func toVariedadResponses(list []*entity.Variedad) []dto.VariedadResponse {
	out := make([]dto.VariedadResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVariedadResponse(v))
	}
	return out
}
