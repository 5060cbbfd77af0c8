package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ToleranciaAreaSugerida margen relativo para sugerir un área existente.
const ToleranciaAreaSugerida = 0.05

// GeometriaUseCase CRUD de áreas y densidades, y cálculo de área por plantas.
type GeometriaUseCase struct {
	areas      repository.AreaRepository
	densidades repository.DensidadRepository
}

// NewGeometriaUseCase construye el caso de uso.
func NewGeometriaUseCase(areas repository.AreaRepository, densidades repository.DensidadRepository) *GeometriaUseCase {
	return &GeometriaUseCase{areas: areas, densidades: densidades}
}

// CreateArea crea un área; el valor debe ser positivo.
func (uc *GeometriaUseCase) CreateArea(ctx context.Context, in dto.AreaRequest) (*dto.AreaResponse, error) {
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" || !in.Area.IsPositive() {
		return nil, invalido("nombre y área positiva son obligatorios")
	}
	if existing, err := uc.areas.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	a := &entity.Area{ID: uuid.New().String(), Nombre: nombre, Area: in.Area}
	if err := uc.areas.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAreaResponse(a), nil
}

// GetArea obtiene un área por ID.
func (uc *GeometriaUseCase) GetArea(ctx context.Context, id string) (*dto.AreaResponse, error) {
	a, err := requerir(uc.areas.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toAreaResponse(a), nil
}

// ListAreas lista las áreas.
func (uc *GeometriaUseCase) ListAreas(ctx context.Context) ([]dto.AreaResponse, error) {
	list, err := uc.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAreaResponse(a))
	}
	return out, nil
}

// UpdateArea actualiza nombre y valor de un área.
func (uc *GeometriaUseCase) UpdateArea(ctx context.Context, id string, in dto.AreaRequest) (*dto.AreaResponse, error) {
	a, err := requerir(uc.areas.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Nombre)
	if nombre == "" || !in.Area.IsPositive() {
		return nil, invalido("nombre y área positiva son obligatorios")
	}
	if other, err := uc.areas.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	a.Nombre = nombre
	a.Area = in.Area
	if err := uc.areas.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAreaResponse(a), nil
}

// DeleteArea elimina un área sin siembras.
func (uc *GeometriaUseCase) DeleteArea(ctx context.Context, id string) error {
	return uc.areas.Delete(ctx, id)
}

// CreateDensidad crea una densidad; el valor debe ser positivo.
func (uc *GeometriaUseCase) CreateDensidad(ctx context.Context, in dto.DensidadRequest) (*dto.DensidadResponse, error) {
	nombre := entity.NormalizarNombre(in.Densidad)
	if nombre == "" || !in.Valor.IsPositive() {
		return nil, invalido("nombre y valor positivo son obligatorios")
	}
	if existing, err := uc.densidades.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	d := &entity.Densidad{ID: uuid.New().String(), Densidad: nombre, Valor: in.Valor}
	if err := uc.densidades.Create(ctx, d); err != nil {
		return nil, err
	}
	return toDensidadResponse(d), nil
}

// GetDensidad obtiene una densidad por ID.
func (uc *GeometriaUseCase) GetDensidad(ctx context.Context, id string) (*dto.DensidadResponse, error) {
	d, err := requerir(uc.densidades.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toDensidadResponse(d), nil
}

// ListDensidades lista las densidades.
func (uc *GeometriaUseCase) ListDensidades(ctx context.Context) ([]dto.DensidadResponse, error) {
	list, err := uc.densidades.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DensidadResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDensidadResponse(d))
	}
	return out, nil
}

// UpdateDensidad actualiza nombre y valor.
func (uc *GeometriaUseCase) UpdateDensidad(ctx context.Context, id string, in dto.DensidadRequest) (*dto.DensidadResponse, error) {
	d, err := requerir(uc.densidades.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	nombre := entity.NormalizarNombre(in.Densidad)
	if nombre == "" || !in.Valor.IsPositive() {
		return nil, invalido("nombre y valor positivo son obligatorios")
	}
	if other, err := uc.densidades.GetByNombre(ctx, nombre); err != nil {
		return nil, err
	} else if other != nil && other.ID != id {
		return nil, domain.ErrDuplicate
	}
	d.Densidad = nombre
	d.Valor = in.Valor
	if err := uc.densidades.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDensidadResponse(d), nil
}

// DeleteDensidad elimina una densidad sin siembras.
func (uc *GeometriaUseCase) DeleteDensidad(ctx context.Context, id string) error {
	return uc.densidades.Delete(ctx, id)
}

// CalcularArea calcula plantas / densidad (m², 2 decimales) y sugiere un área existente dentro de ±5%.
func (uc *GeometriaUseCase) CalcularArea(ctx context.Context, in dto.CalcularAreaRequest) (*dto.CalcularAreaResponse, error) {
	if in.CantidadPlantas <= 0 {
		return nil, invalido("cantidad de plantas debe ser positiva")
	}
	d, err := requerir(uc.densidades.GetByID(ctx, in.DensidadID))
	if err != nil {
		return nil, err
	}
	m2, err := AreaPorPlantas(in.CantidadPlantas, d.Valor)
	if err != nil {
		return nil, err
	}
	out := &dto.CalcularAreaResponse{
		AreaCalculada:   m2,
		CantidadPlantas: in.CantidadPlantas,
		DensidadValor:   d.Valor.InexactFloat64(),
	}
	sugerida, err := uc.areas.FindAproximada(ctx, m2, ToleranciaAreaSugerida)
	if err != nil {
		return nil, err
	}
	if sugerida != nil {
		out.AreaSugerida = toAreaResponse(sugerida)
	}
	return out, nil
}

// AreaPorPlantas devuelve plantas / densidad en m² redondeado a 2 decimales.
func AreaPorPlantas(plantas int, densidad decimal.Decimal) (float64, error) {
	if !densidad.IsPositive() {
		return 0, invalido("la densidad debe ser positiva")
	}
	m2 := decimal.NewFromInt(int64(plantas)).Div(densidad).InexactFloat64()
	return produccion.Redondear(m2, 2), nil
}

// resolverAreaCalculada busca el área con la etiqueta calculada o la crea.
func resolverAreaCalculada(ctx context.Context, areas repository.AreaRepository, m2 float64) (*entity.Area, error) {
	nombre := entity.NombreAreaCalculada(m2)
	a, err := areas.GetByNombre(ctx, nombre)
	if err != nil || a != nil {
		return a, err
	}
	a = &entity.Area{ID: uuid.New().String(), Nombre: nombre, Area: decimal.NewFromFloat(m2)}
	if err := areas.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func toAreaResponse(a *entity.Area) *dto.AreaResponse {
	return &dto.AreaResponse{ID: a.ID, Nombre: a.Nombre, Area: a.Area}
}

func toDensidadResponse(d *entity.Densidad) *dto.DensidadResponse {
	return &dto.DensidadResponse{ID: d.ID, Densidad: d.Densidad, Valor: d.Valor, Etiqueta: d.Etiqueta()}
}
