package repository

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// FlorRepository define el puerto de persistencia para Flor (DIP).
type FlorRepository interface {
	Create(ctx context.Context, flor *entity.Flor) error
	GetByID(ctx context.Context, id string) (*entity.Flor, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Flor, error)
	List(ctx context.Context) ([]*entity.Flor, error)
	Update(ctx context.Context, flor *entity.Flor) error
	Delete(ctx context.Context, id string) error
}

// ColorRepository define el puerto de persistencia para Color.
type ColorRepository interface {
	Create(ctx context.Context, color *entity.Color) error
	GetByID(ctx context.Context, id string) (*entity.Color, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Color, error)
	List(ctx context.Context) ([]*entity.Color, error)
	Update(ctx context.Context, color *entity.Color) error
	Delete(ctx context.Context, id string) error
}

// FlorColorRepository define el puerto de persistencia para combinaciones flor-color.
type FlorColorRepository interface {
	Create(ctx context.Context, fc *entity.FlorColor) error
	GetByID(ctx context.Context, id string) (*entity.FlorColor, error)
	GetByPar(ctx context.Context, florID, colorID string) (*entity.FlorColor, error)
	List(ctx context.Context) ([]*entity.FlorColor, error)
	Delete(ctx context.Context, id string) error
}

// VariedadFiltro filtros opcionales del listado de variedades.
type VariedadFiltro struct {
	FlorID  string
	ColorID string
}

// VariedadRepository define el puerto de persistencia para Variedad.
type VariedadRepository interface {
	Create(ctx context.Context, v *entity.Variedad) error
	GetByID(ctx context.Context, id string) (*entity.Variedad, error)
	GetByNombre(ctx context.Context, nombre, florColorID string) (*entity.Variedad, error)
	List(ctx context.Context, filtro VariedadFiltro) ([]*entity.Variedad, error)
	ListConSiembras(ctx context.Context) ([]*entity.Variedad, error)
	Update(ctx context.Context, v *entity.Variedad) error
	Delete(ctx context.Context, id string) error
}
