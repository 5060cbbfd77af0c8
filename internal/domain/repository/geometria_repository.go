package repository

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// AreaRepository puerto de persistencia para Area.
type AreaRepository interface {
	Create(ctx context.Context, a *entity.Area) error
	GetByID(ctx context.Context, id string) (*entity.Area, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Area, error)
	// FindAproximada devuelve el área más cercana a m2 dentro de ±tolerancia (fracción, p. ej. 0.05).
	FindAproximada(ctx context.Context, m2, tolerancia float64) (*entity.Area, error)
	List(ctx context.Context) ([]*entity.Area, error)
	Update(ctx context.Context, a *entity.Area) error
	Delete(ctx context.Context, id string) error
}

// DensidadRepository puerto de persistencia para Densidad.
type DensidadRepository interface {
	Create(ctx context.Context, d *entity.Densidad) error
	GetByID(ctx context.Context, id string) (*entity.Densidad, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Densidad, error)
	List(ctx context.Context) ([]*entity.Densidad, error)
	Update(ctx context.Context, d *entity.Densidad) error
	Delete(ctx context.Context, id string) error
}
