package repository

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// BloqueRepository puerto de persistencia para Bloque. List ordena numéricamente (largo, texto).
type BloqueRepository interface {
	Create(ctx context.Context, b *entity.Bloque) error
	GetByID(ctx context.Context, id string) (*entity.Bloque, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Bloque, error)
	List(ctx context.Context) ([]*entity.Bloque, error)
	Update(ctx context.Context, b *entity.Bloque) error
	Delete(ctx context.Context, id string) error
}

// CamaRepository puerto de persistencia para Cama.
type CamaRepository interface {
	Create(ctx context.Context, c *entity.Cama) error
	GetByID(ctx context.Context, id string) (*entity.Cama, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Cama, error)
	List(ctx context.Context) ([]*entity.Cama, error)
	Update(ctx context.Context, c *entity.Cama) error
	Delete(ctx context.Context, id string) error
}

// LadoRepository puerto de persistencia para Lado.
type LadoRepository interface {
	Create(ctx context.Context, l *entity.Lado) error
	GetByID(ctx context.Context, id string) (*entity.Lado, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Lado, error)
	List(ctx context.Context) ([]*entity.Lado, error)
	Update(ctx context.Context, l *entity.Lado) error
	Delete(ctx context.Context, id string) error
}

// BloqueCamaLadoRepository puerto de persistencia de ubicaciones completas.
type BloqueCamaLadoRepository interface {
	Create(ctx context.Context, u *entity.BloqueCamaLado) error
	GetByID(ctx context.Context, id string) (*entity.BloqueCamaLado, error)
	GetByTripleta(ctx context.Context, bloqueID, camaID, ladoID string) (*entity.BloqueCamaLado, error)
	List(ctx context.Context, bloqueID string) ([]*entity.BloqueCamaLado, error)
	Delete(ctx context.Context, id string) error
}
