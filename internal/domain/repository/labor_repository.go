package repository

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// TipoLaborRepository puerto de persistencia para TipoLabor.
type TipoLaborRepository interface {
	Create(ctx context.Context, t *entity.TipoLabor) error
	GetByID(ctx context.Context, id string) (*entity.TipoLabor, error)
	List(ctx context.Context) ([]*entity.TipoLabor, error)
	Update(ctx context.Context, t *entity.TipoLabor) error
	Delete(ctx context.Context, id string) error
}

// LaborRepository puerto de persistencia para LaborCultural.
type LaborRepository interface {
	Create(ctx context.Context, l *entity.LaborCultural) error
	GetByID(ctx context.Context, id string) (*entity.LaborCultural, error)
	ListBySiembra(ctx context.Context, siembraID string) ([]*entity.LaborCultural, error)
	Update(ctx context.Context, l *entity.LaborCultural) error
	Delete(ctx context.Context, id string) error
}
