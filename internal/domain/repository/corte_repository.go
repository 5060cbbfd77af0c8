package repository

import (
	"context"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// CorteListado fila del listado general de cortes.
type CorteListado struct {
	entity.Corte
	Ubicacion string
	Variedad  string
	Plantas   int
}

// CorteReferencia corte de otra siembra usado para la predicción.
type CorteReferencia struct {
	DiasDesdeSiembra int
	Tallos           int
	Plantas          int
}

// CorteRepository puerto de persistencia para Corte.
type CorteRepository interface {
	Create(ctx context.Context, c *entity.Corte) error
	GetByID(ctx context.Context, id string) (*entity.Corte, error)
	Update(ctx context.Context, c *entity.Corte) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*CorteListado, int, error)
	ListBySiembra(ctx context.Context, siembraID string) ([]*entity.Corte, error)
	// SumTallos suma los tallos de la siembra excluyendo el corte excluirID (vacío = ninguno).
	SumTallos(ctx context.Context, siembraID, excluirID string) (int, error)
	MaxNumCorte(ctx context.Context, siembraID string) (int, error)
	ExisteNumCorte(ctx context.Context, siembraID string, numCorte int, excluirID string) (bool, error)
	ListReferencias(ctx context.Context, variedadID, excluirSiembraID string) ([]CorteReferencia, error)
}
