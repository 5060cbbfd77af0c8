package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// PerdidaFiltro filtros del listado de pérdidas; campos vacíos se ignoran.
type PerdidaFiltro struct {
	SiembraID  string
	CausaID    string
	FechaDesde *time.Time
	FechaHasta *time.Time
}

// PerdidaListado fila del listado de pérdidas con nombres resueltos.
type PerdidaListado struct {
	entity.Perdida
	Causa     string
	Variedad  string
	Ubicacion string
}

// ResumenCausa total perdido por causa.
type ResumenCausa struct {
	CausaID   string
	Causa     string
	Total     int
	Registros int
}

// ResumenVariedadCausa total perdido por variedad y causa.
type ResumenVariedadCausa struct {
	VariedadID string
	Variedad   string
	CausaID    string
	Causa      string
	Total      int
}

// PerdidaRepository puerto de persistencia para Perdida.
type PerdidaRepository interface {
	Create(ctx context.Context, p *entity.Perdida) error
	GetByID(ctx context.Context, id string) (*entity.Perdida, error)
	Update(ctx context.Context, p *entity.Perdida) error
	Delete(ctx context.Context, id string) error
	// List pagina por fecha descendente; limit <= 0 devuelve todas.
	List(ctx context.Context, filtro PerdidaFiltro, limit, offset int) ([]*PerdidaListado, int, error)
	SumCantidad(ctx context.Context, siembraID, excluirID string) (int, error)
	// ResumenPorCausa agrupa por causa; siembraID vacío resume todas las siembras.
	ResumenPorCausa(ctx context.Context, siembraID string) ([]ResumenCausa, error)
	ResumenPorVariedadCausa(ctx context.Context) ([]ResumenVariedadCausa, error)
}

// CausaRepository puerto de persistencia para CausaPerdida.
type CausaRepository interface {
	Create(ctx context.Context, c *entity.CausaPerdida) error
	GetByID(ctx context.Context, id string) (*entity.CausaPerdida, error)
	// GetByNombre compara sin distinguir mayúsculas.
	GetByNombre(ctx context.Context, nombre string) (*entity.CausaPerdida, error)
	List(ctx context.Context) ([]*entity.CausaPerdida, error)
	Update(ctx context.Context, c *entity.CausaPerdida) error
	Delete(ctx context.Context, id string) error
	CountPerdidas(ctx context.Context, id string) (int, error)
}
