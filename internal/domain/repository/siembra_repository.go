package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
)

// SiembraFiltro filtros del listado de siembras.
type SiembraFiltro struct {
	Estado     string
	VariedadID string
	BloqueID   string
}

// MuestraFiltro selecciona las siembras que alimentan la curva de producción.
type MuestraFiltro struct {
	VariedadID    string
	BloqueID      string
	SembradaDesde *time.Time
}

// SiembraTotales acumulados de una siembra.
type SiembraTotales struct {
	Plantas     int
	Tallos      int
	Perdidas    int
	NumCortes   int
	UltimoCorte *time.Time
}

// SiembraRepository puerto de persistencia para Siembra.
type SiembraRepository interface {
	Create(ctx context.Context, s *entity.Siembra) error
	GetByID(ctx context.Context, id string) (*entity.Siembra, error)
	// GetByIDForUpdate lee la siembra bloqueando la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Siembra, error)
	GetDetalle(ctx context.Context, id string) (*entity.SiembraDetalle, error)
	// GetByClave busca la siembra de una variedad en una ubicación y fecha (clave natural del histórico).
	GetByClave(ctx context.Context, bloqueCamaLadoID, variedadID string, fechaSiembra time.Time) (*entity.Siembra, error)
	List(ctx context.Context, filtro SiembraFiltro, limit, offset int) ([]*entity.SiembraDetalle, int, error)
	Update(ctx context.Context, s *entity.Siembra) error
	Delete(ctx context.Context, id string) error
	Totales(ctx context.Context, id string) (SiembraTotales, error)
	CountDependencias(ctx context.Context, id string) (int, error)
	// ListMuestras carga siembras con plantas y cortes para el cálculo de la curva.
	ListMuestras(ctx context.Context, filtro MuestraFiltro) ([]produccion.SiembraMuestra, error)
}
