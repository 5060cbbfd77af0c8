package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cpc-api/internal/domain/entity"
)

// ProduccionVariedad tallos totales de una variedad.
type ProduccionVariedad struct {
	VariedadID  string
	Variedad    string
	Flor        string
	Color       string
	TotalTallos int
}

// ProduccionBloque tallos y siembras distintas por bloque.
type ProduccionBloque struct {
	BloqueID      string
	Bloque        string
	TotalTallos   int
	TotalSiembras int
}

// DiasCorte estadística de días desde la siembra para un número de corte de una variedad.
type DiasCorte struct {
	VariedadID    string
	Variedad      string
	Flor          string
	Color         string
	NumCorte      int
	DiasPromedio  float64
	DiasMinimo    int
	DiasMaximo    int
	TotalSiembras int
}

// DashboardFiltro rango de fechas (inclusivo) y variedad opcionales.
type DashboardFiltro struct {
	Desde      *time.Time
	Hasta      *time.Time
	VariedadID string
}

// ConteoSiembras cantidades de siembras por estado.
type ConteoSiembras struct {
	Activas int
	Total   int
}

// ConteoCortes cantidad de cortes y de siembras que tienen cortes.
type ConteoCortes struct {
	Cortes            int
	SiembrasConCortes int
}

// FilaAprovechamiento tallos y plantas de siembras finalizadas agrupados por variedad y bloque.
type FilaAprovechamiento struct {
	VariedadID string
	Variedad   string
	FlorID     string
	Flor       string
	Color      string
	BloqueID   string
	Bloque     string
	Tallos     int
	Plantas    int
	Siembras   int
}

// Diagnostico métricas de calidad de datos tras una importación.
type Diagnostico struct {
	TotalSiembras         int
	TotalCortes           int
	TotalVariedades       int
	TotalBloques          int
	TotalCamas            int
	SiembrasSinCortes     int
	CortesIndiceAlto      int
	VariedadesConSiembras int
	VariedadesConCurvas   []VariedadConDatos
}

// VariedadConDatos variedad con cortes suficientes para curva.
type VariedadConDatos struct {
	VariedadID string
	Variedad   string
	Flor       string
	Color      string
	Siembras   int
	Cortes     int
}

// ExportSiembra fila exportada de siembras.
type ExportSiembra struct {
	ID               string
	Bloque           string
	Cama             string
	Lado             string
	Variedad         string
	Flor             string
	Color            string
	FechaSiembra     time.Time
	FechaInicioCorte *time.Time
	Estado           string
}

// ExportCorte fila exportada de cortes.
type ExportCorte struct {
	ID               string
	SiembraID        string
	Bloque           string
	Cama             string
	Lado             string
	Variedad         string
	NumCorte         int
	FechaCorte       time.Time
	CantidadTallos   int
	FechaSiembra     time.Time
	DiasDesdeSiembra int
}

// ReporteRepository consultas de solo lectura para reportes y dashboard.
type ReporteRepository interface {
	ProduccionPorVariedad(ctx context.Context) ([]ProduccionVariedad, error)
	ProduccionPorBloque(ctx context.Context) ([]ProduccionBloque, error)
	DiasProduccion(ctx context.Context) ([]DiasCorte, error)
	ConteoSiembras(ctx context.Context, f DashboardFiltro) (ConteoSiembras, error)
	ConteoCortes(ctx context.Context, f DashboardFiltro) (ConteoCortes, error)
	ContarVariedades(ctx context.Context) (int, error)
	Aprovechamiento(ctx context.Context, f DashboardFiltro) ([]FilaAprovechamiento, error)
	UltimasSiembras(ctx context.Context, variedadID string, limit int) ([]*entity.SiembraDetalle, error)
	Diagnostico(ctx context.Context) (*Diagnostico, error)
	ExportSiembras(ctx context.Context) ([]ExportSiembra, error)
	ExportCortes(ctx context.Context) ([]ExportCorte, error)
}
