package dto

import "github.com/shopspring/decimal"

// CreateSiembraRequest entrada para registrar una siembra.
// Si AreaID viene vacío el área se calcula con CantidadPlantas / densidad.
type CreateSiembraRequest struct {
	BloqueID        string `json:"bloque_id" validate:"required,uuid"`
	CamaID          string `json:"cama_id" validate:"required,uuid"`
	LadoID          string `json:"lado_id" validate:"omitempty,uuid"`
	VariedadID      string `json:"variedad_id" validate:"required,uuid"`
	AreaID          string `json:"area_id" validate:"omitempty,uuid"`
	CantidadPlantas int    `json:"cantidad_plantas" validate:"omitempty,min=1"`
	DensidadID      string `json:"densidad_id" validate:"required,uuid"`
	FechaSiembra    string `json:"fecha_siembra" validate:"required"`
}

// UpdateSiembraRequest entrada para editar una siembra activa; campos nil no cambian.
type UpdateSiembraRequest struct {
	BloqueID        *string `json:"bloque_id"`
	CamaID          *string `json:"cama_id"`
	LadoID          *string `json:"lado_id"`
	VariedadID      *string `json:"variedad_id"`
	AreaID          *string `json:"area_id"`
	CantidadPlantas *int    `json:"cantidad_plantas"`
	DensidadID      *string `json:"densidad_id"`
	FechaSiembra    *string `json:"fecha_siembra"`
}

// FechaRequest entrada con una sola fecha (inicio de corte).
type FechaRequest struct {
	Fecha string `json:"fecha" validate:"required"`
}

// SiembraResponse salida de una siembra con sus nombres resueltos.
type SiembraResponse struct {
	ID               string          `json:"id"`
	BloqueCamaLadoID string          `json:"bloque_cama_lado_id"`
	Ubicacion        string          `json:"ubicacion"`
	Bloque           string          `json:"bloque"`
	Cama             string          `json:"cama"`
	Lado             string          `json:"lado"`
	VariedadID       string          `json:"variedad_id"`
	Variedad         string          `json:"variedad"`
	Flor             string          `json:"flor"`
	Color            string          `json:"color"`
	AreaID           string          `json:"area_id"`
	Area             decimal.Decimal `json:"area"`
	DensidadID       string          `json:"densidad_id"`
	Densidad         decimal.Decimal `json:"densidad"`
	FechaSiembra     string          `json:"fecha_siembra"`
	FechaInicioCorte *string         `json:"fecha_inicio_corte"`
	FechaFinCorte    *string         `json:"fecha_fin_corte"`
	Estado           string          `json:"estado"`
	UsuarioID        string          `json:"usuario_id"`
	TotalPlantas     int             `json:"total_plantas"`
}

// SiembraStats acumulados de una siembra.
type SiembraStats struct {
	TotalPlantas          int     `json:"total_plantas"`
	TotalTallos           int     `json:"total_tallos"`
	TotalPerdidas         int     `json:"total_perdidas"`
	PlantasDisponibles    int     `json:"plantas_disponibles"`
	NumCortes             int     `json:"num_cortes"`
	IndiceAprovechamiento float64 `json:"indice_aprovechamiento"`
	DiasCiclo             int     `json:"dias_ciclo"`
}

// SiembraDetalleResponse siembra con cortes, pérdidas, labores y estadísticas.
type SiembraDetalleResponse struct {
	Siembra          SiembraResponse        `json:"siembra"`
	Stats            SiembraStats           `json:"stats"`
	Cortes           []CorteResponse        `json:"cortes"`
	Perdidas         []PerdidaResponse      `json:"perdidas"`
	PerdidasPorCausa []ResumenCausaResponse `json:"perdidas_por_causa"`
	Labores          []LaborResponse        `json:"labores"`
}

// SiembraListResponse lista paginada de siembras.
type SiembraListResponse struct {
	Items []SiembraResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
