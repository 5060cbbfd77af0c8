package dto

// CreateCorteRequest entrada para registrar un corte; NumCorte nil toma el siguiente.
type CreateCorteRequest struct {
	NumCorte       *int   `json:"num_corte" validate:"omitempty,min=1"`
	FechaCorte     string `json:"fecha_corte" validate:"required"`
	CantidadTallos int    `json:"cantidad_tallos" validate:"required,min=1"`
}

// UpdateCorteRequest entrada para editar un corte; campos nil no cambian.
type UpdateCorteRequest struct {
	NumCorte       *int    `json:"num_corte" validate:"omitempty,min=1"`
	FechaCorte     *string `json:"fecha_corte"`
	CantidadTallos *int    `json:"cantidad_tallos" validate:"omitempty,min=1"`
}

// CorteResponse salida de un corte con su índice individual y acumulado.
type CorteResponse struct {
	ID               string  `json:"id"`
	SiembraID        string  `json:"siembra_id"`
	NumCorte         int     `json:"num_corte"`
	FechaCorte       string  `json:"fecha_corte"`
	CantidadTallos   int     `json:"cantidad_tallos"`
	DiasDesdeSiembra int     `json:"dias_desde_siembra,omitempty"`
	Indice           float64 `json:"indice"`
	IndiceAcumulado  float64 `json:"indice_acumulado,omitempty"`
	Ubicacion        string  `json:"ubicacion,omitempty"`
	Variedad         string  `json:"variedad,omitempty"`
}

// CorteListResponse lista paginada de cortes.
type CorteListResponse struct {
	Items []CorteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
