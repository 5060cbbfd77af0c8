package dto

// CreatePerdidaRequest entrada para registrar una pérdida.
type CreatePerdidaRequest struct {
	SiembraID     string `json:"siembra_id" validate:"required,uuid"`
	CausaID       string `json:"causa_id" validate:"required,uuid"`
	Cantidad      int    `json:"cantidad" validate:"required,min=1"`
	FechaPerdida  string `json:"fecha_perdida" validate:"required"`
	Observaciones string `json:"observaciones"`
}

// UpdatePerdidaRequest entrada para editar una pérdida.
type UpdatePerdidaRequest struct {
	CausaID       *string `json:"causa_id"`
	Cantidad      *int    `json:"cantidad" validate:"omitempty,min=1"`
	FechaPerdida  *string `json:"fecha_perdida"`
	Observaciones *string `json:"observaciones"`
}

// PerdidaFiltroRequest filtros de consulta del listado de pérdidas.
type PerdidaFiltroRequest struct {
	SiembraID  string `query:"siembra_id"`
	CausaID    string `query:"causa_id"`
	FechaDesde string `query:"fecha_desde"`
	FechaHasta string `query:"fecha_hasta"`
}

// PerdidaResponse salida de una pérdida.
type PerdidaResponse struct {
	ID            string `json:"id"`
	SiembraID     string `json:"siembra_id"`
	CausaID       string `json:"causa_id"`
	Causa         string `json:"causa,omitempty"`
	Cantidad      int    `json:"cantidad"`
	FechaPerdida  string `json:"fecha_perdida"`
	Observaciones string `json:"observaciones"`
	Variedad      string `json:"variedad,omitempty"`
	Ubicacion     string `json:"ubicacion,omitempty"`
}

// PerdidaListResponse lista paginada de pérdidas.
type PerdidaListResponse struct {
	Items []PerdidaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ResumenCausaResponse total perdido por causa.
type ResumenCausaResponse struct {
	CausaID   string `json:"causa_id"`
	Causa     string `json:"causa"`
	Total     int    `json:"total"`
	Registros int    `json:"registros"`
}

// ResumenVariedadCausaResponse total perdido por variedad y causa.
type ResumenVariedadCausaResponse struct {
	VariedadID string `json:"variedad_id"`
	Variedad   string `json:"variedad"`
	CausaID    string `json:"causa_id"`
	Causa      string `json:"causa"`
	Total      int    `json:"total"`
}

// ResumenPerdidasResponse resúmenes globales de pérdidas.
type ResumenPerdidasResponse struct {
	PorCausa         []ResumenCausaResponse         `json:"por_causa"`
	PorVariedadCausa []ResumenVariedadCausaResponse `json:"por_variedad_causa"`
	Total            int                            `json:"total"`
}
