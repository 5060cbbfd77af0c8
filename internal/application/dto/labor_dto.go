package dto

// CreateLaborRequest entrada para registrar una labor cultural.
type CreateLaborRequest struct {
	TipoLaborID   string `json:"tipo_labor_id" validate:"required,uuid"`
	FechaLabor    string `json:"fecha_labor" validate:"required"`
	Observaciones string `json:"observaciones"`
}

// UpdateLaborRequest entrada para editar una labor.
type UpdateLaborRequest struct {
	TipoLaborID   *string `json:"tipo_labor_id"`
	FechaLabor    *string `json:"fecha_labor"`
	Observaciones *string `json:"observaciones"`
}

// LaborResponse salida de una labor cultural.
type LaborResponse struct {
	ID                   string `json:"id"`
	SiembraID            string `json:"siembra_id"`
	TipoLaborID          string `json:"tipo_labor_id"`
	TipoLabor            string `json:"tipo_labor"`
	FechaLabor           string `json:"fecha_labor"`
	Observaciones        string `json:"observaciones"`
	DiasHastaInicioCorte *int   `json:"dias_hasta_inicio_corte"`
}
