package dto

import "github.com/shopspring/decimal"

// FlorRequest entrada para crear/actualizar una flor.
type FlorRequest struct {
	Flor      string `json:"flor" validate:"required,max=50"`
	FlorAbrev string `json:"flor_abrev" validate:"required,max=10"`
}

// FlorResponse salida de una flor.
type FlorResponse struct {
	ID        string `json:"id"`
	Flor      string `json:"flor"`
	FlorAbrev string `json:"flor_abrev"`
}

// ColorRequest entrada para crear/actualizar un color.
type ColorRequest struct {
	Color      string `json:"color" validate:"required,max=50"`
	ColorAbrev string `json:"color_abrev" validate:"required,max=10"`
}

// ColorResponse salida de un color.
type ColorResponse struct {
	ID         string `json:"id"`
	Color      string `json:"color"`
	ColorAbrev string `json:"color_abrev"`
}

// FlorColorRequest entrada para crear una combinación flor-color.
type FlorColorRequest struct {
	FlorID  string `json:"flor_id" validate:"required,uuid"`
	ColorID string `json:"color_id" validate:"required,uuid"`
}

// FlorColorResponse salida de una combinación.
type FlorColorResponse struct {
	ID      string `json:"id"`
	FlorID  string `json:"flor_id"`
	ColorID string `json:"color_id"`
	Flor    string `json:"flor"`
	Color   string `json:"color"`
}

// VariedadRequest entrada para crear/actualizar una variedad.
type VariedadRequest struct {
	Variedad    string `json:"variedad" validate:"required,max=100"`
	FlorColorID string `json:"flor_color_id" validate:"required,uuid"`
}

// VariedadResponse salida de una variedad.
type VariedadResponse struct {
	ID             string `json:"id"`
	Variedad       string `json:"variedad"`
	FlorColorID    string `json:"flor_color_id"`
	Flor           string `json:"flor"`
	Color          string `json:"color"`
	NombreCompleto string `json:"nombre_completo"`
}

// NombreRequest entrada de catálogos de un solo nombre (bloque, cama, lado).
type NombreRequest struct {
	Nombre string `json:"nombre" validate:"required,max=20"`
}

// NombreResponse salida de catálogos de un solo nombre.
type NombreResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// BloqueCamaLadoResponse ubicación completa.
type BloqueCamaLadoResponse struct {
	ID       string `json:"id"`
	BloqueID string `json:"bloque_id"`
	CamaID   string `json:"cama_id"`
	LadoID   string `json:"lado_id"`
	Bloque   string `json:"bloque"`
	Cama     string `json:"cama"`
	Lado     string `json:"lado"`
	Etiqueta string `json:"etiqueta"`
}

// AreaRequest entrada para crear/actualizar un área.
type AreaRequest struct {
	Nombre string          `json:"nombre" validate:"required,max=50"`
	Area   decimal.Decimal `json:"area" validate:"required"`
}

// AreaResponse salida de un área.
type AreaResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Area   decimal.Decimal `json:"area"`
}

// DensidadRequest entrada para crear/actualizar una densidad.
type DensidadRequest struct {
	Densidad string          `json:"densidad" validate:"required,max=50"`
	Valor    decimal.Decimal `json:"valor" validate:"required"`
}

// DensidadResponse salida de una densidad.
type DensidadResponse struct {
	ID       string          `json:"id"`
	Densidad string          `json:"densidad"`
	Valor    decimal.Decimal `json:"valor"`
	Etiqueta string          `json:"etiqueta"`
}

// CalcularAreaRequest entrada para sugerir un área a partir de plantas y densidad.
type CalcularAreaRequest struct {
	CantidadPlantas int    `json:"cantidad_plantas" validate:"required,min=1"`
	DensidadID      string `json:"densidad_id" validate:"required,uuid"`
}

// CalcularAreaResponse área calculada y área existente sugerida (±5%).
type CalcularAreaResponse struct {
	AreaCalculada   float64       `json:"area_calculada"`
	AreaSugerida    *AreaResponse `json:"area_sugerida,omitempty"`
	CantidadPlantas int           `json:"cantidad_plantas"`
	DensidadValor   float64       `json:"densidad_valor"`
}

// CausaRequest entrada para crear/actualizar una causa de pérdida.
type CausaRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=50"`
	Descripcion string `json:"descripcion"`
}

// CausaResponse salida de una causa.
type CausaResponse struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Descripcion   string `json:"descripcion"`
	EsPredefinida bool   `json:"es_predefinida"`
}

// TipoLaborRequest entrada para crear/actualizar un tipo de labor.
type TipoLaborRequest struct {
	Nombre      string  `json:"nombre" validate:"required,max=50"`
	Descripcion string  `json:"descripcion"`
	FlorID      *string `json:"flor_id" validate:"omitempty,uuid"`
}

// TipoLaborResponse salida de un tipo de labor.
type TipoLaborResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	FlorID      *string `json:"flor_id,omitempty"`
}

// BloqueCamaLadoRequest entrada para registrar una ubicación; LadoID vacío usa el lado ÚNICO.
type BloqueCamaLadoRequest struct {
	BloqueID string `json:"bloque_id" validate:"required,uuid"`
	CamaID   string `json:"cama_id" validate:"required,uuid"`
	LadoID   string `json:"lado_id" validate:"omitempty,uuid"`
}
