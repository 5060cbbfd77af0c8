package dto

// ErrorFila error de validación de una fila del archivo importado (fila 1-based, sin contar encabezado).
type ErrorFila struct {
	Fila    int    `json:"fila"`
	Mensaje string `json:"mensaje"`
}

// ImportResultado estadísticas de una importación.
type ImportResultado struct {
	Tipo        string         `json:"tipo"`
	SoloValidar bool           `json:"solo_validar"`
	Filas       int            `json:"filas"`
	Nuevos      int            `json:"nuevos"`
	Existentes  int            `json:"existentes"`
	Errores     []ErrorFila    `json:"errores"`
	Creados     map[string]int `json:"creados,omitempty"`
	Confirmado  bool           `json:"confirmado"`
	Mensaje     string         `json:"mensaje"`
}
