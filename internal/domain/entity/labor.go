package entity

import "time"

// TipoLabor describe una labor cultural (desbotone, pinch, ...), opcionalmente ligada a una flor.
type TipoLabor struct {
	ID          string
	Nombre      string
	Descripcion string
	FlorID      *string
}

// LaborCultural registra una labor ejecutada sobre una siembra.
type LaborCultural struct {
	ID            string
	SiembraID     string
	TipoLaborID   string
	TipoLabor     string
	FechaLabor    time.Time
	Observaciones string
	UsuarioID     string
	FechaRegistro time.Time
}
