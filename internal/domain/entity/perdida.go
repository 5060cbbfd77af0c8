package entity

import "time"

// CausaPerdida clasifica las pérdidas (DELGADOS, TRIPS, ...). Las predefinidas vienen de la instalación.
type CausaPerdida struct {
	ID            string
	Nombre        string
	Descripcion   string
	EsPredefinida bool
}

// Perdida registra tallos/plantas perdidos de una siembra por una causa.
type Perdida struct {
	ID            string
	SiembraID     string
	CausaID       string
	Cantidad      int
	FechaPerdida  time.Time
	Observaciones string
	UsuarioID     string
	FechaRegistro time.Time
}
