package entity

import "time"

// Corte es un evento de cosecha: tallos cortados de una siembra en una fecha.
// (siembra_id, num_corte) es único.
type Corte struct {
	ID             string
	SiembraID      string
	NumCorte       int
	FechaCorte     time.Time
	CantidadTallos int
	UsuarioID      string
	FechaRegistro  time.Time
}
