package entity

import "time"

// Estados válidos para Siembra.
const (
	EstadoActiva     = "Activa"
	EstadoFinalizada = "Finalizada"
)

// Siembra representa una plantación de una variedad en una ubicación (bloque-cama-lado).
type Siembra struct {
	ID               string
	BloqueCamaLadoID string
	VariedadID       string
	AreaID           string
	DensidadID       string
	FechaSiembra     time.Time
	FechaInicioCorte *time.Time
	FechaFinCorte    *time.Time
	Estado           string // Activa, Finalizada
	UsuarioID        string
	FechaRegistro    time.Time
}

// EstaActiva indica si la siembra admite cambios (cortes, pérdidas, edición).
func (s *Siembra) EstaActiva() bool {
	return s.Estado == EstadoActiva
}

// SiembraDetalle es la siembra con sus catálogos resueltos, usada por listados y reportes.
type SiembraDetalle struct {
	Siembra
	Bloque         string
	Cama           string
	Lado           string
	BloqueID       string
	Flor           string
	Color          string
	Variedad       string
	AreaNombre     string
	Area           float64 // m²
	DensidadNombre string
	Densidad       float64 // plantas/m²
	Usuario        string
}
