package entity

import "fmt"

// LadoUnico es el lado por defecto cuando la cama no distingue lados.
const LadoUnico = "ÚNICO"

// Bloque agrupa camas dentro de la finca.
type Bloque struct {
	ID     string
	Bloque string
}

// Cama es una franja de siembra dentro de un bloque.
type Cama struct {
	ID   string
	Cama string
}

// Lado de la cama (A, B, ÚNICO).
type Lado struct {
	ID   string
	Lado string
}

// BloqueCamaLado es la ubicación física de una siembra; la tripleta es única.
type BloqueCamaLado struct {
	ID       string
	BloqueID string
	CamaID   string
	LadoID   string
	Bloque   string
	Cama     string
	Lado     string
}

// Etiqueta devuelve la forma corta "B-C-L".
func (u *BloqueCamaLado) Etiqueta() string {
	return fmt.Sprintf("%s-%s-%s", u.Bloque, u.Cama, u.Lado)
}
