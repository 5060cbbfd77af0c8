package entity

import "strings"

// Flor es la especie (p. ej. CLAVEL). Flor y FlorAbrev son únicos.
type Flor struct {
	ID        string
	Flor      string
	FlorAbrev string
}

// Color del tallo. Color y ColorAbrev son únicos.
type Color struct {
	ID         string
	Color      string
	ColorAbrev string
}

// FlorColor combina flor y color; el par es único.
type FlorColor struct {
	ID      string
	FlorID  string
	ColorID string
	Flor    string
	Color   string
}

// Variedad pertenece a una combinación flor-color.
type Variedad struct {
	ID          string
	Variedad    string
	FlorColorID string
	Flor        string
	Color       string
}

// NombreCompleto devuelve "Flor Color Variedad" omitiendo las partes vacías.
func (v *Variedad) NombreCompleto() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Flor, v.Color, v.Variedad} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
