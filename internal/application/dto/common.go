package dto

import (
	"fmt"
	"time"
)

// LayoutFecha formato de fechas en la API (solo fecha).
const LayoutFecha = "2006-01-02"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseFecha interpreta YYYY-MM-DD.
func ParseFecha(s string) (time.Time, error) {
	t, err := time.Parse(LayoutFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: se espera YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseFechaOpcional devuelve nil para cadena vacía.
func ParseFechaOpcional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseFecha(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatFecha formatea una fecha como YYYY-MM-DD.
func FormatFecha(t time.Time) string {
	return t.Format(LayoutFecha)
}

// FormatFechaPtr formatea una fecha opcional.
func FormatFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(LayoutFecha)
	return &s
}
