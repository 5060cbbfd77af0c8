package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizarNombre deja un nombre de catálogo en forma canónica: NFC, mayúsculas y espacios simples.
func NormalizarNombre(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(norm.NFC.String(s)), " "))
}
