// Package importacion carga catálogos e histórico de producción desde archivos CSV o Excel.
package importacion

import "io"

// Formatos de archivo aceptados.
const (
	FormatoCSV  = ".csv"
	FormatoXLSX = ".xlsx"
)

// Hoja contenido tabular de un archivo: la primera fila son los encabezados.
// Las celdas llegan como texto sin recortar.
type Hoja struct {
	Encabezados []string
	Filas       [][]string
}

// SheetReader lee la primera hoja de un archivo en el formato indicado (FormatoCSV o FormatoXLSX).
type SheetReader interface {
	Read(r io.Reader, formato string) (*Hoja, error)
}
