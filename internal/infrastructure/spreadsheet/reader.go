// Package spreadsheet lee archivos CSV/XLSX para la importación y escribe los libros XLSX de exportación.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var _ importacion.SheetReader = (*Reader)(nil)

const bom = "\uFEFF"

// Reader implementa importacion.SheetReader.
type Reader struct{}

// NewReader crea el lector.
func NewReader() *Reader {
	return &Reader{}
}

// Read carga la primera hoja. Los CSV que no son UTF-8 válido se decodifican como Windows-1252;
// el separador es coma o punto y coma según el encabezado. Los XLSX se leen con valores crudos,
// de modo que las fechas llegan como seriales de Excel.
func (rd *Reader) Read(r io.Reader, formato string) (*importacion.Hoja, error) {
	switch formato {
	case importacion.FormatoCSV:
		return leerCSV(r)
	case importacion.FormatoXLSX:
		return leerXLSX(r)
	}
	return nil, fmt.Errorf("spreadsheet: formato %q no soportado", formato)
}

func leerCSV(r io.Reader) (*importacion.Hoja, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer csv: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: decodificar csv: %w", err)
		}
	}
	raw = bytes.TrimPrefix(raw, []byte(bom))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = separador(raw)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var filas [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: csv: %w", err)
		}
		filas = append(filas, rec)
	}
	return hoja(filas), nil
}

// separador elige ';' cuando la primera línea tiene más puntos y coma que comas.
func separador(raw []byte) rune {
	linea, _, _ := bytes.Cut(raw, []byte("\n"))
	if bytes.Count(linea, []byte(";")) > bytes.Count(linea, []byte(",")) {
		return ';'
	}
	return ','
}

func leerXLSX(r io.Reader) (*importacion.Hoja, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: abrir xlsx: %w", err)
	}
	defer f.Close()

	hojas := f.GetSheetList()
	if len(hojas) == 0 {
		return nil, errors.New("spreadsheet: el libro no tiene hojas")
	}
	filas, err := f.GetRows(hojas[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: leer hoja %q: %w", hojas[0], err)
	}
	return hoja(filas), nil
}

func hoja(filas [][]string) *importacion.Hoja {
	h := &importacion.Hoja{}
	if len(filas) == 0 {
		return h
	}
	h.Encabezados = make([]string, len(filas[0]))
	for i, e := range filas[0] {
		h.Encabezados[i] = strings.TrimSpace(strings.TrimPrefix(e, bom))
	}
	h.Filas = filas[1:]
	return h
}
