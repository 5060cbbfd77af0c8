package spreadsheet

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/xuri/excelize/v2"
)

var _ reportes.SpreadsheetWriter = (*Writer)(nil)

const (
	anchoMinimo = 10
	anchoMaximo = 40
)

// Writer implementa reportes.SpreadsheetWriter con excelize.
type Writer struct{}

// NewWriter crea el escritor de libros XLSX.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteXLSX escribe la tabla en un libro de una hoja con encabezado en negrita, fijado al desplazar.
func (wr *Writer) WriteXLSX(w io.Writer, t reportes.Tabla) error {
	f := excelize.NewFile()
	defer f.Close()

	hoja := t.Hoja
	if hoja == "" {
		hoja = "Datos"
	}
	if err := f.SetSheetName(f.GetSheetName(0), hoja); err != nil {
		return fmt.Errorf("spreadsheet: nombre de hoja: %w", err)
	}

	estilo, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2E7D32"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("spreadsheet: estilo: %w", err)
	}

	anchos := make([]int, len(t.Encabezados))
	encabezados := make([]any, len(t.Encabezados))
	for i, e := range t.Encabezados {
		encabezados[i] = e
		anchos[i] = utf8.RuneCountInString(e)
	}
	if err := f.SetSheetRow(hoja, "A1", &encabezados); err != nil {
		return fmt.Errorf("spreadsheet: encabezados: %w", err)
	}
	if len(t.Encabezados) > 0 {
		ultima, err := excelize.CoordinatesToCellName(len(t.Encabezados), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(hoja, "A1", ultima, estilo); err != nil {
			return fmt.Errorf("spreadsheet: estilo encabezados: %w", err)
		}
	}

	for i, fila := range t.Filas {
		celda, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return fmt.Errorf("spreadsheet: fila %d: %w", i+1, err)
		}
		for j, v := range fila {
			if j < len(anchos) {
				anchos[j] = max(anchos[j], utf8.RuneCountInString(fmt.Sprint(v)))
			}
		}
	}

	for i, a := range anchos {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		ancho := float64(min(max(a+2, anchoMinimo), anchoMaximo))
		if err := f.SetColWidth(hoja, col, col, ancho); err != nil {
			return fmt.Errorf("spreadsheet: ancho de columna: %w", err)
		}
	}
	if err := f.SetPanes(hoja, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("spreadsheet: fijar encabezado: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet: escribir xlsx: %w", err)
	}
	return nil
}
