package spreadsheet_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/importacion"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
	"github.com/jhoicas/cpc-api/internal/infrastructure/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReader_CSVConBOMyPuntoYComa(t *testing.T) {
	in := "\uFEFFBLOQUE;CAMA;LADO\n01;003;A\n2;5;\n"
	h, err := spreadsheet.NewReader().Read(strings.NewReader(in), importacion.FormatoCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"BLOQUE", "CAMA", "LADO"}, h.Encabezados)
	require.Len(t, h.Filas, 2)
	assert.Equal(t, []string{"01", "003", "A"}, h.Filas[0])
	assert.Equal(t, []string{"2", "5", ""}, h.Filas[1])
}

func TestReader_CSVLatin1(t *testing.T) {
	// "CAUSA\nDAÑO\n" en Windows-1252: Ñ = 0xD1
	in := []byte{'C', 'A', 'U', 'S', 'A', '\n', 'D', 'A', 0xD1, 'O', '\n'}
	h, err := spreadsheet.NewReader().Read(bytes.NewReader(in), importacion.FormatoCSV)
	require.NoError(t, err)

	require.Len(t, h.Filas, 1)
	assert.Equal(t, "DAÑO", h.Filas[0][0])
}

func TestReader_FormatoNoSoportado(t *testing.T) {
	_, err := spreadsheet.NewReader().Read(strings.NewReader(""), ".ods")
	assert.Error(t, err)
}

func TestWriter_XLSXLegibleDeVuelta(t *testing.T) {
	tabla := reportes.Tabla{
		Hoja:        "Cortes",
		Encabezados: []string{"ID Corte", "Bloque", "Cantidad Tallos"},
		Filas: [][]any{
			{"c-1", "01", 120},
			{"c-2", "02", 80},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.NewWriter().WriteXLSX(&buf, tabla))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Cortes"}, f.GetSheetList())

	h, err := spreadsheet.NewReader().Read(bytes.NewReader(buf.Bytes()), importacion.FormatoXLSX)
	require.NoError(t, err)
	assert.Equal(t, tabla.Encabezados, h.Encabezados)
	require.Len(t, h.Filas, 2)
	assert.Equal(t, []string{"c-1", "01", "120"}, h.Filas[0])
	assert.Equal(t, []string{"c-2", "02", "80"}, h.Filas[1])
}
