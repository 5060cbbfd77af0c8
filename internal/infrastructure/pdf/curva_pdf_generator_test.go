package pdf_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/infrastructure/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDePrueba(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 24))
	for x := range 40 {
		img.Set(x, 12, color.RGBA{R: 46, G: 125, B: 50, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateCurvaPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	curva := &dto.CurvaResponse{
		VariedadID: "v1",
		Variedad:   "DON PEDRO",
		Flor:       "CLAVEL",
		Color:      "ROJO",
		Puntos: []produccion.Punto{
			{Dia: 0},
			{Dia: 10, IndicePromedio: 10, MinIndice: 10, MaxIndice: 10, NumDatos: 1},
			{Dia: 20, IndicePromedio: 20, MinIndice: 20, MaxIndice: 20, NumDatos: 1},
		},
		CicloVegetativo:    70,
		CicloProductivo:    10,
		CicloTotal:         80,
		TotalSiembras:      1,
		SiembrasConDatos:   1,
		TotalPlantas:       1000,
		TotalTallos:        300,
		PromedioProduccion: 30,
	}

	t.Run("con gráfico", func(t *testing.T) {
		b, err := g.GenerateCurvaPDF(context.Background(), curva, pngDePrueba(t))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	})

	t.Run("sin gráfico ni puntos", func(t *testing.T) {
		vacia := *curva
		vacia.Puntos = nil
		b, err := g.GenerateCurvaPDF(context.Background(), &vacia, nil)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
	})
}
