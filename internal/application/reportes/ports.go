// Package reportes contiene los casos de uso de solo lectura: producción por
// variedad y bloque, días de producción, curva de producción, dashboard,
// diagnóstico de importación y exportación a Excel.
//
// Los gráficos, el PDF y la hoja de cálculo se generan a través de puertos que
// implementa internal/infrastructure.
package reportes

import (
	"context"
	"io"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
)

// Recta y = Intercepto + Pendiente·x.
type Recta struct {
	Intercepto float64
	Pendiente  float64
}

// GraficoBarras describe un gráfico de barras.
type GraficoBarras struct {
	Titulo     string
	EjeX       string
	EjeY       string
	Etiquetas  []string
	Valores    []float64
	Horizontal bool
	Porcentaje bool    // rotula cada barra con "v%"
	YMax       float64 // 0 = automático
	Tendencia  *Recta  // x es la posición de la barra (0, 1, ...)
}

// GraficoCurva describe el gráfico de la curva de producción.
type GraficoCurva struct {
	Titulo          string
	Puntos          []produccion.Punto
	Tendencia       produccion.Tendencia
	CicloVegetativo int
	CicloTotal      int
	YMax            float64
}

// ChartRenderer dibuja gráficos como PNG.
type ChartRenderer interface {
	Barras(g GraficoBarras) ([]byte, error)
	Curva(g GraficoCurva) ([]byte, error)
}

// CurvaPDFGenerator genera el reporte PDF de una curva con su gráfico PNG.
type CurvaPDFGenerator interface {
	GenerateCurvaPDF(ctx context.Context, curva *dto.CurvaResponse, grafico []byte) ([]byte, error)
}

// Tabla hoja con encabezados y filas.
type Tabla struct {
	Hoja        string
	Encabezados []string
	Filas       [][]any
}

// SpreadsheetWriter escribe una tabla como libro XLSX.
type SpreadsheetWriter interface {
	WriteXLSX(w io.Writer, t Tabla) error
}
