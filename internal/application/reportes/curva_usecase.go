package reportes

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// diasUltimoCiclo ventana de siembra del filtro ultimo_ciclo.
const diasUltimoCiclo = 90

// CurvaUseCase curva de producción por variedad (JSON, PNG y PDF) y análisis de ciclos.
type CurvaUseCase struct {
	variedades repository.VariedadRepository
	siembras   repository.SiembraRepository
	charts     ChartRenderer
	pdf        CurvaPDFGenerator
	params     produccion.Parametros
	now        func() time.Time
}

// NewCurvaUseCase construye el caso de uso; params viene de la configuración de reportes.
func NewCurvaUseCase(
	variedades repository.VariedadRepository,
	siembras repository.SiembraRepository,
	charts ChartRenderer,
	pdf CurvaPDFGenerator,
	params produccion.Parametros,
) *CurvaUseCase {
	return &CurvaUseCase{
		variedades: variedades,
		siembras:   siembras,
		charts:     charts,
		pdf:        pdf,
		params:     params,
		now:        time.Now,
	}
}

// Curva calcula la curva de la variedad e incluye el gráfico en base64.
func (uc *CurvaUseCase) Curva(ctx context.Context, variedadID string, in dto.CurvaRequest) (*dto.CurvaResponse, error) {
	out, g, err := uc.calcular(ctx, variedadID, in)
	if err != nil {
		return nil, err
	}
	png, err := uc.charts.Curva(g)
	if err != nil {
		return nil, fmt.Errorf("curva: gráfico: %w", err)
	}
	out.Grafico = base64.StdEncoding.EncodeToString(png)
	return out, nil
}

// CurvaPNG devuelve solo el gráfico de la curva.
func (uc *CurvaUseCase) CurvaPNG(ctx context.Context, variedadID string, in dto.CurvaRequest) ([]byte, error) {
	_, g, err := uc.calcular(ctx, variedadID, in)
	if err != nil {
		return nil, err
	}
	png, err := uc.charts.Curva(g)
	if err != nil {
		return nil, fmt.Errorf("curva: gráfico: %w", err)
	}
	return png, nil
}

// CurvaPDF genera el reporte PDF (resumen, gráfico y tabla de puntos) y su nombre de archivo.
func (uc *CurvaUseCase) CurvaPDF(ctx context.Context, variedadID string, in dto.CurvaRequest) (pdfBytes []byte, filename string, err error) {
	out, g, err := uc.calcular(ctx, variedadID, in)
	if err != nil {
		return nil, "", err
	}
	png, err := uc.charts.Curva(g)
	if err != nil {
		return nil, "", fmt.Errorf("curva: gráfico: %w", err)
	}
	pdfBytes, err = uc.pdf.GenerateCurvaPDF(ctx, out, png)
	if err != nil {
		return nil, "", fmt.Errorf("curva: generación de pdf fallida: %w", err)
	}
	filename = fmt.Sprintf("curva_%s_%s.pdf", nombreArchivo(out.Variedad), uc.now().Format("20060102"))
	return pdfBytes, filename, nil
}

// Ciclos estima los ciclos vegetativo, productivo y total observados de la variedad.
func (uc *CurvaUseCase) Ciclos(ctx context.Context, variedadID string) (*produccion.AnalisisCiclos, error) {
	if _, err := uc.variedad(ctx, variedadID); err != nil {
		return nil, err
	}
	muestras, err := uc.siembras.ListMuestras(ctx, repository.MuestraFiltro{VariedadID: variedadID})
	if err != nil {
		return nil, fmt.Errorf("curva: muestras: %w", err)
	}
	a := produccion.AnalizarCiclos(muestras)
	return &a, nil
}

func (uc *CurvaUseCase) calcular(ctx context.Context, variedadID string, in dto.CurvaRequest) (*dto.CurvaResponse, GraficoCurva, error) {
	periodo, err := filtroPeriodo(in.PeriodoInicio, in.PeriodoFin)
	if err != nil {
		return nil, GraficoCurva{}, err
	}
	v, err := uc.variedad(ctx, variedadID)
	if err != nil {
		return nil, GraficoCurva{}, err
	}

	filtro := repository.MuestraFiltro{VariedadID: variedadID, BloqueID: in.BloqueID}
	if in.UltimoCiclo {
		hoy := uc.now()
		desde := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -diasUltimoCiclo)
		filtro.SembradaDesde = &desde
	}
	muestras, err := uc.siembras.ListMuestras(ctx, filtro)
	if err != nil {
		return nil, GraficoCurva{}, fmt.Errorf("curva: muestras: %w", err)
	}

	c := produccion.CalcularCurva(muestras, periodo, uc.params)
	out := &dto.CurvaResponse{
		VariedadID:         v.ID,
		Variedad:           v.Variedad,
		Flor:               v.Flor,
		Color:              v.Color,
		Puntos:             c.Puntos,
		CicloVegetativo:    c.CicloVegetativo,
		CicloProductivo:    c.CicloProductivo,
		CicloTotal:         c.CicloTotal,
		MaxCicloHistorico:  c.MaxCicloHistorico,
		TotalSiembras:      c.TotalSiembras,
		SiembrasConDatos:   c.SiembrasConDatos,
		TotalPlantas:       c.TotalPlantas,
		TotalTallos:        c.TotalTallos,
		PromedioProduccion: c.PromedioProduccion,
	}
	g := GraficoCurva{
		Titulo:          "Curva de Producción: " + v.NombreCompleto(),
		Puntos:          c.Puntos,
		Tendencia:       produccion.SuavizarCurva(c.Puntos, c.CicloTotal, uc.params.SuavizadoMinimoPuntos),
		CicloVegetativo: c.CicloVegetativo,
		CicloTotal:      c.CicloTotal,
		YMax:            produccion.LimiteEjeY(c.Puntos),
	}
	return out, g, nil
}

func (uc *CurvaUseCase) variedad(ctx context.Context, id string) (*entity.Variedad, error) {
	v, err := uc.variedades.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("curva: variedad: %w", err)
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// filtroPeriodo exige ambos extremos YYYYWW o ninguno.
func filtroPeriodo(inicio, fin string) (produccion.FiltroPeriodo, error) {
	if inicio == "" && fin == "" {
		return produccion.FiltroPeriodo{}, nil
	}
	if inicio == "" || fin == "" {
		return produccion.FiltroPeriodo{}, fmt.Errorf("%w: indique periodo_inicio y periodo_fin", domain.ErrInvalidInput)
	}
	desde, err := produccion.ParsePeriodo(inicio)
	if err != nil {
		return produccion.FiltroPeriodo{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	hasta, err := produccion.ParsePeriodo(fin)
	if err != nil {
		return produccion.FiltroPeriodo{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if desde > hasta {
		return produccion.FiltroPeriodo{}, fmt.Errorf("%w: periodo_inicio posterior a periodo_fin", domain.ErrInvalidInput)
	}
	return produccion.FiltroPeriodo{Desde: desde, Hasta: hasta}, nil
}

func nombreArchivo(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '_'
		}
		return -1
	}, s)
}
