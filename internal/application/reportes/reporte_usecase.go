package reportes

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

const (
	topVariedadesProduccion = 10
	cortesGraficoDias       = 10
	layoutExport            = "02/01/2006"
)

// Tipos de exportación.
const (
	ExportSiembras = "siembras"
	ExportCortes   = "cortes"
)

// ReporteUseCase reportes agregados de producción, diagnóstico y exportación.
type ReporteUseCase struct {
	repo   repository.ReporteRepository
	charts ChartRenderer
	xlsx   SpreadsheetWriter
	now    func() time.Time
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(repo repository.ReporteRepository, charts ChartRenderer, xlsx SpreadsheetWriter) *ReporteUseCase {
	return &ReporteUseCase{repo: repo, charts: charts, xlsx: xlsx, now: time.Now}
}

// ProduccionPorVariedad suma tallos por variedad (desc) y grafica las 10 primeras.
func (uc *ReporteUseCase) ProduccionPorVariedad(ctx context.Context) (*dto.ProduccionVariedadResponse, error) {
	rows, err := uc.repo.ProduccionPorVariedad(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: producción por variedad: %w", err)
	}
	out := &dto.ProduccionVariedadResponse{Items: make([]dto.ProduccionVariedadItem, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, dto.ProduccionVariedadItem{
			VariedadID:  r.VariedadID,
			Variedad:    r.Variedad,
			Flor:        r.Flor,
			Color:       r.Color,
			TotalTallos: r.TotalTallos,
		})
	}
	if len(rows) == 0 {
		return out, nil
	}

	top := rows[:min(len(rows), topVariedadesProduccion)]
	g := GraficoBarras{
		Titulo: fmt.Sprintf("Top %d Variedades por Producción de Tallos", topVariedadesProduccion),
		EjeX:   "Variedad",
		EjeY:   "Total de Tallos",
	}
	for _, r := range top {
		g.Etiquetas = append(g.Etiquetas, r.Variedad)
		g.Valores = append(g.Valores, float64(r.TotalTallos))
	}
	if out.Grafico, err = uc.barrasBase64(g); err != nil {
		return nil, err
	}
	return out, nil
}

// ProduccionPorBloque suma tallos y siembras distintas por bloque.
func (uc *ReporteUseCase) ProduccionPorBloque(ctx context.Context) (*dto.ProduccionBloqueResponse, error) {
	rows, err := uc.repo.ProduccionPorBloque(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: producción por bloque: %w", err)
	}
	out := &dto.ProduccionBloqueResponse{Items: make([]dto.ProduccionBloqueItem, 0, len(rows))}
	g := GraficoBarras{Titulo: "Producción por Bloque", EjeX: "Bloque", EjeY: "Total de Tallos"}
	for _, r := range rows {
		item := dto.ProduccionBloqueItem{
			BloqueID:      r.BloqueID,
			Bloque:        r.Bloque,
			TotalTallos:   r.TotalTallos,
			TotalSiembras: r.TotalSiembras,
		}
		if r.TotalSiembras > 0 {
			item.PromedioPorSiembra = produccion.Redondear(float64(r.TotalTallos)/float64(r.TotalSiembras), 2)
		}
		out.Items = append(out.Items, item)
		g.Etiquetas = append(g.Etiquetas, r.Bloque)
		g.Valores = append(g.Valores, float64(r.TotalTallos))
	}
	if len(rows) == 0 {
		return out, nil
	}
	if out.Grafico, err = uc.barrasBase64(g); err != nil {
		return nil, err
	}
	return out, nil
}

// DiasProduccion agrupa por variedad los días desde la siembra de cada número de corte.
// Cada variedad lleva un gráfico de sus 10 primeros cortes con la recta de mínimos cuadrados.
func (uc *ReporteUseCase) DiasProduccion(ctx context.Context) (*dto.DiasProduccionResponse, error) {
	rows, err := uc.repo.DiasProduccion(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: días de producción: %w", err)
	}
	out := &dto.DiasProduccionResponse{Variedades: []dto.DiasVariedadItem{}}
	idx := make(map[string]int)
	for _, r := range rows {
		i, ok := idx[r.VariedadID]
		if !ok {
			i = len(out.Variedades)
			idx[r.VariedadID] = i
			out.Variedades = append(out.Variedades, dto.DiasVariedadItem{
				VariedadID: r.VariedadID,
				Variedad:   r.Variedad,
				Flor:       r.Flor,
				Color:      r.Color,
			})
		}
		out.Variedades[i].Cortes = append(out.Variedades[i].Cortes, dto.DiasCorteItem{
			NumCorte:      r.NumCorte,
			DiasPromedio:  produccion.Redondear(r.DiasPromedio, 1),
			DiasMinimo:    r.DiasMinimo,
			DiasMaximo:    r.DiasMaximo,
			TotalSiembras: r.TotalSiembras,
		})
	}

	for i := range out.Variedades {
		v := &out.Variedades[i]
		cortes := v.Cortes[:min(len(v.Cortes), cortesGraficoDias)]
		g := GraficoBarras{
			Titulo: recortar(fmt.Sprintf("Días Promedio por Corte: %s (%s - %s)", v.Variedad, v.Flor, v.Color), 70),
			EjeX:   "Número de Corte",
			EjeY:   "Días Promedio",
		}
		xs := make([]float64, 0, len(cortes))
		for j, c := range cortes {
			g.Etiquetas = append(g.Etiquetas, fmt.Sprintf("Corte %d", c.NumCorte))
			g.Valores = append(g.Valores, c.DiasPromedio)
			xs = append(xs, float64(j))
		}
		if len(cortes) > 1 {
			a, b := produccion.TendenciaLineal(xs, g.Valores)
			v.Intercepto = produccion.Redondear(a, 4)
			v.Pendiente = produccion.Redondear(b, 4)
			g.Tendencia = &Recta{Intercepto: a, Pendiente: b}
		}
		if v.Grafico, err = uc.barrasBase64(g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Diagnostico métricas de calidad de datos tras una importación.
func (uc *ReporteUseCase) Diagnostico(ctx context.Context) (*dto.DiagnosticoResponse, error) {
	d, err := uc.repo.Diagnostico(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: diagnóstico: %w", err)
	}
	out := &dto.DiagnosticoResponse{
		TotalSiembras:         d.TotalSiembras,
		TotalCortes:           d.TotalCortes,
		TotalVariedades:       d.TotalVariedades,
		TotalBloques:          d.TotalBloques,
		TotalCamas:            d.TotalCamas,
		SiembrasSinCortes:     d.SiembrasSinCortes,
		CortesIndiceAlto:      d.CortesIndiceAlto,
		VariedadesConSiembras: d.VariedadesConSiembras,
		VariedadesConCurvas:   make([]dto.VariedadConDatosItem, 0, len(d.VariedadesConCurvas)),
	}
	for _, v := range d.VariedadesConCurvas {
		out.VariedadesConCurvas = append(out.VariedadesConCurvas, dto.VariedadConDatosItem{
			VariedadID: v.VariedadID,
			Variedad:   v.Variedad,
			Flor:       v.Flor,
			Color:      v.Color,
			Siembras:   v.Siembras,
			Cortes:     v.Cortes,
		})
	}
	return out, nil
}

// Exportar escribe en w el XLSX de siembras o cortes y devuelve el nombre del archivo.
func (uc *ReporteUseCase) Exportar(ctx context.Context, tipo string, w io.Writer) (string, error) {
	var t Tabla
	switch tipo {
	case ExportSiembras:
		rows, err := uc.repo.ExportSiembras(ctx)
		if err != nil {
			return "", fmt.Errorf("reportes: exportar siembras: %w", err)
		}
		t = tablaSiembras(rows)
	case ExportCortes:
		rows, err := uc.repo.ExportCortes(ctx)
		if err != nil {
			return "", fmt.Errorf("reportes: exportar cortes: %w", err)
		}
		t = tablaCortes(rows)
	default:
		return "", fmt.Errorf("%w: tipo de reporte no válido %q", domain.ErrInvalidInput, tipo)
	}
	if err := uc.xlsx.WriteXLSX(w, t); err != nil {
		return "", fmt.Errorf("reportes: escribir xlsx: %w", err)
	}
	return fmt.Sprintf("%s_%s.xlsx", tipo, uc.now().Format("20060102")), nil
}

func tablaSiembras(rows []repository.ExportSiembra) Tabla {
	t := Tabla{
		Hoja: "Siembras",
		Encabezados: []string{
			"ID Siembra", "Bloque", "Cama", "Lado", "Variedad", "Flor", "Color",
			"Fecha Siembra", "Fecha Inicio Corte", "Estado",
		},
		Filas: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		inicio := ""
		if r.FechaInicioCorte != nil {
			inicio = r.FechaInicioCorte.Format(layoutExport)
		}
		t.Filas = append(t.Filas, []any{
			r.ID, r.Bloque, r.Cama, r.Lado, r.Variedad, r.Flor, r.Color,
			r.FechaSiembra.Format(layoutExport), inicio, r.Estado,
		})
	}
	return t
}

func tablaCortes(rows []repository.ExportCorte) Tabla {
	t := Tabla{
		Hoja: "Cortes",
		Encabezados: []string{
			"ID Corte", "ID Siembra", "Bloque", "Cama", "Lado", "Variedad", "Corte #",
			"Fecha Corte", "Cantidad Tallos", "Fecha Siembra", "Días desde Siembra",
		},
		Filas: make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		t.Filas = append(t.Filas, []any{
			r.ID, r.SiembraID, r.Bloque, r.Cama, r.Lado, r.Variedad, r.NumCorte,
			r.FechaCorte.Format(layoutExport), r.CantidadTallos,
			r.FechaSiembra.Format(layoutExport), r.DiasDesdeSiembra,
		})
	}
	return t
}

func (uc *ReporteUseCase) barrasBase64(g GraficoBarras) (string, error) {
	return barrasBase64(uc.charts, g)
}

func barrasBase64(charts ChartRenderer, g GraficoBarras) (string, error) {
	png, err := charts.Barras(g)
	if err != nil {
		return "", fmt.Errorf("reportes: gráfico %q: %w", g.Titulo, err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// recortar limita s a n runas.
func recortar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
