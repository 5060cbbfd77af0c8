package reportes

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/internal/domain/produccion"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

const (
	dashboardTopVariedades = 5
	dashboardTopBloques    = 8
	dashboardRecientes     = 5
	indiceMaximoGrafico    = 100.0
)

// Filtros de tiempo del dashboard.
const (
	FiltroTodo   = "todo"
	FiltroAnio   = "anio"
	FiltroMes    = "mes"
	FiltroSemana = "semana"
)

// DashboardUseCase estadísticas generales e índices de aprovechamiento.
//
// Los índices por variedad, bloque y flor se calculan sobre siembras finalizadas;
// los conteos de siembras y cortes sobre todas las que cumplen el filtro.
type DashboardUseCase struct {
	repo   repository.ReporteRepository
	charts ChartRenderer
	now    func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.ReporteRepository, charts ChartRenderer) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, charts: charts, now: time.Now}
}

// Get construye el dashboard para los filtros dados.
//
// Cinco consultas en paralelo:
//  1. ConteoSiembras      → activas / históricas / total
//  2. ConteoCortes        → promedio de cortes por siembra
//  3. ContarVariedades    → total de variedades
//  4. Aprovechamiento     → filas (variedad, bloque) de siembras finalizadas
//  5. UltimasSiembras     → siembras recientes
func (uc *DashboardUseCase) Get(ctx context.Context, in dto.DashboardRequest) (*dto.DashboardResponse, error) {
	filtro, err := uc.filtro(in)
	if err != nil {
		return nil, err
	}

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type siembrasResult struct {
		c   repository.ConteoSiembras
		err error
	}
	type cortesResult struct {
		c   repository.ConteoCortes
		err error
	}
	type countResult struct {
		n   int
		err error
	}
	type filasResult struct {
		rows []repository.FilaAprovechamiento
		err  error
	}
	type recientesResult struct {
		list []*entity.SiembraDetalle
		err  error
	}

	siembrasCh := make(chan siembrasResult, 1)
	cortesCh := make(chan cortesResult, 1)
	variedadesCh := make(chan countResult, 1)
	filasCh := make(chan filasResult, 1)
	recientesCh := make(chan recientesResult, 1)

	go func() {
		c, err := uc.repo.ConteoSiembras(ctx, filtro)
		siembrasCh <- siembrasResult{c, err}
	}()
	go func() {
		c, err := uc.repo.ConteoCortes(ctx, filtro)
		cortesCh <- cortesResult{c, err}
	}()
	go func() {
		n, err := uc.repo.ContarVariedades(ctx)
		variedadesCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.repo.Aprovechamiento(ctx, filtro)
		filasCh <- filasResult{rows, err}
	}()
	go func() {
		list, err := uc.repo.UltimasSiembras(ctx, in.VariedadID, dashboardRecientes)
		recientesCh <- recientesResult{list, err}
	}()

	siembras := <-siembrasCh
	cortes := <-cortesCh
	variedades := <-variedadesCh
	filas := <-filasCh
	recientes := <-recientesCh

	if siembras.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de siembras: %w", siembras.err)
	}
	if cortes.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de cortes: %w", cortes.err)
	}
	if variedades.err != nil {
		return nil, fmt.Errorf("dashboard: variedades: %w", variedades.err)
	}
	if filas.err != nil {
		return nil, fmt.Errorf("dashboard: aprovechamiento: %w", filas.err)
	}
	if recientes.err != nil {
		return nil, fmt.Errorf("dashboard: siembras recientes: %w", recientes.err)
	}

	// ── Estadísticas globales ─────────────────────────────────────────────────
	out := &dto.DashboardResponse{
		SiembrasActivas:    siembras.c.Activas,
		SiembrasHistoricas: siembras.c.Total - siembras.c.Activas,
		TotalSiembras:      siembras.c.Total,
		TotalVariedades:    variedades.n,
	}
	if cortes.c.SiembrasConCortes > 0 {
		out.PromedioCortes = produccion.Redondear(float64(cortes.c.Cortes)/float64(cortes.c.SiembrasConCortes), 2)
	}
	for _, r := range filas.rows {
		out.TotalTallos += r.Tallos
		out.TotalPlantas += r.Plantas
	}
	out.IndiceAprovechamiento = produccion.IndiceAprovechamiento(out.TotalTallos, out.TotalPlantas)

	// ── Agrupaciones ──────────────────────────────────────────────────────────
	porVariedad := agrupar(filas.rows, func(r repository.FilaAprovechamiento) (string, string, string) {
		return r.VariedadID, r.Variedad, r.Flor + " " + r.Color
	})
	porBloque := agrupar(filas.rows, func(r repository.FilaAprovechamiento) (string, string, string) {
		return r.BloqueID, r.Bloque, ""
	})
	porFlor := agrupar(filas.rows, func(r repository.FilaAprovechamiento) (string, string, string) {
		return r.FlorID, r.Flor, ""
	})
	out.TopVariedades = porVariedad[:min(len(porVariedad), dashboardTopVariedades)]
	out.TopBloques = porBloque[:min(len(porBloque), dashboardTopBloques)]
	out.Flores = porFlor

	out.SiembrasRecientes = make([]dto.SiembraRecienteItem, 0, len(recientes.list))
	for _, s := range recientes.list {
		u := entity.BloqueCamaLado{Bloque: s.Bloque, Cama: s.Cama, Lado: s.Lado}
		out.SiembrasRecientes = append(out.SiembrasRecientes, dto.SiembraRecienteItem{
			ID:           s.ID,
			Ubicacion:    u.Etiqueta(),
			FechaSiembra: dto.FormatFecha(s.FechaSiembra),
			Estado:       s.Estado,
		})
	}

	// ── Gráficos ──────────────────────────────────────────────────────────────
	seleccion := ""
	if in.VariedadID != "" && len(filas.rows) > 0 {
		seleccion = filas.rows[0].Variedad
	}
	if len(out.TopVariedades) > 0 {
		titulo := fmt.Sprintf("Top %d Variedades por Índice de Aprovechamiento", dashboardTopVariedades)
		if seleccion != "" {
			titulo = "Índice de Aprovechamiento: " + seleccion
		}
		g := graficoIndices(titulo, "Variedad", out.TopVariedades)
		if out.GraficoVariedades, err = barrasBase64(uc.charts, g); err != nil {
			return nil, err
		}
	}
	if len(out.TopBloques) > 0 {
		titulo := "Aprovechamiento por Bloque"
		if seleccion != "" {
			titulo += ": " + seleccion
		}
		g := graficoIndices(titulo, "Bloque", out.TopBloques)
		g.Horizontal = true
		if out.GraficoBloques, err = barrasBase64(uc.charts, g); err != nil {
			return nil, err
		}
	}
	if len(out.Flores) > 0 {
		titulo := "Aprovechamiento por Tipo de Flor"
		if seleccion != "" {
			titulo += ": " + seleccion
		}
		g := graficoIndices(titulo, "Flor", out.Flores)
		if out.GraficoFlores, err = barrasBase64(uc.charts, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// filtro traduce filtro_tiempo a un rango de fechas inclusivo.
// anio y mes usan el año/mes actual cuando no vienen; semana sin número no filtra.
func (uc *DashboardUseCase) filtro(in dto.DashboardRequest) (repository.DashboardFiltro, error) {
	f := repository.DashboardFiltro{VariedadID: in.VariedadID}
	now := uc.now()
	anio := in.Anio
	if anio == 0 {
		anio = now.Year()
	}
	if in.FiltroTiempo == "" || in.FiltroTiempo == FiltroTodo {
		return f, nil
	}
	if anio < 1900 || anio > 9999 {
		return f, fmt.Errorf("%w: filtro_anio fuera de rango", domain.ErrInvalidInput)
	}

	var desde, hasta time.Time
	switch in.FiltroTiempo {
	case FiltroAnio:
		desde = time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC)
		hasta = desde.AddDate(1, 0, -1)
	case FiltroMes:
		mes := in.Mes
		if mes == 0 {
			mes = int(now.Month())
		}
		if mes < 1 || mes > 12 {
			return f, fmt.Errorf("%w: filtro_mes debe estar entre 1 y 12", domain.ErrInvalidInput)
		}
		desde = time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
		hasta = desde.AddDate(0, 1, -1)
	case FiltroSemana:
		if in.Semana == 0 {
			return f, nil
		}
		if in.Semana < 1 || in.Semana > 53 {
			return f, fmt.Errorf("%w: filtro_semana debe estar entre 1 y 53", domain.ErrInvalidInput)
		}
		desde, hasta = RangoSemana(anio, in.Semana)
	default:
		return f, fmt.Errorf("%w: filtro_tiempo %q no válido", domain.ErrInvalidInput, in.FiltroTiempo)
	}
	f.Desde, f.Hasta = &desde, &hasta
	return f, nil
}

// RangoSemana devuelve lunes y domingo de la semana n, contando desde el lunes
// de la semana que contiene el 1 de enero.
func RangoSemana(anio, n int) (time.Time, time.Time) {
	enero := time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC)
	lunes := enero.AddDate(0, 0, -((int(enero.Weekday()) + 6) % 7))
	inicio := lunes.AddDate(0, 0, 7*(n-1))
	return inicio, inicio.AddDate(0, 0, 6)
}

type acumulado struct {
	item    dto.AprovechamientoItem
	primero int
}

// agrupar suma filas por la clave devuelta por key y ordena por índice descendente.
// Los grupos sin plantas se descartan.
func agrupar(rows []repository.FilaAprovechamiento, key func(repository.FilaAprovechamiento) (id, nombre, detalle string)) []dto.AprovechamientoItem {
	grupos := make(map[string]*acumulado)
	for i, r := range rows {
		id, nombre, detalle := key(r)
		g, ok := grupos[id]
		if !ok {
			g = &acumulado{item: dto.AprovechamientoItem{ID: id, Nombre: nombre, Detalle: detalle}, primero: i}
			grupos[id] = g
		}
		g.item.TotalTallos += r.Tallos
		g.item.TotalPlantas += r.Plantas
		g.item.TotalSiembras += r.Siembras
	}

	lista := make([]*acumulado, 0, len(grupos))
	for _, g := range grupos {
		if g.item.TotalPlantas <= 0 {
			continue
		}
		g.item.IndiceAprovechamiento = produccion.IndiceAprovechamiento(g.item.TotalTallos, g.item.TotalPlantas)
		lista = append(lista, g)
	}
	slices.SortFunc(lista, func(a, b *acumulado) int {
		return cmp.Or(cmp.Compare(b.item.IndiceAprovechamiento, a.item.IndiceAprovechamiento), cmp.Compare(a.primero, b.primero))
	})

	out := make([]dto.AprovechamientoItem, 0, len(lista))
	for _, g := range lista {
		out = append(out, g.item)
	}
	return out
}

func graficoIndices(titulo, eje string, items []dto.AprovechamientoItem) GraficoBarras {
	g := GraficoBarras{
		Titulo:     titulo,
		EjeX:       eje,
		EjeY:       "Índice de Aprovechamiento (%)",
		Porcentaje: true,
		YMax:       indiceMaximoGrafico,
	}
	for _, it := range items {
		g.Etiquetas = append(g.Etiquetas, it.Nombre)
		g.Valores = append(g.Valores, it.IndiceAprovechamiento)
	}
	return g
}
