package dto

import "github.com/jhoicas/cpc-api/internal/domain/produccion"

// ProduccionVariedadItem tallos totales de una variedad.
type ProduccionVariedadItem struct {
	VariedadID  string `json:"variedad_id"`
	Variedad    string `json:"variedad"`
	Flor        string `json:"flor"`
	Color       string `json:"color"`
	TotalTallos int    `json:"total_tallos"`
}

// ProduccionVariedadResponse reporte de producción por variedad con gráfico top 10 en base64.
type ProduccionVariedadResponse struct {
	Items   []ProduccionVariedadItem `json:"items"`
	Grafico string                   `json:"grafico,omitempty"`
}

// ProduccionBloqueItem tallos por bloque.
type ProduccionBloqueItem struct {
	BloqueID           string  `json:"bloque_id"`
	Bloque             string  `json:"bloque"`
	TotalTallos        int     `json:"total_tallos"`
	TotalSiembras      int     `json:"total_siembras"`
	PromedioPorSiembra float64 `json:"promedio_por_siembra"`
}

// ProduccionBloqueResponse reporte de producción por bloque.
type ProduccionBloqueResponse struct {
	Items   []ProduccionBloqueItem `json:"items"`
	Grafico string                 `json:"grafico,omitempty"`
}

// DiasCorteItem días desde la siembra hasta un número de corte.
type DiasCorteItem struct {
	NumCorte      int     `json:"num_corte"`
	DiasPromedio  float64 `json:"dias_promedio"`
	DiasMinimo    int     `json:"dias_minimo"`
	DiasMaximo    int     `json:"dias_maximo"`
	TotalSiembras int     `json:"total_siembras"`
}

// DiasVariedadItem días de producción de una variedad con su gráfico de tendencia.
type DiasVariedadItem struct {
	VariedadID string          `json:"variedad_id"`
	Variedad   string          `json:"variedad"`
	Flor       string          `json:"flor"`
	Color      string          `json:"color"`
	Cortes     []DiasCorteItem `json:"cortes"`
	Pendiente  float64         `json:"pendiente"`
	Intercepto float64         `json:"intercepto"`
	Grafico    string          `json:"grafico,omitempty"`
}

// DiasProduccionResponse reporte de días de producción por variedad.
type DiasProduccionResponse struct {
	Variedades []DiasVariedadItem `json:"variedades"`
}

// CurvaRequest parámetros de la curva de producción.
type CurvaRequest struct {
	BloqueID      string `query:"bloque_id"`
	UltimoCiclo   bool   `query:"ultimo_ciclo"`
	PeriodoInicio string `query:"periodo_inicio"`
	PeriodoFin    string `query:"periodo_fin"`
}

// CurvaResponse curva de producción de una variedad.
type CurvaResponse struct {
	VariedadID         string             `json:"variedad_id"`
	Variedad           string             `json:"variedad"`
	Flor               string             `json:"flor"`
	Color              string             `json:"color"`
	Puntos             []produccion.Punto `json:"puntos"`
	CicloVegetativo    int                `json:"ciclo_vegetativo"`
	CicloProductivo    int                `json:"ciclo_productivo"`
	CicloTotal         int                `json:"ciclo_total"`
	MaxCicloHistorico  int                `json:"max_ciclo_historico"`
	TotalSiembras      int                `json:"total_siembras"`
	SiembrasConDatos   int                `json:"siembras_con_datos"`
	TotalPlantas       int                `json:"total_plantas"`
	TotalTallos        int                `json:"total_tallos"`
	PromedioProduccion float64            `json:"promedio_produccion"`
	Grafico            string             `json:"grafico,omitempty"`
}

// DashboardRequest filtros del dashboard: filtro_tiempo todo | anio | mes | semana.
type DashboardRequest struct {
	FiltroTiempo string `query:"filtro_tiempo"`
	Anio         int    `query:"filtro_anio"`
	Mes          int    `query:"filtro_mes"`
	Semana       int    `query:"filtro_semana"`
	VariedadID   string `query:"variedad_id"`
}

// AprovechamientoItem índice de aprovechamiento de un grupo (variedad, bloque o flor).
type AprovechamientoItem struct {
	ID                    string  `json:"id"`
	Nombre                string  `json:"nombre"`
	Detalle               string  `json:"detalle,omitempty"`
	IndiceAprovechamiento float64 `json:"indice_aprovechamiento"`
	TotalTallos           int     `json:"total_tallos"`
	TotalPlantas          int     `json:"total_plantas"`
	TotalSiembras         int     `json:"total_siembras"`
}

// SiembraRecienteItem siembra reciente de la variedad filtrada.
type SiembraRecienteItem struct {
	ID           string `json:"id"`
	Ubicacion    string `json:"ubicacion"`
	FechaSiembra string `json:"fecha_siembra"`
	Estado       string `json:"estado"`
}

// DashboardResponse estadísticas generales del dashboard.
type DashboardResponse struct {
	SiembrasActivas       int                   `json:"siembras_activas"`
	SiembrasHistoricas    int                   `json:"siembras_historicas"`
	TotalSiembras         int                   `json:"total_siembras"`
	TotalVariedades       int                   `json:"total_variedades"`
	PromedioCortes        float64               `json:"promedio_cortes"`
	TotalTallos           int                   `json:"total_tallos"`
	TotalPlantas          int                   `json:"total_plantas"`
	IndiceAprovechamiento float64               `json:"indice_aprovechamiento"`
	TopVariedades         []AprovechamientoItem `json:"top_variedades"`
	TopBloques            []AprovechamientoItem `json:"top_bloques"`
	Flores                []AprovechamientoItem `json:"flores"`
	SiembrasRecientes     []SiembraRecienteItem `json:"siembras_recientes,omitempty"`
	GraficoVariedades     string                `json:"grafico_variedades,omitempty"`
	GraficoBloques        string                `json:"grafico_bloques,omitempty"`
	GraficoFlores         string                `json:"grafico_flores,omitempty"`
}

// VariedadConDatosItem variedad con datos para curva.
type VariedadConDatosItem struct {
	VariedadID string `json:"variedad_id"`
	Variedad   string `json:"variedad"`
	Flor       string `json:"flor"`
	Color      string `json:"color"`
	Siembras   int    `json:"siembras"`
	Cortes     int    `json:"cortes"`
}

// DiagnosticoResponse métricas de calidad de datos.
type DiagnosticoResponse struct {
	TotalSiembras         int                    `json:"total_siembras"`
	TotalCortes           int                    `json:"total_cortes"`
	TotalVariedades       int                    `json:"total_variedades"`
	TotalBloques          int                    `json:"total_bloques"`
	TotalCamas            int                    `json:"total_camas"`
	SiembrasSinCortes     int                    `json:"siembras_sin_cortes"`
	CortesIndiceAlto      int                    `json:"cortes_indice_alto"`
	VariedadesConSiembras int                    `json:"variedades_con_siembras"`
	VariedadesConCurvas   []VariedadConDatosItem `json:"variedades_con_curvas"`
}

// PrediccionResponse comparación del índice de un corte con cortes similares de la misma variedad.
type PrediccionResponse struct {
	CorteID          string  `json:"corte_id"`
	DiasDesdeSiembra int     `json:"dias_desde_siembra"`
	IndiceActual     float64 `json:"indice_actual"`
	IndicePromedio   float64 `json:"indice_promedio"`
	IndiceMaximo     float64 `json:"indice_maximo"`
	IndiceMinimo     float64 `json:"indice_minimo"`
	Diferencia       float64 `json:"diferencia"`
	NumReferencias   int     `json:"num_referencias"`
}
