package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/reportes"
)

const (
	contentTypePNG  = "image/png"
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReporteHandler maneja reportes de producción, curva, dashboard, diagnóstico y exportación.
type ReporteHandler struct {
	reportes  *reportes.ReporteUseCase
	curva     *reportes.CurvaUseCase
	dashboard *reportes.DashboardUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(r *reportes.ReporteUseCase, curva *reportes.CurvaUseCase, dashboard *reportes.DashboardUseCase) *ReporteHandler {
	return &ReporteHandler{reportes: r, curva: curva, dashboard: dashboard}
}

// ProduccionVariedad godoc
// @Summary      Producción por variedad
// @Description  Tallos por variedad (flor y color) con gráfico de barras del top 10 en base64.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProduccionVariedadResponse
// @Router       /api/reportes/produccion-variedad [get]
func (h *ReporteHandler) ProduccionVariedad(c *fiber.Ctx) error {
	out, err := h.reportes.ProduccionPorVariedad(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProduccionBloque godoc
// @Summary      Producción por bloque
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProduccionBloqueResponse
// @Router       /api/reportes/produccion-bloque [get]
func (h *ReporteHandler) ProduccionBloque(c *fiber.Ctx) error {
	out, err := h.reportes.ProduccionPorBloque(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DiasProduccion godoc
// @Summary      Días de producción por corte
// @Description  Promedio, mínimo y máximo de días desde la siembra por variedad y número de corte, con tendencia lineal.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DiasProduccionResponse
// @Router       /api/reportes/dias-produccion [get]
func (h *ReporteHandler) DiasProduccion(c *fiber.Ctx) error {
	out, err := h.reportes.DiasProduccion(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Curva godoc
// @Summary      Curva de producción de una variedad
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID de la variedad"
// @Param        bloque_id       query  string  false  "limita a un bloque"
// @Param        ultimo_ciclo    query  bool    false  "solo siembras de los últimos 90 días"
// @Param        periodo_inicio  query  string  false  "semana ISO YYYYWW"
// @Param        periodo_fin     query  string  false  "semana ISO YYYYWW"
// @Success      200  {object}  dto.CurvaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/curva/{id} [get]
func (h *ReporteHandler) Curva(c *fiber.Ctx) error {
	in, err := curvaRequest(c)
	if err != nil {
		return validation(c, "parámetros de curva inválidos")
	}
	out, err := h.curva.Curva(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CurvaPNG godoc
// @Summary      Gráfico PNG de la curva de producción
// @Tags         reportes
// @Security     Bearer
// @Produce      png
// @Param        id  path  string  true  "ID de la variedad"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/curva/{id}/grafico [get]
func (h *ReporteHandler) CurvaPNG(c *fiber.Ctx) error {
	in, err := curvaRequest(c)
	if err != nil {
		return validation(c, "parámetros de curva inválidos")
	}
	png, err := h.curva.CurvaPNG(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypePNG)
	return c.Send(png)
}

// CurvaPDF godoc
// @Summary      Reporte PDF de la curva de producción
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la variedad"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reportes/curva/{id}/pdf [get]
func (h *ReporteHandler) CurvaPDF(c *fiber.Ctx) error {
	in, err := curvaRequest(c)
	if err != nil {
		return validation(c, "parámetros de curva inválidos")
	}
	pdfBytes, filename, err := h.curva.CurvaPDF(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypePDF)
	c.Attachment(filename)
	return c.Send(pdfBytes)
}

// Ciclos GET /api/reportes/ciclos/:id
func (h *ReporteHandler) Ciclos(c *fiber.Ctx) error {
	out, err := h.curva.Ciclos(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Dashboard de producción
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        filtro_tiempo  query  string  false  "todo | anio | mes | semana"
// @Param        filtro_anio    query  int     false  "año"
// @Param        filtro_mes     query  int     false  "mes 1-12"
// @Param        filtro_semana  query  int     false  "semana ISO"
// @Param        variedad_id    query  string  false  "ID de variedad"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *ReporteHandler) Dashboard(c *fiber.Ctx) error {
	var in dto.DashboardRequest
	if err := c.QueryParser(&in); err != nil {
		return validation(c, "filtros inválidos")
	}
	out, err := h.dashboard.Get(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Diagnostico godoc
// @Summary      Diagnóstico de datos importados
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DiagnosticoResponse
// @Router       /api/reportes/diagnostico [get]
func (h *ReporteHandler) Diagnostico(c *fiber.Ctx) error {
	out, err := h.reportes.Diagnostico(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Exportar godoc
// @Summary      Exportar siembras o cortes a Excel
// @Tags         reportes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        tipo  path  string  true  "siembras | cortes"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/exportar/{tipo} [get]
func (h *ReporteHandler) Exportar(c *fiber.Ctx) error {
	var buf bytes.Buffer
	filename, err := h.reportes.Exportar(c.Context(), c.Params("tipo"), &buf)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	c.Attachment(filename)
	return c.Send(buf.Bytes())
}

func curvaRequest(c *fiber.Ctx) (dto.CurvaRequest, error) {
	var in dto.CurvaRequest
	err := c.QueryParser(&in)
	return in, err
}
