package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
	"github.com/jhoicas/cpc-api/internal/domain/repository"
)

// SiembraHandler maneja siembras y los registros que cuelgan de ellas (cortes, labores).
type SiembraHandler struct {
	siembras *usecase.SiembraUseCase
	cortes   *usecase.CorteUseCase
	labores  *usecase.LaborUseCase
}

// NewSiembraHandler construye el handler.
func NewSiembraHandler(siembras *usecase.SiembraUseCase, cortes *usecase.CorteUseCase, labores *usecase.LaborUseCase) *SiembraHandler {
	return &SiembraHandler{siembras: siembras, cortes: cortes, labores: labores}
}

// Create godoc
// @Summary      Registrar siembra
// @Description  Sin area_id el área se calcula como cantidad_plantas / densidad y se reutiliza un área existente dentro de ±5%.
// @Tags         siembras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSiembraRequest  true  "ubicación, variedad, área, densidad y fecha"
// @Success      201   {object}  dto.SiembraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/siembras [post]
func (h *SiembraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiembraRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.BloqueID == "" || in.CamaID == "" || in.VariedadID == "" || in.DensidadID == "" || in.FechaSiembra == "" {
		return validation(c, "bloque_id, cama_id, variedad_id, densidad_id y fecha_siembra son requeridos")
	}
	out, err := h.siembras.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar siembras
// @Tags         siembras
// @Security     Bearer
// @Produce      json
// @Param        estado       query  string  false  "Activa | Finalizada"
// @Param        variedad_id  query  string  false  "ID de variedad"
// @Param        bloque_id    query  string  false  "ID de bloque"
// @Param        limit        query  int     false  "máximo 100"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.SiembraListResponse
// @Router       /api/siembras [get]
func (h *SiembraHandler) List(c *fiber.Ctx) error {
	p := pagina(c)
	filtro := repository.SiembraFiltro{
		Estado:     c.Query("estado"),
		VariedadID: c.Query("variedad_id"),
		BloqueID:   c.Query("bloque_id"),
	}
	out, err := h.siembras.List(c.Context(), filtro, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de siembra
// @Description  Incluye cortes, pérdidas, labores y estadísticas (plantas disponibles, índice, días transcurridos).
// @Tags         siembras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la siembra"
// @Success      200  {object}  dto.SiembraDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/siembras/{id} [get]
func (h *SiembraHandler) Get(c *fiber.Ctx) error {
	out, err := h.siembras.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar siembra activa
// @Tags         siembras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la siembra"
// @Param        body  body  dto.UpdateSiembraRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.SiembraResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/siembras/{id} [put]
func (h *SiembraHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSiembraRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.siembras.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InicioCorte godoc
// @Summary      Registrar inicio de corte
// @Tags         siembras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la siembra"
// @Param        body  body  dto.FechaRequest  true  "fecha de inicio de corte"
// @Success      200   {object}  dto.SiembraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/siembras/{id}/inicio-corte [post]
func (h *SiembraHandler) InicioCorte(c *fiber.Ctx) error {
	var in dto.FechaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Fecha == "" {
		return validation(c, "fecha es requerida")
	}
	out, err := h.siembras.RegistrarInicioCorte(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finalizar godoc
// @Summary      Finalizar siembra
// @Tags         siembras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la siembra"
// @Success      200  {object}  dto.SiembraResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/siembras/{id}/finalizar [post]
func (h *SiembraHandler) Finalizar(c *fiber.Ctx) error {
	out, err := h.siembras.Finalizar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar siembra
// @Description  Solo sin cortes, pérdidas ni labores asociadas.
// @Tags         siembras
// @Security     Bearer
// @Param        id   path  string  true  "ID de la siembra"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/siembras/{id} [delete]
func (h *SiembraHandler) Delete(c *fiber.Ctx) error {
	if err := h.siembras.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCorte godoc
// @Summary      Registrar corte
// @Description  num_corte vacío toma el siguiente; los tallos acumulados no pueden superar las plantas de la siembra.
// @Tags         cortes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la siembra"
// @Param        body  body  dto.CreateCorteRequest  true  "fecha y tallos"
// @Success      201   {object}  dto.CorteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/siembras/{id}/cortes [post]
func (h *SiembraHandler) CreateCorte(c *fiber.Ctx) error {
	var in dto.CreateCorteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.cortes.Create(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCortes GET /api/siembras/:id/cortes, ordenados por número con índice acumulado.
func (h *SiembraHandler) ListCortes(c *fiber.Ctx) error {
	out, err := h.cortes.ListBySiembra(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateLabor godoc
// @Summary      Registrar labor cultural
// @Tags         labores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la siembra"
// @Param        body  body  dto.CreateLaborRequest  true  "tipo, fecha y observaciones"
// @Success      201   {object}  dto.LaborResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/siembras/{id}/labores [post]
func (h *SiembraHandler) CreateLabor(c *fiber.Ctx) error {
	var in dto.CreateLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.labores.Create(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLabores GET /api/siembras/:id/labores
func (h *SiembraHandler) ListLabores(c *fiber.Ctx) error {
	out, err := h.labores.ListBySiembra(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
