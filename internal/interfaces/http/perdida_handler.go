package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// PerdidaHandler maneja el registro y los resúmenes de pérdidas.
type PerdidaHandler struct {
	uc *usecase.PerdidaUseCase
}

// NewPerdidaHandler construye el handler.
func NewPerdidaHandler(uc *usecase.PerdidaUseCase) *PerdidaHandler {
	return &PerdidaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pérdida
// @Tags         perdidas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePerdidaRequest  true  "siembra, causa, cantidad y fecha"
// @Success      201   {object}  dto.PerdidaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/perdidas [post]
func (h *PerdidaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePerdidaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SiembraID == "" || in.CausaID == "" {
		return validation(c, "siembra_id y causa_id son requeridos")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pérdidas
// @Tags         perdidas
// @Security     Bearer
// @Produce      json
// @Param        siembra_id   query  string  false  "ID de siembra"
// @Param        causa_id     query  string  false  "ID de causa"
// @Param        fecha_desde  query  string  false  "YYYY-MM-DD"
// @Param        fecha_hasta  query  string  false  "YYYY-MM-DD"
// @Param        limit        query  int     false  "máximo 100"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.PerdidaListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/perdidas [get]
func (h *PerdidaHandler) List(c *fiber.Ctx) error {
	var filtro dto.PerdidaFiltroRequest
	if err := c.QueryParser(&filtro); err != nil {
		return validation(c, "filtros inválidos")
	}
	p := pagina(c)
	out, err := h.uc.List(c.Context(), filtro, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/perdidas/:id
func (h *PerdidaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePerdidaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/perdidas/:id
func (h *PerdidaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resumen godoc
// @Summary      Resumen de pérdidas
// @Description  Totales por causa y por variedad-causa.
// @Tags         perdidas
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumenPerdidasResponse
// @Router       /api/perdidas/resumen [get]
func (h *PerdidaHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
