package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// CorteHandler maneja cortes por id y el listado global.
type CorteHandler struct {
	uc *usecase.CorteUseCase
}

// NewCorteHandler construye el handler.
func NewCorteHandler(uc *usecase.CorteUseCase) *CorteHandler {
	return &CorteHandler{uc: uc}
}

// List godoc
// @Summary      Listar cortes
// @Tags         cortes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CorteListResponse
// @Router       /api/cortes [get]
func (h *CorteHandler) List(c *fiber.Ctx) error {
	p := pagina(c)
	out, err := h.uc.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar corte
// @Tags         cortes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del corte"
// @Param        body  body  dto.UpdateCorteRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.CorteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cortes/{id} [put]
func (h *CorteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCorteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/cortes/:id (solo en siembras activas).
func (h *CorteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Prediccion godoc
// @Summary      Comparar un corte con cortes de referencia
// @Description  Referencias: cortes de otras siembras de la misma variedad a ±5 días desde la siembra.
// @Tags         cortes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del corte"
// @Success      200  {object}  dto.PrediccionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cortes/{id}/prediccion [get]
func (h *CorteHandler) Prediccion(c *fiber.Ctx) error {
	out, err := h.uc.Prediccion(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LaborHandler maneja labores por id.
type LaborHandler struct {
	uc *usecase.LaborUseCase
}

// NewLaborHandler construye el handler.
func NewLaborHandler(uc *usecase.LaborUseCase) *LaborHandler {
	return &LaborHandler{uc: uc}
}

// Update PUT /api/labores/:id
func (h *LaborHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/labores/:id
func (h *LaborHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
