package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// CausaHandler maneja las causas de pérdida. Las mutaciones requieren importar_datos.
type CausaHandler struct {
	uc *usecase.CausaUseCase
}

// NewCausaHandler construye el handler.
func NewCausaHandler(uc *usecase.CausaUseCase) *CausaHandler {
	return &CausaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear causa de pérdida
// @Tags         causas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CausaRequest  true  "nombre y descripción"
// @Success      201   {object}  dto.CausaResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/causas [post]
func (h *CausaHandler) Create(c *fiber.Ctx) error {
	var in dto.CausaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar causas
// @Tags         causas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CausaResponse
// @Router       /api/causas [get]
func (h *CausaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/causas/:id
func (h *CausaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/causas/:id
func (h *CausaHandler) Update(c *fiber.Ctx) error {
	var in dto.CausaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar causa
// @Description  Falla con 409 si la causa es predefinida o tiene pérdidas registradas.
// @Tags         causas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la causa"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/causas/{id} [delete]
func (h *CausaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TipoLaborHandler maneja el catálogo de tipos de labor cultural.
type TipoLaborHandler struct {
	uc *usecase.TipoLaborUseCase
}

// NewTipoLaborHandler construye el handler.
func NewTipoLaborHandler(uc *usecase.TipoLaborUseCase) *TipoLaborHandler {
	return &TipoLaborHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de labor
// @Tags         labores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TipoLaborRequest  true  "nombre, descripción y flor opcional"
// @Success      201   {object}  dto.TipoLaborResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tipos-labor [post]
func (h *TipoLaborHandler) Create(c *fiber.Ctx) error {
	var in dto.TipoLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/tipos-labor
func (h *TipoLaborHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/tipos-labor/:id
func (h *TipoLaborHandler) Update(c *fiber.Ctx) error {
	var in dto.TipoLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/tipos-labor/:id
func (h *TipoLaborHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
