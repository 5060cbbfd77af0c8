package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// GeometriaHandler maneja áreas y densidades de siembra.
type GeometriaHandler struct {
	uc *usecase.GeometriaUseCase
}

// NewGeometriaHandler construye el handler.
func NewGeometriaHandler(uc *usecase.GeometriaUseCase) *GeometriaHandler {
	return &GeometriaHandler{uc: uc}
}

// CreateArea godoc
// @Summary      Crear área
// @Tags         geometria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AreaRequest  true  "área en m² y etiqueta"
// @Success      201   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *GeometriaHandler) CreateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateArea(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAreas GET /api/areas
func (h *GeometriaHandler) ListAreas(c *fiber.Ctx) error {
	out, err := h.uc.ListAreas(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetArea GET /api/areas/:id
func (h *GeometriaHandler) GetArea(c *fiber.Ctx) error {
	out, err := h.uc.GetArea(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateArea PUT /api/areas/:id
func (h *GeometriaHandler) UpdateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateArea(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteArea DELETE /api/areas/:id
func (h *GeometriaHandler) DeleteArea(c *fiber.Ctx) error {
	if err := h.uc.DeleteArea(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateDensidad godoc
// @Summary      Crear densidad
// @Tags         geometria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DensidadRequest  true  "densidad (nombre) y valor en plantas/m²"
// @Success      201   {object}  dto.DensidadResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/densidades [post]
func (h *GeometriaHandler) CreateDensidad(c *fiber.Ctx) error {
	var in dto.DensidadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateDensidad(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDensidades GET /api/densidades
func (h *GeometriaHandler) ListDensidades(c *fiber.Ctx) error {
	out, err := h.uc.ListDensidades(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetDensidad GET /api/densidades/:id
func (h *GeometriaHandler) GetDensidad(c *fiber.Ctx) error {
	out, err := h.uc.GetDensidad(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateDensidad PUT /api/densidades/:id
func (h *GeometriaHandler) UpdateDensidad(c *fiber.Ctx) error {
	var in dto.DensidadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateDensidad(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteDensidad DELETE /api/densidades/:id
func (h *GeometriaHandler) DeleteDensidad(c *fiber.Ctx) error {
	if err := h.uc.DeleteDensidad(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CalcularArea godoc
// @Summary      Calcular área por plantas y densidad
// @Description  Área = plantas / densidad; sugiere un área existente dentro de ±5%.
// @Tags         geometria
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalcularAreaRequest  true  "cantidad_plantas y densidad_id"
// @Success      200   {object}  dto.CalcularAreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/areas/calcular [post]
func (h *GeometriaHandler) CalcularArea(c *fiber.Ctx) error {
	var in dto.CalcularAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CalcularArea(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
