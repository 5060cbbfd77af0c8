package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// TaxonomiaHandler maneja flores, colores, combinaciones flor-color y variedades.
type TaxonomiaHandler struct {
	uc *usecase.TaxonomiaUseCase
}

// NewTaxonomiaHandler construye el handler.
func NewTaxonomiaHandler(uc *usecase.TaxonomiaUseCase) *TaxonomiaHandler {
	return &TaxonomiaHandler{uc: uc}
}

// CreateFlor godoc
// @Summary      Crear flor
// @Tags         taxonomia
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FlorRequest  true  "flor y abreviatura"
// @Success      201   {object}  dto.FlorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/flores [post]
func (h *TaxonomiaHandler) CreateFlor(c *fiber.Ctx) error {
	var in dto.FlorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateFlor(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFlores godoc
// @Summary      Listar flores
// @Tags         taxonomia
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FlorResponse
// @Router       /api/flores [get]
func (h *TaxonomiaHandler) ListFlores(c *fiber.Ctx) error {
	out, err := h.uc.ListFlores(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetFlor GET /api/flores/:id
func (h *TaxonomiaHandler) GetFlor(c *fiber.Ctx) error {
	out, err := h.uc.GetFlor(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateFlor godoc
// @Summary      Actualizar flor
// @Tags         taxonomia
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID de la flor"
// @Param        body  body  dto.FlorRequest  true  "flor y abreviatura"
// @Success      200   {object}  dto.FlorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/flores/{id} [put]
func (h *TaxonomiaHandler) UpdateFlor(c *fiber.Ctx) error {
	var in dto.FlorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateFlor(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteFlor godoc
// @Summary      Eliminar flor
// @Tags         taxonomia
// @Security     Bearer
// @Param        id   path  string  true  "ID de la flor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/flores/{id} [delete]
func (h *TaxonomiaHandler) DeleteFlor(c *fiber.Ctx) error {
	if err := h.uc.DeleteFlor(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateColor godoc
// @Summary      Crear color
// @Tags         taxonomia
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ColorRequest  true  "color y abreviatura"
// @Success      201   {object}  dto.ColorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/colores [post]
func (h *TaxonomiaHandler) CreateColor(c *fiber.Ctx) error {
	var in dto.ColorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateColor(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListColores GET /api/colores
func (h *TaxonomiaHandler) ListColores(c *fiber.Ctx) error {
	out, err := h.uc.ListColores(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetColor GET /api/colores/:id
func (h *TaxonomiaHandler) GetColor(c *fiber.Ctx) error {
	out, err := h.uc.GetColor(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateColor PUT /api/colores/:id
func (h *TaxonomiaHandler) UpdateColor(c *fiber.Ctx) error {
	var in dto.ColorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateColor(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteColor DELETE /api/colores/:id
func (h *TaxonomiaHandler) DeleteColor(c *fiber.Ctx) error {
	if err := h.uc.DeleteColor(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateFlorColor godoc
// @Summary      Crear combinación flor-color
// @Tags         taxonomia
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FlorColorRequest  true  "flor_id y color_id"
// @Success      201   {object}  dto.FlorColorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/flor-colores [post]
func (h *TaxonomiaHandler) CreateFlorColor(c *fiber.Ctx) error {
	var in dto.FlorColorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateFlorColor(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListFlorColores GET /api/flor-colores
func (h *TaxonomiaHandler) ListFlorColores(c *fiber.Ctx) error {
	out, err := h.uc.ListFlorColores(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteFlorColor DELETE /api/flor-colores/:id
func (h *TaxonomiaHandler) DeleteFlorColor(c *fiber.Ctx) error {
	if err := h.uc.DeleteFlorColor(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateVariedad godoc
// @Summary      Crear variedad
// @Tags         taxonomia
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VariedadRequest  true  "variedad y flor_color_id"
// @Success      201   {object}  dto.VariedadResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/variedades [post]
func (h *TaxonomiaHandler) CreateVariedad(c *fiber.Ctx) error {
	var in dto.VariedadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateVariedad(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListVariedades godoc
// @Summary      Listar variedades
// @Description  Filtra por flor y color; con_siembras=true devuelve solo las variedades con siembras (índice de reportes).
// @Tags         taxonomia
// @Security     Bearer
// @Produce      json
// @Param        flor_id       query  string  false  "ID de la flor"
// @Param        color_id      query  string  false  "ID del color"
// @Param        con_siembras  query  bool    false  "solo variedades con siembras"
// @Success      200  {array}  dto.VariedadResponse
// @Router       /api/variedades [get]
func (h *TaxonomiaHandler) ListVariedades(c *fiber.Ctx) error {
	var (
		out []dto.VariedadResponse
		err error
	)
	if c.QueryBool("con_siembras") {
		out, err = h.uc.ListVariedadesConSiembras(c.Context())
	} else {
		out, err = h.uc.ListVariedades(c.Context(), c.Query("flor_id"), c.Query("color_id"))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetVariedad GET /api/variedades/:id
func (h *TaxonomiaHandler) GetVariedad(c *fiber.Ctx) error {
	out, err := h.uc.GetVariedad(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateVariedad PUT /api/variedades/:id
func (h *TaxonomiaHandler) UpdateVariedad(c *fiber.Ctx) error {
	var in dto.VariedadRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateVariedad(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteVariedad DELETE /api/variedades/:id
func (h *TaxonomiaHandler) DeleteVariedad(c *fiber.Ctx) error {
	if err := h.uc.DeleteVariedad(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
