package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// UbicacionHandler maneja bloques, camas, lados y sus combinaciones.
type UbicacionHandler struct {
	uc *usecase.UbicacionUseCase
}

// NewUbicacionHandler construye el handler.
func NewUbicacionHandler(uc *usecase.UbicacionUseCase) *UbicacionHandler {
	return &UbicacionHandler{uc: uc}
}

// nombreCRUD operaciones comunes de los catálogos bloque, cama y lado.
type nombreCRUD struct {
	create func(context.Context, dto.NombreRequest) (*dto.NombreResponse, error)
	list   func(context.Context) ([]dto.NombreResponse, error)
	update func(context.Context, string, dto.NombreRequest) (*dto.NombreResponse, error)
	delete func(context.Context, string) error
}

func (n nombreCRUD) Create(c *fiber.Ctx) error {
	var in dto.NombreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := n.create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (n nombreCRUD) List(c *fiber.Ctx) error {
	out, err := n.list(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (n nombreCRUD) Update(c *fiber.Ctx) error {
	var in dto.NombreRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := n.update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (n nombreCRUD) Delete(c *fiber.Ctx) error {
	if err := n.delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Bloques godoc
// @Summary      CRUD de bloques
// @Description  POST/GET /api/bloques, PUT/DELETE /api/bloques/{id}. Los nombres se guardan en mayúsculas y conservan ceros a la izquierda.
// @Tags         ubicacion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NombreRequest  false  "nombre"
// @Success      200   {array}  dto.NombreResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bloques [get]
func (h *UbicacionHandler) Bloques() nombreCRUD {
	return nombreCRUD{h.uc.CreateBloque, h.uc.ListBloques, h.uc.UpdateBloque, h.uc.DeleteBloque}
}

// Camas godoc
// @Summary      CRUD de camas
// @Tags         ubicacion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {array}  dto.NombreResponse
// @Router       /api/camas [get]
func (h *UbicacionHandler) Camas() nombreCRUD {
	return nombreCRUD{h.uc.CreateCama, h.uc.ListCamas, h.uc.UpdateCama, h.uc.DeleteCama}
}

// Lados CRUD de lados (/api/lados).
func (h *UbicacionHandler) Lados() nombreCRUD {
	return nombreCRUD{h.uc.CreateLado, h.uc.ListLados, h.uc.UpdateLado, h.uc.DeleteLado}
}

// CreateUbicacion godoc
// @Summary      Registrar ubicación bloque-cama-lado
// @Tags         ubicacion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BloqueCamaLadoRequest  true  "bloque, cama y lado (vacío = ÚNICO)"
// @Success      201   {object}  dto.BloqueCamaLadoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ubicaciones [post]
func (h *UbicacionHandler) CreateUbicacion(c *fiber.Ctx) error {
	var in dto.BloqueCamaLadoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateBloqueCamaLado(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUbicaciones godoc
// @Summary      Listar ubicaciones
// @Tags         ubicacion
// @Security     Bearer
// @Produce      json
// @Param        bloque_id  query  string  false  "filtra por bloque"
// @Success      200  {array}  dto.BloqueCamaLadoResponse
// @Router       /api/ubicaciones [get]
func (h *UbicacionHandler) ListUbicaciones(c *fiber.Ctx) error {
	out, err := h.uc.ListBloqueCamaLado(c.Context(), c.Query("bloque_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteUbicacion DELETE /api/ubicaciones/:id
func (h *UbicacionHandler) DeleteUbicacion(c *fiber.Ctx) error {
	if err := h.uc.DeleteBloqueCamaLado(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
