package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/application/usecase"
)

// UsuarioHandler maneja usuarios, roles y tipos de documento. Requiere administrar_usuarios.
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Username == "" || in.Password == "" || in.Rol == "" {
		return validation(c, "username, password y rol son requeridos")
	}
	if len(in.Password) < 8 {
		return validation(c, "password debe tener al menos 8 caracteres")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.UsuarioListResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	p := pagina(c)
	out, err := h.uc.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/usuarios/:id
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/usuarios/:id
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUsuarioRequest
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
// @Summary      Eliminar usuario
// @Description  Un usuario no puede eliminarse a sí mismo (409).
// @Tags         usuarios
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoles GET /api/roles
func (h *UsuarioHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListDocumentos GET /api/documentos
func (h *UsuarioHandler) ListDocumentos(c *fiber.Ctx) error {
	out, err := h.uc.ListDocumentos(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
