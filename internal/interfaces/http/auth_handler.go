package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/auth"
	"github.com/jhoicas/cpc-api/internal/application/dto"
)

// AuthHandler maneja login y la identidad del token.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return validation(c, "username y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Identidad del token
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user_id":  GetUserID(c),
		"username": GetUsername(c),
		"role":     GetRole(c),
		"permisos": GetPermisos(c),
	})
}
