package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain/entity"
	"github.com/jhoicas/cpc-api/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUsername  = "username"
	LocalRole      = "role"
	LocalPermisos  = "permisos"
	LocalRequestID = "request_id"
)

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)
		c.Locals(LocalRole, id.Role)
		c.Locals(LocalPermisos, id.Permisos)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}

// RequirePermission exige el permiso en el token; el rol admin pasa siempre.
func RequirePermission(permiso string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if role == entity.RolAdmin || slices.Contains(GetPermisos(c), permiso) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere el permiso " + permiso})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetUsername devuelve el username del token.
func GetUsername(c *fiber.Ctx) string {
	return localString(c, LocalUsername)
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetPermisos devuelve los permisos firmados en el token.
func GetPermisos(c *fiber.Ctx) []string {
	p, _ := c.Locals(LocalPermisos).([]string)
	return p
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
