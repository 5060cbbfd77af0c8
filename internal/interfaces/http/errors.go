package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/cpc-api/internal/application/dto"
	"github.com/jhoicas/cpc-api/internal/domain"
)

// erroresDominio traduce cada error de dominio a su status y código HTTP.
// El orden importa: se usa el primero que coincide con errors.Is.
var erroresDominio = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrFechaInvalida, fiber.StatusBadRequest, "INVALID_DATE"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEnUso, fiber.StatusConflict, "IN_USE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrSiembraInactiva, fiber.StatusUnprocessableEntity, "SIEMBRA_INACTIVE"},
	{domain.ErrSinInicioCorte, fiber.StatusUnprocessableEntity, "NO_HARVEST_START"},
	{domain.ErrExcedePlantas, fiber.StatusUnprocessableEntity, "EXCEEDS_PLANTS"},
}

// respondError escribe dto.ErrorResponse con el status que corresponde al error.
// Errores no reconocidos son 500.
func respondError(c *fiber.Ctx, err error) error {
	for _, e := range erroresDominio {
		if errors.Is(err, e.err) {
			msg := err.Error()
			if e.status == fiber.StatusUnauthorized {
				msg = "credenciales inválidas"
			}
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

// pagina lee limit/offset de la query con los valores por defecto de dto.PageRequest.
func pagina(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
