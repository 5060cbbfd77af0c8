package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/cpc-api/pkg/logger"
)

// HeaderRequestID header con el id de la petición; se respeta si el cliente lo envía.
const HeaderRequestID = "X-Request-ID"

// RequestLogger registra método, ruta, status, latencia e id de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)

		chainErr := c.Next()
		if chainErr != nil {
			// el error handler de fiber escribe la respuesta; se registra con su status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		if chainErr != nil {
			ev = ev.Err(chainErr)
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("petición")
		return nil
	}
}

// GetRequestID devuelve el id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	return localString(c, LocalRequestID)
}
