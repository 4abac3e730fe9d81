package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger emite un evento por petición con método, ruta, status, latencia y
// request id. Deja el sublogger en Locals para los handlers.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	httpLog := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(localLogger, httpLog)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de fiber fije el status antes de registrar.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := httpLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = httpLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = httpLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

// requestLogger devuelve el logger de la petición o uno que descarta todo.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
