package middleware

import (
	"time"

	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware пишет одну строку на запрос после того, как обработчик отработал
func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	log := logger.With("component", "http")

	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Передаем управление следующему обработчику
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// ErrorHandler приложения еще не записал ответ
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []interface{}{
			"requestId", c.GetRespHeader(fiber.HeaderXRequestID),
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}

		return err
	}
}
