package middleware

import (
	"errors"
	"net/http"

	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler отдает ошибки, вышедшие за пределы обработчиков (неизвестный
// маршрут, паника после recover, лимит тела), в том же формате, что и обработчики
func ErrorHandler(logger *utils.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			message := fe.Message
			if message == "" {
				message = http.StatusText(fe.Code)
			}
			return utils.Error(c, fe.Code, message)
		}

		logger.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return utils.InternalServerError(c)
	}
}
