package controllers

import (
	"errors"

	"learnpath/backend/services"
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// respondError writes the error body for a service error. Internal errors are
// logged and never leak their cause to the client.
func respondError(c *fiber.Ctx, log *utils.Logger, err error) error {
	var e *services.Error
	if !errors.As(err, &e) {
		log.Error("unhandled error", "path", c.Path(), "error", err)
		return utils.InternalServerError(c)
	}

	switch e.Kind {
	case services.KindValidation:
		return utils.ValidationError(c, e.Message, e.Fields)
	case services.KindNotFound:
		return utils.NotFound(c, e.Message)
	case services.KindConflict:
		return utils.BadRequest(c, e.Message)
	default:
		log.Error("request failed", "path", c.Path(), "error", err)
		return utils.InternalServerError(c)
	}
}

// paramID parses a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidParam(c *fiber.Ctx, name string) error {
	return utils.BadRequest(c, "Invalid "+name)
}
