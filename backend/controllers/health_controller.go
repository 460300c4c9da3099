package controllers

import (
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthController struct {
	DB  *gorm.DB
	Log *utils.Logger
}

func NewHealthController(db *gorm.DB, log *utils.Logger) *HealthController {
	return &HealthController{DB: db, Log: log}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} utils.ErrorResponse
// @Router /health [get]
func (hc *HealthController) Health(c *fiber.Ctx) error {
	sqlDB, err := hc.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		hc.Log.Warn("health check failed", "error", err)
		return utils.Error(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return utils.OK(c, fiber.Map{"status": "ok"})
}
