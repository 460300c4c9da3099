package controllers

import (
	"learnpath/backend/services"
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Catalog *services.CatalogService
	Log     *utils.Logger
}

func NewUserController(catalog *services.CatalogService, log *utils.Logger) *UserController {
	return &UserController{Catalog: catalog, Log: log}
}

// CreateUser godoc
// @Summary Create user
// @Description Registers a learner. The password is stored as a bcrypt hash and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param input body services.CreateUserInput true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Router /users [post]
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	user, err := uc.Catalog.CreateUser(c.UserContext(), input)
	if err != nil {
		return respondError(c, uc.Log, err)
	}
	return utils.Created(c, user)
}

// GetUser godoc
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "user id")
	}

	user, err := uc.Catalog.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, uc.Log, err)
	}
	return utils.OK(c, user)
}

// GetAchievements godoc
// @Summary List user achievements
// @Description Newest first. Repeated perfect scores appear once per attempt.
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} models.UserAchievement
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{userId}/achievements [get]
func (uc *UserController) GetAchievements(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return invalidParam(c, "user id")
	}

	achievements, err := uc.Catalog.UserAchievements(c.UserContext(), userID)
	if err != nil {
		return respondError(c, uc.Log, err)
	}
	return utils.OK(c, achievements)
}
