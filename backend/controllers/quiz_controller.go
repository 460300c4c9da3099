package controllers

import (
	"learnpath/backend/services"
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type QuizController struct {
	Catalog *services.CatalogService
	Quizzes *services.QuizService
	Log     *utils.Logger
}

func NewQuizController(catalog *services.CatalogService, quizzes *services.QuizService, log *utils.Logger) *QuizController {
	return &QuizController{Catalog: catalog, Quizzes: quizzes, Log: log}
}

func (qc *QuizController) GetQuiz(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "quiz id")
	}

	quiz, err := qc.Catalog.GetQuiz(c.UserContext(), id)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.OK(c, quiz)
}

func (qc *QuizController) GetModuleQuiz(c *fiber.Ctx) error {
	moduleID, ok := paramID(c, "moduleId")
	if !ok {
		return invalidParam(c, "module id")
	}

	quiz, err := qc.Catalog.GetQuizByModule(c.UserContext(), moduleID)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.OK(c, quiz)
}

// CreateQuiz godoc
// @Summary Create quiz for a module
// @Description Every correctAnswer must be one of its question's option values.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param input body services.CreateQuizInput true "Quiz data"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quizzes [post]
func (qc *QuizController) CreateQuiz(c *fiber.Ctx) error {
	var input services.CreateQuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	quiz, err := qc.Catalog.CreateQuiz(c.UserContext(), input)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Created(c, quiz)
}

// SubmitAttempt godoc
// @Summary Submit quiz answers
// @Description Answers are graded on the server by position; any client score is ignored.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param input body services.AttemptInput true "Answers"
// @Success 201 {object} services.AttemptResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /quiz-attempts [post]
func (qc *QuizController) SubmitAttempt(c *fiber.Ctx) error {
	var input services.AttemptInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := qc.Quizzes.SubmitAttempt(c.UserContext(), input)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.Created(c, result)
}

// GetAttempts godoc
// @Summary List a user's attempts at a quiz
// @Tags quizzes
// @Produce json
// @Param userId path int true "User ID"
// @Param quizId path int true "Quiz ID"
// @Success 200 {array} models.QuizAttempt
// @Router /users/{userId}/quiz-attempts/{quizId} [get]
func (qc *QuizController) GetAttempts(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return invalidParam(c, "user id")
	}
	quizID, ok := paramID(c, "quizId")
	if !ok {
		return invalidParam(c, "quiz id")
	}

	attempts, err := qc.Quizzes.Attempts(c.UserContext(), userID, quizID)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.OK(c, attempts)
}

func (qc *QuizController) GetBestScore(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return invalidParam(c, "user id")
	}
	quizID, ok := paramID(c, "quizId")
	if !ok {
		return invalidParam(c, "quiz id")
	}

	best, err := qc.Quizzes.BestScore(c.UserContext(), userID, quizID)
	if err != nil {
		return respondError(c, qc.Log, err)
	}
	return utils.OK(c, fiber.Map{
		"userId":    userID,
		"quizId":    quizID,
		"bestScore": best,
	})
}
