package routes

import (
	"learnpath/backend/config"
	"learnpath/backend/controllers"
	"learnpath/backend/services"
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *utils.Logger) {
	// Services
	catalog := services.NewCatalogService(db, logger, cfg.BcryptCost)
	prerequisites := services.NewPrerequisiteService(db, logger)
	enrollments := services.NewEnrollmentService(db, logger)
	progress := services.NewProgressService(db, logger)
	quizzes := services.NewQuizService(db, logger)

	api := app.Group("/api")

	healthController := controllers.NewHealthController(db, logger)
	api.Get("/health", healthController.Health)

	// User routes
	userController := controllers.NewUserController(catalog, logger)
	users := api.Group("/users")
	users.Post("/", userController.CreateUser)
	users.Get("/:id", userController.GetUser)
	users.Get("/:userId/achievements", userController.GetAchievements)

	// Courses routes
	coursesController := controllers.NewCoursesController(catalog, prerequisites, logger)
	courses := api.Group("/courses")
	courses.Get("/", coursesController.ListCourses)
	courses.Post("/", coursesController.CreateCourse)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Get("/:courseId/prerequisites", coursesController.GetPrerequisites)
	courses.Post("/:courseId/prerequisites", coursesController.AddPrerequisite)

	modules := api.Group("/modules")
	modules.Post("/", coursesController.CreateModule)
	modules.Get("/:id", coursesController.GetModule)

	// Quiz routes
	quizController := controllers.NewQuizController(catalog, quizzes, logger)
	modules.Get("/:moduleId/quiz", quizController.GetModuleQuiz)
	api.Post("/quizzes", quizController.CreateQuiz)
	api.Get("/quizzes/:id", quizController.GetQuiz)
	api.Post("/quiz-attempts", quizController.SubmitAttempt)
	users.Get("/:userId/quiz-attempts/:quizId", quizController.GetAttempts)
	users.Get("/:userId/quiz-attempts/:quizId/best", quizController.GetBestScore)

	// Progress and enrollment routes
	progressController := controllers.NewProgressController(progress, enrollments, prerequisites, logger)
	api.Post("/progress/modules", progressController.RecordModuleProgress)
	api.Post("/enrollments", progressController.Enroll)
	users.Get("/:userId/enrollments", progressController.GetEnrollments)
	users.Get("/:userId/courses/:courseId/progress", progressController.GetCourseProgress)
	users.Get("/:userId/can-enroll/:courseId", progressController.CanEnroll)
}
