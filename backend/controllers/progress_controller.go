package controllers

import (
	"learnpath/backend/services"
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress      *services.ProgressService
	Enrollments   *services.EnrollmentService
	Prerequisites *services.PrerequisiteService
	Log           *utils.Logger
}

func NewProgressController(
	progress *services.ProgressService,
	enrollments *services.EnrollmentService,
	prerequisites *services.PrerequisiteService,
	log *utils.Logger,
) *ProgressController {
	return &ProgressController{Progress: progress, Enrollments: enrollments, Prerequisites: prerequisites, Log: log}
}

// RecordModuleProgress godoc
// @Summary Record module progress
// @Description Upserts the user's progress on a module and recomputes the enrollment of its course.
// @Tags progress
// @Accept json
// @Produce json
// @Param input body services.ModuleProgressInput true "Module progress"
// @Success 200 {object} services.ModuleProgressResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /progress/modules [post]
func (pc *ProgressController) RecordModuleProgress(c *fiber.Ctx) error {
	var input services.ModuleProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := pc.Progress.RecordModuleProgress(c.UserContext(), input)
	if err != nil {
		return respondError(c, pc.Log, err)
	}
	return utils.OK(c, result)
}

// GetCourseProgress godoc
// @Summary Computed progress of a user in a course
// @Tags progress
// @Produce json
// @Param userId path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} models.CourseProgress
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{userId}/courses/{courseId}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return invalidParam(c, "user id")
	}
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return invalidParam(c, "course id")
	}

	progress, err := pc.Progress.CourseProgress(c.UserContext(), userID, courseID)
	if err != nil {
		return respondError(c, pc.Log, err)
	}
	return utils.OK(c, progress)
}

// Enroll godoc
// @Summary Enroll a user in a course
// @Description Fails with 400 when prerequisites are not completed or the user is already enrolled.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param input body services.EnrollmentInput true "Enrollment"
// @Success 201 {object} models.Enrollment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /enrollments [post]
func (pc *ProgressController) Enroll(c *fiber.Ctx) error {
	var input services.EnrollmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	enrollment, err := pc.Enrollments.Enroll(c.UserContext(), input)
	if err != nil {
		return respondError(c, pc.Log, err)
	}
	return utils.Created(c, enrollment)
}

func (pc *ProgressController) GetEnrollments(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return invalidParam(c, "user id")
	}

	enrollments, err := pc.Enrollments.UserEnrollments(c.UserContext(), userID)
	if err != nil {
		return respondError(c, pc.Log, err)
	}
	return utils.OK(c, enrollments)
}

// CanEnroll godoc
// @Summary Check course prerequisites for a user
// @Tags prerequisites
// @Produce json
// @Param userId path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{userId}/can-enroll/{courseId} [get]
func (pc *ProgressController) CanEnroll(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return invalidParam(c, "user id")
	}
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return invalidParam(c, "course id")
	}

	canEnroll, err := pc.Prerequisites.CanEnroll(c.UserContext(), userID, courseID)
	if err != nil {
		return respondError(c, pc.Log, err)
	}
	return utils.OK(c, fiber.Map{"canEnroll": canEnroll})
}
