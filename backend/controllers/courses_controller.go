package controllers

import (
	"learnpath/backend/services"
	"learnpath/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Catalog       *services.CatalogService
	Prerequisites *services.PrerequisiteService
	Log           *utils.Logger
}

func NewCoursesController(catalog *services.CatalogService, prerequisites *services.PrerequisiteService, log *utils.Logger) *CoursesController {
	return &CoursesController{Catalog: catalog, Prerequisites: prerequisites, Log: log}
}

// ListCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	courses, err := cc.Catalog.ListCourses(c.UserContext())
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.OK(c, courses)
}

// GetCourse godoc
// @Summary Get course with its modules
// @Description Modules are ordered by orderIndex.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "course id")
	}

	course, err := cc.Catalog.GetCourseWithModules(c.UserContext(), id)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.OK(c, course)
}

// CreateCourse godoc
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Param input body services.CreateCourseInput true "Course data"
// @Success 201 {object} models.Course
// @Failure 400 {object} utils.ErrorResponse
// @Router /courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input services.CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	course, err := cc.Catalog.CreateCourse(c.UserContext(), input)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Created(c, course)
}

func (cc *CoursesController) GetModule(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "module id")
	}

	module, err := cc.Catalog.GetModule(c.UserContext(), id)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.OK(c, module)
}

// CreateModule godoc
// @Summary Add a module to a course
// @Description contentUrl is required for video modules, contentText for text modules.
// @Tags courses
// @Accept json
// @Produce json
// @Param input body services.CreateModuleInput true "Module data"
// @Success 201 {object} models.Module
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /modules [post]
func (cc *CoursesController) CreateModule(c *fiber.Ctx) error {
	var input services.CreateModuleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	module, err := cc.Catalog.CreateModule(c.UserContext(), input)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Created(c, module)
}

// GetPrerequisites godoc
// @Summary List the courses a course requires
// @Tags prerequisites
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} models.Course
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{courseId}/prerequisites [get]
func (cc *CoursesController) GetPrerequisites(c *fiber.Ctx) error {
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return invalidParam(c, "course id")
	}

	courses, err := cc.Prerequisites.CoursePrerequisites(c.UserContext(), courseID)
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.OK(c, courses)
}

type addPrerequisiteRequest struct {
	PrerequisiteCourseID uint `json:"prerequisiteCourseId"`
}

// AddPrerequisite godoc
// @Summary Require another course before this one
// @Description Self references, duplicates and edges that would form a cycle are rejected.
// @Tags prerequisites
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param input body addPrerequisiteRequest true "Required course"
// @Success 201 {object} models.Prerequisite
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{courseId}/prerequisites [post]
func (cc *CoursesController) AddPrerequisite(c *fiber.Ctx) error {
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return invalidParam(c, "course id")
	}

	var req addPrerequisiteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	edge, err := cc.Prerequisites.AddPrerequisite(c.UserContext(), services.PrerequisiteInput{
		CourseID:             courseID,
		PrerequisiteCourseID: req.PrerequisiteCourseID,
	})
	if err != nil {
		return respondError(c, cc.Log, err)
	}
	return utils.Created(c, edge)
}
