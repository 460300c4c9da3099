package services

import (
	"errors"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func findUser(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, Internal("query user", err)
	}
	return &user, nil
}

func findCourse(tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := tx.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Course not found")
		}
		return nil, Internal("query course", err)
	}
	return &course, nil
}

func findModule(tx *gorm.DB, id uint) (*models.Module, error) {
	var module models.Module
	if err := tx.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Module not found")
		}
		return nil, Internal("query module", err)
	}
	return &module, nil
}

func findQuiz(tx *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := tx.First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Quiz not found")
		}
		return nil, Internal("query quiz", err)
	}
	return &quiz, nil
}

// findEnrollmentForUpdate returns nil without error when the user is not enrolled.
func findEnrollmentForUpdate(tx *gorm.DB, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Take(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, Internal("query enrollment", err)
	}
	return &enrollment, nil
}

// validateInput runs the struct's validate tags and converts failures into a
// KindValidation error carrying per-field messages.
func validateInput(in interface{}) error {
	if fields := utils.ValidateStruct(in); len(fields) > 0 {
		return Validation("Validation failed", fields)
	}
	return nil
}
