package services

import (
	"context"
	"errors"
	"time"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"gorm.io/gorm"
)

type EnrollmentInput struct {
	UserID   uint `json:"userId" validate:"required"`
	CourseID uint `json:"courseId" validate:"required"`
}

type EnrollmentService struct {
	db  *gorm.DB
	log *utils.Logger
	now func() time.Time
}

func NewEnrollmentService(db *gorm.DB, log *utils.Logger) *EnrollmentService {
	return &EnrollmentService{db: db, log: log.With("service", "EnrollmentService"), now: time.Now}
}

// Enroll creates the (user, course) enrollment once prerequisites are met.
// Module progress recorded before enrolling is folded into the new row.
func (s *EnrollmentService) Enroll(ctx context.Context, in EnrollmentInput) (*models.Enrollment, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var enrollment models.Enrollment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, in.UserID); err != nil {
			return err
		}
		course, err := findCourse(tx, in.CourseID)
		if err != nil {
			return err
		}

		ok, err := checkPrerequisites(tx, in.UserID, in.CourseID)
		if err != nil {
			return err
		}
		if !ok {
			return Conflict("Prerequisites not met for this course")
		}

		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", in.UserID, in.CourseID).
			Count(&existing).Error; err != nil {
			return Internal("query enrollment", err)
		}
		if existing > 0 {
			return Conflict("Already enrolled in this course")
		}

		progress, err := computeCourseProgress(tx, in.UserID, in.CourseID)
		if err != nil {
			return err
		}

		enrollment = models.Enrollment{UserID: in.UserID, CourseID: in.CourseID}
		completedDelta := applyEnrollmentProgress(&enrollment, progress.Progress, s.now())
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("Already enrolled in this course")
			}
			return Internal("create enrollment", err)
		}
		if err := bumpUserStats(tx, in.UserID, 0, completedDelta); err != nil {
			return err
		}
		enrollment.Course = course
		return nil
	})
	if err != nil {
		if KindOf(err) == KindInternal {
			s.log.Error("enroll failed", "userId", in.UserID, "courseId", in.CourseID, "error", err)
		}
		return nil, err
	}

	s.log.Info("user enrolled", "userId", in.UserID, "courseId", in.CourseID)
	return &enrollment, nil
}

// UserEnrollments returns the user's enrollments with their course, newest first.
func (s *EnrollmentService) UserEnrollments(ctx context.Context, userID uint) ([]models.Enrollment, error) {
	tx := s.db.WithContext(ctx)
	if _, err := findUser(tx, userID); err != nil {
		return nil, err
	}

	enrollments := []models.Enrollment{}
	if err := tx.Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC, id DESC").
		Find(&enrollments).Error; err != nil {
		return nil, Internal("query enrollments", err)
	}
	return enrollments, nil
}
