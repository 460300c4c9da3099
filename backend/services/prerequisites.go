package services

import (
	"context"
	"errors"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"gorm.io/gorm"
)

type PrerequisiteService struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewPrerequisiteService(db *gorm.DB, log *utils.Logger) *PrerequisiteService {
	return &PrerequisiteService{db: db, log: log.With("service", "PrerequisiteService")}
}

// CheckPrerequisites reports whether the user has completed every course
// that courseID requires. A course without prerequisites is always open.
func (s *PrerequisiteService) CheckPrerequisites(ctx context.Context, userID, courseID uint) (bool, error) {
	return checkPrerequisites(s.db.WithContext(ctx), userID, courseID)
}

// CanEnroll is CheckPrerequisites for a user and course that must exist.
func (s *PrerequisiteService) CanEnroll(ctx context.Context, userID, courseID uint) (bool, error) {
	tx := s.db.WithContext(ctx)
	if _, err := findUser(tx, userID); err != nil {
		return false, err
	}
	if _, err := findCourse(tx, courseID); err != nil {
		return false, err
	}
	return checkPrerequisites(tx, userID, courseID)
}

// CoursePrerequisites lists the courses required by courseID, by title.
func (s *PrerequisiteService) CoursePrerequisites(ctx context.Context, courseID uint) ([]models.Course, error) {
	tx := s.db.WithContext(ctx)
	if _, err := findCourse(tx, courseID); err != nil {
		return nil, err
	}

	courses := []models.Course{}
	if err := tx.Model(&models.Course{}).
		Select("courses.*").
		Joins("JOIN prerequisites ON prerequisites.prerequisite_course_id = courses.id").
		Where("prerequisites.course_id = ?", courseID).
		Order("courses.title ASC").
		Find(&courses).Error; err != nil {
		return nil, Internal("query prerequisites", err)
	}
	return courses, nil
}

type PrerequisiteInput struct {
	CourseID             uint `json:"courseId" validate:"required"`
	PrerequisiteCourseID uint `json:"prerequisiteCourseId" validate:"required"`
}

// AddPrerequisite records that CourseID requires PrerequisiteCourseID.
// Edges that would close a cycle are rejected: no user could ever enroll in
// any course on it.
func (s *PrerequisiteService) AddPrerequisite(ctx context.Context, in PrerequisiteInput) (*models.Prerequisite, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if in.CourseID == in.PrerequisiteCourseID {
		return nil, Validation("A course cannot be its own prerequisite",
			map[string]string{"prerequisiteCourseId": "must differ from courseId"})
	}

	var edge models.Prerequisite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findCourse(tx, in.CourseID); err != nil {
			return err
		}
		if _, err := findCourse(tx, in.PrerequisiteCourseID); err != nil {
			if IsNotFound(err) {
				return NotFound("Prerequisite course not found")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Prerequisite{}).
			Where("course_id = ? AND prerequisite_course_id = ?", in.CourseID, in.PrerequisiteCourseID).
			Count(&existing).Error; err != nil {
			return Internal("query prerequisite", err)
		}
		if existing > 0 {
			return Conflict("Prerequisite already exists")
		}

		cyclic, err := reachable(tx, in.PrerequisiteCourseID, in.CourseID)
		if err != nil {
			return err
		}
		if cyclic {
			return Conflict("Prerequisite would create a cycle")
		}

		edge = models.Prerequisite{CourseID: in.CourseID, PrerequisiteCourseID: in.PrerequisiteCourseID}
		if err := tx.Create(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("Prerequisite already exists")
			}
			return Internal("create prerequisite", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("prerequisite added", "courseId", in.CourseID, "prerequisiteCourseId", in.PrerequisiteCourseID)
	return &edge, nil
}

func checkPrerequisites(tx *gorm.DB, userID, courseID uint) (bool, error) {
	var required []uint
	if err := tx.Model(&models.Prerequisite{}).
		Where("course_id = ?", courseID).
		Pluck("prerequisite_course_id", &required).Error; err != nil {
		return false, Internal("query prerequisites", err)
	}

	for _, prereqID := range required {
		var enrollment models.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", userID, prereqID).Take(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		if err != nil {
			return false, Internal("query enrollment", err)
		}
		if !enrollment.Completed {
			return false, nil
		}
	}
	return true, nil
}

// reachable walks prerequisite edges breadth-first from `from` and reports
// whether `target` is among the courses it (transitively) requires.
func reachable(tx *gorm.DB, from, target uint) (bool, error) {
	if from == target {
		return true, nil
	}
	seen := map[uint]bool{from: true}
	frontier := []uint{from}

	for len(frontier) > 0 {
		var next []uint
		if err := tx.Model(&models.Prerequisite{}).
			Where("course_id IN ?", frontier).
			Pluck("prerequisite_course_id", &next).Error; err != nil {
			return false, Internal("walk prerequisites", err)
		}

		frontier = frontier[:0]
		for _, id := range next {
			if id == target {
				return true, nil
			}
			if !seen[id] {
				seen[id] = true
				frontier = append(frontier, id)
			}
		}
	}
	return false, nil
}
