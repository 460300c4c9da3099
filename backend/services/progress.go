package services

import (
	"context"
	"time"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ModuleProgressInput struct {
	UserID    uint `json:"userId" validate:"required"`
	ModuleID  uint `json:"moduleId" validate:"required"`
	// nil leaves the stored flag and time untouched
	Completed *bool `json:"completed"`
	TimeSpent *int  `json:"timeSpent" validate:"omitempty,gte=0"`
}

type ModuleProgressResult struct {
	ModuleProgress models.ModuleProgress `json:"moduleProgress"`
	Course         models.CourseProgress `json:"courseProgress"`
	// nil when the user has module progress but no enrollment in the course
	Enrollment *models.Enrollment `json:"enrollment,omitempty"`
}

type ProgressService struct {
	db  *gorm.DB
	log *utils.Logger
	now func() time.Time
}

func NewProgressService(db *gorm.DB, log *utils.Logger) *ProgressService {
	return &ProgressService{db: db, log: log.With("service", "ProgressService"), now: time.Now}
}

// RecordModuleProgress upserts the (user, module) progress row and
// recomputes the owning course's enrollment in the same transaction.
func (s *ProgressService) RecordModuleProgress(ctx context.Context, in ModuleProgressInput) (*ModuleProgressResult, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var result ModuleProgressResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, in.UserID); err != nil {
			return err
		}
		module, err := findModule(tx, in.ModuleID)
		if err != nil {
			return err
		}

		// Lock the enrollment before counting so concurrent updates for the
		// same course see each other's committed module rows.
		enrollment, err := findEnrollmentForUpdate(tx, in.UserID, module.CourseID)
		if err != nil {
			return err
		}

		mp, err := s.upsertModuleProgress(tx, in)
		if err != nil {
			return err
		}

		course, err := computeCourseProgress(tx, in.UserID, module.CourseID)
		if err != nil {
			return err
		}

		completedDelta := 0
		if enrollment != nil {
			completedDelta = applyEnrollmentProgress(enrollment, course.Progress, s.now())
			if err := tx.Save(enrollment).Error; err != nil {
				return Internal("update enrollment", err)
			}
		}

		if err := bumpUserStats(tx, in.UserID, mp.hoursDelta, completedDelta); err != nil {
			return err
		}

		result = ModuleProgressResult{
			ModuleProgress: mp.row,
			Course:         course,
			Enrollment:     enrollment,
		}
		return nil
	})
	if err != nil {
		if KindOf(err) == KindInternal {
			s.log.Error("record module progress failed",
				"userId", in.UserID, "moduleId", in.ModuleID, "error", err)
		}
		return nil, err
	}

	s.log.Debug("module progress recorded",
		"userId", in.UserID, "moduleId", in.ModuleID,
		"completed", result.ModuleProgress.Completed, "courseProgress", result.Course.Progress)
	return &result, nil
}

// CourseProgress computes a user's completion of a course without writing.
func (s *ProgressService) CourseProgress(ctx context.Context, userID, courseID uint) (*models.CourseProgress, error) {
	tx := s.db.WithContext(ctx)
	if _, err := findUser(tx, userID); err != nil {
		return nil, err
	}
	if _, err := findCourse(tx, courseID); err != nil {
		return nil, err
	}
	progress, err := computeCourseProgress(tx, userID, courseID)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

type moduleProgressUpdate struct {
	row        models.ModuleProgress
	hoursDelta float64
}

func (s *ProgressService) upsertModuleProgress(tx *gorm.DB, in ModuleProgressInput) (*moduleProgressUpdate, error) {
	seed := models.ModuleProgress{UserID: in.UserID, ModuleID: in.ModuleID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, Internal("create module progress", err)
	}

	var mp models.ModuleProgress
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND module_id = ?", in.UserID, in.ModuleID).
		Take(&mp).Error; err != nil {
		return nil, Internal("query module progress", err)
	}

	if in.Completed != nil {
		now := s.now()
		switch {
		case *in.Completed && !mp.Completed:
			mp.CompletedAt = &now
		case !*in.Completed && mp.Completed:
			mp.CompletedAt = nil
		}
		mp.Completed = *in.Completed
	}

	var hoursDelta float64
	if in.TimeSpent != nil && *in.TimeSpent > mp.TimeSpent {
		hoursDelta = float64(*in.TimeSpent-mp.TimeSpent) / 60
		mp.TimeSpent = *in.TimeSpent
	}

	if err := tx.Save(&mp).Error; err != nil {
		return nil, Internal("update module progress", err)
	}
	return &moduleProgressUpdate{row: mp, hoursDelta: hoursDelta}, nil
}

// computeCourseProgress counts completed modules over all modules of the
// course, required or optional.
func computeCourseProgress(tx *gorm.DB, userID, courseID uint) (models.CourseProgress, error) {
	progress := models.CourseProgress{UserID: userID, CourseID: courseID}

	var total int64
	if err := tx.Model(&models.Module{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return progress, Internal("count course modules", err)
	}

	var done int64
	if err := tx.Model(&models.ModuleProgress{}).
		Joins("JOIN modules ON modules.id = module_progress.module_id").
		Where("modules.course_id = ? AND module_progress.user_id = ? AND module_progress.completed = ?", courseID, userID, true).
		Count(&done).Error; err != nil {
		return progress, Internal("count completed modules", err)
	}

	progress.TotalModules = int(total)
	progress.CompletedModules = int(done)
	progress.Progress = Percent(int(done), int(total))
	progress.Completed = progress.Progress >= 100
	return progress, nil
}

// Percent returns part/total*100, or 0 for an empty total.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// applyEnrollmentProgress sets progress and the derived completion fields.
// It returns +1 or -1 when the completed flag flips, 0 otherwise.
func applyEnrollmentProgress(e *models.Enrollment, progress float64, now time.Time) int {
	wasCompleted := e.Completed
	e.Progress = progress
	e.Completed = progress >= 100

	switch {
	case e.Completed && !wasCompleted:
		e.CompletedAt = &now
		return 1
	case !e.Completed && wasCompleted:
		e.CompletedAt = nil
		return -1
	}
	return 0
}

func bumpUserStats(tx *gorm.DB, userID uint, hoursDelta float64, completedDelta int) error {
	updates := map[string]interface{}{}
	if hoursDelta != 0 {
		updates["hours_learned"] = gorm.Expr("hours_learned + ?", hoursDelta)
	}
	if completedDelta != 0 {
		updates["completed_courses"] = gorm.Expr("completed_courses + ?", completedDelta)
	}
	if len(updates) == 0 {
		return nil
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return Internal("update user stats", err)
	}
	return nil
}
