package models

import "time"

type Enrollment struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID    uint       `json:"courseId" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	EnrolledAt  time.Time  `json:"enrolledAt" gorm:"autoCreateTime"`
	Progress    float64    `json:"progress" gorm:"default:0"` // percentage 0-100
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt"`
	Course      *Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

type ModuleProgress struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"not null;uniqueIndex:idx_module_progress_user_module"`
	ModuleID    uint       `json:"moduleId" gorm:"not null;uniqueIndex:idx_module_progress_user_module"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completedAt"`
	TimeSpent   int        `json:"timeSpent" gorm:"default:0"` // in minutes
}

func (ModuleProgress) TableName() string {
	return "module_progress"
}

// CourseProgress is the computed view of a user's position in a course.
type CourseProgress struct {
	UserID           uint    `json:"userId"`
	CourseID         uint    `json:"courseId"`
	CompletedModules int     `json:"completedModules"`
	TotalModules     int     `json:"totalModules"`
	Progress         float64 `json:"progress"`
	Completed        bool    `json:"completed"`
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Course{},
		&Module{},
		&Quiz{},
		&Enrollment{},
		&ModuleProgress{},
		&QuizAttempt{},
		&Prerequisite{},
		&UserAchievement{},
	}
}
