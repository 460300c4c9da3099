package models

import "time"

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	ContentVideo = "video"
	ContentText  = "text"
	ContentQuiz  = "quiz"
)

// DefaultPassingScore applies to courses and quizzes created without one.
const DefaultPassingScore = 85

type Course struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"not null"`
	Description    string    `json:"description" gorm:"not null"`
	Thumbnail      string    `json:"thumbnail"`
	Difficulty     string    `json:"difficulty" gorm:"not null"` // beginner, intermediate, advanced
	EstimatedHours float64   `json:"estimatedHours" gorm:"not null"`
	PassingScore   int       `json:"passingScore" gorm:"default:85"`
	CreatedAt      time.Time `json:"createdAt"`
	Modules        []Module  `json:"modules,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

type Module struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CourseID    uint   `json:"courseId" gorm:"not null;index:idx_module_course_order"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	// Not unique: positions are maintained by whoever creates modules.
	OrderIndex  int    `json:"orderIndex" gorm:"not null;index:idx_module_course_order"`
	ContentType string `json:"contentType" gorm:"not null"` // video, text, quiz
	ContentURL  string `json:"contentUrl"`
	ContentText string `json:"contentText"`
	Duration    int    `json:"duration"` // in minutes
	IsRequired  *bool  `json:"isRequired" gorm:"default:true"`
}

// Prerequisite is a directed edge: CourseID requires PrerequisiteCourseID.
type Prerequisite struct {
	ID                   uint `json:"id" gorm:"primaryKey"`
	CourseID             uint `json:"courseId" gorm:"not null;uniqueIndex:idx_prerequisite_edge"`
	PrerequisiteCourseID uint `json:"prerequisiteCourseId" gorm:"not null;uniqueIndex:idx_prerequisite_edge;index"`
}
