package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionOption struct {
	Value       string `json:"value" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Description string `json:"description,omitempty"`
}

type Question struct {
	ID            string           `json:"id" validate:"required"`
	Question      string           `json:"question" validate:"required"`
	Options       []QuestionOption `json:"options" validate:"min=2,dive"`
	CorrectAnswer string           `json:"correctAnswer" validate:"required"`
	Explanation   string           `json:"explanation,omitempty"`
}

type Quiz struct {
	ID           uint                          `json:"id" gorm:"primaryKey"`
	ModuleID     uint                          `json:"moduleId" gorm:"not null;index"`
	Title        string                        `json:"title" gorm:"not null"`
	Description  string                        `json:"description"`
	TimeLimit    int                           `json:"timeLimit"` // in minutes
	PassingScore int                           `json:"passingScore" gorm:"default:85"`
	Questions    datatypes.JSONSlice[Question] `json:"questions" gorm:"not null"`
}

// EffectivePassingScore falls back to DefaultPassingScore for quizzes
// stored without a threshold.
func (q *Quiz) EffectivePassingScore() int {
	if q.PassingScore <= 0 {
		return DefaultPassingScore
	}
	return q.PassingScore
}

// QuizAttempt is an immutable log row; Answers[i] answers Questions[i].
type QuizAttempt struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	UserID      uint                        `json:"userId" gorm:"not null;index:idx_attempt_user_quiz"`
	QuizID      uint                        `json:"quizId" gorm:"not null;index:idx_attempt_user_quiz"`
	Score       float64                     `json:"score" gorm:"not null"`
	Answers     datatypes.JSONSlice[string] `json:"answers" gorm:"not null"`
	Passed      bool                        `json:"passed" gorm:"not null"`
	TimeTaken   int                         `json:"timeTaken"` // in seconds
	AttemptedAt time.Time                   `json:"attemptedAt" gorm:"autoCreateTime"`
}
