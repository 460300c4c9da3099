package models

import "time"

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"unique;not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	FirstName string `json:"firstName" gorm:"not null"`
	LastName  string `json:"lastName" gorm:"not null"`
	Password  string `json:"-" gorm:"not null"` // bcrypt hash

	// Denormalized counters, maintained inside the transactions that
	// change the underlying rows.
	CurrentStreak    int     `json:"currentStreak" gorm:"default:0"`
	CompletedCourses int     `json:"completedCourses" gorm:"default:0"`
	HoursLearned     float64 `json:"hoursLearned" gorm:"default:0"`
	Achievements     int     `json:"achievements" gorm:"default:0"`

	CreatedAt time.Time `json:"createdAt"`
}

type UserAchievement struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	UserID                 uint      `json:"userId" gorm:"index;not null"`
	AchievementType        string    `json:"achievementType" gorm:"not null"`
	AchievementTitle       string    `json:"achievementTitle" gorm:"not null"`
	AchievementDescription string    `json:"achievementDescription" gorm:"not null"`
	EarnedAt               time.Time `json:"earnedAt" gorm:"autoCreateTime"`
}

const AchievementPerfectScore = "perfect_score"
