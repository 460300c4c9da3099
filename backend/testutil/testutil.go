// Package testutil provides an in-memory database and seed helpers for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

// DB opens a fresh, migrated in-memory sqlite database owned by tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("get test db: %v", err)
	}
	// every connection to ":memory:" is its own database
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := utils.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func Logger(tb testing.TB) *utils.Logger {
	tb.Helper()
	return utils.NopLogger()
}

func next() int64 { return seq.Add(1) }

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB) *models.User {
	tb.Helper()
	n := next()
	u := &models.User{
		Username:  fmt.Sprintf("user%d", n),
		Email:     fmt.Sprintf("user%d@example.com", n),
		FirstName: "Alex",
		LastName:  "Johnson",
		Password:  "hash",
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, db *gorm.DB, title string) *models.Course {
	tb.Helper()
	c := &models.Course{
		Title:          title,
		Description:    title + " description",
		Difficulty:     models.DifficultyBeginner,
		EstimatedHours: 12,
		PassingScore:   models.DefaultPassingScore,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

// SeedModules creates n video modules with orderIndex 1..n.
func SeedModules(tb testing.TB, ctx context.Context, db *gorm.DB, courseID uint, n int) []models.Module {
	tb.Helper()
	modules := make([]models.Module, 0, n)
	for i := 1; i <= n; i++ {
		m := models.Module{
			CourseID:    courseID,
			Title:       fmt.Sprintf("Module %d", i),
			OrderIndex:  i,
			ContentType: models.ContentVideo,
			ContentURL:  fmt.Sprintf("https://example.com/video%d", i),
			Duration:    15,
		}
		if err := db.WithContext(ctx).Create(&m).Error; err != nil {
			tb.Fatalf("seed module: %v", err)
		}
		modules = append(modules, m)
	}
	return modules
}

// SeedQuiz creates a quiz whose questions have the given correct answers,
// each with options a-d.
func SeedQuiz(tb testing.TB, ctx context.Context, db *gorm.DB, moduleID uint, correct ...string) *models.Quiz {
	tb.Helper()
	questions := make([]models.Question, 0, len(correct))
	for i, answer := range correct {
		questions = append(questions, models.Question{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("Question %d?", i+1),
			Options: []models.QuestionOption{
				{Value: "a", Label: "A"},
				{Value: "b", Label: "B"},
				{Value: "c", Label: "C"},
				{Value: "d", Label: "D"},
			},
			CorrectAnswer: answer,
		})
	}
	q := &models.Quiz{
		ModuleID:     moduleID,
		Title:        "Quiz",
		TimeLimit:    15,
		PassingScore: models.DefaultPassingScore,
		Questions:    questions,
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}

func SeedEnrollment(tb testing.TB, ctx context.Context, db *gorm.DB, userID, courseID uint, completed bool) *models.Enrollment {
	tb.Helper()
	e := &models.Enrollment{UserID: userID, CourseID: courseID}
	if completed {
		e.Progress = 100
		e.Completed = true
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedPrerequisite(tb testing.TB, ctx context.Context, db *gorm.DB, courseID, requiredID uint) {
	tb.Helper()
	p := &models.Prerequisite{CourseID: courseID, PrerequisiteCourseID: requiredID}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed prerequisite: %v", err)
	}
}
