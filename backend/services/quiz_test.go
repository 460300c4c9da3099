package services

import (
	"context"
	"testing"

	"learnpath/backend/models"
	"learnpath/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAttemptPerfectScore(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	course := testutil.SeedCourse(t, ctx, db, "JS")
	modules := testutil.SeedModules(t, ctx, db, course.ID, 1)
	quiz := testutil.SeedQuiz(t, ctx, db, modules[0].ID, "d", "d", "c")

	res, err := svc.SubmitAttempt(ctx, AttemptInput{UserID: user.ID, QuizID: quiz.ID, Answers: []string{"d", "d", "c"}, TimeTaken: 120})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Attempt.Score)
	assert.True(t, res.Attempt.Passed)
	require.Len(t, res.Achievements, 1)
	assert.Equal(t, models.AchievementPerfectScore, res.Achievements[0].AchievementType)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 1, stored.Achievements)
}

func TestSubmitAttemptRepeatsPerfectScoreAchievement(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	course := testutil.SeedCourse(t, ctx, db, "JS")
	modules := testutil.SeedModules(t, ctx, db, course.ID, 1)
	quiz := testutil.SeedQuiz(t, ctx, db, modules[0].ID, "a", "b")

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitAttempt(ctx, AttemptInput{UserID: user.ID, QuizID: quiz.ID, Answers: []string{"a", "b"}})
		require.NoError(t, err)
	}

	var count int64
	db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_type = ?", user.ID, models.AchievementPerfectScore).
		Count(&count)
	assert.Equal(t, int64(2), count)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 2, stored.Achievements)
}

func TestSubmitAttemptFailing(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	course := testutil.SeedCourse(t, ctx, db, "JS")
	modules := testutil.SeedModules(t, ctx, db, course.ID, 1)
	quiz := testutil.SeedQuiz(t, ctx, db, modules[0].ID, "d", "d", "c")

	res, err := svc.SubmitAttempt(ctx, AttemptInput{UserID: user.ID, QuizID: quiz.ID, Answers: []string{"d", "a", "c"}})
	require.NoError(t, err)
	assert.InDelta(t, 66.67, res.Attempt.Score, 0.01)
	assert.False(t, res.Attempt.Passed)
	assert.Empty(t, res.Achievements)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 0, stored.Achievements)

	var count int64
	db.Model(&models.UserAchievement{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)

	_, err := svc.SubmitAttempt(ctx, AttemptInput{UserID: user.ID, QuizID: 77, Answers: []string{"a"}})
	assert.True(t, IsNotFound(err))

	var count int64
	db.Model(&models.QuizAttempt{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitAttemptValidation(t *testing.T) {
	svc := NewQuizService(testutil.DB(t), testutil.Logger(t))

	_, err := svc.SubmitAttempt(context.Background(), AttemptInput{UserID: 1, QuizID: 1, TimeTaken: -5})
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "answers")
	assert.Contains(t, e.Fields, "timeTaken")
}

func TestAttemptsAndBestScore(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	svc := NewQuizService(db, testutil.Logger(t))

	user := testutil.SeedUser(t, ctx, db)
	course := testutil.SeedCourse(t, ctx, db, "JS")
	modules := testutil.SeedModules(t, ctx, db, course.ID, 1)
	quiz := testutil.SeedQuiz(t, ctx, db, modules[0].ID, "a", "b", "c", "d")

	best, err := svc.BestScore(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, best)

	for _, answers := range [][]string{{"a", "x", "x", "x"}, {"a", "b", "c", "x"}, {"a", "b", "x", "x"}} {
		_, err := svc.SubmitAttempt(ctx, AttemptInput{UserID: user.ID, QuizID: quiz.ID, Answers: answers})
		require.NoError(t, err)
	}

	attempts, err := svc.Attempts(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	assert.Equal(t, 50.0, attempts[0].Score, "newest first")
	assert.Equal(t, []string{"a", "b", "x", "x"}, []string(attempts[0].Answers))

	best, err = svc.BestScore(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, best)
}
