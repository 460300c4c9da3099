package services

import (
	"testing"

	"learnpath/backend/models"

	"github.com/stretchr/testify/assert"
)

func quizWithAnswers(passing int, correct ...string) *models.Quiz {
	questions := make([]models.Question, 0, len(correct))
	for i, c := range correct {
		questions = append(questions, models.Question{ID: string(rune('1' + i)), CorrectAnswer: c})
	}
	return &models.Quiz{PassingScore: passing, Questions: questions}
}

func TestGradeAllCorrect(t *testing.T) {
	result := Grade(quizWithAnswers(0, "d", "d", "c"), []string{"d", "d", "c"})

	assert.Equal(t, 3, result.Correct)
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)
	assert.True(t, result.Perfect())
}

func TestGradeOneWrong(t *testing.T) {
	result := Grade(quizWithAnswers(0, "d", "d", "c"), []string{"d", "a", "c"})

	assert.Equal(t, 2, result.Correct)
	assert.InDelta(t, 66.67, result.Score, 0.01)
	assert.False(t, result.Passed)
	assert.False(t, result.Perfect())
}

func TestGradeUsesQuizThreshold(t *testing.T) {
	quiz := quizWithAnswers(60, "a", "b", "c")
	assert.True(t, Grade(quiz, []string{"a", "b", "x"}).Passed)

	quiz.PassingScore = 70
	assert.False(t, Grade(quiz, []string{"a", "b", "x"}).Passed)
}

func TestGradeEmptyQuiz(t *testing.T) {
	result := Grade(&models.Quiz{}, []string{"a"})

	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.Passed)
	assert.False(t, result.Perfect())
}

// Answers are matched by position only. These cases pin the current
// behaviour for short, long and reordered submissions.
func TestGradePositionalMatching(t *testing.T) {
	quiz := quizWithAnswers(0, "a", "b", "c", "d")

	short := Grade(quiz, []string{"a", "b"})
	assert.Equal(t, 2, short.Correct)
	assert.Equal(t, 50.0, short.Score)

	long := Grade(quiz, []string{"a", "b", "c", "d", "e", "f"})
	assert.Equal(t, 4, long.Correct)
	assert.Equal(t, 100.0, long.Score)

	reordered := Grade(quiz, []string{"d", "c", "b", "a"})
	assert.Equal(t, 0, reordered.Correct)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, Percent(3, 0))
	assert.Equal(t, 100.0, Percent(7, 7))
	assert.Equal(t, 25.0, Percent(1, 4))
}
