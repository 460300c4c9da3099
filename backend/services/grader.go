package services

import "learnpath/backend/models"

type GradeResult struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

// Perfect reports a full-marks result.
func (r GradeResult) Perfect() bool {
	return r.Total > 0 && r.Correct == r.Total
}

// Grade compares answers[i] with the i-th question's correct answer.
// Answers are matched by position only: a missing answer counts as wrong and
// answers beyond the last question are ignored.
func Grade(quiz *models.Quiz, answers []string) GradeResult {
	result := GradeResult{Total: len(quiz.Questions)}
	for i, q := range quiz.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			result.Correct++
		}
	}
	result.Score = Percent(result.Correct, result.Total)
	result.Passed = result.Score >= float64(quiz.EffectivePassingScore())
	return result
}
