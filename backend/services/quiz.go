package services

import (
	"context"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"gorm.io/gorm"
)

// AttemptInput is the submission payload. Score and pass/fail are always
// computed here from Answers.
type AttemptInput struct {
	UserID    uint     `json:"userId" validate:"required"`
	QuizID    uint     `json:"quizId" validate:"required"`
	Answers   []string `json:"answers" validate:"required"`
	TimeTaken int      `json:"timeTaken" validate:"gte=0"`
}

type AttemptResult struct {
	Attempt      models.QuizAttempt       `json:"attempt"`
	Grade        GradeResult              `json:"grade"`
	Achievements []models.UserAchievement `json:"achievements"`
}

type QuizService struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewQuizService(db *gorm.DB, log *utils.Logger) *QuizService {
	return &QuizService{db: db, log: log.With("service", "QuizService")}
}

// SubmitAttempt grades the answers, stores the attempt and applies the
// achievement side effects in one transaction.
func (s *QuizService) SubmitAttempt(ctx context.Context, in AttemptInput) (*AttemptResult, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	var result AttemptResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findUser(tx, in.UserID); err != nil {
			return err
		}
		quiz, err := findQuiz(tx, in.QuizID)
		if err != nil {
			return err
		}

		grade := Grade(quiz, in.Answers)
		attempt := models.QuizAttempt{
			UserID:    in.UserID,
			QuizID:    in.QuizID,
			Score:     grade.Score,
			Answers:   in.Answers,
			Passed:    grade.Passed,
			TimeTaken: in.TimeTaken,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return Internal("create quiz attempt", err)
		}

		awarded := []models.UserAchievement{}
		if grade.Passed && grade.Perfect() {
			// every perfect attempt appends a record, repeats included
			achievement := models.UserAchievement{
				UserID:                 in.UserID,
				AchievementType:        models.AchievementPerfectScore,
				AchievementTitle:       "Perfect Score",
				AchievementDescription: "Scored 100% on a quiz",
			}
			if err := tx.Create(&achievement).Error; err != nil {
				return Internal("create achievement", err)
			}
			awarded = append(awarded, achievement)
		}

		if grade.Passed {
			if err := tx.Model(&models.User{}).Where("id = ?", in.UserID).
				Update("achievements", gorm.Expr("achievements + ?", 1)).Error; err != nil {
				return Internal("update user achievements", err)
			}
		}

		result = AttemptResult{Attempt: attempt, Grade: grade, Achievements: awarded}
		return nil
	})
	if err != nil {
		if KindOf(err) == KindInternal {
			s.log.Error("submit quiz attempt failed", "userId", in.UserID, "quizId", in.QuizID, "error", err)
		}
		return nil, err
	}

	s.log.Info("quiz attempt graded",
		"userId", in.UserID, "quizId", in.QuizID,
		"score", result.Grade.Score, "passed", result.Grade.Passed)
	return &result, nil
}

// Attempts returns the user's attempts at a quiz, newest first.
func (s *QuizService) Attempts(ctx context.Context, userID, quizID uint) ([]models.QuizAttempt, error) {
	attempts := []models.QuizAttempt{}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempted_at DESC, id DESC").
		Find(&attempts).Error; err != nil {
		return nil, Internal("query quiz attempts", err)
	}
	return attempts, nil
}

// BestScore is the highest score over the user's attempts, 0 with none.
func (s *QuizService) BestScore(ctx context.Context, userID, quizID uint) (float64, error) {
	var best float64
	if err := s.db.WithContext(ctx).Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Select("COALESCE(MAX(score), 0)").
		Scan(&best).Error; err != nil {
		return 0, Internal("query best score", err)
	}
	return best, nil
}
