package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnpath/backend/models"
	"learnpath/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username  string `json:"username" validate:"required,min=3,max=32"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type CreateCourseInput struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	Thumbnail      string  `json:"thumbnail" validate:"omitempty,url"`
	Difficulty     string  `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedHours float64 `json:"estimatedHours" validate:"gt=0"`
	PassingScore   int     `json:"passingScore" validate:"gte=0,lte=100"`
}

type CreateModuleInput struct {
	CourseID    uint   `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex" validate:"gte=0"`
	ContentType string `json:"contentType" validate:"required,oneof=video text quiz"`
	ContentURL  string `json:"contentUrl" validate:"required_if=ContentType video"`
	ContentText string `json:"contentText" validate:"required_if=ContentType text"`
	Duration    int    `json:"duration" validate:"gte=0"`
	IsRequired  *bool  `json:"isRequired"`
}

type CreateQuizInput struct {
	ModuleID     uint              `json:"moduleId" validate:"required"`
	Title        string            `json:"title" validate:"required"`
	Description  string            `json:"description"`
	TimeLimit    int               `json:"timeLimit" validate:"gte=0"`
	PassingScore int               `json:"passingScore" validate:"gte=0,lte=100"`
	Questions    []models.Question `json:"questions" validate:"min=1,dive"`
}

type CatalogService struct {
	db         *gorm.DB
	log        *utils.Logger
	bcryptCost int
}

func NewCatalogService(db *gorm.DB, log *utils.Logger, bcryptCost int) *CatalogService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CatalogService{db: db, log: log.With("service", "CatalogService"), bcryptCost: bcryptCost}
}

func (s *CatalogService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx)
	var taken models.User
	err := tx.Where("username = ? OR email = ?", in.Username, in.Email).Take(&taken).Error
	switch {
	case err == nil:
		if taken.Username == in.Username {
			return nil, Conflict("Username already taken")
		}
		return nil, Conflict("Email already taken")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, Internal("query user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, Internal("hash password", err)
	}

	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hashedPassword),
	}
	if err := tx.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Username or email already taken")
		}
		return nil, Internal("create user", err)
	}
	s.log.Info("user created", "userId", user.ID)
	return &user, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), id)
}

// ListCourses returns every course sorted by title.
func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if err := s.db.WithContext(ctx).Order("title ASC").Find(&courses).Error; err != nil {
		return nil, Internal("query courses", err)
	}
	return courses, nil
}

// GetCourseWithModules loads the course and its modules in position order.
func (s *CatalogService) GetCourseWithModules(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := s.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		}).
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Course not found")
		}
		return nil, Internal("query course", err)
	}
	if course.Modules == nil {
		course.Modules = []models.Module{}
	}
	return &course, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, in CreateCourseInput) (*models.Course, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if in.PassingScore == 0 {
		in.PassingScore = models.DefaultPassingScore
	}

	course := models.Course{
		Title:          in.Title,
		Description:    in.Description,
		Thumbnail:      in.Thumbnail,
		Difficulty:     in.Difficulty,
		EstimatedHours: in.EstimatedHours,
		PassingScore:   in.PassingScore,
	}
	if err := s.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, Internal("create course", err)
	}
	return &course, nil
}

func (s *CatalogService) GetModule(ctx context.Context, id uint) (*models.Module, error) {
	return findModule(s.db.WithContext(ctx), id)
}

func (s *CatalogService) CreateModule(ctx context.Context, in CreateModuleInput) (*models.Module, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx)
	if _, err := findCourse(tx, in.CourseID); err != nil {
		return nil, err
	}

	module := models.Module{
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		OrderIndex:  in.OrderIndex,
		ContentType: in.ContentType,
		ContentURL:  in.ContentURL,
		ContentText: in.ContentText,
		Duration:    in.Duration,
		IsRequired:  in.IsRequired,
	}
	if err := tx.Create(&module).Error; err != nil {
		return nil, Internal("create module", err)
	}
	return &module, nil
}

func (s *CatalogService) GetQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	return findQuiz(s.db.WithContext(ctx), id)
}

func (s *CatalogService) GetQuizByModule(ctx context.Context, moduleID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).Where("module_id = ?", moduleID).Order("id ASC").First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Quiz not found for this module")
		}
		return nil, Internal("query quiz", err)
	}
	return &quiz, nil
}

func (s *CatalogService) CreateQuiz(ctx context.Context, in CreateQuizInput) (*models.Quiz, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if fields := checkQuestions(in.Questions); len(fields) > 0 {
		return nil, Validation("Invalid quiz questions", fields)
	}

	tx := s.db.WithContext(ctx)
	if _, err := findModule(tx, in.ModuleID); err != nil {
		return nil, err
	}
	if in.PassingScore == 0 {
		in.PassingScore = models.DefaultPassingScore
	}

	quiz := models.Quiz{
		ModuleID:     in.ModuleID,
		Title:        in.Title,
		Description:  in.Description,
		TimeLimit:    in.TimeLimit,
		PassingScore: in.PassingScore,
		Questions:    in.Questions,
	}
	if err := tx.Create(&quiz).Error; err != nil {
		return nil, Internal("create quiz", err)
	}
	return &quiz, nil
}

// checkQuestions enforces what struct tags cannot: unique question ids and a
// correct answer that names one of the question's options.
func checkQuestions(questions []models.Question) map[string]string {
	fields := map[string]string{}
	seen := map[string]bool{}
	for i, q := range questions {
		if seen[q.ID] {
			fields[fmt.Sprintf("questions[%d].id", i)] = "must be unique"
		}
		seen[q.ID] = true

		found := false
		for _, opt := range q.Options {
			if opt.Value == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			fields[fmt.Sprintf("questions[%d].correctAnswer", i)] = "must match one of the option values"
		}
	}
	return fields
}

// UserAchievements returns the user's achievements, newest first.
func (s *CatalogService) UserAchievements(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	tx := s.db.WithContext(ctx)
	if _, err := findUser(tx, userID); err != nil {
		return nil, err
	}

	achievements := []models.UserAchievement{}
	if err := tx.Where("user_id = ?", userID).
		Order("earned_at DESC, id DESC").
		Find(&achievements).Error; err != nil {
		return nil, Internal("query achievements", err)
	}
	return achievements, nil
}
