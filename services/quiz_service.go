package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/SCC42Luanda/transcendence-server/quiz"
	"github.com/SCC42Luanda/transcendence-server/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultQuizLength = 10
	historyLimit      = 20
	statisticsWindow  = 100
)

type StartQuizInput struct {
	Category   string                     `json:"category" validate:"required"`
	Difficulty *models.QuestionDifficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Limit      int                        `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

type SubmitQuizInput struct {
	Answers        []int `json:"answers" validate:"required"`
	ElapsedSeconds int   `json:"elapsed_seconds" validate:"min=0"`
}

type QuizService interface {
	Categories(ctx context.Context) ([]string, error)
	// StartAttempt sorteia perguntas da categoria pedida e regista a
	// tentativa. As perguntas devolvidas não expõem o índice correcto.
	StartAttempt(ctx context.Context, userID int, input StartQuizInput) (*models.QuizAttempt, []models.Question, error)
	Submit(ctx context.Context, userID, attemptID int, input SubmitQuizInput) (*quiz.Result, error)
	History(ctx context.Context, userID int) ([]models.QuizAttempt, error)
	Statistics(ctx context.Context, userID int) (*models.QuizStatistics, error)
}

type quizService struct {
	questions repositories.QuestionRepository
	attempts  repositories.AttemptRepository
	validate  *validator.Validate
}

func NewQuizService(
	questionRepo repositories.QuestionRepository,
	attemptRepo repositories.AttemptRepository,
) QuizService {
	return &quizService{
		questions: questionRepo,
		attempts:  attemptRepo,
		validate:  validator.New(),
	}
}

func (s *quizService) Categories(ctx context.Context) ([]string, error) {
	return s.questions.ListCategories(ctx)
}

func (s *quizService) StartAttempt(ctx context.Context, userID int, input StartQuizInput) (*models.QuizAttempt, []models.Question, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	pool, err := s.questions.ListByCategory(ctx, input.Category, input.Difficulty)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions for category %q: %w", input.Category, err)
	}
	if len(pool) == 0 {
		return nil, nil, ErrNoQuestionsFound
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultQuizLength
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if limit < len(pool) {
		pool = pool[:limit]
	}

	questionIDs := make([]int, len(pool))
	for i, q := range pool {
		questionIDs[i] = q.ID
	}

	attempt := &models.QuizAttempt{
		Code:        uuid.NewString(),
		UserID:      userID,
		Category:    input.Category,
		QuestionIDs: questionIDs,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, nil, err
	}

	return attempt, pool, nil
}

func (s *quizService) Submit(ctx context.Context, userID, attemptID int, input SubmitQuizInput) (*quiz.Result, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repositories.ErrAttemptNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		// Tentativas alheias comportam-se como inexistentes.
		return nil, ErrAttemptNotFound
	}

	questions, err := s.questions.GetByIDs(ctx, attempt.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for attempt %d: %w", attemptID, err)
	}

	result, err := quiz.Score(questions, input.Answers, input.ElapsedSeconds)
	if err != nil {
		if errors.Is(err, quiz.ErrAnswerCountMismatch) {
			return nil, ErrMalformedSubmission
		}
		return nil, err
	}

	finishedAt := time.Now().UTC()
	err = s.attempts.Finalize(ctx, attemptID,
		input.Answers, result.Correct,
		result.RawPoints, result.FinalPoints, input.ElapsedSeconds, finishedAt)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *quizService) History(ctx context.Context, userID int) ([]models.QuizAttempt, error) {
	return s.attempts.ListByUser(ctx, userID, historyLimit)
}

func (s *quizService) Statistics(ctx context.Context, userID int) (*models.QuizStatistics, error) {
	attempts, err := s.attempts.ListByUser(ctx, userID, statisticsWindow)
	if err != nil {
		return nil, err
	}

	stats := &models.QuizStatistics{Categories: []string{}}
	if len(attempts) == 0 {
		return stats, nil
	}

	totalCorrect := 0
	totalQuestions := 0
	totalPoints := 0
	seen := make(map[string]bool)

	for _, a := range attempts {
		totalQuestions += len(a.Correct)
		for _, ok := range a.Correct {
			if ok {
				totalCorrect++
			}
		}
		totalPoints += a.FinalPoints
		if !seen[a.Category] {
			seen[a.Category] = true
			stats.Categories = append(stats.Categories, a.Category)
		}
	}

	stats.TotalAttempts = len(attempts)
	if totalQuestions > 0 {
		accuracy := float64(totalCorrect) / float64(totalQuestions) * 100
		stats.AverageAccuracy = math.Round(accuracy*100) / 100
	}
	stats.AveragePoints = totalPoints / len(attempts)

	return stats, nil
}
