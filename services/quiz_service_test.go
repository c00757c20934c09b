package services

import (
	"context"
	"testing"
	"time"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizQuestionPool(category string, n int) []models.Question {
	pool := make([]models.Question, n)
	for i := range pool {
		pool[i] = models.Question{
			ID:           i + 1,
			Prompt:       "Em que ano foi fundada a 42?",
			Options:      []string{"2010", "2013", "2016", "2019"},
			CorrectIndex: 1,
			Category:     category,
			Difficulty:   models.DifficultyEasy,
			Points:       10,
		}
	}
	return pool
}

type quizFixture struct {
	service  QuizService
	attempts *stubAttemptRepository
}

func newQuizFixture(questions []models.Question) *quizFixture {
	attempts := newStubAttemptRepository()
	return &quizFixture{
		service:  NewQuizService(&stubQuestionRepository{questions: questions}, attempts),
		attempts: attempts,
	}
}

func TestStartAttemptDefaultLength(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 15))

	attempt, questions, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history"})
	require.NoError(t, err)

	assert.Len(t, questions, defaultQuizLength)
	assert.Len(t, attempt.QuestionIDs, defaultQuizLength)
	assert.NotEmpty(t, attempt.Code)
	assert.Equal(t, "history", attempt.Category)
	assert.Nil(t, attempt.FinishedAt)
}

func TestStartAttemptSmallPool(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 4))

	_, questions, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history"})
	require.NoError(t, err)
	assert.Len(t, questions, 4, "a pool smaller than the limit is used whole")
}

func TestStartAttemptUnknownCategory(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 4))

	_, _, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "geography"})
	assert.ErrorIs(t, err, ErrNoQuestionsFound)
}

func TestSubmitScoresAndFinalizes(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 3))

	attempt, questions, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history", Limit: 3})
	require.NoError(t, err)

	answers := make([]int, len(questions))
	answers[0] = 1 // correcta
	answers[1] = 0
	answers[2] = 1 // correcta

	result, err := f.service.Submit(context.Background(), 1, attempt.ID, SubmitQuizInput{
		Answers:        answers,
		ElapsedSeconds: 0,
	})
	require.NoError(t, err)

	// Submissão instantânea: multiplicador 2.0 sobre os pontos brutos.
	assert.Equal(t, 20, result.RawPoints)
	assert.Equal(t, 40, result.FinalPoints)
	assert.Equal(t, []bool{true, false, true}, result.Correct)

	stored, err := f.attempts.GetByID(context.Background(), attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.FinishedAt)
	assert.Equal(t, 40, stored.FinalPoints)
	assert.Equal(t, answers, stored.Answers)
}

func TestSubmitAnswerCountMismatch(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 3))

	attempt, _, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history", Limit: 3})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), 1, attempt.ID, SubmitQuizInput{
		Answers:        []int{1},
		ElapsedSeconds: 10,
	})
	assert.ErrorIs(t, err, ErrMalformedSubmission)
}

func TestSubmitForeignAttempt(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 3))

	attempt, _, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history", Limit: 3})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), 2, attempt.ID, SubmitQuizInput{
		Answers:        []int{1, 1, 1},
		ElapsedSeconds: 10,
	})
	assert.ErrorIs(t, err, ErrAttemptNotFound, "foreign attempts must look nonexistent")
}

func TestHistoryOnlyFinishedAttempts(t *testing.T) {
	f := newQuizFixture(quizQuestionPool("history", 3))

	finished, _, err := f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history", Limit: 3})
	require.NoError(t, err)
	_, _, err = f.service.StartAttempt(context.Background(), 1, StartQuizInput{Category: "history", Limit: 3})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), 1, finished.ID, SubmitQuizInput{
		Answers:        []int{1, 1, 1},
		ElapsedSeconds: 30,
	})
	require.NoError(t, err)

	history, err := f.service.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1, "unfinished attempts stay out of the history")
	assert.Equal(t, finished.ID, history[0].ID)
}

func TestStatistics(t *testing.T) {
	f := newQuizFixture(nil)
	now := time.Now().UTC()

	seed := []models.QuizAttempt{
		{UserID: 1, Category: "history", Correct: []bool{true, false}, FinalPoints: 60},
		{UserID: 1, Category: "sports", Correct: []bool{true, true}, FinalPoints: 40},
	}
	for i := range seed {
		require.NoError(t, f.attempts.Create(context.Background(), &seed[i]))
		require.NoError(t, f.attempts.Finalize(context.Background(), seed[i].ID,
			nil, seed[i].Correct, seed[i].FinalPoints, seed[i].FinalPoints, 60, now))
	}

	stats, err := f.service.Statistics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalAttempts)
	assert.InDelta(t, 75.0, stats.AverageAccuracy, 0.001)
	assert.Equal(t, 50, stats.AveragePoints)
	assert.ElementsMatch(t, []string{"history", "sports"}, stats.Categories)
}

func TestStatisticsWithoutAttempts(t *testing.T) {
	f := newQuizFixture(nil)

	stats, err := f.service.Statistics(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAttempts)
	assert.Zero(t, stats.AverageAccuracy)
	assert.Empty(t, stats.Categories)
}
