package quiz

import (
	"testing"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionSet(n, points int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:           i + 1,
			CorrectIndex: i % 4,
			Points:       points,
		}
	}
	return questions
}

func TestScore_FastQuizGetsBonusMultiplier(t *testing.T) {
	// 10 perguntas de 100 pontos, 8 certas, 60s:
	// multiplicador = max(0.5, 2 - 60/300) = 1.8 -> floor(800 * 1.8) = 1440
	questions := questionSet(10, 100)
	answers := make([]int, 10)
	for i := range answers {
		answers[i] = i % 4
	}
	answers[3] = (questions[3].CorrectIndex + 1) % 4
	answers[7] = (questions[7].CorrectIndex + 1) % 4

	result, err := Score(questions, answers, 60)
	require.NoError(t, err)

	assert.Equal(t, 800, result.RawPoints)
	assert.Equal(t, 1440, result.FinalPoints)
	require.Len(t, result.Correct, 10)
	assert.False(t, result.Correct[3])
	assert.False(t, result.Correct[7])

	correctCount := 0
	for _, ok := range result.Correct {
		if ok {
			correctCount++
		}
	}
	assert.Equal(t, 8, correctCount)
}

func TestScore_MultiplierFloorsAtHalf(t *testing.T) {
	questions := questionSet(4, 50)
	answers := make([]int, 4)
	for i := range answers {
		answers[i] = questions[i].CorrectIndex
	}

	atTenMinutes, err := Score(questions, answers, 600)
	require.NoError(t, err)
	atOneHour, err := Score(questions, answers, 3600)
	require.NoError(t, err)

	assert.Equal(t, 100, atTenMinutes.FinalPoints) // floor(200 * 0.5)
	assert.Equal(t, atTenMinutes.FinalPoints, atOneHour.FinalPoints)
}

func TestScore_ExactWindowBoundary(t *testing.T) {
	questions := questionSet(1, 100)
	answers := []int{questions[0].CorrectIndex}

	// Aos 300s o multiplicador é exactamente 1.0.
	result, err := Score(questions, answers, 300)
	require.NoError(t, err)
	assert.Equal(t, 100, result.FinalPoints)
}

func TestScore_AllWrongYieldsZero(t *testing.T) {
	questions := questionSet(5, 100)
	answers := make([]int, 5)
	for i := range answers {
		answers[i] = (questions[i].CorrectIndex + 1) % 4
	}

	result, err := Score(questions, answers, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RawPoints)
	assert.Equal(t, 0, result.FinalPoints)
}

func TestScore_AnswerCountMismatch(t *testing.T) {
	questions := questionSet(3, 100)

	_, err := Score(questions, []int{0, 1}, 30)
	assert.ErrorIs(t, err, ErrAnswerCountMismatch)
}
