package brackets

import (
	"context"
	"testing"
	"time"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialEliminationGenerator_PairsByJoinOrder(t *testing.T) {
	g := NewSequentialEliminationGenerator()

	matches, err := g.GeneratePairings(context.Background(), GenerateParams{
		TournamentID: 7,
		Participants: []int{11, 22, 33, 44},
		ScheduledAt:  time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 11, matches[0].Player1ID)
	assert.Equal(t, 22, matches[0].Player2ID)
	assert.Equal(t, 33, matches[1].Player1ID)
	assert.Equal(t, 44, matches[1].Player2ID)

	for _, m := range matches {
		assert.Equal(t, models.MatchStatusPending, m.Status)
		assert.Nil(t, m.WinnerID)
	}
}

func TestSequentialEliminationGenerator_OddCountLeavesLastUnmatched(t *testing.T) {
	g := NewSequentialEliminationGenerator()

	matches, err := g.GeneratePairings(context.Background(), GenerateParams{
		TournamentID: 7,
		Participants: []int{1, 2, 3, 4, 5},
		ScheduledAt:  time.Now(),
	})
	require.NoError(t, err)
	require.Len(t, matches, 2) // floor(5/2); o 5 fica de fora, sem registo de bye

	for _, m := range matches {
		assert.NotEqual(t, 5, m.Player1ID)
		assert.NotEqual(t, 5, m.Player2ID)
	}
}

func TestSequentialEliminationGenerator_RejectsSingleParticipant(t *testing.T) {
	g := NewSequentialEliminationGenerator()
	_, err := g.GeneratePairings(context.Background(), GenerateParams{
		TournamentID: 1,
		Participants: []int{9},
	})
	assert.Error(t, err)
}
