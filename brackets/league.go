package brackets

import (
	"context"
	"fmt"

	"github.com/SCC42Luanda/transcendence-server/models"
)

// LeagueGenerator gera o grafo completo: cada par não ordenado de
// participantes distintos recebe exactamente uma partida, num varrimento
// duplo i < j. Para N participantes produz N*(N-1)/2 partidas.
type LeagueGenerator struct{}

func NewLeagueGenerator() PairingGenerator {
	return &LeagueGenerator{}
}

func (g *LeagueGenerator) GetName() string {
	return "League"
}

func (g *LeagueGenerator) GeneratePairings(ctx context.Context, params GenerateParams) ([]*models.Match, error) {
	participants := params.Participants
	if len(participants) < 2 {
		return nil, fmt.Errorf("LeagueGenerator: not enough participants (found %d, min 2 required)", len(participants))
	}

	matches := make([]*models.Match, 0, len(participants)*(len(participants)-1)/2)
	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			matches = append(matches, &models.Match{
				TournamentID: params.TournamentID,
				Player1ID:    participants[i],
				Player2ID:    participants[j],
				Status:       models.MatchStatusPending,
				ScheduledAt:  params.ScheduledAt,
			})
		}
	}

	return matches, nil
}
