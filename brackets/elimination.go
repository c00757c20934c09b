package brackets

import (
	"context"
	"fmt"

	"github.com/SCC42Luanda/transcendence-server/models"
)

// SequentialEliminationGenerator gera uma única ronda eliminatória,
// emparelhando os participantes pela ordem de adesão: (p0,p1), (p2,p3), ...
// Com um número ímpar de participantes o último fica sem partida nesta
// ronda; não é criado registo de bye. O avanço para rondas seguintes não é
// responsabilidade deste gerador.
type SequentialEliminationGenerator struct{}

func NewSequentialEliminationGenerator() PairingGenerator {
	return &SequentialEliminationGenerator{}
}

func (g *SequentialEliminationGenerator) GetName() string {
	return "SequentialElimination"
}

func (g *SequentialEliminationGenerator) GeneratePairings(ctx context.Context, params GenerateParams) ([]*models.Match, error) {
	participants := params.Participants
	if len(participants) < 2 {
		return nil, fmt.Errorf("SequentialEliminationGenerator: not enough participants (found %d, min 2 required)", len(participants))
	}

	matches := make([]*models.Match, 0, len(participants)/2)
	for i := 0; i+1 < len(participants); i += 2 {
		matches = append(matches, &models.Match{
			TournamentID: params.TournamentID,
			Player1ID:    participants[i],
			Player2ID:    participants[i+1],
			Status:       models.MatchStatusPending,
			ScheduledAt:  params.ScheduledAt,
		})
	}

	return matches, nil
}
