package brackets

import (
	"context"
	"time"

	"github.com/SCC42Luanda/transcendence-server/models"
)

// GenerateParams agrupa os dados necessários para gerar os emparelhamentos
// iniciais de um torneio. Participants mantém a ordem de adesão.
type GenerateParams struct {
	TournamentID int
	Participants []int
	ScheduledAt  time.Time
}

// PairingGenerator produz o conjunto de partidas implicado pela estrutura
// do torneio. Invocado uma única vez, na transição planning -> running.
// Todas as partidas nascem pendentes, com pontuações a zero e sem vencedor.
type PairingGenerator interface {
	GeneratePairings(ctx context.Context, params GenerateParams) ([]*models.Match, error)

	GetName() string
}
