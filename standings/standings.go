// Package standings deriva a tabela classificativa de um torneio a partir
// das partidas terminadas. Funções puras, sem persistência.
package standings

import (
	"sort"

	"github.com/SCC42Luanda/transcendence-server/models"
)

const pointsPerWin = 3

// Compute constrói a classificação: uma entrada por participante, na ordem
// de adesão, +3 pontos por vitória, sem empates. A ordenação é estável —
// participantes com os mesmos pontos mantêm a ordem do plantel, e é esse o
// critério de desempate. Partidas sem vencedor são ignoradas.
func Compute(participants []int, finished []*models.Match) []models.StandingsEntry {
	entries := make([]models.StandingsEntry, len(participants))
	index := make(map[int]int, len(participants))
	for i, id := range participants {
		entries[i] = models.StandingsEntry{ParticipantID: id}
		index[id] = i
	}

	for _, m := range finished {
		if m.WinnerID == nil {
			continue
		}
		i1, ok1 := index[m.Player1ID]
		i2, ok2 := index[m.Player2ID]
		if !ok1 || !ok2 {
			continue
		}
		switch *m.WinnerID {
		case m.Player1ID:
			entries[i1].Wins++
			entries[i1].Points += pointsPerWin
			entries[i2].Losses++
		case m.Player2ID:
			entries[i2].Wins++
			entries[i2].Points += pointsPerWin
			entries[i1].Losses++
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	for i := range entries {
		entries[i].Position = i + 1
	}

	return entries
}
