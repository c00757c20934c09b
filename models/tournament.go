package models

import "time"

// TournamentState representa os estados do ciclo de vida de um torneio.
// As transições avançam apenas num sentido: planning -> running -> finished.
type TournamentState string

const (
	StatePlanning TournamentState = "planning"
	StateRunning  TournamentState = "running"
	StateFinished TournamentState = "finished"
)

// TournamentStructure determina como o gerador de emparelhamentos cria as partidas.
type TournamentStructure string

const (
	StructureElimination TournamentStructure = "elimination"
	StructureGroup       TournamentStructure = "group"
	StructureLeague      TournamentStructure = "league"
)

// Tournament representa um torneio. Participants mantém a ordem de adesão;
// Version suporta a escrita optimista usada ao alterar o plantel.
type Tournament struct {
	ID              int                 `json:"id" db:"id"`
	Name            string              `json:"name" db:"name"`
	Description     *string             `json:"description,omitempty" db:"description"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	StartDate       time.Time           `json:"start_date" db:"start_date"`
	EndDate         *time.Time          `json:"end_date,omitempty" db:"end_date"`
	State           TournamentState     `json:"state" db:"state"`
	MaxParticipants int                 `json:"max_participants" db:"max_participants"`
	Structure       TournamentStructure `json:"structure" db:"structure"`
	Participants    []int               `json:"participants" db:"participants"`
	JoinCode        string              `json:"join_code" db:"join_code"`
	Version         int                 `json:"-" db:"version"`
	BannerKey       *string             `json:"-" db:"banner_key"`
	BannerURL       *string             `json:"banner_url,omitempty" db:"-"`
}

// HasParticipant indica se o utilizador consta do plantel.
func (t *Tournament) HasParticipant(userID int) bool {
	for _, id := range t.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
