package models

// StandingsEntry é uma linha da tabela classificativa, derivada das partidas
// terminadas. Não é persistida. Position é 1-based; empates em pontos mantêm
// a ordem de adesão ao torneio.
type StandingsEntry struct {
	ParticipantID int   `json:"participant_id"`
	Points        int   `json:"points"`
	Wins          int   `json:"wins"`
	Losses        int   `json:"losses"`
	Position      int   `json:"position"`
	Player        *User `json:"player,omitempty"`
}

// StandingsTable agrega a classificação de um torneio.
type StandingsTable struct {
	TournamentID int              `json:"tournament_id"`
	Standings    []StandingsEntry `json:"standings"`
}
