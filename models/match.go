package models

import "time"

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress" // reservado, ainda não usado
	MatchStatusFinished   MatchStatus = "finished"
)

// Match é uma partida entre dois participantes de um torneio.
// WinnerID está preenchido se e só se Status == finished.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournament_id"`
	Player1ID    int         `json:"player1_id"`
	Player2ID    int         `json:"player2_id"`
	Score1       int         `json:"score1"`
	Score2       int         `json:"score2"`
	WinnerID     *int        `json:"winner_id,omitempty"`
	Status       MatchStatus `json:"status"`
	ScheduledAt  time.Time   `json:"scheduled_at"`
}
