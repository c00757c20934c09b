package models

import "time"

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// Question é uma pergunta do banco de quiz. CorrectIndex nunca é exposto
// em JSON — o cliente só o descobre ao submeter.
type Question struct {
	ID           int                `json:"id"`
	Prompt       string             `json:"prompt"`
	Options      []string           `json:"options"`
	CorrectIndex int                `json:"-"`
	Category     string             `json:"category"`
	Difficulty   QuestionDifficulty `json:"difficulty"`
	Points       int                `json:"points"`
}

// QuizAttempt regista uma tentativa de quiz de um utilizador. Answers,
// Correct e os campos de pontuação só são preenchidos na submissão.
type QuizAttempt struct {
	ID             int        `json:"id"`
	Code           string     `json:"code"`
	UserID         int        `json:"user_id"`
	Category       string     `json:"category"`
	QuestionIDs    []int      `json:"question_ids"`
	Answers        []int      `json:"answers,omitempty"`
	Correct        []bool     `json:"correct,omitempty"`
	RawPoints      int        `json:"raw_points"`
	FinalPoints    int        `json:"final_points"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

// QuizStatistics resume o desempenho de um utilizador no quiz.
type QuizStatistics struct {
	TotalAttempts   int      `json:"total_attempts"`
	AverageAccuracy float64  `json:"average_accuracy"`
	AveragePoints   int      `json:"average_points"`
	Categories      []string `json:"categories"`
}
