// Package quiz avalia submissões de quiz: compara respostas com o banco de
// perguntas e aplica o multiplicador de decaimento temporal. Funções puras.
package quiz

import (
	"errors"
	"math"

	"github.com/SCC42Luanda/transcendence-server/models"
)

// ErrAnswerCountMismatch indica uma submissão malformada: o número de
// respostas não corresponde ao número de perguntas.
var ErrAnswerCountMismatch = errors.New("answer count does not match question count")

// decayWindowSeconds é a janela de bónus: terminar dentro de 5 minutos
// rende até 2x os pontos; o multiplicador nunca desce abaixo de 0.5x.
const (
	decayWindowSeconds   = 300
	minPointsMultiplier  = 0.5
	basePointsMultiplier = 2.0
)

// Result é o resultado da avaliação de uma submissão.
type Result struct {
	RawPoints   int    `json:"raw_points"`
	FinalPoints int    `json:"final_points"`
	Correct     []bool `json:"correct"`
}

// Score compara cada resposta com o índice correcto da pergunta homóloga,
// soma os pontos das respostas certas e aplica o multiplicador
// max(0.5, 2 - elapsed/300), arredondando o total para baixo.
func Score(questions []models.Question, answers []int, elapsedSeconds int) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, ErrAnswerCountMismatch
	}

	correct := make([]bool, len(questions))
	raw := 0
	for i, q := range questions {
		if answers[i] == q.CorrectIndex {
			correct[i] = true
			raw += q.Points
		}
	}

	multiplier := basePointsMultiplier - float64(elapsedSeconds)/decayWindowSeconds
	if multiplier < minPointsMultiplier {
		multiplier = minPointsMultiplier
	}

	return Result{
		RawPoints:   raw,
		FinalPoints: int(math.Floor(float64(raw) * multiplier)),
		Correct:     correct,
	}, nil
}
