package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/lib/pq"
)

type QuestionRepository interface {
	ListByCategory(ctx context.Context, category string, difficulty *models.QuestionDifficulty) ([]models.Question, error)
	// GetByIDs devolve as perguntas na mesma ordem dos IDs pedidos.
	GetByIDs(ctx context.Context, ids []int) ([]models.Question, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type postgresQuestionRepository struct {
	db *sql.DB
}

func NewPostgresQuestionRepository(db *sql.DB) QuestionRepository {
	return &postgresQuestionRepository{db: db}
}

const questionColumns = `id, prompt, options, correct_index, category, difficulty, points`

func (r *postgresQuestionRepository) ListByCategory(ctx context.Context, category string, difficulty *models.QuestionDifficulty) ([]models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE category = $1`

	args := []interface{}{category}
	if difficulty != nil {
		query += " AND difficulty = $2"
		args = append(args, *difficulty)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

func (r *postgresQuestionRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(intsToInt64(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fetched, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]models.Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}

	// Reordenar pela ordem pedida; uma tentativa referencia perguntas pela
	// ordem em que foram servidas ao utilizador.
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("question %d referenced by attempt no longer exists", id)
		}
		ordered = append(ordered, q)
	}
	return ordered, nil
}

func (r *postgresQuestionRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM questions ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	questions := make([]models.Question, 0)
	for rows.Next() {
		var q models.Question
		var options pq.StringArray
		if err := rows.Scan(
			&q.ID, &q.Prompt, &options, &q.CorrectIndex, &q.Category, &q.Difficulty, &q.Points,
		); err != nil {
			return nil, err
		}
		q.Options = options
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
