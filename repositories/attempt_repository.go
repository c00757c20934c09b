package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/lib/pq"
)

var ErrAttemptNotFound = errors.New("quiz attempt not found")

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id int) (*models.QuizAttempt, error)
	Finalize(ctx context.Context, id int, answers []int, correct []bool, rawPoints, finalPoints, elapsedSeconds int, finishedAt time.Time) error
	ListByUser(ctx context.Context, userID int, limit int) ([]models.QuizAttempt, error)
}

type postgresAttemptRepository struct {
	db *sql.DB
}

func NewPostgresAttemptRepository(db *sql.DB) AttemptRepository {
	return &postgresAttemptRepository{db: db}
}

const attemptColumns = `
	id, code, user_id, category, question_ids, answers, correct,
	raw_points, final_points, elapsed_seconds, started_at, finished_at`

func (r *postgresAttemptRepository) Create(ctx context.Context, a *models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (code, user_id, category, question_ids)
		VALUES ($1, $2, $3, $4)
		RETURNING id, started_at`

	err := r.db.QueryRowContext(ctx, query,
		a.Code, a.UserID, a.Category, pq.Array(intsToInt64(a.QuestionIDs)),
	).Scan(&a.ID, &a.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

func (r *postgresAttemptRepository) GetByID(ctx context.Context, id int) (*models.QuizAttempt, error) {
	query := `SELECT` + attemptColumns + ` FROM quiz_attempts WHERE id = $1`

	a, err := scanAttempt(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *postgresAttemptRepository) Finalize(ctx context.Context, id int, answers []int, correct []bool, rawPoints, finalPoints, elapsedSeconds int, finishedAt time.Time) error {
	query := `
		UPDATE quiz_attempts
		SET answers = $1, correct = $2, raw_points = $3, final_points = $4,
		    elapsed_seconds = $5, finished_at = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		pq.Array(intsToInt64(answers)), pq.Array(correct),
		rawPoints, finalPoints, elapsedSeconds, finishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize quiz attempt %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrAttemptNotFound)
}

func (r *postgresAttemptRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.QuizAttempt, error) {
	query := `
		SELECT` + attemptColumns + `
		FROM quiz_attempts
		WHERE user_id = $1 AND finished_at IS NOT NULL
		ORDER BY finished_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]models.QuizAttempt, 0)
	for rows.Next() {
		a, scanErr := scanAttempt(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row rowScanner) (*models.QuizAttempt, error) {
	a := &models.QuizAttempt{}
	var questionIDs, answers pq.Int64Array
	var correct pq.BoolArray
	err := row.Scan(
		&a.ID, &a.Code, &a.UserID, &a.Category, &questionIDs, &answers, &correct,
		&a.RawPoints, &a.FinalPoints, &a.ElapsedSeconds, &a.StartedAt, &a.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	a.QuestionIDs = int64sToInt(questionIDs)
	a.Answers = int64sToInt(answers)
	a.Correct = correct
	return a, nil
}
