package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SCC42Luanda/transcendence-server/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// CreateBatch insere o conjunto inicial de partidas. A chave única
	// (tournament_id, player1_id, player2_id) com ON CONFLICT DO NOTHING
	// torna a geração idempotente: uma repetição salta pares já criados
	// em vez de os duplicar. Deve correr dentro da transacção do chamador.
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error)
	RecordResult(ctx context.Context, id int, score1, score2, winnerID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (
			tournament_id, player1_id, player2_id, score1, score2, status, scheduled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tournament_id, player1_id, player2_id) DO NOTHING
		RETURNING id`

	for _, m := range matches {
		err := executor.QueryRowContext(ctx, query,
			m.TournamentID, m.Player1ID, m.Player2ID, m.Score1, m.Score2,
			m.Status, m.ScheduledAt,
		).Scan(&m.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Par já existente de uma geração anterior; nada a fazer.
				continue
			}
			return fmt.Errorf("failed to create match %d vs %d for tournament %d: %w",
				m.Player1ID, m.Player2ID, m.TournamentID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, player1_id, player2_id, score1, score2,
		       winner_id, status, scheduled_at
		FROM matches
		WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.Player1ID, &m.Player2ID, &m.Score1, &m.Score2,
		&m.WinnerID, &m.Status, &m.ScheduledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
	query := `
		SELECT id, tournament_id, player1_id, player2_id, score1, score2,
		       winner_id, status, scheduled_at
		FROM matches
		WHERE tournament_id = $1`

	args := []interface{}{tournamentID}
	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m := &models.Match{}
		if scanErr := rows.Scan(
			&m.ID, &m.TournamentID, &m.Player1ID, &m.Player2ID, &m.Score1, &m.Score2,
			&m.WinnerID, &m.Status, &m.ScheduledAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) RecordResult(ctx context.Context, id int, score1, score2, winnerID int) error {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, winner_id = $3, status = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, score1, score2, winnerID, models.MatchStatusFinished, id)
	if err != nil {
		return fmt.Errorf("failed to record result for match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
