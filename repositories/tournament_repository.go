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

var (
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrRosterVersionConflict indica que o plantel mudou entre a leitura e
	// a escrita condicional; o chamador deve reler e tentar de novo.
	ErrRosterVersionConflict = errors.New("tournament roster was modified concurrently")
)

type ListTournamentsFilter struct {
	State  *models.TournamentState
	Limit  int
	Offset int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	// UpdateRoster é uma escrita optimista: só aplica o novo plantel se a
	// versão lida ainda for a corrente.
	UpdateRoster(ctx context.Context, id int, roster []int, expectedVersion int) error
	SetRunning(ctx context.Context, exec SQLExecutor, id int, startedAt time.Time) error
	SetFinished(ctx context.Context, id int, endedAt time.Time) error
	UpdateBannerKey(ctx context.Context, id int, bannerKey *string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, name, description, created_at, start_date, end_date,
	state, max_participants, structure, participants, join_code, version, banner_key`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (
			name, description, start_date, end_date, state,
			max_participants, structure, participants, join_code, banner_key
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.StartDate, t.EndDate, t.State,
		t.MaxParticipants, t.Structure, pq.Array(intsToInt64(t.Participants)),
		t.JoinCode, t.BannerKey,
	).Scan(&t.ID, &t.CreatedAt, &t.Version)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	var roster pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.StartDate, &t.EndDate,
		&t.State, &t.MaxParticipants, &t.Structure, &roster, &t.JoinCode,
		&t.Version, &t.BannerKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	t.Participants = int64sToInt(roster)
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.State != nil {
		query += fmt.Sprintf(" AND state = $%d", argID)
		args = append(args, *filter.State)
		argID++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		var roster pq.Int64Array
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.StartDate, &t.EndDate,
			&t.State, &t.MaxParticipants, &t.Structure, &roster, &t.JoinCode,
			&t.Version, &t.BannerKey,
		); scanErr != nil {
			return nil, scanErr
		}
		t.Participants = int64sToInt(roster)
		tournaments = append(tournaments, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateRoster(ctx context.Context, id int, roster []int, expectedVersion int) error {
	query := `
		UPDATE tournaments
		SET participants = $1, version = version + 1
		WHERE id = $2 AND version = $3`

	result, err := r.db.ExecContext(ctx, query, pq.Array(intsToInt64(roster)), id, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update tournament roster: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		// Distinguir torneio inexistente de conflito de versão.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrRosterVersionConflict
	}
	return nil
}

func (r *postgresTournamentRepository) SetRunning(ctx context.Context, exec SQLExecutor, id int, startedAt time.Time) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET state = $1, start_date = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, models.StateRunning, startedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark tournament %d as running: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetFinished(ctx context.Context, id int, endedAt time.Time) error {
	query := `UPDATE tournaments SET state = $1, end_date = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, models.StateFinished, endedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark tournament %d as finished: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateBannerKey(ctx context.Context, id int, bannerKey *string) error {
	query := `UPDATE tournaments SET banner_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, bannerKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament banner key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
