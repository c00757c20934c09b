package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/SCC42Luanda/transcendence-server/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxRunner executa a função directamente; os stubs ignoram o executor.
type stubTxRunner struct{}

func (stubTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

type stubTournamentRepository struct {
	byID   map[int]*models.Tournament
	nextID int

	// rosterConflicts simula escritas concorrentes: as primeiras N chamadas
	// a UpdateRoster falham com conflito de versão.
	rosterConflicts int
}

func newStubTournamentRepository() *stubTournamentRepository {
	return &stubTournamentRepository{byID: make(map[int]*models.Tournament)}
}

func copyTournament(t *models.Tournament) *models.Tournament {
	cp := *t
	cp.Participants = append([]int{}, t.Participants...)
	return &cp
}

func (r *stubTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now().UTC()
	t.Version = 1
	r.byID[t.ID] = copyTournament(t)
	return nil
}

func (r *stubTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return copyTournament(t), nil
}

func (r *stubTournamentRepository) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.byID))
	for _, t := range r.byID {
		if filter.State != nil && t.State != *filter.State {
			continue
		}
		out = append(out, *copyTournament(t))
	}
	return out, nil
}

func (r *stubTournamentRepository) UpdateRoster(ctx context.Context, id int, roster []int, expectedVersion int) error {
	t, ok := r.byID[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	if r.rosterConflicts > 0 {
		r.rosterConflicts--
		return repositories.ErrRosterVersionConflict
	}
	if t.Version != expectedVersion {
		return repositories.ErrRosterVersionConflict
	}
	t.Participants = append([]int{}, roster...)
	t.Version++
	return nil
}

func (r *stubTournamentRepository) SetRunning(ctx context.Context, exec repositories.SQLExecutor, id int, startedAt time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.State = models.StateRunning
	t.StartDate = startedAt
	return nil
}

func (r *stubTournamentRepository) SetFinished(ctx context.Context, id int, endedAt time.Time) error {
	t, ok := r.byID[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.State = models.StateFinished
	t.EndDate = &endedAt
	return nil
}

func (r *stubTournamentRepository) UpdateBannerKey(ctx context.Context, id int, bannerKey *string) error {
	t, ok := r.byID[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.BannerKey = bannerKey
	return nil
}

type stubMatchRepository struct {
	byID   map[int]*models.Match
	nextID int
}

func newStubMatchRepository() *stubMatchRepository {
	return &stubMatchRepository{byID: make(map[int]*models.Match)}
}

func (r *stubMatchRepository) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, matches []*models.Match) error {
	existing := make(map[string]bool)
	for _, m := range r.byID {
		existing[fmt.Sprintf("%d/%d/%d", m.TournamentID, m.Player1ID, m.Player2ID)] = true
	}
	for _, m := range matches {
		key := fmt.Sprintf("%d/%d/%d", m.TournamentID, m.Player1ID, m.Player2ID)
		if existing[key] {
			continue
		}
		r.nextID++
		m.ID = r.nextID
		cp := *m
		r.byID[m.ID] = &cp
		existing[key] = true
	}
	return nil
}

func (r *stubMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMatchRepository) ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for id := 1; id <= r.nextID; id++ {
		m, ok := r.byID[id]
		if !ok || m.TournamentID != tournamentID {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubMatchRepository) RecordResult(ctx context.Context, id int, score1, score2, winnerID int) error {
	m, ok := r.byID[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Score1 = score1
	m.Score2 = score2
	m.WinnerID = &winnerID
	m.Status = models.MatchStatusFinished
	return nil
}

type stubUserRepository struct {
	byID   map[int]*models.User
	nextID int
}

func newStubUserRepository(ids ...int) *stubUserRepository {
	r := &stubUserRepository{byID: make(map[int]*models.User)}
	for _, id := range ids {
		r.byID[id] = &models.User{
			ID:          id,
			Email:       fmt.Sprintf("player%d@scc42.ao", id),
			DisplayName: fmt.Sprintf("Player %d", id),
		}
		if id > r.nextID {
			r.nextID = id
		}
	}
	return r
}

func (r *stubUserRepository) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *stubUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepository) TouchLastSeen(ctx context.Context, id int, seenAt time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LastSeenAt = seenAt
	return nil
}

type stubQuestionRepository struct {
	questions []models.Question
}

func (r *stubQuestionRepository) ListByCategory(ctx context.Context, category string, difficulty *models.QuestionDifficulty) ([]models.Question, error) {
	out := make([]models.Question, 0)
	for _, q := range r.questions {
		if q.Category != category {
			continue
		}
		if difficulty != nil && q.Difficulty != *difficulty {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *stubQuestionRepository) GetByIDs(ctx context.Context, ids []int) ([]models.Question, error) {
	byID := make(map[int]models.Question, len(r.questions))
	for _, q := range r.questions {
		byID[q.ID] = q
	}
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("question %d not found", id)
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *stubQuestionRepository) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, q := range r.questions {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out, nil
}

type stubAttemptRepository struct {
	byID   map[int]*models.QuizAttempt
	nextID int
}

func newStubAttemptRepository() *stubAttemptRepository {
	return &stubAttemptRepository{byID: make(map[int]*models.QuizAttempt)}
}

func (r *stubAttemptRepository) Create(ctx context.Context, a *models.QuizAttempt) error {
	r.nextID++
	a.ID = r.nextID
	a.StartedAt = time.Now().UTC()
	cp := *a
	cp.QuestionIDs = append([]int{}, a.QuestionIDs...)
	r.byID[a.ID] = &cp
	return nil
}

func (r *stubAttemptRepository) GetByID(ctx context.Context, id int) (*models.QuizAttempt, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrAttemptNotFound
	}
	cp := *a
	cp.QuestionIDs = append([]int{}, a.QuestionIDs...)
	return &cp, nil
}

func (r *stubAttemptRepository) Finalize(ctx context.Context, id int, answers []int, correct []bool, rawPoints, finalPoints, elapsedSeconds int, finishedAt time.Time) error {
	a, ok := r.byID[id]
	if !ok {
		return repositories.ErrAttemptNotFound
	}
	a.Answers = append([]int{}, answers...)
	a.Correct = append([]bool{}, correct...)
	a.RawPoints = rawPoints
	a.FinalPoints = finalPoints
	a.ElapsedSeconds = elapsedSeconds
	a.FinishedAt = &finishedAt
	return nil
}

func (r *stubAttemptRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.QuizAttempt, error) {
	out := make([]models.QuizAttempt, 0)
	for id := r.nextID; id >= 1 && len(out) < limit; id-- {
		a, ok := r.byID[id]
		if !ok || a.UserID != userID || a.FinishedAt == nil {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}
