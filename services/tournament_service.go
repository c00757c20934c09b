package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SCC42Luanda/transcendence-server/brackets"
	"github.com/SCC42Luanda/transcendence-server/models"
	"github.com/SCC42Luanda/transcendence-server/repositories"
	"github.com/SCC42Luanda/transcendence-server/standings"
	"github.com/SCC42Luanda/transcendence-server/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rosterRetryLimit limita as repetições da escrita optimista do plantel
// quando dois pedidos concorrentes colidem na mesma versão.
const rosterRetryLimit = 3

// enrichConcurrency limita o fan-out das consultas de perfil na classificação.
const enrichConcurrency = 4

type CreateTournamentInput struct {
	Name            string                     `json:"name" validate:"required,max=120"`
	Description     *string                    `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate       time.Time                  `json:"start_date" validate:"required"`
	MaxParticipants int                        `json:"max_participants" validate:"required,min=1"`
	Structure       models.TournamentStructure `json:"structure" validate:"required,oneof=elimination group league"`
}

type RecordResultInput struct {
	Score1   int `json:"score1" validate:"min=0"`
	Score2   int `json:"score2" validate:"min=0"`
	WinnerID int `json:"winner_id" validate:"required"`
}

type TournamentService interface {
	Create(ctx context.Context, creatorID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Join(ctx context.Context, tournamentID, userID int) (*models.Tournament, error)
	Leave(ctx context.Context, tournamentID, userID int) error
	Start(ctx context.Context, tournamentID int) (*models.Tournament, error)
	RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error)
	Finalize(ctx context.Context, tournamentID int) (*models.Tournament, error)
	GetStandings(ctx context.Context, tournamentID int) (*models.StandingsTable, error)
	ListMatches(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error)
	UploadBanner(ctx context.Context, tournamentID int, contentType string, reader io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	tx          repositories.TxRunner
	tournaments repositories.TournamentRepository
	matches     repositories.MatchRepository
	users       repositories.UserRepository
	uploader    storage.FileUploader
	validate    *validator.Validate
	logger      *slog.Logger
}

func NewTournamentService(
	tx repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tx:          tx,
		tournaments: tournamentRepo,
		matches:     matchRepo,
		users:       userRepo,
		uploader:    uploader,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, creatorID int, input CreateTournamentInput) (*models.Tournament, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if _, err := s.users.GetByID(ctx, creatorID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tournament := &models.Tournament{
		Name:            input.Name,
		Description:     input.Description,
		StartDate:       input.StartDate,
		State:           models.StatePlanning,
		MaxParticipants: input.MaxParticipants,
		Structure:       input.Structure,
		Participants:    []int{creatorID},
		JoinCode:        uuid.NewString(),
	}

	if err := s.tournaments.Create(ctx, tournament); err != nil {
		return nil, err
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("creator_id", creatorID),
		slog.String("structure", string(tournament.Structure)))

	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournaments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.attachBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments, err := s.tournaments.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tournaments {
		s.attachBannerURL(&tournaments[i])
	}
	return tournaments, nil
}

// Join acrescenta o utilizador ao plantel. A escrita condicional por versão
// fecha a corrida documentada em que dois pedidos passam ambos a guarda de
// capacidade antes de qualquer escrita: o segundo perde a versão e repete a
// leitura, voltando a avaliar as guardas.
func (s *tournamentService) Join(ctx context.Context, tournamentID, userID int) (*models.Tournament, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < rosterRetryLimit; attempt++ {
		tournament, err := s.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}

		if tournament.State != models.StatePlanning {
			return nil, ErrInvalidStateTransition
		}
		if tournament.HasParticipant(userID) {
			return nil, ErrAlreadyJoined
		}
		if len(tournament.Participants) >= tournament.MaxParticipants {
			return nil, ErrTournamentFull
		}

		roster := append(append([]int{}, tournament.Participants...), userID)
		err = s.tournaments.UpdateRoster(ctx, tournamentID, roster, tournament.Version)
		if err == nil {
			tournament.Participants = roster
			tournament.Version++
			return tournament, nil
		}
		if !errors.Is(err, repositories.ErrRosterVersionConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("join tournament %d: too much contention: %w", tournamentID, lastErr)
}

// Leave remove o utilizador do plantel; sair de um torneio onde não se está
// inscrito não é um erro.
func (s *tournamentService) Leave(ctx context.Context, tournamentID, userID int) error {
	var lastErr error
	for attempt := 0; attempt < rosterRetryLimit; attempt++ {
		tournament, err := s.GetByID(ctx, tournamentID)
		if err != nil {
			return err
		}

		if tournament.State != models.StatePlanning {
			return ErrInvalidStateTransition
		}
		if !tournament.HasParticipant(userID) {
			return nil
		}

		roster := make([]int, 0, len(tournament.Participants)-1)
		for _, id := range tournament.Participants {
			if id != userID {
				roster = append(roster, id)
			}
		}

		err = s.tournaments.UpdateRoster(ctx, tournamentID, roster, tournament.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrRosterVersionConflict) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("leave tournament %d: too much contention: %w", tournamentID, lastErr)
}

// Start transita o torneio de planning para running e gera o conjunto inicial
// de partidas. A mudança de estado e a inserção das partidas partilham uma
// transacção: ou o torneio arranca com o conjunto completo ou não arranca.
func (s *tournamentService) Start(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if tournament.State != models.StatePlanning {
		return nil, ErrInvalidStateTransition
	}
	if len(tournament.Participants) < 2 {
		return nil, ErrInsufficientParticipants
	}

	generator, err := s.generatorFor(tournament.Structure)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	matches, err := generator.GeneratePairings(ctx, brackets.GenerateParams{
		TournamentID: tournament.ID,
		Participants: tournament.Participants,
		ScheduledAt:  startedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pairings for tournament %d: %w", tournamentID, err)
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.tournaments.SetRunning(ctx, exec, tournament.ID, startedAt); err != nil {
			return err
		}
		return s.matches.CreateBatch(ctx, exec, matches)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start tournament %d: %w", tournamentID, err)
	}

	tournament.State = models.StateRunning
	tournament.StartDate = startedAt

	s.logger.Info("tournament started",
		slog.Int("tournament_id", tournament.ID),
		slog.String("generator", generator.GetName()),
		slog.Int("matches", len(matches)))

	return tournament, nil
}

func (s *tournamentService) RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if input.WinnerID != match.Player1ID && input.WinnerID != match.Player2ID {
		return nil, ErrInvalidWinner
	}

	if err := s.matches.RecordResult(ctx, matchID, input.Score1, input.Score2, input.WinnerID); err != nil {
		return nil, err
	}

	match.Score1 = input.Score1
	match.Score2 = input.Score2
	match.WinnerID = &input.WinnerID
	match.Status = models.MatchStatusFinished
	return match, nil
}

func (s *tournamentService) Finalize(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if tournament.State != models.StateRunning {
		return nil, ErrInvalidStateTransition
	}

	endedAt := time.Now().UTC()
	if err := s.tournaments.SetFinished(ctx, tournamentID, endedAt); err != nil {
		return nil, err
	}

	tournament.State = models.StateFinished
	tournament.EndDate = &endedAt

	s.logger.Info("tournament finished", slog.Int("tournament_id", tournamentID))
	return tournament, nil
}

// GetStandings calcula a classificação a partir das partidas terminadas e
// enriquece cada linha com o perfil do participante. O enriquecimento é
// best-effort: uma consulta falhada deixa a linha sem perfil em vez de
// abortar a tabela.
func (s *tournamentService) GetStandings(ctx context.Context, tournamentID int) (*models.StandingsTable, error) {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	finishedStatus := models.MatchStatusFinished
	finished, err := s.matches.ListByTournament(ctx, tournamentID, &finishedStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished matches for tournament %d: %w", tournamentID, err)
	}

	entries := standings.Compute(tournament.Participants, finished)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range entries {
		i := i
		g.Go(func() error {
			user, err := s.users.GetByID(gctx, entries[i].ParticipantID)
			if err != nil {
				s.logger.Warn("standings profile lookup failed",
					slog.Int("participant_id", entries[i].ParticipantID),
					slog.Any("error", err))
				return nil
			}
			entries[i].Player = user
			return nil
		})
	}
	_ = g.Wait()

	return &models.StandingsTable{
		TournamentID: tournamentID,
		Standings:    entries,
	}, nil
}

func (s *tournamentService) ListMatches(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.matches.ListByTournament(ctx, tournamentID, status)
}

func (s *tournamentService) UploadBanner(ctx context.Context, tournamentID int, contentType string, reader io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrBannerStorageUnavailable
	}

	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/banner", tournamentID)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload banner for tournament %d: %w", tournamentID, err)
	}

	if err := s.tournaments.UpdateBannerKey(ctx, tournamentID, &key); err != nil {
		return nil, err
	}

	tournament.BannerKey = &key
	s.attachBannerURL(tournament)
	return tournament, nil
}

func (s *tournamentService) generatorFor(structure models.TournamentStructure) (brackets.PairingGenerator, error) {
	switch structure {
	case models.StructureElimination:
		return brackets.NewSequentialEliminationGenerator(), nil
	case models.StructureLeague:
		return brackets.NewLeagueGenerator(), nil
	default:
		// "group" é aceite como valor mas não tem algoritmo de
		// emparelhamento definido.
		return nil, ErrStructureNotSupported
	}
}

func (s *tournamentService) attachBannerURL(t *models.Tournament) {
	if s.uploader == nil || t.BannerKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.BannerKey)
	t.BannerURL = &url
}
