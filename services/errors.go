package services

import "errors"

// Erros partilhados pelos serviços e pelo mapeamento HTTP dos handlers.
var (
	// Recursos inexistentes
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAttemptNotFound    = errors.New("quiz attempt not found")

	// Regras de negócio do torneio
	ErrAlreadyJoined            = errors.New("user is already registered in this tournament")
	ErrTournamentFull           = errors.New("tournament is full")
	ErrInvalidStateTransition   = errors.New("invalid tournament state transition")
	ErrInsufficientParticipants = errors.New("tournament needs at least 2 participants to start")
	ErrInvalidWinner            = errors.New("winner must be one of the two match players")
	ErrStructureNotSupported    = errors.New("tournament structure has no pairing algorithm")

	// Validação e autenticação
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email address is already in use")

	// Quiz
	ErrMalformedSubmission = errors.New("submission does not match the attempt's question set")
	ErrNoQuestionsFound    = errors.New("no questions available for the requested category")

	// Infra-estrutura opcional
	ErrBannerStorageUnavailable = errors.New("banner storage is not configured")
)
