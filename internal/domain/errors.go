package domain

import "errors"

var (
	ErrDuplicateName        = errors.New("a player with that name already exists")
	ErrNoActiveSession      = errors.New("no active session exists")
	ErrTeamAssigned         = errors.New("player is still assigned to a team in the current session")
	ErrParticipantNotFound  = errors.New("player is not a participant of the session")
	ErrDuplicateParticipant = errors.New("player is already a participant of the session")
	ErrPersistenceCommit    = errors.New("failed to commit changes")
	ErrStoreFailure         = errors.New("store rejected a statement")

	ErrPlayerNotFound      = errors.New("player not found")
	ErrSeasonNotFound      = errors.New("season not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrSeasonsIncomplete   = errors.New("all existing seasons must be completed first")
	ErrSeasonCompleted     = errors.New("season is already completed")
	ErrNotOnWaitlist       = errors.New("player is not on the waitlist")
	ErrEmptyName           = errors.New("player name is required")
	ErrInvalidStatus       = errors.New("invalid player status")
	ErrInvalidTeam         = errors.New("invalid team")
	ErrInvalidMatchPlayers = errors.New("a doubles match needs four distinct players")
	ErrInvalidWave         = errors.New("wave number must be positive")
	ErrInvalidScore        = errors.New("scores must not be negative")
)
