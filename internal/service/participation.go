package service

import (
	"context"
	"fmt"
	"tenbucks-club/internal/constants"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/rs/zerolog"
)

// ParticipationService links players to sessions and tracks their team.
type ParticipationService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewParticipationService(store *repository.Store, logger zerolog.Logger) *ParticipationService {
	return &ParticipationService{store: store, logger: logger}
}

// CurrentSession returns nil when no session exists.
func (s *ParticipationService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var current *domain.Session
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		current, err = s.currentSession(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}

// AddParticipant adds the player to the session roster. An empty sessionID
// targets the current session.
func (s *ParticipationService) AddParticipant(ctx context.Context, sessionID, playerID string, team domain.TeamAssignment) (*domain.SessionParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var participant *domain.SessionParticipant
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		session, err := s.resolveSession(ctx, r, sessionID)
		if err != nil {
			return err
		}
		player, err := r.Players.Get(ctx, playerID)
		if err != nil {
			return err
		}
		participant, err = s.addParticipant(ctx, r, session, player, team)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Str("player_id", playerID).Msg("failed to add participant")
		return nil, err
	}

	s.logger.Info().
		Str("session_id", participant.SessionID).
		Str("player_id", playerID).
		Str("team", team.String()).
		Msg("participant added")
	return participant, nil
}

func (s *ParticipationService) SetTeam(ctx context.Context, sessionID, playerID string, team domain.TeamAssignment) (*domain.SessionParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var participant *domain.SessionParticipant
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		if err := r.Participants.SetTeam(ctx, sessionID, playerID, team); err != nil {
			return err
		}
		var err error
		participant, err = r.Participants.Find(ctx, sessionID, playerID)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Str("player_id", playerID).Msg("failed to set team")
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("player_id", playerID).
		Str("team", team.String()).
		Msg("team updated")
	return participant, nil
}

func (s *ParticipationService) RemoveParticipant(ctx context.Context, sessionID, playerID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	err := s.store.Write(ctx, func(r *repository.Repos) error {
		return r.Participants.Delete(ctx, sessionID, playerID)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Str("player_id", playerID).Msg("failed to remove participant")
		return err
	}

	s.logger.Info().Str("session_id", sessionID).Str("player_id", playerID).Msg("participant removed")
	return nil
}

func (s *ParticipationService) HasAssignedTeam(ctx context.Context, sessionID, playerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var assigned bool
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		assigned, err = s.hasAssignedTeam(ctx, r, sessionID, playerID)
		return err
	})
	return assigned, err
}

// ListParticipants returns the session roster sorted by player name. A nil
// team returns everyone; otherwise only participants with that assignment.
func (s *ParticipationService) ListParticipants(ctx context.Context, sessionID string, team *domain.TeamAssignment) ([]domain.SessionParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var participants []domain.SessionParticipant
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		if _, err := r.Seasons.GetSession(ctx, sessionID); err != nil {
			return err
		}
		var err error
		participants, err = r.Participants.ListBySession(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if team == nil {
		return participants, nil
	}

	filtered := participants[:0]
	for _, p := range participants {
		if p.Team == *team {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// PlayerHistory lists every roster entry of the player, newest session first.
func (s *ParticipationService) PlayerHistory(ctx context.Context, playerID string) ([]domain.SessionParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var history []domain.SessionParticipant
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		if _, err := r.Players.Get(ctx, playerID); err != nil {
			return err
		}
		var err error
		history, err = r.Participants.ListByPlayer(ctx, playerID)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to load player history")
		return nil, err
	}
	return history, nil
}

func (s *ParticipationService) currentSession(ctx context.Context, r *repository.Repos) (*domain.Session, error) {
	sessions, err := r.Seasons.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	current, ok := domain.CurrentSession(sessions)
	if !ok {
		return nil, nil
	}
	return &current, nil
}

func (s *ParticipationService) resolveSession(ctx context.Context, r *repository.Repos, sessionID string) (*domain.Session, error) {
	if sessionID != "" {
		return r.Seasons.GetSession(ctx, sessionID)
	}
	current, err := s.currentSession(ctx, r)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNoActiveSession
	}
	return current, nil
}

func (s *ParticipationService) addParticipant(ctx context.Context, r *repository.Repos, session *domain.Session, player *domain.Player, team domain.TeamAssignment) (*domain.SessionParticipant, error) {
	existing, err := r.Participants.Find(ctx, session.ID, player.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s in season %d session %d",
			domain.ErrDuplicateParticipant, player.Name, session.SeasonNumber, session.Number)
	}

	participant, err := r.Participants.Create(ctx, session.ID, player.ID, team)
	if err != nil {
		return nil, err
	}
	participant.PlayerName = player.Name
	return participant, nil
}

func (s *ParticipationService) hasAssignedTeam(ctx context.Context, r *repository.Repos, sessionID, playerID string) (bool, error) {
	participant, err := r.Participants.Find(ctx, sessionID, playerID)
	if err != nil {
		return false, err
	}
	return participant != nil && participant.Team.IsAssigned(), nil
}
