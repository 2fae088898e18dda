package service

import (
	"context"
	"fmt"
	"strings"
	"tenbucks-club/internal/constants"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/rs/zerolog"
)

// RosterService owns player creation, renaming and every status change.
type RosterService struct {
	store         *repository.Store
	waitlist      *WaitlistService
	participation *ParticipationService
	logger        zerolog.Logger
}

func NewRosterService(
	store *repository.Store,
	waitlist *WaitlistService,
	participation *ParticipationService,
	logger zerolog.Logger,
) *RosterService {
	return &RosterService{
		store:         store,
		waitlist:      waitlist,
		participation: participation,
		logger:        logger,
	}
}

func (s *RosterService) AddPlayer(ctx context.Context, name string, status domain.PlayerStatus) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	plan, err := domain.PlanTransition(domain.StatusNotInSession, status)
	if err != nil {
		return nil, err
	}

	var player *domain.Player
	err = s.store.Write(ctx, func(r *repository.Repos) error {
		if err := s.ensureNameFree(ctx, r, "", name); err != nil {
			return err
		}
		session, err := s.checkTransition(ctx, r, nil, plan)
		if err != nil {
			return err
		}

		player = &domain.Player{Name: name, Status: domain.StatusNotInSession}
		if err := r.Players.Create(ctx, player); err != nil {
			return err
		}
		return s.apply(ctx, r, player, plan, session)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("name", name).Str("status", status.String()).Msg("failed to add player")
		return nil, err
	}

	s.logger.Info().
		Str("player_id", player.ID).
		Str("name", player.Name).
		Str("status", player.Status.String()).
		Msg("player added")
	return player, nil
}

func (s *RosterService) RenamePlayer(ctx context.Context, playerID, newName string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, domain.ErrEmptyName
	}

	var player *domain.Player
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		var err error
		player, err = r.Players.Get(ctx, playerID)
		if err != nil {
			return err
		}
		if player.Name == newName {
			return nil
		}
		if err := s.ensureNameFree(ctx, r, player.ID, newName); err != nil {
			return err
		}
		if err := r.Players.Rename(ctx, player.ID, newName); err != nil {
			return err
		}
		player.Name = newName
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("player_id", playerID).Str("name", newName).Msg("failed to rename player")
		return nil, err
	}

	s.logger.Info().Str("player_id", playerID).Str("name", newName).Msg("player renamed")
	return player, nil
}

// ChangeStatus is the single entry point for status transitions. It either
// applies every side effect of the transition or none of them.
func (s *RosterService) ChangeStatus(ctx context.Context, playerID string, to domain.PlayerStatus) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var player *domain.Player
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		var err error
		player, err = r.Players.Get(ctx, playerID)
		if err != nil {
			return err
		}
		plan, err := domain.PlanTransition(player.Status, to)
		if err != nil {
			return err
		}
		if plan.NoOp() {
			return nil
		}
		session, err := s.checkTransition(ctx, r, player, plan)
		if err != nil {
			return err
		}
		return s.apply(ctx, r, player, plan, session)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("player_id", playerID).Str("to", to.String()).Msg("status change rejected")
		return nil, err
	}

	s.logger.Info().
		Str("player_id", player.ID).
		Str("status", player.Status.String()).
		Msg("player status changed")
	return player, nil
}

func (s *RosterService) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var player *domain.Player
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		player, err = r.Players.Get(ctx, playerID)
		return err
	})
	return player, err
}

// GetPlayerByName returns nil when no player holds the name.
func (s *RosterService) GetPlayerByName(ctx context.Context, name string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var player *domain.Player
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		player, err = r.Players.GetByName(ctx, strings.TrimSpace(name))
		return err
	})
	return player, err
}

// ListPlayers returns every player sorted by name.
func (s *RosterService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var players []domain.Player
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		players, err = r.Players.List(ctx)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		return nil, err
	}
	return players, nil
}

func (s *RosterService) ensureNameFree(ctx context.Context, r *repository.Repos, selfID, name string) error {
	holder, err := r.Players.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if holder != nil && holder.ID != selfID {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
	}
	return nil
}

// checkTransition validates every precondition of plan before anything is
// written and returns the current session snapshot the plan runs against.
func (s *RosterService) checkTransition(ctx context.Context, r *repository.Repos, player *domain.Player, plan domain.Transition) (*domain.Session, error) {
	session, err := s.participation.currentSession(ctx, r)
	if err != nil {
		return nil, err
	}

	for _, step := range plan.Steps {
		switch step {
		case domain.StepJoinCurrentSession:
			if session == nil {
				return nil, domain.ErrNoActiveSession
			}
		case domain.StepRequireTeamUnassigned:
			if session == nil || player == nil {
				continue
			}
			assigned, err := s.participation.hasAssignedTeam(ctx, r, session.ID, player.ID)
			if err != nil {
				return nil, err
			}
			if assigned {
				return nil, fmt.Errorf("%w: clear %s's team first", domain.ErrTeamAssigned, player.Name)
			}
		case domain.StepWaitlistRemove:
			if player == nil {
				continue
			}
			if _, ok := player.Position(); !ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrNotOnWaitlist, player.Name)
			}
		case domain.StepWaitlistAppend, domain.StepLeaveCurrentSession:
		default:
			return nil, fmt.Errorf("unhandled transition step %v", step)
		}
	}
	return session, nil
}

func (s *RosterService) apply(ctx context.Context, r *repository.Repos, player *domain.Player, plan domain.Transition, session *domain.Session) error {
	for _, step := range plan.Steps {
		switch step {
		case domain.StepWaitlistAppend:
			if err := s.waitlist.append(ctx, r, player); err != nil {
				return err
			}
		case domain.StepWaitlistRemove:
			if err := s.waitlist.remove(ctx, r, player, plan.To); err != nil {
				return err
			}
		case domain.StepJoinCurrentSession:
			if err := s.joinSession(ctx, r, player, session); err != nil {
				return err
			}
		case domain.StepLeaveCurrentSession:
			if err := s.leaveSession(ctx, r, player, session); err != nil {
				return err
			}
		case domain.StepRequireTeamUnassigned:
		default:
			return fmt.Errorf("unhandled transition step %v", step)
		}
	}

	if player.Status != plan.To {
		if err := r.Players.SetStatus(ctx, player.ID, plan.To, nil); err != nil {
			return err
		}
		player.Status = plan.To
		player.WaitlistPosition = nil
	}
	return nil
}

// joinSession keeps an existing roster entry for the session untouched.
func (s *RosterService) joinSession(ctx context.Context, r *repository.Repos, player *domain.Player, session *domain.Session) error {
	existing, err := r.Participants.Find(ctx, session.ID, player.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.participation.addParticipant(ctx, r, session, player, domain.Unassigned)
	return err
}

func (s *RosterService) leaveSession(ctx context.Context, r *repository.Repos, player *domain.Player, session *domain.Session) error {
	if session == nil {
		return nil
	}
	existing, err := r.Participants.Find(ctx, session.ID, player.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	return r.Participants.Delete(ctx, session.ID, player.ID)
}
