package service

import (
	"context"
	"fmt"
	"tenbucks-club/internal/constants"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/rs/zerolog"
)

// WaitlistService keeps waitlist positions dense: the OnWaitlist players
// always hold exactly positions 1..N.
type WaitlistService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewWaitlistService(store *repository.Store, logger zerolog.Logger) *WaitlistService {
	return &WaitlistService{store: store, logger: logger}
}

// List returns waitlisted players in ascending position order.
func (s *WaitlistService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var players []domain.Player
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		players, err = r.Players.ListWaitlist(ctx)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list waitlist")
		return nil, err
	}
	return players, nil
}

// Remove takes a player off the waitlist and marks them NotInSession.
func (s *WaitlistService) Remove(ctx context.Context, playerID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var player *domain.Player
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		var err error
		player, err = r.Players.Get(ctx, playerID)
		if err != nil {
			return err
		}
		return s.remove(ctx, r, player, domain.StatusNotInSession)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("player_id", playerID).Msg("failed to remove player from waitlist")
		return nil, err
	}

	s.logger.Info().Str("player_id", playerID).Msg("player removed from waitlist")
	return player, nil
}

func (s *WaitlistService) MoveToBottom(ctx context.Context, playerID string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var player *domain.Player
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		var err error
		player, err = r.Players.Get(ctx, playerID)
		if err != nil {
			return err
		}
		return s.moveToBottom(ctx, r, player)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("player_id", playerID).Msg("failed to move player to bottom of waitlist")
		return nil, err
	}

	s.logger.Info().
		Str("player_id", playerID).
		Int("position", *player.WaitlistPosition).
		Msg("player moved to bottom of waitlist")
	return player, nil
}

// append puts the player at max+1 and marks them OnWaitlist.
func (s *WaitlistService) append(ctx context.Context, r *repository.Repos, player *domain.Player) error {
	tail, err := r.Players.MaxWaitlistPosition(ctx)
	if err != nil {
		return err
	}
	position := tail + 1
	if position < constants.FirstWaitlistSlot {
		position = constants.FirstWaitlistSlot
	}

	if err := r.Players.SetStatus(ctx, player.ID, domain.StatusOnWaitlist, &position); err != nil {
		return err
	}
	player.Status = domain.StatusOnWaitlist
	player.WaitlistPosition = &position

	s.logger.Debug().Str("player_id", player.ID).Int("position", position).Msg("appended to waitlist")
	return nil
}

// remove clears the player's position, moves them to next, and shifts every
// player below the vacated slot up by one.
func (s *WaitlistService) remove(ctx context.Context, r *repository.Repos, player *domain.Player, next domain.PlayerStatus) error {
	position, ok := player.Position()
	if !ok || player.Status != domain.StatusOnWaitlist {
		return fmt.Errorf("%w: %s", domain.ErrNotOnWaitlist, player.Name)
	}
	if next == domain.StatusOnWaitlist {
		return fmt.Errorf("%w: cannot remove into waitlist status", domain.ErrInvalidStatus)
	}

	if err := r.Players.SetStatus(ctx, player.ID, next, nil); err != nil {
		return err
	}
	shifted, err := r.Players.ShiftWaitlistUp(ctx, position)
	if err != nil {
		return err
	}
	player.Status = next
	player.WaitlistPosition = nil

	s.logger.Debug().
		Str("player_id", player.ID).
		Int("vacated", position).
		Int("shifted", shifted).
		Msg("removed from waitlist")
	return nil
}

func (s *WaitlistService) moveToBottom(ctx context.Context, r *repository.Repos, player *domain.Player) error {
	position, ok := player.Position()
	if !ok || player.Status != domain.StatusOnWaitlist {
		return fmt.Errorf("%w: %s", domain.ErrNotOnWaitlist, player.Name)
	}

	count, err := r.Players.CountWaitlist(ctx)
	if err != nil {
		return err
	}
	if position == count {
		return nil
	}

	if _, err := r.Players.ShiftWaitlistUp(ctx, position); err != nil {
		return err
	}
	if err := r.Players.SetStatus(ctx, player.ID, domain.StatusOnWaitlist, &count); err != nil {
		return err
	}
	player.WaitlistPosition = &count
	return nil
}
