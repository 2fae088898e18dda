package service

import (
	"context"
	"fmt"
	"tenbucks-club/internal/constants"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/rs/zerolog"
)

type MatchService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewMatchService(store *repository.Store, logger zerolog.Logger) *MatchService {
	return &MatchService{store: store, logger: logger}
}

type AddMatchInput struct {
	SessionID string
	Wave      int
	// PlayerIDs pairs slots 1-2 against slots 3-4.
	PlayerIDs [4]string
}

func (s *MatchService) AddMatch(ctx context.Context, in AddMatchInput) (*domain.DoublesMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if in.Wave < constants.FirstWave {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidWave, in.Wave)
	}
	if err := validateMatchPlayers(in.PlayerIDs); err != nil {
		return nil, err
	}

	match := &domain.DoublesMatch{SessionID: in.SessionID, Wave: in.Wave, PlayerIDs: in.PlayerIDs}
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		if _, err := r.Seasons.GetSession(ctx, in.SessionID); err != nil {
			return err
		}
		for _, id := range in.PlayerIDs {
			if _, err := r.Players.Get(ctx, id); err != nil {
				return err
			}
		}
		return r.Matches.Create(ctx, match)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", in.SessionID).Int("wave", in.Wave).Msg("failed to add match")
		return nil, err
	}

	s.logger.Info().
		Str("match_id", match.ID).
		Str("session_id", match.SessionID).
		Int("wave", match.Wave).
		Msg("match added")
	return match, nil
}

func (s *MatchService) UpdateScores(ctx context.Context, matchID string, scores domain.MatchScores) (*domain.DoublesMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !scores.Valid() {
		return nil, domain.ErrInvalidScore
	}

	var match *domain.DoublesMatch
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		if err := r.Matches.UpdateScores(ctx, matchID, scores); err != nil {
			return err
		}
		var err error
		match, err = r.Matches.Get(ctx, matchID)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to update scores")
		return nil, err
	}

	s.logger.Info().
		Str("match_id", matchID).
		Int("red", match.RedTotal()).
		Int("black", match.BlackTotal()).
		Msg("match scores updated")
	return match, nil
}

func (s *MatchService) SetCompleted(ctx context.Context, matchID string, complete bool) (*domain.DoublesMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var match *domain.DoublesMatch
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		if err := r.Matches.SetCompleted(ctx, matchID, complete); err != nil {
			return err
		}
		var err error
		match, err = r.Matches.Get(ctx, matchID)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("match_id", matchID).Msg("failed to set match completion")
		return nil, err
	}

	s.logger.Info().Str("match_id", matchID).Bool("complete", complete).Msg("match completion updated")
	return match, nil
}

func (s *MatchService) ListMatches(ctx context.Context, sessionID string) ([]domain.DoublesMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var matches []domain.DoublesMatch
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		if _, err := r.Seasons.GetSession(ctx, sessionID); err != nil {
			return err
		}
		var err error
		matches, err = r.Matches.ListBySession(ctx, sessionID)
		return err
	})
	return matches, err
}

// ListWaves groups a session's matches by wave, in wave order.
func (s *MatchService) ListWaves(ctx context.Context, sessionID string) ([]domain.Wave, error) {
	matches, err := s.ListMatches(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return groupWaves(matches), nil
}

// groupWaves expects matches already sorted by wave.
func groupWaves(matches []domain.DoublesMatch) []domain.Wave {
	var waves []domain.Wave
	for _, m := range matches {
		if n := len(waves); n == 0 || waves[n-1].Number != m.Wave {
			waves = append(waves, domain.Wave{Number: m.Wave})
		}
		last := &waves[len(waves)-1]
		last.Matches = append(last.Matches, m)
	}
	return waves
}

func validateMatchPlayers(ids [4]string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: missing player", domain.ErrInvalidMatchPlayers)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s appears twice", domain.ErrInvalidMatchPlayers, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
