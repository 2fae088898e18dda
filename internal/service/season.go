package service

import (
	"context"
	"fmt"
	"tenbucks-club/internal/constants"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/rs/zerolog"
)

type SeasonService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewSeasonService(store *repository.Store, logger zerolog.Logger) *SeasonService {
	return &SeasonService{store: store, logger: logger}
}

// ListSeasons returns seasons newest first, each with its sessions in
// ascending order.
func (s *SeasonService) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var seasons []domain.Season
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		seasons, err = r.Seasons.List(ctx)
		if err != nil {
			return err
		}
		for i := range seasons {
			seasons[i].Sessions, err = r.Seasons.ListSessionsBySeason(ctx, seasons[i].Number)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list seasons")
		return nil, err
	}
	return seasons, nil
}

// AddSeason creates the next season once every existing one is completed.
func (s *SeasonService) AddSeason(ctx context.Context) (*domain.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var season *domain.Season
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		existing, err := r.Seasons.List(ctx)
		if err != nil {
			return err
		}
		if !domain.CanAddSeason(existing) {
			return domain.ErrSeasonsIncomplete
		}
		season, err = r.Seasons.Create(ctx, domain.NextSeasonNumber(existing, constants.FirstSeasonNumber))
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to add season")
		return nil, err
	}

	s.logger.Info().Int("season", season.Number).Msg("season added")
	return season, nil
}

func (s *SeasonService) CompleteSeason(ctx context.Context, number int) (*domain.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var season *domain.Season
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		if err := r.Seasons.Complete(ctx, number); err != nil {
			return err
		}
		var err error
		season, err = r.Seasons.Get(ctx, number)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Int("season", number).Msg("failed to complete season")
		return nil, err
	}

	s.logger.Info().Int("season", number).Msg("season completed")
	return season, nil
}

// AddSession appends the next numbered session to an unfinished season.
func (s *SeasonService) AddSession(ctx context.Context, seasonNumber int) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var session *domain.Session
	err := s.store.Write(ctx, func(r *repository.Repos) error {
		season, err := r.Seasons.Get(ctx, seasonNumber)
		if err != nil {
			return err
		}
		if season.IsCompleted {
			return fmt.Errorf("%w: season %d", domain.ErrSeasonCompleted, seasonNumber)
		}
		last, err := r.Seasons.MaxSessionNumber(ctx, seasonNumber)
		if err != nil {
			return err
		}
		number := last + 1
		if number < constants.FirstSessionNumber {
			number = constants.FirstSessionNumber
		}
		session, err = r.Seasons.CreateSession(ctx, seasonNumber, number)
		return err
	})
	if err != nil {
		s.logger.Warn().Err(err).Int("season", seasonNumber).Msg("failed to add session")
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Int("season", seasonNumber).
		Int("number", session.Number).
		Msg("session added")
	return session, nil
}

func (s *SeasonService) ListSessions(ctx context.Context, seasonNumber int) ([]domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var sessions []domain.Session
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		if _, err := r.Seasons.Get(ctx, seasonNumber); err != nil {
			return err
		}
		var err error
		sessions, err = r.Seasons.ListSessionsBySeason(ctx, seasonNumber)
		return err
	})
	return sessions, err
}

func (s *SeasonService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var session *domain.Session
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		var err error
		session, err = r.Seasons.GetSession(ctx, sessionID)
		return err
	})
	return session, err
}
