package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tenbucks-club/internal/db"
	"tenbucks-club/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SeasonRepository stores seasons and the sessions they own.
type SeasonRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewSeasonRepository(queries *db.Queries, logger zerolog.Logger) *SeasonRepository {
	return &SeasonRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *SeasonRepository) WithTx(tx *sql.Tx) *SeasonRepository {
	return &SeasonRepository{queries: r.queries.WithTx(tx), logger: r.logger}
}

func (r *SeasonRepository) Create(ctx context.Context, number int) (*domain.Season, error) {
	season := &domain.Season{Number: number, CreatedAt: now()}
	err := r.queries.CreateSeason(ctx, db.CreateSeasonParams{
		Number:    int64(number),
		CreatedAt: season.CreatedAt,
	})
	if err != nil {
		return nil, persistErr("insert season", err)
	}
	return season, nil
}

func (r *SeasonRepository) Get(ctx context.Context, number int) (*domain.Season, error) {
	row, err := r.queries.GetSeason(ctx, int64(number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrSeasonNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season %d: %w", number, err)
	}
	season := toDomainSeason(row)
	return &season, nil
}

// List returns seasons newest first, without their sessions.
func (r *SeasonRepository) List(ctx context.Context) ([]domain.Season, error) {
	rows, err := r.queries.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	result := make([]domain.Season, len(rows))
	for i, row := range rows {
		result[i] = toDomainSeason(row)
	}
	return result, nil
}

func (r *SeasonRepository) Complete(ctx context.Context, number int) error {
	n, err := r.queries.CompleteSeason(ctx, int64(number))
	if err != nil {
		return persistErr("complete season", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", domain.ErrSeasonNotFound, number)
	}
	return nil
}

func (r *SeasonRepository) CreateSession(ctx context.Context, seasonNumber, number int) (*domain.Session, error) {
	session := &domain.Session{
		ID:           uuid.NewString(),
		SeasonNumber: seasonNumber,
		Number:       number,
		CreatedAt:    now(),
	}
	err := r.queries.CreateSession(ctx, db.CreateSessionParams{
		ID:           session.ID,
		SeasonNumber: int64(seasonNumber),
		Number:       int64(number),
		CreatedAt:    session.CreatedAt,
	})
	if err != nil {
		return nil, persistErr("insert session", err)
	}
	return session, nil
}

func (r *SeasonRepository) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row, err := r.queries.GetSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	session := toDomainSession(row)
	return &session, nil
}

// ListSessions returns every session, newest first.
func (r *SeasonRepository) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.queries.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return toDomainSessions(rows), nil
}

func (r *SeasonRepository) ListSessionsBySeason(ctx context.Context, seasonNumber int) ([]domain.Session, error) {
	rows, err := r.queries.ListSessionsBySeason(ctx, int64(seasonNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for season %d: %w", seasonNumber, err)
	}
	return toDomainSessions(rows), nil
}

func (r *SeasonRepository) MaxSessionNumber(ctx context.Context, seasonNumber int) (int, error) {
	n, err := r.queries.MaxSessionNumber(ctx, int64(seasonNumber))
	if err != nil {
		return 0, fmt.Errorf("failed to read last session number: %w", err)
	}
	return int(n), nil
}

func toDomainSeason(row db.Season) domain.Season {
	return domain.Season{
		Number:      int(row.Number),
		IsCompleted: row.IsCompleted,
		CreatedAt:   row.CreatedAt,
	}
}

func toDomainSession(row db.Session) domain.Session {
	return domain.Session{
		ID:           row.ID,
		SeasonNumber: int(row.SeasonNumber),
		Number:       int(row.Number),
		CreatedAt:    row.CreatedAt,
	}
}

func toDomainSessions(rows []db.Session) []domain.Session {
	result := make([]domain.Session, len(rows))
	for i, row := range rows {
		result[i] = toDomainSession(row)
	}
	return result
}
