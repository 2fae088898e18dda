package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tenbucks-club/internal/db"
	"tenbucks-club/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewMatchRepository(queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *MatchRepository) WithTx(tx *sql.Tx) *MatchRepository {
	return &MatchRepository{queries: r.queries.WithTx(tx), logger: r.logger}
}

func (r *MatchRepository) Create(ctx context.Context, match *domain.DoublesMatch) error {
	if match.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		match.ID = id
	}
	ts := now()
	match.CreatedAt, match.UpdatedAt = ts, ts

	err := r.queries.CreateMatch(ctx, db.CreateMatchParams{
		ID:        match.ID,
		SessionID: match.SessionID,
		Wave:      int64(match.Wave),
		Player1ID: match.PlayerIDs[0],
		Player2ID: match.PlayerIDs[1],
		Player3ID: match.PlayerIDs[2],
		Player4ID: match.PlayerIDs[3],
		CreatedAt: match.CreatedAt,
		UpdatedAt: match.UpdatedAt,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", match.SessionID).Msg("failed to insert match")
		return persistErr("insert match", err)
	}
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, id string) (*domain.DoublesMatch, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrMatchNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	m := toDomainMatch(row)
	return &m, nil
}

// ListBySession returns matches ordered by wave, then creation.
func (r *MatchRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.DoublesMatch, error) {
	rows, err := r.queries.ListMatchesBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for session %s: %w", sessionID, err)
	}
	result := make([]domain.DoublesMatch, len(rows))
	for i, row := range rows {
		result[i] = toDomainMatch(row)
	}
	return result, nil
}

func (r *MatchRepository) UpdateScores(ctx context.Context, id string, scores domain.MatchScores) error {
	n, err := r.queries.UpdateMatchScores(ctx, db.UpdateMatchScoresParams{
		RedFirst:    int64(scores.RedFirst),
		BlackFirst:  int64(scores.BlackFirst),
		RedSecond:   int64(scores.RedSecond),
		BlackSecond: int64(scores.BlackSecond),
		UpdatedAt:   now(),
		ID:          id,
	})
	if err != nil {
		return persistErr("update match scores", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMatchNotFound, id)
	}
	return nil
}

func (r *MatchRepository) SetCompleted(ctx context.Context, id string, complete bool) error {
	n, err := r.queries.UpdateMatchCompleted(ctx, db.UpdateMatchCompletedParams{
		IsComplete: complete,
		UpdatedAt:  now(),
		ID:         id,
	})
	if err != nil {
		return persistErr("update match completion", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrMatchNotFound, id)
	}
	return nil
}

func toDomainMatch(row db.DoublesMatch) domain.DoublesMatch {
	return domain.DoublesMatch{
		ID:          row.ID,
		SessionID:   row.SessionID,
		Wave:        int(row.Wave),
		PlayerIDs:   [4]string{row.Player1ID, row.Player2ID, row.Player3ID, row.Player4ID},
		RedFirst:    int(row.RedFirst),
		BlackFirst:  int(row.BlackFirst),
		RedSecond:   int(row.RedSecond),
		BlackSecond: int(row.BlackSecond),
		IsComplete:  row.IsComplete,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
