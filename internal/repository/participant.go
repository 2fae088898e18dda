package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tenbucks-club/internal/db"
	"tenbucks-club/internal/domain"

	"github.com/rs/zerolog"
)

type ParticipantRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewParticipantRepository(queries *db.Queries, logger zerolog.Logger) *ParticipantRepository {
	return &ParticipantRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *ParticipantRepository) WithTx(tx *sql.Tx) *ParticipantRepository {
	return &ParticipantRepository{queries: r.queries.WithTx(tx), logger: r.logger}
}

func (r *ParticipantRepository) Create(ctx context.Context, sessionID, playerID string, team domain.TeamAssignment) (*domain.SessionParticipant, error) {
	sp := &domain.SessionParticipant{
		SessionID: sessionID,
		PlayerID:  playerID,
		Team:      team,
		CreatedAt: now(),
	}
	err := r.queries.CreateParticipant(ctx, db.CreateParticipantParams{
		SessionID: sessionID,
		PlayerID:  playerID,
		Team:      nullTeam(team),
		CreatedAt: sp.CreatedAt,
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: player %s in session %s", domain.ErrDuplicateParticipant, playerID, sessionID)
	}
	if err != nil {
		return nil, persistErr("insert participant", err)
	}
	return sp, nil
}

// Find returns nil without error when the player is not in the session.
func (r *ParticipantRepository) Find(ctx context.Context, sessionID, playerID string) (*domain.SessionParticipant, error) {
	row, err := r.queries.GetParticipant(ctx, db.ParticipantKey{SessionID: sessionID, PlayerID: playerID})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	sp, err := toDomainParticipant(row)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, sessionID, playerID string) error {
	n, err := r.queries.DeleteParticipant(ctx, db.ParticipantKey{SessionID: sessionID, PlayerID: playerID})
	if err != nil {
		return persistErr("delete participant", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: player %s in session %s", domain.ErrParticipantNotFound, playerID, sessionID)
	}
	return nil
}

func (r *ParticipantRepository) SetTeam(ctx context.Context, sessionID, playerID string, team domain.TeamAssignment) error {
	n, err := r.queries.UpdateParticipantTeam(ctx, db.UpdateParticipantTeamParams{
		Team:      nullTeam(team),
		SessionID: sessionID,
		PlayerID:  playerID,
	})
	if err != nil {
		return persistErr("update participant team", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: player %s in session %s", domain.ErrParticipantNotFound, playerID, sessionID)
	}
	return nil
}

// ListBySession returns participants ordered by player name.
func (r *ParticipantRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.SessionParticipant, error) {
	rows, err := r.queries.ListParticipantsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for session %s: %w", sessionID, err)
	}
	return toDomainParticipants(rows)
}

func (r *ParticipantRepository) ListByPlayer(ctx context.Context, playerID string) ([]domain.SessionParticipant, error) {
	rows, err := r.queries.ListParticipantsByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for player %s: %w", playerID, err)
	}
	return toDomainParticipants(rows)
}

func nullTeam(team domain.TeamAssignment) sql.NullString {
	if !team.IsAssigned() {
		return sql.NullString{}
	}
	return sql.NullString{String: team.String(), Valid: true}
}

func toDomainParticipant(row db.SessionParticipant) (domain.SessionParticipant, error) {
	team, err := domain.ParseTeamAssignment(row.Team.String)
	if err != nil {
		return domain.SessionParticipant{}, fmt.Errorf("participant %s/%s: %w", row.SessionID, row.PlayerID, err)
	}
	return domain.SessionParticipant{
		SessionID:  row.SessionID,
		PlayerID:   row.PlayerID,
		PlayerName: row.PlayerName,
		Team:       team,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func toDomainParticipants(rows []db.SessionParticipant) ([]domain.SessionParticipant, error) {
	result := make([]domain.SessionParticipant, len(rows))
	for i, row := range rows {
		sp, err := toDomainParticipant(row)
		if err != nil {
			return nil, err
		}
		result[i] = sp
	}
	return result, nil
}
