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

type PlayerRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewPlayerRepository(queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *PlayerRepository) WithTx(tx *sql.Tx) *PlayerRepository {
	return &PlayerRepository{queries: r.queries.WithTx(tx), logger: r.logger}
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	ts := now()
	player.CreatedAt, player.UpdatedAt = ts, ts

	err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		ID:               player.ID,
		Name:             player.Name,
		Status:           player.Status.String(),
		WaitlistPosition: nullInt(player.WaitlistPosition),
		CreatedAt:        player.CreatedAt,
		UpdatedAt:        player.UpdatedAt,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, player.Name)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("name", player.Name).Msg("failed to insert player")
		return persistErr("insert player", err)
	}
	return nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	row, err := r.queries.GetPlayer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return toDomainPlayer(row)
}

// GetByName returns nil without error when no player holds the name.
func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	row, err := r.queries.GetPlayerByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}
	return toDomainPlayer(row)
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return toDomainPlayers(rows)
}

func (r *PlayerRepository) ListWaitlist(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.queries.ListWaitlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	return toDomainPlayers(rows)
}

func (r *PlayerRepository) MaxWaitlistPosition(ctx context.Context) (int, error) {
	n, err := r.queries.MaxWaitlistPosition(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read waitlist tail: %w", err)
	}
	return int(n), nil
}

func (r *PlayerRepository) CountWaitlist(ctx context.Context) (int, error) {
	n, err := r.queries.CountWaitlist(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist: %w", err)
	}
	return int(n), nil
}

func (r *PlayerRepository) Rename(ctx context.Context, id, name string) error {
	err := r.queries.UpdatePlayerName(ctx, db.UpdatePlayerNameParams{
		Name:      name,
		UpdatedAt: now(),
		ID:        id,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
	}
	if err != nil {
		return persistErr("rename player", err)
	}
	return nil
}

// SetStatus writes status and position together so the pair never disagrees.
func (r *PlayerRepository) SetStatus(ctx context.Context, id string, status domain.PlayerStatus, position *int) error {
	err := r.queries.UpdatePlayerStatus(ctx, db.UpdatePlayerStatusParams{
		Status:           status.String(),
		WaitlistPosition: nullInt(position),
		UpdatedAt:        now(),
		ID:               id,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("player_id", id).Str("status", status.String()).Msg("failed to update status")
		return persistErr("update player status", err)
	}
	return nil
}

// ShiftWaitlistUp closes the gap left at position by moving everyone below it
// up one slot.
func (r *PlayerRepository) ShiftWaitlistUp(ctx context.Context, position int) (int, error) {
	n, err := r.queries.ShiftWaitlistUp(ctx, db.ShiftWaitlistUpParams{
		After:     int64(position),
		UpdatedAt: now(),
	})
	if err != nil {
		return 0, persistErr("compact waitlist", err)
	}
	return int(n), nil
}

func toDomainPlayer(row db.Player) (*domain.Player, error) {
	status, err := domain.ParsePlayerStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", row.ID, err)
	}
	return &domain.Player{
		ID:               row.ID,
		Name:             row.Name,
		Status:           status,
		WaitlistPosition: intPtr(row.WaitlistPosition),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

func toDomainPlayers(rows []db.Player) ([]domain.Player, error) {
	result := make([]domain.Player, len(rows))
	for i, row := range rows {
		p, err := toDomainPlayer(row)
		if err != nil {
			return nil, err
		}
		result[i] = *p
	}
	return result, nil
}
