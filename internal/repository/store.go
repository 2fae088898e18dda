package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
	"tenbucks-club/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// Repos groups the repositories handed to a Write or Read callback. Inside
// Write they are bound to the open transaction.
type Repos struct {
	Players      *PlayerRepository
	Seasons      *SeasonRepository
	Participants *ParticipantRepository
	Matches      *MatchRepository
}

// Store serializes every mutation of the roster, waitlist, season and
// participation graph behind a single lock. Readers share the lock and see a
// committed snapshot.
type Store struct {
	mu           sync.RWMutex
	db           *sql.DB
	players      *PlayerRepository
	seasons      *SeasonRepository
	participants *ParticipantRepository
	matches      *MatchRepository
	logger       zerolog.Logger
}

func NewStore(
	sqlDB *sql.DB,
	players *PlayerRepository,
	seasons *SeasonRepository,
	participants *ParticipantRepository,
	matches *MatchRepository,
	logger zerolog.Logger,
) *Store {
	return &Store{
		db:           sqlDB,
		players:      players,
		seasons:      seasons,
		participants: participants,
		matches:      matches,
		logger:       logger,
	}
}

func (s *Store) bind(tx *sql.Tx) *Repos {
	return &Repos{
		Players:      s.players.WithTx(tx),
		Seasons:      s.seasons.WithTx(tx),
		Participants: s.participants.WithTx(tx),
		Matches:      s.matches.WithTx(tx),
	}
}

// Write runs fn in a transaction under the exclusive lock. Any error from fn
// rolls the transaction back; a failed commit is reported as
// domain.ErrPersistenceCommit.
func (s *Store) Write(ctx context.Context, fn func(r *Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin write transaction")
		return fmt.Errorf("%w: failed to begin transaction: %w", domain.ErrPersistenceCommit, err)
	}
	defer tx.Rollback()

	if err := fn(s.bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", domain.ErrPersistenceCommit, err)
	}

	s.logger.Debug().Dur("duration", time.Since(start)).Msg("write committed")
	return nil
}

// Read runs fn under the shared lock. No writer can hold the exclusive lock
// meanwhile, so every query inside fn sees the same committed state, and
// queries may run concurrently on separate pool connections.
func (s *Store) Read(ctx context.Context, fn func(r *Repos) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&Repos{
		Players:      s.players,
		Seasons:      s.seasons,
		Participants: s.participants,
		Matches:      s.matches,
	})
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// persistErr marks a failed statement inside a transaction. Store.Write rolls
// the transaction back when it sees the error.
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrStoreFailure, op, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func now() time.Time {
	return time.Now().UTC()
}
