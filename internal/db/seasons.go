package db

import (
	"context"
	"time"
)

type CreateSeasonParams struct {
	Number    int64
	CreatedAt time.Time
}

const createSeason = `INSERT INTO seasons (number, is_completed, created_at) VALUES (?, 0, ?)`

func (q *Queries) CreateSeason(ctx context.Context, arg CreateSeasonParams) error {
	_, err := q.db.ExecContext(ctx, createSeason, arg.Number, arg.CreatedAt)
	return err
}

const getSeason = `SELECT number, is_completed, created_at FROM seasons WHERE number = ?`

func (q *Queries) GetSeason(ctx context.Context, number int64) (Season, error) {
	var s Season
	err := q.db.QueryRowContext(ctx, getSeason, number).Scan(&s.Number, &s.IsCompleted, &s.CreatedAt)
	return s, err
}

const listSeasons = `SELECT number, is_completed, created_at FROM seasons ORDER BY number DESC`

func (q *Queries) ListSeasons(ctx context.Context) ([]Season, error) {
	rows, err := q.db.QueryContext(ctx, listSeasons)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Season
	for rows.Next() {
		var s Season
		if err := rows.Scan(&s.Number, &s.IsCompleted, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const completeSeason = `UPDATE seasons SET is_completed = 1 WHERE number = ?`

func (q *Queries) CompleteSeason(ctx context.Context, number int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, completeSeason, number)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type CreateSessionParams struct {
	ID           string
	SeasonNumber int64
	Number       int64
	CreatedAt    time.Time
}

const createSession = `INSERT INTO sessions (id, season_number, number, created_at) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx, createSession, arg.ID, arg.SeasonNumber, arg.Number, arg.CreatedAt)
	return err
}

const getSession = `SELECT id, season_number, number, created_at FROM sessions WHERE id = ?`

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	var s Session
	err := q.db.QueryRowContext(ctx, getSession, id).Scan(&s.ID, &s.SeasonNumber, &s.Number, &s.CreatedAt)
	return s, err
}

const listSessions = `SELECT id, season_number, number, created_at FROM sessions
ORDER BY season_number DESC, number DESC`

func (q *Queries) ListSessions(ctx context.Context) ([]Session, error) {
	return q.querySessions(ctx, listSessions)
}

const listSessionsBySeason = `SELECT id, season_number, number, created_at FROM sessions
WHERE season_number = ?
ORDER BY number`

func (q *Queries) ListSessionsBySeason(ctx context.Context, seasonNumber int64) ([]Session, error) {
	return q.querySessions(ctx, listSessionsBySeason, seasonNumber)
}

func (q *Queries) querySessions(ctx context.Context, query string, args ...any) ([]Session, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.SeasonNumber, &s.Number, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const maxSessionNumber = `SELECT COALESCE(MAX(number), 0) FROM sessions WHERE season_number = ?`

func (q *Queries) MaxSessionNumber(ctx context.Context, seasonNumber int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, maxSessionNumber, seasonNumber).Scan(&n)
	return n, err
}
