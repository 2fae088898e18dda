package db

import (
	"context"
	"time"
)

const matchColumns = `id, session_id, wave, player1_id, player2_id, player3_id, player4_id,
red_first, black_first, red_second, black_second, is_complete, created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }) (DoublesMatch, error) {
	var m DoublesMatch
	err := row.Scan(&m.ID, &m.SessionID, &m.Wave, &m.Player1ID, &m.Player2ID, &m.Player3ID, &m.Player4ID,
		&m.RedFirst, &m.BlackFirst, &m.RedSecond, &m.BlackSecond, &m.IsComplete, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

type CreateMatchParams struct {
	ID        string
	SessionID string
	Wave      int64
	Player1ID string
	Player2ID string
	Player3ID string
	Player4ID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createMatch = `INSERT INTO doubles_matches (id, session_id, wave, player1_id, player2_id, player3_id, player4_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) error {
	_, err := q.db.ExecContext(ctx, createMatch, arg.ID, arg.SessionID, arg.Wave,
		arg.Player1ID, arg.Player2ID, arg.Player3ID, arg.Player4ID, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getMatch = `SELECT ` + matchColumns + ` FROM doubles_matches WHERE id = ?`

func (q *Queries) GetMatch(ctx context.Context, id string) (DoublesMatch, error) {
	return scanMatch(q.db.QueryRowContext(ctx, getMatch, id))
}

const listMatchesBySession = `SELECT ` + matchColumns + ` FROM doubles_matches
WHERE session_id = ?
ORDER BY wave, created_at, id`

func (q *Queries) ListMatchesBySession(ctx context.Context, sessionID string) ([]DoublesMatch, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []DoublesMatch
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type UpdateMatchScoresParams struct {
	RedFirst    int64
	BlackFirst  int64
	RedSecond   int64
	BlackSecond int64
	UpdatedAt   time.Time
	ID          string
}

const updateMatchScores = `UPDATE doubles_matches
SET red_first = ?, black_first = ?, red_second = ?, black_second = ?, updated_at = ?
WHERE id = ?`

func (q *Queries) UpdateMatchScores(ctx context.Context, arg UpdateMatchScoresParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateMatchScores,
		arg.RedFirst, arg.BlackFirst, arg.RedSecond, arg.BlackSecond, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type UpdateMatchCompletedParams struct {
	IsComplete bool
	UpdatedAt  time.Time
	ID         string
}

const updateMatchCompleted = `UPDATE doubles_matches SET is_complete = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdateMatchCompleted(ctx context.Context, arg UpdateMatchCompletedParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateMatchCompleted, arg.IsComplete, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
