package db

import (
	"context"
	"database/sql"
	"time"
)

const playerColumns = `id, name, status, waitlist_position, created_at, updated_at`

func scanPlayer(row interface{ Scan(...any) error }) (Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Status, &p.WaitlistPosition, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

type CreatePlayerParams struct {
	ID               string
	Name             string
	Status           string
	WaitlistPosition sql.NullInt64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

const createPlayer = `INSERT INTO players (` + playerColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) error {
	_, err := q.db.ExecContext(ctx, createPlayer,
		arg.ID, arg.Name, arg.Status, arg.WaitlistPosition, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getPlayer = `SELECT ` + playerColumns + ` FROM players WHERE id = ?`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, id))
}

const getPlayerByName = `SELECT ` + playerColumns + ` FROM players WHERE name = ?`

func (q *Queries) GetPlayerByName(ctx context.Context, name string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayerByName, name))
}

const listPlayers = `SELECT ` + playerColumns + ` FROM players ORDER BY name`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	return q.queryPlayers(ctx, listPlayers)
}

const listWaitlist = `SELECT ` + playerColumns + ` FROM players
WHERE status = 'on_waitlist'
ORDER BY waitlist_position`

func (q *Queries) ListWaitlist(ctx context.Context) ([]Player, error) {
	return q.queryPlayers(ctx, listWaitlist)
}

func (q *Queries) queryPlayers(ctx context.Context, query string, args ...any) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const maxWaitlistPosition = `SELECT COALESCE(MAX(waitlist_position), 0) FROM players WHERE status = 'on_waitlist'`

func (q *Queries) MaxWaitlistPosition(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, maxWaitlistPosition).Scan(&n)
	return n, err
}

const countWaitlist = `SELECT COUNT(*) FROM players WHERE status = 'on_waitlist'`

func (q *Queries) CountWaitlist(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countWaitlist).Scan(&n)
	return n, err
}

type UpdatePlayerNameParams struct {
	Name      string
	UpdatedAt time.Time
	ID        string
}

const updatePlayerName = `UPDATE players SET name = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdatePlayerName(ctx context.Context, arg UpdatePlayerNameParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerName, arg.Name, arg.UpdatedAt, arg.ID)
	return err
}

type UpdatePlayerStatusParams struct {
	Status           string
	WaitlistPosition sql.NullInt64
	UpdatedAt        time.Time
	ID               string
}

const updatePlayerStatus = `UPDATE players SET status = ?, waitlist_position = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdatePlayerStatus(ctx context.Context, arg UpdatePlayerStatusParams) error {
	_, err := q.db.ExecContext(ctx, updatePlayerStatus, arg.Status, arg.WaitlistPosition, arg.UpdatedAt, arg.ID)
	return err
}

type ShiftWaitlistUpParams struct {
	After     int64
	UpdatedAt time.Time
}

const shiftWaitlistUp = `UPDATE players
SET waitlist_position = waitlist_position - 1, updated_at = ?
WHERE status = 'on_waitlist' AND waitlist_position > ?`

// ShiftWaitlistUp decrements every waitlist position strictly greater than
// After and reports how many players moved.
func (q *Queries) ShiftWaitlistUp(ctx context.Context, arg ShiftWaitlistUpParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, shiftWaitlistUp, arg.UpdatedAt, arg.After)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
