package db

import (
	"context"
	"database/sql"
	"time"
)

type CreateParticipantParams struct {
	SessionID string
	PlayerID  string
	Team      sql.NullString
	CreatedAt time.Time
}

const createParticipant = `INSERT INTO session_participants (session_id, player_id, team, created_at) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateParticipant(ctx context.Context, arg CreateParticipantParams) error {
	_, err := q.db.ExecContext(ctx, createParticipant, arg.SessionID, arg.PlayerID, arg.Team, arg.CreatedAt)
	return err
}

type ParticipantKey struct {
	SessionID string
	PlayerID  string
}

const participantSelect = `SELECT sp.session_id, sp.player_id, p.name, sp.team, sp.created_at
FROM session_participants sp
JOIN players p ON p.id = sp.player_id`

const getParticipant = participantSelect + ` WHERE sp.session_id = ? AND sp.player_id = ?`

func (q *Queries) GetParticipant(ctx context.Context, arg ParticipantKey) (SessionParticipant, error) {
	var sp SessionParticipant
	err := q.db.QueryRowContext(ctx, getParticipant, arg.SessionID, arg.PlayerID).
		Scan(&sp.SessionID, &sp.PlayerID, &sp.PlayerName, &sp.Team, &sp.CreatedAt)
	return sp, err
}

const deleteParticipant = `DELETE FROM session_participants WHERE session_id = ? AND player_id = ?`

func (q *Queries) DeleteParticipant(ctx context.Context, arg ParticipantKey) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteParticipant, arg.SessionID, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type UpdateParticipantTeamParams struct {
	Team      sql.NullString
	SessionID string
	PlayerID  string
}

const updateParticipantTeam = `UPDATE session_participants SET team = ? WHERE session_id = ? AND player_id = ?`

func (q *Queries) UpdateParticipantTeam(ctx context.Context, arg UpdateParticipantTeamParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateParticipantTeam, arg.Team, arg.SessionID, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listParticipantsBySession = participantSelect + ` WHERE sp.session_id = ? ORDER BY p.name`

func (q *Queries) ListParticipantsBySession(ctx context.Context, sessionID string) ([]SessionParticipant, error) {
	return q.queryParticipants(ctx, listParticipantsBySession, sessionID)
}

const listParticipantsByPlayer = participantSelect + `
JOIN sessions s ON s.id = sp.session_id
WHERE sp.player_id = ?
ORDER BY s.season_number DESC, s.number DESC`

func (q *Queries) ListParticipantsByPlayer(ctx context.Context, playerID string) ([]SessionParticipant, error) {
	return q.queryParticipants(ctx, listParticipantsByPlayer, playerID)
}

func (q *Queries) queryParticipants(ctx context.Context, query string, args ...any) ([]SessionParticipant, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SessionParticipant
	for rows.Next() {
		var sp SessionParticipant
		if err := rows.Scan(&sp.SessionID, &sp.PlayerID, &sp.PlayerName, &sp.Team, &sp.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
