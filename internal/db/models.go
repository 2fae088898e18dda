package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID               string
	Name             string
	Status           string
	WaitlistPosition sql.NullInt64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Season struct {
	Number      int64
	IsCompleted bool
	CreatedAt   time.Time
}

type Session struct {
	ID           string
	SeasonNumber int64
	Number       int64
	CreatedAt    time.Time
}

type SessionParticipant struct {
	SessionID  string
	PlayerID   string
	PlayerName string
	Team       sql.NullString
	CreatedAt  time.Time
}

type DoublesMatch struct {
	ID          string
	SessionID   string
	Wave        int64
	Player1ID   string
	Player2ID   string
	Player3ID   string
	Player4ID   string
	RedFirst    int64
	BlackFirst  int64
	RedSecond   int64
	BlackSecond int64
	IsComplete  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
