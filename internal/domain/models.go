package domain

import (
	"time"
)

type Player struct {
	ID     string
	Name   string
	Status PlayerStatus
	// WaitlistPosition is set exactly when Status is StatusOnWaitlist.
	WaitlistPosition *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Player) Position() (int, bool) {
	if p.WaitlistPosition == nil {
		return 0, false
	}
	return *p.WaitlistPosition, true
}

type Season struct {
	Number      int
	IsCompleted bool
	Sessions    []Session
	CreatedAt   time.Time
}

type Session struct {
	ID           string
	SeasonNumber int
	Number       int
	CreatedAt    time.Time
}

type SessionParticipant struct {
	SessionID  string
	PlayerID   string
	PlayerName string
	Team       TeamAssignment
	CreatedAt  time.Time
}

type DoublesMatch struct {
	ID          string
	SessionID   string
	Wave        int
	PlayerIDs   [4]string
	RedFirst    int
	BlackFirst  int
	RedSecond   int
	BlackSecond int
	IsComplete  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m DoublesMatch) RedTotal() int   { return m.RedFirst + m.RedSecond }
func (m DoublesMatch) BlackTotal() int { return m.BlackFirst + m.BlackSecond }

func (m DoublesMatch) Includes(playerID string) bool {
	for _, id := range m.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

type MatchScores struct {
	RedFirst    int
	BlackFirst  int
	RedSecond   int
	BlackSecond int
}

func (s MatchScores) Valid() bool {
	return s.RedFirst >= 0 && s.BlackFirst >= 0 && s.RedSecond >= 0 && s.BlackSecond >= 0
}

type Wave struct {
	Number  int
	Matches []DoublesMatch
}
