package server

import (
	"time"
	"tenbucks-club/internal/domain"
)

type Empty struct{}

type Player struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	WaitlistPosition *int      `json:"waitlist_position,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PlayerList struct {
	Players []Player `json:"players"`
}

type AddPlayerRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type RenamePlayerRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type ChangeStatusRequest struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
}

type PlayerRequest struct {
	PlayerID string `json:"player_id"`
}

type Session struct {
	ID           string    `json:"id"`
	SeasonNumber int       `json:"season_number"`
	Number       int       `json:"number"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionList struct {
	Sessions []Session `json:"sessions"`
}

type CurrentSessionResponse struct {
	Session *Session `json:"session,omitempty"`
}

type Season struct {
	Number      int       `json:"number"`
	IsCompleted bool      `json:"is_completed"`
	Sessions    []Session `json:"sessions"`
	CreatedAt   time.Time `json:"created_at"`
}

type SeasonList struct {
	Seasons []Season `json:"seasons"`
}

type SeasonRequest struct {
	SeasonNumber int `json:"season_number"`
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type Participant struct {
	SessionID  string    `json:"session_id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	CreatedAt  time.Time `json:"created_at"`
}

type ParticipantList struct {
	Participants []Participant `json:"participants"`
}

type ParticipantRequest struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Team      string `json:"team,omitempty"`
}

type ListParticipantsRequest struct {
	SessionID string `json:"session_id"`
	// Team filters by assignment when set; "unassigned" is a valid filter.
	Team *string `json:"team,omitempty"`
}

type Match struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Wave        int       `json:"wave"`
	PlayerIDs   []string  `json:"player_ids"`
	RedFirst    int       `json:"red_first"`
	BlackFirst  int       `json:"black_first"`
	RedSecond   int       `json:"red_second"`
	BlackSecond int       `json:"black_second"`
	RedTotal    int       `json:"red_total"`
	BlackTotal  int       `json:"black_total"`
	IsComplete  bool      `json:"is_complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AddMatchRequest struct {
	SessionID string   `json:"session_id"`
	Wave      int      `json:"wave"`
	PlayerIDs []string `json:"player_ids"`
}

type UpdateScoresRequest struct {
	MatchID     string `json:"match_id"`
	RedFirst    int    `json:"red_first"`
	BlackFirst  int    `json:"black_first"`
	RedSecond   int    `json:"red_second"`
	BlackSecond int    `json:"black_second"`
}

type SetMatchCompletedRequest struct {
	MatchID  string `json:"match_id"`
	Complete bool   `json:"complete"`
}

type Wave struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

type WaveList struct {
	Waves []Wave `json:"waves"`
}

type TeamTotals struct {
	Red   int `json:"red"`
	Black int `json:"black"`
}

type NetScoreResponse struct {
	NetScore int `json:"net_score"`
}

type PlayerNetScore struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	NetScore   int    `json:"net_score"`
	Matches    int    `json:"matches"`
}

type SessionResults struct {
	Session Session          `json:"session"`
	Totals  TeamTotals       `json:"totals"`
	Players []PlayerNetScore `json:"players"`
}

type PlayerSeasonAggregate struct {
	PlayerID         string  `json:"player_id"`
	PlayerName       string  `json:"player_name"`
	SessionsAttended int     `json:"sessions_attended"`
	Matches          int     `json:"matches"`
	TotalNetScore    int     `json:"total_net_score"`
	AverageNetScore  float64 `json:"average_net_score"`
}

type SeasonAggregate struct {
	Players []PlayerSeasonAggregate `json:"players"`
}

func toPlayer(p *domain.Player) *Player {
	return &Player{
		ID:               p.ID,
		Name:             p.Name,
		Status:           p.Status.String(),
		WaitlistPosition: p.WaitlistPosition,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toPlayerList(players []domain.Player) *PlayerList {
	out := &PlayerList{Players: make([]Player, 0, len(players))}
	for i := range players {
		out.Players = append(out.Players, *toPlayer(&players[i]))
	}
	return out
}

func toSession(s *domain.Session) *Session {
	return &Session{ID: s.ID, SeasonNumber: s.SeasonNumber, Number: s.Number, CreatedAt: s.CreatedAt}
}

func toSeason(s *domain.Season) *Season {
	out := &Season{
		Number:      s.Number,
		IsCompleted: s.IsCompleted,
		Sessions:    make([]Session, 0, len(s.Sessions)),
		CreatedAt:   s.CreatedAt,
	}
	for i := range s.Sessions {
		out.Sessions = append(out.Sessions, *toSession(&s.Sessions[i]))
	}
	return out
}

func toParticipant(p *domain.SessionParticipant) *Participant {
	return &Participant{
		SessionID:  p.SessionID,
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerName,
		Team:       p.Team.String(),
		CreatedAt:  p.CreatedAt,
	}
}

func toMatch(m *domain.DoublesMatch) *Match {
	return &Match{
		ID:          m.ID,
		SessionID:   m.SessionID,
		Wave:        m.Wave,
		PlayerIDs:   m.PlayerIDs[:],
		RedFirst:    m.RedFirst,
		BlackFirst:  m.BlackFirst,
		RedSecond:   m.RedSecond,
		BlackSecond: m.BlackSecond,
		RedTotal:    m.RedTotal(),
		BlackTotal:  m.BlackTotal(),
		IsComplete:  m.IsComplete,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toSessionResults(r *domain.SessionResults) *SessionResults {
	out := &SessionResults{
		Session: *toSession(&r.Session),
		Totals:  TeamTotals{Red: r.Totals.Red, Black: r.Totals.Black},
		Players: make([]PlayerNetScore, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		out.Players = append(out.Players, PlayerNetScore{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Team:       p.Team.String(),
			NetScore:   p.NetScore,
			Matches:    p.Matches,
		})
	}
	return out
}
