package service

import (
	"context"
	"fmt"
	"sort"
	"tenbucks-club/internal/constants"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const seasonLoadConcurrency = 4

// ScoringService derives team and player scores from completed matches. It
// never writes.
type ScoringService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewScoringService(store *repository.Store, logger zerolog.Logger) *ScoringService {
	return &ScoringService{store: store, logger: logger}
}

func (s *ScoringService) TeamTotals(ctx context.Context, sessionID string) (domain.TeamTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var totals domain.TeamTotals
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		if _, err := r.Seasons.GetSession(ctx, sessionID); err != nil {
			return err
		}
		matches, err := r.Matches.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		totals = teamTotals(matches)
		return nil
	})
	return totals, err
}

func (s *ScoringService) NetScore(ctx context.Context, sessionID, playerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var score int
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		participant, err := r.Participants.Find(ctx, sessionID, playerID)
		if err != nil {
			return err
		}
		if participant == nil {
			return fmt.Errorf("%w: player %s in session %s", domain.ErrParticipantNotFound, playerID, sessionID)
		}
		matches, err := r.Matches.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		score, _ = netScore(matches, *participant)
		return nil
	})
	return score, err
}

// SessionResults bundles team totals with every participant's net score.
func (s *ScoringService) SessionResults(ctx context.Context, sessionID string) (*domain.SessionResults, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var results *domain.SessionResults
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		session, err := r.Seasons.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		participants, err := r.Participants.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		matches, err := r.Matches.ListBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		results = sessionResults(*session, participants, matches)
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to compute session results")
		return nil, err
	}
	return results, nil
}

// SeasonAggregate rolls every session of the season up per player, sorted by
// player name.
func (s *ScoringService) SeasonAggregate(ctx context.Context, seasonNumber int) ([]domain.PlayerSeasonAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var aggregate []domain.PlayerSeasonAggregate
	err := s.store.Read(ctx, func(r *repository.Repos) error {
		if _, err := r.Seasons.Get(ctx, seasonNumber); err != nil {
			return err
		}
		sessions, err := r.Seasons.ListSessionsBySeason(ctx, seasonNumber)
		if err != nil {
			return err
		}

		loaded := make([]sessionData, len(sessions))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(seasonLoadConcurrency)
		for i, session := range sessions {
			i, session := i, session
			g.Go(func() error {
				participants, err := r.Participants.ListBySession(gctx, session.ID)
				if err != nil {
					return err
				}
				matches, err := r.Matches.ListBySession(gctx, session.ID)
				if err != nil {
					return err
				}
				loaded[i] = sessionData{session: session, participants: participants, matches: matches}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		aggregate = seasonAggregate(loaded)
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int("season", seasonNumber).Msg("failed to aggregate season")
		return nil, err
	}

	s.logger.Debug().Int("season", seasonNumber).Int("players", len(aggregate)).Msg("season aggregated")
	return aggregate, nil
}

type sessionData struct {
	session      domain.Session
	participants []domain.SessionParticipant
	matches      []domain.DoublesMatch
}

func teamTotals(matches []domain.DoublesMatch) domain.TeamTotals {
	var totals domain.TeamTotals
	for _, m := range matches {
		if !m.IsComplete {
			continue
		}
		totals.Red += m.RedTotal()
		totals.Black += m.BlackTotal()
	}
	return totals
}

// matchNet is the participant's team total minus the opponent's. Anyone not
// on Black is scored from Red's side. Red 21 vs Black 15 gives Red +6 and
// Black -6.
func matchNet(m domain.DoublesMatch, team domain.TeamAssignment) int {
	delta := m.BlackTotal() - m.RedTotal()
	if team.Is(domain.TeamBlack) {
		return delta
	}
	return -delta
}

// netScore sums matchNet over completed matches the participant played in and
// reports how many such matches there were.
func netScore(matches []domain.DoublesMatch, p domain.SessionParticipant) (int, int) {
	var score, played int
	for _, m := range matches {
		if !m.IsComplete || !m.Includes(p.PlayerID) {
			continue
		}
		score += matchNet(m, p.Team)
		played++
	}
	return score, played
}

func sessionResults(session domain.Session, participants []domain.SessionParticipant, matches []domain.DoublesMatch) *domain.SessionResults {
	results := &domain.SessionResults{
		Session: session,
		Totals:  teamTotals(matches),
		Players: make([]domain.PlayerNetScore, 0, len(participants)),
	}
	for _, p := range participants {
		score, played := netScore(matches, p)
		results.Players = append(results.Players, domain.PlayerNetScore{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Team:       p.Team,
			NetScore:   score,
			Matches:    played,
		})
	}
	sort.SliceStable(results.Players, func(i, j int) bool {
		a, b := results.Players[i], results.Players[j]
		if a.NetScore != b.NetScore {
			return a.NetScore > b.NetScore
		}
		return a.PlayerName < b.PlayerName
	})
	return results
}

func seasonAggregate(sessions []sessionData) []domain.PlayerSeasonAggregate {
	type tally struct {
		row      domain.PlayerSeasonAggregate
		sessions map[int]struct{}
	}
	byPlayer := make(map[string]*tally)

	for _, sd := range sessions {
		for _, p := range sd.participants {
			t, ok := byPlayer[p.PlayerID]
			if !ok {
				t = &tally{
					row:      domain.PlayerSeasonAggregate{PlayerID: p.PlayerID, PlayerName: p.PlayerName},
					sessions: make(map[int]struct{}),
				}
				byPlayer[p.PlayerID] = t
			}
			t.sessions[sd.session.Number] = struct{}{}

			score, played := netScore(sd.matches, p)
			t.row.TotalNetScore += score
			t.row.Matches += played
		}
	}

	result := make([]domain.PlayerSeasonAggregate, 0, len(byPlayer))
	for _, t := range byPlayer {
		t.row.SessionsAttended = len(t.sessions)
		if t.row.Matches > 0 {
			t.row.AverageNetScore = float64(t.row.TotalNetScore) / float64(t.row.Matches)
		}
		result = append(result, t.row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PlayerName != result[j].PlayerName {
			return result[i].PlayerName < result[j].PlayerName
		}
		return result[i].PlayerID < result[j].PlayerID
	})
	return result
}
