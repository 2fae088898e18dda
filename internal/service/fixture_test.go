package service

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"tenbucks-club/internal/config"
	"tenbucks-club/internal/database"
	"tenbucks-club/internal/db"
	"tenbucks-club/internal/domain"
	"tenbucks-club/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type fixture struct {
	store         *repository.Store
	roster        *RosterService
	waitlist      *WaitlistService
	participation *ParticipationService
	seasons       *SeasonService
	matches       *MatchService
	scoring       *ScoringService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "club.db")}
	sqlDB, err := database.New(cfg, logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	store := repository.NewStore(
		sqlDB,
		repository.NewPlayerRepository(q, logger),
		repository.NewSeasonRepository(q, logger),
		repository.NewParticipantRepository(q, logger),
		repository.NewMatchRepository(q, logger),
		logger,
	)

	waitlist := NewWaitlistService(store, logger)
	participation := NewParticipationService(store, logger)
	return &fixture{
		store:         store,
		roster:        NewRosterService(store, waitlist, participation, logger),
		waitlist:      waitlist,
		participation: participation,
		seasons:       NewSeasonService(store, logger),
		matches:       NewMatchService(store, logger),
		scoring:       NewScoringService(store, logger),
	}
}

func (f *fixture) addPlayer(t *testing.T, name string, status domain.PlayerStatus) *domain.Player {
	t.Helper()
	p, err := f.roster.AddPlayer(context.Background(), name, status)
	if err != nil {
		t.Fatalf("add player %s: %v", name, err)
	}
	return p
}

// openSession creates a fresh season when needed and adds a session to it.
func (f *fixture) openSession(t *testing.T) *domain.Session {
	t.Helper()
	ctx := context.Background()

	seasons, err := f.seasons.ListSeasons(ctx)
	if err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	var number int
	if len(seasons) > 0 && !seasons[0].IsCompleted {
		number = seasons[0].Number
	} else {
		season, err := f.seasons.AddSeason(ctx)
		if err != nil {
			t.Fatalf("add season: %v", err)
		}
		number = season.Number
	}

	session, err := f.seasons.AddSession(ctx, number)
	if err != nil {
		t.Fatalf("add session: %v", err)
	}
	return session
}

func (f *fixture) player(t *testing.T, id string) *domain.Player {
	t.Helper()
	p, err := f.roster.GetPlayer(context.Background(), id)
	if err != nil {
		t.Fatalf("get player %s: %v", id, err)
	}
	return p
}

// positions maps player name to waitlist position for waitlisted players.
func (f *fixture) positions(t *testing.T) map[string]int {
	t.Helper()
	players, err := f.waitlist.List(context.Background())
	if err != nil {
		t.Fatalf("list waitlist: %v", err)
	}
	out := make(map[string]int, len(players))
	for _, p := range players {
		out[p.Name] = *p.WaitlistPosition
	}
	return out
}

// assertInvariants checks waitlist density and status/position coupling over
// every player.
func (f *fixture) assertInvariants(t *testing.T) {
	t.Helper()
	players, err := f.roster.ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}

	var got []int
	names := make(map[string]bool)
	for _, p := range players {
		if names[p.Name] {
			t.Fatalf("duplicate name %q", p.Name)
		}
		names[p.Name] = true

		_, hasPos := p.Position()
		if hasPos != (p.Status == domain.StatusOnWaitlist) {
			t.Fatalf("player %s: status %v with position %v", p.Name, p.Status, p.WaitlistPosition)
		}
		if hasPos {
			got = append(got, *p.WaitlistPosition)
		}
	}

	sort.Ints(got)
	for i, pos := range got {
		if pos != i+1 {
			t.Fatalf("waitlist not dense: %v", got)
		}
	}
}

type graphSnapshot struct {
	Players      []domain.Player
	Participants map[string][]domain.SessionParticipant
}

func (f *fixture) snapshot(t *testing.T) graphSnapshot {
	t.Helper()
	ctx := context.Background()

	players, err := f.roster.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	snap := graphSnapshot{Players: players, Participants: make(map[string][]domain.SessionParticipant)}

	seasons, err := f.seasons.ListSeasons(ctx)
	if err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	for _, season := range seasons {
		for _, session := range season.Sessions {
			list, err := f.participation.ListParticipants(ctx, session.ID, nil)
			if err != nil {
				t.Fatalf("list participants: %v", err)
			}
			snap.Participants[session.ID] = list
		}
	}
	return snap
}

var allowTeam = cmp.AllowUnexported(domain.TeamAssignment{})

func assertUnchanged(t *testing.T, before, after graphSnapshot) {
	t.Helper()
	if diff := cmp.Diff(before, after, allowTeam); diff != "" {
		t.Fatalf("state changed after failed operation (-before +after):\n%s", diff)
	}
}
