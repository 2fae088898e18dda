package service

import (
	"context"
	"errors"
	"testing"

	"tenbucks-club/internal/domain"
)

func TestAddPlayerRejectsDuplicateAndEmptyNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPlayer(t, "Alice", domain.StatusNotInSession)

	if _, err := f.roster.AddPlayer(ctx, "Alice", domain.StatusOnWaitlist); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := f.roster.AddPlayer(ctx, "  ", domain.StatusNotInSession); !errors.Is(err, domain.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := f.roster.AddPlayer(ctx, "alice", domain.StatusNotInSession); err != nil {
		t.Fatalf("expected case-sensitive names to be distinct: %v", err)
	}
	f.assertInvariants(t)
}

func TestAddPlayerOnWaitlistAppends(t *testing.T) {
	f := newFixture(t)

	a := f.addPlayer(t, "A", domain.StatusOnWaitlist)
	b := f.addPlayer(t, "B", domain.StatusOnWaitlist)

	if a.Status != domain.StatusOnWaitlist || *a.WaitlistPosition != 1 {
		t.Fatalf("expected A at position 1, got %+v", a)
	}
	if *b.WaitlistPosition != 2 {
		t.Fatalf("expected B at position 2, got %d", *b.WaitlistPosition)
	}
}

func TestAddPlayerPlayingWithoutSessionIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := f.snapshot(t)
	if _, err := f.roster.AddPlayer(ctx, "Late", domain.StatusPlaying); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	assertUnchanged(t, before, f.snapshot(t))
}

func TestAddPlayerPlayingJoinsCurrentSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.openSession(t)
	current := f.openSession(t)

	p := f.addPlayer(t, "Jo", domain.StatusPlaying)
	if p.Status != domain.StatusPlaying || p.WaitlistPosition != nil {
		t.Fatalf("unexpected player state %+v", p)
	}

	participants, err := f.participation.ListParticipants(ctx, current.ID, nil)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(participants) != 1 || participants[0].PlayerID != p.ID || participants[0].Team.IsAssigned() {
		t.Fatalf("expected unassigned participant in current session, got %+v", participants)
	}
}

func TestChangeStatusToPlayingWithoutSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	idle := f.addPlayer(t, "Idle", domain.StatusNotInSession)
	waiting := f.addPlayer(t, "Waiting", domain.StatusOnWaitlist)
	f.addPlayer(t, "Behind", domain.StatusOnWaitlist)
	before := f.snapshot(t)

	for _, id := range []string{idle.ID, waiting.ID} {
		if _, err := f.roster.ChangeStatus(ctx, id, domain.StatusPlaying); !errors.Is(err, domain.ErrNoActiveSession) {
			t.Fatalf("expected ErrNoActiveSession, got %v", err)
		}
	}
	assertUnchanged(t, before, f.snapshot(t))
}

func TestChangeStatusWaitlistToPlaying(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.openSession(t)

	first := f.addPlayer(t, "First", domain.StatusOnWaitlist)
	second := f.addPlayer(t, "Second", domain.StatusOnWaitlist)

	got, err := f.roster.ChangeStatus(ctx, first.ID, domain.StatusPlaying)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if got.Status != domain.StatusPlaying || got.WaitlistPosition != nil {
		t.Fatalf("unexpected player state %+v", got)
	}
	if pos := *f.player(t, second.ID).WaitlistPosition; pos != 1 {
		t.Fatalf("expected Second compacted to 1, got %d", pos)
	}
	assigned, err := f.participation.HasAssignedTeam(ctx, session.ID, first.ID)
	if err != nil {
		t.Fatalf("has assigned team: %v", err)
	}
	if assigned {
		t.Fatal("expected a fresh participant to be unassigned")
	}
	f.assertInvariants(t)
}

func TestChangeStatusLeavingPlayingRequiresUnassignedTeam(t *testing.T) {
	for _, target := range []domain.PlayerStatus{domain.StatusNotInSession, domain.StatusOnWaitlist} {
		t.Run(target.String(), func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			session := f.openSession(t)

			f.addPlayer(t, "Queued", domain.StatusOnWaitlist)
			p := f.addPlayer(t, "Striker", domain.StatusPlaying)
			if _, err := f.participation.SetTeam(ctx, session.ID, p.ID, domain.Assigned(domain.TeamBlack)); err != nil {
				t.Fatalf("set team: %v", err)
			}

			before := f.snapshot(t)
			if _, err := f.roster.ChangeStatus(ctx, p.ID, target); !errors.Is(err, domain.ErrTeamAssigned) {
				t.Fatalf("expected ErrTeamAssigned, got %v", err)
			}
			assertUnchanged(t, before, f.snapshot(t))

			if _, err := f.participation.SetTeam(ctx, session.ID, p.ID, domain.Unassigned); err != nil {
				t.Fatalf("clear team: %v", err)
			}
			got, err := f.roster.ChangeStatus(ctx, p.ID, target)
			if err != nil {
				t.Fatalf("change status after clearing team: %v", err)
			}
			if got.Status != target {
				t.Fatalf("expected status %v, got %v", target, got.Status)
			}
			if target == domain.StatusOnWaitlist && *got.WaitlistPosition != 2 {
				t.Fatalf("expected to join waitlist at 2, got %d", *got.WaitlistPosition)
			}

			participants, err := f.participation.ListParticipants(ctx, session.ID, nil)
			if err != nil {
				t.Fatalf("list participants: %v", err)
			}
			if len(participants) != 0 {
				t.Fatalf("expected participant record deleted, got %+v", participants)
			}
			f.assertInvariants(t)
		})
	}
}

func TestChangeStatusSameStatusIsNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openSession(t)

	players := []*domain.Player{
		f.addPlayer(t, "A", domain.StatusNotInSession),
		f.addPlayer(t, "B", domain.StatusOnWaitlist),
		f.addPlayer(t, "C", domain.StatusPlaying),
	}
	before := f.snapshot(t)
	for _, p := range players {
		if _, err := f.roster.ChangeStatus(ctx, p.ID, p.Status); err != nil {
			t.Fatalf("no-op change for %s: %v", p.Name, err)
		}
	}
	assertUnchanged(t, before, f.snapshot(t))
}

func TestChangeStatusPlayingOutsideCurrentSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	old := f.openSession(t)

	p := f.addPlayer(t, "Veteran", domain.StatusPlaying)
	if _, err := f.participation.SetTeam(ctx, old.ID, p.ID, domain.Assigned(domain.TeamRed)); err != nil {
		t.Fatalf("set team: %v", err)
	}
	f.openSession(t)

	// The team gate only looks at the current session.
	got, err := f.roster.ChangeStatus(ctx, p.ID, domain.StatusNotInSession)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if got.Status != domain.StatusNotInSession {
		t.Fatalf("expected NotInSession, got %v", got.Status)
	}
	kept, err := f.participation.ListParticipants(ctx, old.ID, nil)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected the earlier session roster untouched, got %+v", kept)
	}
}

func TestChangeStatusKeepsExistingRosterEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.openSession(t)

	p := f.addPlayer(t, "Booked", domain.StatusNotInSession)
	if _, err := f.participation.AddParticipant(ctx, session.ID, p.ID, domain.Assigned(domain.TeamRed)); err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if _, err := f.roster.ChangeStatus(ctx, p.ID, domain.StatusPlaying); err != nil {
		t.Fatalf("change status: %v", err)
	}
	assigned, err := f.participation.HasAssignedTeam(ctx, session.ID, p.ID)
	if err != nil {
		t.Fatalf("has assigned team: %v", err)
	}
	if !assigned {
		t.Fatal("expected the existing team assignment to survive")
	}
}

func TestRenamePlayer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.addPlayer(t, "Alice", domain.StatusNotInSession)
	f.addPlayer(t, "Bob", domain.StatusNotInSession)

	if _, err := f.roster.RenamePlayer(ctx, a.ID, "Bob"); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := f.roster.RenamePlayer(ctx, a.ID, "Alice"); err != nil {
		t.Fatalf("renaming to own name should succeed: %v", err)
	}
	got, err := f.roster.RenamePlayer(ctx, a.ID, " Alicia ")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got.Name != "Alicia" || f.player(t, a.ID).Name != "Alicia" {
		t.Fatalf("expected trimmed new name, got %q", got.Name)
	}
	if _, err := f.roster.RenamePlayer(ctx, "missing", "Zed"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestListPlayersSortedByName(t *testing.T) {
	f := newFixture(t)
	for _, n := range []string{"Cara", "Abe", "Bea"} {
		f.addPlayer(t, n, domain.StatusNotInSession)
	}
	players, err := f.roster.ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 3 || players[0].Name != "Abe" || players[2].Name != "Cara" {
		t.Fatalf("unexpected order: %+v", players)
	}
}

func TestWriteFailureSurfacesPersistenceError(t *testing.T) {
	f := newFixture(t)
	if err := f.store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
	if _, err := f.roster.AddPlayer(context.Background(), "Ghost", domain.StatusNotInSession); !errors.Is(err, domain.ErrPersistenceCommit) {
		t.Fatalf("expected ErrPersistenceCommit, got %v", err)
	}
}
