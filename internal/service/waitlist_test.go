package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"tenbucks-club/internal/domain"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

func TestWaitlistAppendAndRemoveCompacts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.addPlayer(t, "P1", domain.StatusNotInSession)
	p2 := f.addPlayer(t, "P2", domain.StatusNotInSession)

	if _, err := f.roster.ChangeStatus(ctx, p1.ID, domain.StatusOnWaitlist); err != nil {
		t.Fatalf("append P1: %v", err)
	}
	if got := *f.player(t, p1.ID).WaitlistPosition; got != 1 {
		t.Fatalf("expected P1 at 1, got %d", got)
	}

	if _, err := f.roster.ChangeStatus(ctx, p2.ID, domain.StatusOnWaitlist); err != nil {
		t.Fatalf("append P2: %v", err)
	}
	if got := *f.player(t, p2.ID).WaitlistPosition; got != 2 {
		t.Fatalf("expected P2 at 2, got %d", got)
	}

	removed, err := f.waitlist.Remove(ctx, p1.ID)
	if err != nil {
		t.Fatalf("remove P1: %v", err)
	}
	if removed.Status != domain.StatusNotInSession || removed.WaitlistPosition != nil {
		t.Fatalf("expected P1 off the waitlist, got %+v", removed)
	}
	if got := *f.player(t, p2.ID).WaitlistPosition; got != 1 {
		t.Fatalf("expected P2 compacted to 1, got %d", got)
	}
	f.assertInvariants(t)
}

func TestWaitlistMoveToBottom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1 := f.addPlayer(t, "P1", domain.StatusOnWaitlist)
	f.addPlayer(t, "P2", domain.StatusOnWaitlist)
	f.addPlayer(t, "P3", domain.StatusOnWaitlist)

	moved, err := f.waitlist.MoveToBottom(ctx, p1.ID)
	if err != nil {
		t.Fatalf("move to bottom: %v", err)
	}
	if *moved.WaitlistPosition != 3 {
		t.Fatalf("expected returned position 3, got %d", *moved.WaitlistPosition)
	}

	want := map[string]int{"P2": 1, "P3": 2, "P1": 3}
	if diff := cmp.Diff(want, f.positions(t)); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
	f.assertInvariants(t)
}

func TestWaitlistMoveToBottomFromMiddle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPlayer(t, "A", domain.StatusOnWaitlist)
	b := f.addPlayer(t, "B", domain.StatusOnWaitlist)
	f.addPlayer(t, "C", domain.StatusOnWaitlist)
	f.addPlayer(t, "D", domain.StatusOnWaitlist)

	if _, err := f.waitlist.MoveToBottom(ctx, b.ID); err != nil {
		t.Fatalf("move to bottom: %v", err)
	}
	want := map[string]int{"A": 1, "C": 2, "D": 3, "B": 4}
	if diff := cmp.Diff(want, f.positions(t)); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitlistMoveLastIsStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPlayer(t, "A", domain.StatusOnWaitlist)
	last := f.addPlayer(t, "B", domain.StatusOnWaitlist)

	if _, err := f.waitlist.MoveToBottom(ctx, last.ID); err != nil {
		t.Fatalf("move to bottom: %v", err)
	}
	want := map[string]int{"A": 1, "B": 2}
	if diff := cmp.Diff(want, f.positions(t)); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitlistRemoveLastNeedsNoCompaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addPlayer(t, "A", domain.StatusOnWaitlist)
	f.addPlayer(t, "B", domain.StatusOnWaitlist)
	last := f.addPlayer(t, "C", domain.StatusOnWaitlist)

	if _, err := f.waitlist.Remove(ctx, last.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	want := map[string]int{"A": 1, "B": 2}
	if diff := cmp.Diff(want, f.positions(t)); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitlistRejectsPlayersNotOnIt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.addPlayer(t, "Solo", domain.StatusNotInSession)
	before := f.snapshot(t)

	if _, err := f.waitlist.Remove(ctx, p.ID); !errors.Is(err, domain.ErrNotOnWaitlist) {
		t.Fatalf("expected ErrNotOnWaitlist from remove, got %v", err)
	}
	if _, err := f.waitlist.MoveToBottom(ctx, p.ID); !errors.Is(err, domain.ErrNotOnWaitlist) {
		t.Fatalf("expected ErrNotOnWaitlist from move, got %v", err)
	}
	if _, err := f.waitlist.Remove(ctx, "missing"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	assertUnchanged(t, before, f.snapshot(t))
}

func TestWaitlistListIsOrdered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	names := []string{"Zed", "Amy", "Moe"}
	for _, n := range names {
		f.addPlayer(t, n, domain.StatusOnWaitlist)
	}
	f.addPlayer(t, "Idle", domain.StatusNotInSession)

	list, err := f.waitlist.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, p := range list {
		got = append(got, p.Name)
	}
	if diff := cmp.Diff(names, got); diff != "" {
		t.Fatalf("waitlist order mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitlistStaysDenseUnderMixedOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openSession(t)

	var ids []string
	for i := 0; i < 8; i++ {
		ids = append(ids, f.addPlayer(t, fmt.Sprintf("Player %d", i), domain.StatusNotInSession).ID)
	}

	rng := rand.New(rand.NewSource(7))
	statuses := []domain.PlayerStatus{domain.StatusNotInSession, domain.StatusOnWaitlist, domain.StatusPlaying}
	for step := 0; step < 120; step++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(4) {
		case 0:
			_, _ = f.waitlist.MoveToBottom(ctx, id)
		case 1:
			_, _ = f.waitlist.Remove(ctx, id)
		default:
			if _, err := f.roster.ChangeStatus(ctx, id, statuses[rng.Intn(len(statuses))]); err != nil {
				t.Fatalf("step %d: change status: %v", step, err)
			}
		}
		f.assertInvariants(t)
	}
}

func TestWaitlistStaysDenseUnderConcurrentWriters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.openSession(t)

	const writers = 20
	ids := make([]string, writers)
	for i := range ids {
		ids[i] = f.addPlayer(t, fmt.Sprintf("Racer %02d", i), domain.StatusNotInSession).ID
	}

	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if _, err := f.roster.ChangeStatus(ctx, id, domain.StatusOnWaitlist); err != nil {
				return fmt.Errorf("join waitlist %d: %w", i, err)
			}
			switch i % 3 {
			case 0:
				if _, err := f.roster.ChangeStatus(ctx, id, domain.StatusPlaying); err != nil {
					return fmt.Errorf("start playing %d: %w", i, err)
				}
			case 1:
				if _, err := f.waitlist.MoveToBottom(ctx, id); err != nil {
					return fmt.Errorf("move to bottom %d: %w", i, err)
				}
			}
			return nil
		})
	}
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			if _, err := f.scoring.SeasonAggregate(ctx, 1); err != nil {
				return fmt.Errorf("season aggregate: %w", err)
			}
			list, err := f.waitlist.List(ctx)
			if err != nil {
				return fmt.Errorf("list waitlist: %w", err)
			}
			for pos, p := range list {
				if got, _ := p.Position(); got != pos+1 {
					return fmt.Errorf("snapshot not dense: %s at %d, want %d", p.Name, got, pos+1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	f.assertInvariants(t)
	if got := len(f.positions(t)); got != 13 {
		t.Fatalf("expected 13 waitlisted players, got %d", got)
	}
}
