package domain

import (
	"errors"
	"testing"
)

func TestTeamAssignment(t *testing.T) {
	if Unassigned.IsAssigned() {
		t.Fatal("expected zero value to be unassigned")
	}
	if _, ok := Unassigned.Team(); ok {
		t.Fatal("expected no team for unassigned")
	}

	black := Assigned(TeamBlack)
	if !black.IsAssigned() || !black.Is(TeamBlack) || black.Is(TeamRed) {
		t.Fatalf("unexpected assignment state for %v", black)
	}
	if Assigned(Team(7)).IsAssigned() {
		t.Fatal("expected invalid team to read as unassigned")
	}
}

func TestParseTeamAssignment(t *testing.T) {
	tests := []struct {
		raw  string
		want TeamAssignment
		err  error
	}{
		{raw: "", want: Unassigned},
		{raw: "unassigned", want: Unassigned},
		{raw: "red", want: Assigned(TeamRed)},
		{raw: "black", want: Assigned(TeamBlack)},
		{raw: "Blue", err: ErrInvalidTeam},
	}

	for _, tt := range tests {
		got, err := ParseTeamAssignment(tt.raw)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Fatalf("%q: expected %v, got %v", tt.raw, tt.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
}
