package domain

import "fmt"

type Team int

const (
	TeamRed Team = iota + 1
	TeamBlack
)

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlack:
		return "black"
	default:
		return fmt.Sprintf("Team(%d)", int(t))
	}
}

func (t Team) Valid() bool { return t == TeamRed || t == TeamBlack }

// TeamAssignment is either a concrete Team or unassigned. The zero value is
// unassigned.
type TeamAssignment struct {
	team Team
}

var Unassigned = TeamAssignment{}

func Assigned(t Team) TeamAssignment { return TeamAssignment{team: t} }

func (a TeamAssignment) Team() (Team, bool) {
	if !a.team.Valid() {
		return 0, false
	}
	return a.team, true
}

func (a TeamAssignment) IsAssigned() bool { return a.team.Valid() }

func (a TeamAssignment) Is(t Team) bool { return a.team == t && t.Valid() }

func (a TeamAssignment) String() string {
	if t, ok := a.Team(); ok {
		return t.String()
	}
	return "unassigned"
}

func ParseTeamAssignment(raw string) (TeamAssignment, error) {
	switch raw {
	case "", "unassigned":
		return Unassigned, nil
	case "red":
		return Assigned(TeamRed), nil
	case "black":
		return Assigned(TeamBlack), nil
	default:
		return Unassigned, fmt.Errorf("%w: %q", ErrInvalidTeam, raw)
	}
}
