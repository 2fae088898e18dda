package domain

import "fmt"

type PlayerStatus int

const (
	StatusNotInSession PlayerStatus = iota
	StatusOnWaitlist
	StatusPlaying
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusNotInSession:
		return "not_in_session"
	case StatusOnWaitlist:
		return "on_waitlist"
	case StatusPlaying:
		return "playing"
	default:
		return fmt.Sprintf("PlayerStatus(%d)", int(s))
	}
}

func (s PlayerStatus) Valid() bool {
	return s >= StatusNotInSession && s <= StatusPlaying
}

func ParsePlayerStatus(raw string) (PlayerStatus, error) {
	switch raw {
	case "not_in_session":
		return StatusNotInSession, nil
	case "on_waitlist":
		return StatusOnWaitlist, nil
	case "playing":
		return StatusPlaying, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Step is one side effect of a status transition, applied in order.
type Step int

const (
	StepWaitlistAppend Step = iota
	StepWaitlistRemove
	StepJoinCurrentSession
	StepRequireTeamUnassigned
	StepLeaveCurrentSession
)

func (s Step) String() string {
	switch s {
	case StepWaitlistAppend:
		return "waitlist_append"
	case StepWaitlistRemove:
		return "waitlist_remove"
	case StepJoinCurrentSession:
		return "join_current_session"
	case StepRequireTeamUnassigned:
		return "require_team_unassigned"
	case StepLeaveCurrentSession:
		return "leave_current_session"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Transition is the ordered side-effect plan for moving a player from one
// status to another. An empty plan is a no-op.
type Transition struct {
	From  PlayerStatus
	To    PlayerStatus
	Steps []Step
}

func (t Transition) NoOp() bool { return t.From == t.To }

func (t Transition) NeedsSession() bool {
	for _, s := range t.Steps {
		if s == StepJoinCurrentSession {
			return true
		}
	}
	return false
}

// PlanTransition returns the side effects for from -> to. Every pair of
// valid statuses has exactly one plan.
func PlanTransition(from, to PlayerStatus) (Transition, error) {
	if !from.Valid() {
		return Transition{}, fmt.Errorf("%w: from %v", ErrInvalidStatus, from)
	}
	if !to.Valid() {
		return Transition{}, fmt.Errorf("%w: to %v", ErrInvalidStatus, to)
	}

	t := Transition{From: from, To: to}
	if from == to {
		return t, nil
	}

	switch from {
	case StatusNotInSession:
		switch to {
		case StatusOnWaitlist:
			t.Steps = []Step{StepWaitlistAppend}
		case StatusPlaying:
			t.Steps = []Step{StepJoinCurrentSession}
		}
	case StatusOnWaitlist:
		switch to {
		case StatusNotInSession:
			t.Steps = []Step{StepWaitlistRemove}
		case StatusPlaying:
			t.Steps = []Step{StepWaitlistRemove, StepJoinCurrentSession}
		}
	case StatusPlaying:
		switch to {
		case StatusNotInSession:
			t.Steps = []Step{StepRequireTeamUnassigned, StepLeaveCurrentSession}
		case StatusOnWaitlist:
			t.Steps = []Step{StepRequireTeamUnassigned, StepLeaveCurrentSession, StepWaitlistAppend}
		}
	}
	return t, nil
}
