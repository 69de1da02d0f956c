// Package wizard drives a user from the landing page to the course dashboard.
//
// The wizard is an explicit state machine: Landing -> LoggingIn ->
// SelectingProgram -> Dashboard, with Logout returning to Landing from any
// logged-in state.
package wizard

import (
	"errors"
	"fmt"

	"github.com/andrewpaige1/coursemap-api/session"
)

var (
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	ErrNotOnDashboard    = errors.New("wizard: courses can only be submitted from the dashboard")
)

type State int

const (
	Landing State = iota
	LoggingIn
	SelectingProgram
	Dashboard
)

func (s State) String() string {
	switch s {
	case Landing:
		return "landing"
	case LoggingIn:
		return "login"
	case SelectingProgram:
		return "program"
	case Dashboard:
		return "dashboard"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{Landing, LoggingIn, SelectingProgram, Dashboard} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("wizard: unknown state %q", text)
}

type Event int

const (
	EventBegin Event = iota
	EventLogin
	EventSelectProgram
	EventLogout
)

func (e Event) String() string {
	switch e {
	case EventBegin:
		return "begin"
	case EventLogin:
		return "login"
	case EventSelectProgram:
		return "selectProgram"
	case EventLogout:
		return "logout"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

var transitions = map[State]map[Event]State{
	Landing: {
		EventBegin: LoggingIn,
	},
	LoggingIn: {
		EventLogin: SelectingProgram,
	},
	SelectingProgram: {
		EventSelectProgram: Dashboard,
		EventLogout:        Landing,
	},
	Dashboard: {
		EventLogout: Landing,
	},
}

// Transition returns the state reached from s on e.
func Transition(s State, e Event) (State, error) {
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, s)
}

// Derive maps a session and the legacy step counter onto a wizard state.
// Every combination maps to exactly one state.
func Derive(s session.State, step int) State {
	switch {
	case !s.IsLoggedIn && step <= 0:
		return Landing
	case !s.IsLoggedIn:
		return LoggingIn
	case s.University == "":
		return SelectingProgram
	default:
		return Dashboard
	}
}
