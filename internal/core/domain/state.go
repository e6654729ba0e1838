package domain

import "go.trai.ch/zerr"

// SyncState is the phase a page synchronization is in.
type SyncState int

const (
	StateIdle SyncState = iota
	StateParsingTemplates
	StateDerivingTasks
	StateFetching
	StateResolving
	StateRedirecting
	StateReporting
	StateDone
)

var syncStateNames = [...]string{
	StateIdle:             "idle",
	StateParsingTemplates: "parsing-templates",
	StateDerivingTasks:    "deriving-tasks",
	StateFetching:         "fetching",
	StateResolving:        "resolving",
	StateRedirecting:      "redirecting",
	StateReporting:        "reporting",
	StateDone:             "done",
}

func (s SyncState) String() string {
	if int(s) < 0 || int(s) >= len(syncStateNames) {
		return "invalid"
	}
	return syncStateNames[s]
}

// SyncMachine tracks the state of one synchronization pass and rejects
// transitions that skip or reorder phases.
type SyncMachine struct {
	state SyncState
}

// State returns the current state.
func (m *SyncMachine) State() SyncState {
	return m.state
}

// Transition moves the machine to next.
func (m *SyncMachine) Transition(next SyncState) error {
	if !allowedTransition(m.state, next) {
		return zerr.With(zerr.With(ErrInvalidTransition, "from", m.state.String()), "to", next.String())
	}
	m.state = next
	return nil
}

func allowedTransition(from, to SyncState) bool {
	switch from {
	case StateIdle:
		// Task-list syncs enter directly at fetching.
		return to == StateParsingTemplates || to == StateFetching
	case StateParsingTemplates:
		return to == StateDerivingTasks
	case StateDerivingTasks:
		return to == StateFetching || to == StateReporting
	case StateFetching:
		return to == StateResolving || to == StateReporting
	case StateResolving:
		return to == StateRedirecting || to == StateResolving || to == StateFetching || to == StateReporting
	case StateRedirecting:
		return to == StateResolving || to == StateFetching || to == StateReporting
	case StateReporting:
		return to == StateDone
	default:
		return false
	}
}
