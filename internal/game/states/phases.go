package states

import "fmt"

// RunPhase represents the current phase of a simulation run
type RunPhase int

const (
	// PhaseInitializing - Grid seeding
	PhaseInitializing RunPhase = iota

	// PhaseRunning - Render/advance loop
	PhaseRunning

	// PhaseStopped - Three identical generations observed
	PhaseStopped

	// PhaseError - Fatal failure or interrupt
	PhaseError
)

// String returns the string representation of a RunPhase
func (p RunPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseStopped:
		return "Stopped"
	case PhaseError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p RunPhase) IsTerminal() bool {
	return p == PhaseStopped || p == PhaseError
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p RunPhase) AllowedTransitions() []RunPhase {
	switch p {
	case PhaseInitializing:
		return []RunPhase{PhaseRunning, PhaseError}
	case PhaseRunning:
		return []RunPhase{PhaseStopped, PhaseError}
	default:
		return []RunPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p RunPhase) CanTransitionTo(target RunPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a RunPhase
func ParsePhase(s string) (RunPhase, error) {
	switch s {
	case "Initializing":
		return PhaseInitializing, nil
	case "Running":
		return PhaseRunning, nil
	case "Stopped":
		return PhaseStopped, nil
	case "Error":
		return PhaseError, nil
	default:
		return PhaseInitializing, fmt.Errorf("unknown run phase %q", s)
	}
}
