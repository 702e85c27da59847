package states

import (
	"time"

	"github.com/rs/zerolog"
)

// RunContext provides run-specific information to states for making decisions
type RunContext struct {
	// RunID uniquely identifies this run
	RunID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Height and Width are the grid dimensions for the run
	Height int
	Width  int

	// Frame is the number of generations rendered so far
	Frame int

	// StartTime is when PhaseRunning was entered
	StartTime time.Time

	// Stabilized is set once three identical generations have been seen
	Stabilized bool

	// Error holds the failure that caused a transition to PhaseError
	Error error
}

// NewRunContext creates a new run context
func NewRunContext(runID string, height, width int, logger zerolog.Logger) *RunContext {
	return &RunContext{
		RunID:  runID,
		Height: height,
		Width:  width,
		Logger: logger.With().Str("run_id", runID).Logger(),
	}
}

// GetElapsedTime returns the time elapsed since the run started
func (rc *RunContext) GetElapsedTime() time.Duration {
	if rc.StartTime.IsZero() {
		return 0
	}
	return time.Since(rc.StartTime)
}
