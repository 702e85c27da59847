package states

import (
	"fmt"
	"time"
)

// InitializingState represents grid seeding
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() RunPhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *RunContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *RunContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *RunContext) error {
	return nil
}

// RunningState represents the render/advance loop
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() RunPhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *RunContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Int("height", ctx.Height).
		Int("width", ctx.Width).
		Msg("Simulation started")
	return nil
}

func (s *RunningState) Exit(ctx *RunContext) error {
	ctx.Logger.Info().
		Int("frames", ctx.Frame).
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *RunContext) error {
	if ctx.Height < 2 || ctx.Width < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", ctx.Height, ctx.Width)
	}
	return nil
}

// StoppedState represents a run that reached a steady state
type StoppedState struct{}

func NewStoppedState() State {
	return &StoppedState{}
}

func (s *StoppedState) Phase() RunPhase {
	return PhaseStopped
}

func (s *StoppedState) Enter(ctx *RunContext) error {
	ctx.Logger.Info().
		Int("frames", ctx.Frame).
		Dur("run_duration", ctx.GetElapsedTime()).
		Msg("Simulation stable")
	return nil
}

func (s *StoppedState) Exit(ctx *RunContext) error {
	return nil
}

func (s *StoppedState) Validate(ctx *RunContext) error {
	if !ctx.Stabilized {
		return fmt.Errorf("cannot stop a run that has not stabilized")
	}
	return nil
}

// ErrorState represents a fatal failure
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() RunPhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *RunContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Int("frames", ctx.Frame).
		Msg("Run entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *RunContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *RunContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}
