package events

import (
	"time"
)

// Event type constants
const (
	TypeRunStarted         = "run.started"
	TypeGenerationAdvanced = "generation.advanced"
	TypeRunStabilized      = "run.stabilized"
	TypeStateTransition    = "state.transition"
)

// RunStartedEvent is published once the initial generation has been seeded
type RunStartedEvent struct {
	BaseEvent
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	Seed       uint64 `json:"seed"`
	Seeded     bool   `json:"seeded"` // false when the initial grid was supplied directly
	Population int    `json:"population"`
}

// NewRunStartedEvent creates a new RunStartedEvent
func NewRunStartedEvent(runID string, height, width int, seed uint64, seeded bool, population int) *RunStartedEvent {
	return &RunStartedEvent{
		BaseEvent:  newBaseEvent(TypeRunStarted, runID),
		Height:     height,
		Width:      width,
		Seed:       seed,
		Seeded:     seeded,
		Population: population,
	}
}

// GenerationAdvancedEvent is published after each rendered frame
type GenerationAdvancedEvent struct {
	BaseEvent
	Frame          int           `json:"frame"`
	Population     int           `json:"population"`
	NextPopulation int           `json:"next_population"`
	ComputeTime    time.Duration `json:"compute_time"`
}

// NewGenerationAdvancedEvent creates a new GenerationAdvancedEvent
func NewGenerationAdvancedEvent(runID string, frame, population, nextPopulation int, computeTime time.Duration) *GenerationAdvancedEvent {
	return &GenerationAdvancedEvent{
		BaseEvent:      newBaseEvent(TypeGenerationAdvanced, runID),
		Frame:          frame,
		Population:     population,
		NextPopulation: nextPopulation,
		ComputeTime:    computeTime,
	}
}

// RunStabilizedEvent is published when three consecutive generations match
type RunStabilizedEvent struct {
	BaseEvent
	Frames     int           `json:"frames"`
	Population int           `json:"population"`
	Duration   time.Duration `json:"duration"`
}

// NewRunStabilizedEvent creates a new RunStabilizedEvent
func NewRunStabilizedEvent(runID string, frames, population int, duration time.Duration) *RunStabilizedEvent {
	return &RunStabilizedEvent{
		BaseEvent:  newBaseEvent(TypeRunStabilized, runID),
		Frames:     frames,
		Population: population,
		Duration:   duration,
	}
}

// StateTransitionEvent is published by the run state machine
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(runID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBaseEvent(TypeStateTransition, runID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
