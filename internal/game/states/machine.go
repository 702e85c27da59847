package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/lifeterm/internal/game/events"
)

// State represents a run state with lifecycle callbacks
type State interface {
	// Phase returns the RunPhase this state represents
	Phase() RunPhase

	// Enter is called when transitioning into this state
	Enter(ctx *RunContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *RunContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *RunContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      RunPhase
	To        RunPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages run state transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   RunPhase
	states         map[RunPhase]State
	context        *RunContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine in PhaseInitializing. The
// publisher may be nil.
func NewStateMachine(ctx *RunContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[RunPhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 4),
		maxHistorySize: 100,
		publisher:      publisher,
	}

	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewStoppedState())
	sm.RegisterState(NewErrorState())

	return sm
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current run phase
func (sm *StateMachine) CurrentPhase() RunPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo moves the run to targetPhase. The transition event is
// published after the lock is released, so subscribers may query the machine.
func (sm *StateMachine) TransitionTo(targetPhase RunPhase, reason string) error {
	event, err := sm.transition(targetPhase, reason)
	if err != nil {
		return err
	}

	if sm.publisher != nil {
		sm.publisher.Publish(event)
	}

	sm.context.Logger.Debug().
		Str("from_phase", event.FromPhase).
		Str("to_phase", event.ToPhase).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// transition runs the Validate/Exit/Enter sequence under the lock and
// records history. A failed Enter leaves the machine in its previous phase.
func (sm *StateMachine) transition(targetPhase RunPhase, reason string) (*events.StateTransitionEvent, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	from := sm.currentPhase
	if !from.CanTransitionTo(targetPhase) {
		return nil, fmt.Errorf("invalid transition from %s to %s", from, targetPhase)
	}

	target, ok := sm.states[targetPhase]
	if !ok {
		return nil, fmt.Errorf("no state implementation for phase %s", targetPhase)
	}
	if err := target.Validate(sm.context); err != nil {
		return nil, fmt.Errorf("target state validation failed: %w", err)
	}

	if current, ok := sm.states[from]; ok {
		if err := current.Exit(sm.context); err != nil {
			// Exit failures are logged; the run still moves on
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	sm.currentPhase = targetPhase
	if err := target.Enter(sm.context); err != nil {
		sm.currentPhase = from
		return nil, fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      from,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	return events.NewStateTransitionEvent(sm.context.RunID, from.String(), targetPhase.String(), reason), nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the run context
func (sm *StateMachine) GetContext() *RunContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase RunPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
