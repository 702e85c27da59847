package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/lifeterm/internal/game/core"
	"github.com/mitchelldurbincs/lifeterm/internal/game/events"
	"github.com/mitchelldurbincs/lifeterm/internal/game/states"
)

var (
	ErrInvalidFrameRate = errors.New("frame rate must be positive")
	ErrAlreadyRun       = errors.New("engine has already run")
)

// SeedFunc supplies the initial LCG seed.
type SeedFunc func() (uint64, error)

// SleepFunc pauses between frames. It returns early with the context's error
// when ctx is cancelled.
type SleepFunc func(ctx context.Context, d time.Duration) error

// EngineConfig configures a single simulation run.
type EngineConfig struct {
	Height int
	Width  int
	FPS    int

	RunID    string           // generated when empty
	Output   io.Writer        // defaults to os.Stdout
	Logger   zerolog.Logger
	EventBus *events.EventBus // a private bus is created when nil

	Seed    SeedFunc   // defaults to core.SeedFromTime
	Initial *core.Grid // when set, used instead of seeding; overrides Height/Width
	Sleep   SleepFunc  // defaults to SleepContext
}

// FrameInterval is the fixed pause between ticks: 1000/FPS milliseconds.
func (c EngineConfig) FrameInterval() time.Duration {
	return time.Duration(1000/c.FPS) * time.Millisecond
}

// RunResult summarises a finished run.
type RunResult struct {
	RunID  string
	Frames int
	Phase  states.RunPhase
	Final  *core.Grid
	Stats  RunStats
}

// Engine drives one run: seed, then render/advance until three identical
// generations appear.
type Engine struct {
	cfg      EngineConfig
	renderer *Renderer
	bus      *events.EventBus
	machine  *states.StateMachine
	runCtx   *states.RunContext
	logger   zerolog.Logger

	previous *core.Grid
	current  *core.Grid
	frame    int
	stats    RunStats
}

// NewEngine validates cfg and prepares a run in PhaseInitializing.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Initial != nil {
		cfg.Height, cfg.Width = cfg.Initial.H, cfg.Initial.W
	}
	if cfg.Height < 2 || cfg.Width < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", core.ErrInvalidDimensions, cfg.Height, cfg.Width)
	}
	if cfg.FPS <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFrameRate, cfg.FPS)
	}

	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus()
	}
	if cfg.Seed == nil {
		cfg.Seed = core.SeedFromTime
	}
	if cfg.Sleep == nil {
		cfg.Sleep = SleepContext
	}

	logger := cfg.Logger.With().Str("component", "engine").Logger()
	runCtx := states.NewRunContext(cfg.RunID, cfg.Height, cfg.Width, logger)

	return &Engine{
		cfg:      cfg,
		renderer: NewRenderer(cfg.Output),
		bus:      cfg.EventBus,
		machine:  states.NewStateMachine(runCtx, cfg.EventBus),
		runCtx:   runCtx,
		logger:   runCtx.Logger,
	}, nil
}

// RunID returns the identifier attached to this run's logs and events.
func (e *Engine) RunID() string { return e.cfg.RunID }

// Phase returns the current run phase.
func (e *Engine) Phase() states.RunPhase { return e.machine.CurrentPhase() }

// History returns the phase transitions taken so far.
func (e *Engine) History() []states.Transition { return e.machine.GetHistory() }

// Run executes the simulation until it stabilizes, ctx is cancelled, or
// writing to the output fails. Oscillating patterns run until cancelled.
func (e *Engine) Run(ctx context.Context) (RunResult, error) {
	if e.machine.CurrentPhase() != states.PhaseInitializing {
		return e.result(), ErrAlreadyRun
	}

	if err := e.renderer.Banner(); err != nil {
		return e.fail(fmt.Errorf("writing banner: %w", err), "output failed")
	}
	if err := e.initialize(); err != nil {
		return e.fail(err, "initialization failed")
	}
	if err := e.machine.TransitionTo(states.PhaseRunning, "grid seeded"); err != nil {
		return e.fail(err, "could not start run")
	}

	interval := e.cfg.FrameInterval()
	for {
		if err := ctx.Err(); err != nil {
			return e.fail(err, "interrupted")
		}

		stable, err := e.tick()
		if err != nil {
			return e.fail(err, "output failed")
		}
		if stable {
			return e.stop()
		}

		if err := e.cfg.Sleep(ctx, interval); err != nil {
			return e.fail(err, "interrupted")
		}
	}
}

// initialize seeds the first generation. previous stays nil and the frame
// counter at zero.
func (e *Engine) initialize() error {
	seeded := e.cfg.Initial == nil
	var seed uint64

	if seeded {
		var err error
		seed, err = e.cfg.Seed()
		if err != nil {
			return fmt.Errorf("reading seed: %w", err)
		}
		grid, err := core.Initialize(e.cfg.Height, e.cfg.Width, seed)
		if err != nil {
			return fmt.Errorf("seeding grid: %w", err)
		}
		e.current = grid
	} else {
		e.current = e.cfg.Initial.Clone()
	}

	e.previous = nil
	e.frame = 0
	e.resetStats()

	e.logger.Debug().
		Uint64("seed", seed).
		Bool("seeded", seeded).
		Int("population", e.current.Population()).
		Msg("Initial generation ready")

	e.bus.Publish(events.NewRunStartedEvent(
		e.cfg.RunID, e.cfg.Height, e.cfg.Width, seed, seeded, e.current.Population(),
	))
	return nil
}

// tick renders the current generation and computes the next one. It reports
// whether the run has reached a steady state; otherwise the grid has been
// replaced by its successor.
func (e *Engine) tick() (bool, error) {
	if err := e.renderer.Render(e.current); err != nil {
		return false, fmt.Errorf("rendering frame %d: %w", e.frame+1, err)
	}

	e.frame++
	e.runCtx.Frame = e.frame
	if err := e.renderer.Frame(e.frame); err != nil {
		return false, fmt.Errorf("writing frame counter: %w", err)
	}

	start := time.Now()
	next := core.NextGeneration(e.current)
	stable := core.IsStable(e.previous, e.current, next)
	e.updateStats(next)

	e.bus.Publish(events.NewGenerationAdvancedEvent(
		e.cfg.RunID, e.frame, e.current.Population(), next.Population(), time.Since(start),
	))

	if stable {
		return true, nil
	}

	e.previous = e.current
	e.current = next
	return false, nil
}

func (e *Engine) stop() (RunResult, error) {
	e.runCtx.Stabilized = true
	if err := e.machine.TransitionTo(states.PhaseStopped, "three identical generations"); err != nil {
		return e.fail(err, "could not stop run")
	}

	e.bus.Publish(events.NewRunStabilizedEvent(
		e.cfg.RunID, e.frame, e.current.Population(), e.runCtx.GetElapsedTime(),
	))
	e.logger.Info().
		Int("frames", e.frame).
		Int("initial_population", e.stats.InitialPopulation).
		Int("peak_population", e.stats.PeakPopulation).
		Int("births", e.stats.Births).
		Int("deaths", e.stats.Deaths).
		Msg("Run summary")

	if err := e.renderer.Stopped(); err != nil {
		return e.result(), fmt.Errorf("writing stop banner: %w", err)
	}
	return e.result(), nil
}

// fail moves the run to PhaseError and returns err unchanged.
func (e *Engine) fail(err error, reason string) (RunResult, error) {
	e.runCtx.Error = err
	if e.machine.CanTransitionTo(states.PhaseError) {
		if terr := e.machine.TransitionTo(states.PhaseError, reason); terr != nil {
			e.logger.Error().Err(terr).Msg("Failed to enter error state")
		}
	}
	return e.result(), err
}

func (e *Engine) result() RunResult {
	return RunResult{
		RunID:  e.cfg.RunID,
		Frames: e.frame,
		Phase:  e.machine.CurrentPhase(),
		Final:  e.current,
		Stats:  e.stats,
	}
}

// SleepContext blocks for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
