package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/lifeterm/internal/config"
	"github.com/mitchelldurbincs/lifeterm/internal/game"
	"github.com/mitchelldurbincs/lifeterm/internal/game/events"
	"github.com/mitchelldurbincs/lifeterm/internal/game/events/subscribers"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "life",
	Short: "Run Conway's Game of Life in the terminal",
	Long: `Seeds a 10x10 grid from the clock and animates it at 30 frames per
second until three consecutive generations are identical.

Grid size and frame rate can be changed with a config file or the
LIFE_SIMULATION_HEIGHT, LIFE_SIMULATION_WIDTH and LIFE_SIMULATION_FPS
environment variables. Diagnostics are written to stderr.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLife,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format (console, json) (empty to use config default)")
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())

	code := exitCode(err)
	switch code {
	case exitOK:
		return
	case exitInterrupted:
		log.Warn().Msg("Interrupted")
	default:
		log.Error().Err(err).Msg("Simulation failed")
	}
	os.Exit(code)
}

func runLife(cmd *cobra.Command, _ []string) error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	if logFormat == "" {
		logFormat = cfg.Logging.Format
	}
	if err := setupLogging(logLevel, logFormat); err != nil {
		return err
	}

	log.Debug().
		Str("config_file", config.ConfigFilePath()).
		Int("height", cfg.Simulation.Height).
		Int("width", cfg.Simulation.Width).
		Int("fps", cfg.Simulation.FPS).
		Msg("Configuration loaded")

	if !game.IsTerminal(os.Stdout.Fd()) {
		log.Info().Msg("stdout is not a terminal, clear sequences will be written verbatim")
	}

	bus := events.NewEventBus()
	eventLevel, err := zerolog.ParseLevel(cfg.Logging.EventLevel)
	if err != nil {
		return fmt.Errorf("logging.event_level: %w", err)
	}
	eventLogger := subscribers.NewLoggerSubscriber("event-logger", log.Logger, eventLevel)
	eventLogger.SetDevMode(cfg.Logging.DevMode)
	bus.Subscribe(eventLogger)

	engineCfg := game.EngineConfigFrom(cfg.Simulation)
	engineCfg.Output = cmd.OutOrStdout()
	engineCfg.Logger = log.Logger
	engineCfg.EventBus = bus

	engine, err := game.NewEngine(engineCfg)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("run %s ended after %d frames: %w", result.RunID, result.Frames, err)
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("frames", result.Frames).
		Int("final_population", result.Stats.FinalPopulation).
		Msg("Simulation finished")
	return nil
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitFailure
	}
}
