package game

import (
	"github.com/mitchelldurbincs/lifeterm/internal/config"
)

// Fixed simulation settings used when nothing overrides them.
const (
	DefaultHeight = 10
	DefaultWidth  = 10
	DefaultFPS    = 30
)

// DefaultEngineConfig returns the settings of a plain, unconfigured run.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Height: DefaultHeight,
		Width:  DefaultWidth,
		FPS:    DefaultFPS,
	}
}

// EngineConfigFrom copies grid and pacing settings out of the loaded
// configuration. Output, logging and event wiring are left to the caller.
func EngineConfigFrom(sim config.SimulationConfig) EngineConfig {
	return EngineConfig{
		Height: sim.Height,
		Width:  sim.Width,
		FPS:    sim.FPS,
	}
}
