package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig holds grid and pacing settings
type SimulationConfig struct {
	Height int `mapstructure:"height"`
	Width  int `mapstructure:"width"`
	FPS    int `mapstructure:"fps"`
}

// LoggingConfig holds diagnostic output settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	EventLevel string `mapstructure:"event_level"`
	DevMode    bool   `mapstructure:"dev_mode"`
}

const envPrefix = "LIFE"

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("simulation.height", 10)
	v.SetDefault("simulation.width", 10)
	v.SetDefault("simulation.fps", 30)

	// Frames own stdout; keep stderr quiet unless asked
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.event_level", "debug")
	v.SetDefault("logging.dev_mode", false)
}

// Init initializes the configuration. A config file is only read when
// configPath is non-empty; environment variables prefixed with LIFE_ are
// always applied.
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(loaded); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	cfg = loaded
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	var errs []error

	if c.Simulation.Height < 2 || c.Simulation.Width < 2 {
		errs = append(errs, fmt.Errorf("simulation height and width must be at least 2, got %dx%d",
			c.Simulation.Height, c.Simulation.Width))
	}
	if c.Simulation.FPS <= 0 {
		errs = append(errs, fmt.Errorf("simulation.fps must be positive, got %d", c.Simulation.FPS))
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if _, err := zerolog.ParseLevel(c.Logging.EventLevel); err != nil {
		errs = append(errs, fmt.Errorf("logging.event_level: %w", err))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
