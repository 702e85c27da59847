package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogging configures the global logger. Output goes to stderr so the
// frames on stdout are never interleaved with diagnostics.
func setupLogging(level, format string) error {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(logLevel)

	// APP_ENV=production forces JSON regardless of the configured format
	if os.Getenv("APP_ENV") == "production" {
		format = "json"
	}

	logger, err := newLogger(os.Stderr, format)
	if err != nil {
		return err
	}
	log.Logger = logger
	return nil
}

func newLogger(w io.Writer, format string) (zerolog.Logger, error) {
	switch format {
	case "json":
		return zerolog.New(w).With().Timestamp().Logger(), nil
	case "console", "":
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}).With().Timestamp().Logger(), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}
}
