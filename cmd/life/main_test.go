package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/lifeterm/internal/game"
)

// executeRoot runs the root command with no arguments, capturing stdout.
func executeRoot(t *testing.T) (string, error) {
	t.Helper()

	prevLevel, prevLogger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		configPath, logLevel, logFormat = "", "", ""
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupted", context.Canceled, exitInterrupted},
		{"wrapped interrupt", fmt.Errorf("run x: %w", context.Canceled), exitInterrupted},
		{"failure", errors.New("write failed"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "json")
	require.NoError(t, err)

	logger.Info().Str("run_id", "abc").Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "console")
	require.NoError(t, err)

	logger.Warn().Msg("careful")
	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "WRN")
}

func TestNewLoggerUnknownFormat(t *testing.T) {
	_, err := newLogger(&bytes.Buffer{}, "xml")
	assert.Error(t, err)
}

func TestSetupLoggingRejectsBadLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	assert.Error(t, setupLogging("loud", "console"))
}

func TestRootCommandRejectsArguments(t *testing.T) {
	assert.Error(t, rootCmd.Args(rootCmd, []string{"extra"}))
	assert.NoError(t, rootCmd.Args(rootCmd, nil))
}

func TestRootCommandRunsToStability(t *testing.T) {
	// A 2x2 grid is all border, so every seed starts dead and stops at frame 2
	t.Setenv("LIFE_SIMULATION_HEIGHT", "2")
	t.Setenv("LIFE_SIMULATION_WIDTH", "2")
	t.Setenv("LIFE_LOGGING_LEVEL", "error")

	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.Equal(t, exitOK, exitCode(err))

	frame := game.ClearScreen + "..\n..\n\n"
	want := "Starting Game of Life...\n" +
		frame + "Frame: 1\n" +
		frame + "Frame: 2\n" +
		"System is stable. Stopping.\n"
	assert.Equal(t, want, out)
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	t.Setenv("LIFE_SIMULATION_HEIGHT", "1")

	out, err := executeRoot(t)
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.True(t, strings.Contains(err.Error(), "config"))
	assert.Empty(t, out)
}
