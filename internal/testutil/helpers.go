package testutil

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/lifeterm/internal/game/core"
)

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// BufferLogger returns a JSON logger writing into the returned buffer
func BufferLogger(level zerolog.Level) (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf).Level(level), &buf
}

// MustParseGrid builds a grid from '#'/'.' rows, failing the test on error
func MustParseGrid(t testing.TB, rows ...string) *core.Grid {
	t.Helper()
	g, err := core.ParseGrid(rows...)
	require.NoError(t, err)
	return g
}

// SleepRecorder is a game.SleepFunc-compatible fake that records requested
// durations and stops the run with StopErr once Limit calls have been made.
// A zero Limit never stops.
type SleepRecorder struct {
	Calls   []time.Duration
	Limit   int
	StopErr error
}

// Sleep records d without blocking.
func (s *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Calls = append(s.Calls, d)
	if s.Limit > 0 && len(s.Calls) >= s.Limit {
		return s.StopErr
	}
	return nil
}
