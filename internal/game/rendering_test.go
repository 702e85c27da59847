package game

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/lifeterm/internal/testutil"
)

// failingWriter accepts ok writes and then fails every write after that.
type failingWriter struct {
	ok     int
	writes int
}

var errWriteFailed = errors.New("write failed")

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.ok {
		return 0, errWriteFailed
	}
	return len(p), nil
}

func TestRendererRender(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	g := testutil.MustParseGrid(t,
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	)
	require.NoError(t, r.Render(g))

	want := "\033[2J\033[1;1H" +
		".....\n" +
		"..#..\n" +
		"..#..\n" +
		"..#..\n" +
		".....\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestRendererFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Frame(1))
	require.NoError(t, r.Frame(42))
	assert.Equal(t, "Frame: 1\nFrame: 42\n", buf.String())
}

func TestRendererBannersArePlainOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Banner())
	require.NoError(t, r.Stopped())
	assert.Equal(t, "Starting Game of Life...\nSystem is stable. Stopping.\n", buf.String())
}

func TestRendererBannersAreBoldOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	lr := lipgloss.NewRenderer(&buf)
	lr.SetColorProfile(termenv.ANSI)
	r := newRenderer(&buf, lr)

	require.NoError(t, r.Banner())
	require.NoError(t, r.Stopped())
	assert.Equal(t,
		"\033[1mStarting Game of Life...\033[0m\n"+
			"\033[1mSystem is stable. Stopping.\033[0m\n",
		buf.String())
}

func TestRendererFramesIgnoreColorProfile(t *testing.T) {
	var buf bytes.Buffer
	lr := lipgloss.NewRenderer(&buf)
	lr.SetColorProfile(termenv.ANSI)
	r := newRenderer(&buf, lr)

	require.NoError(t, r.Render(testutil.MustParseGrid(t, "...", ".#.", "...")))
	require.NoError(t, r.Frame(3))
	assert.Equal(t, ClearScreen+"...\n.#.\n...\n\nFrame: 3\n", buf.String())
}

func TestRendererPropagatesWriteErrors(t *testing.T) {
	r := NewRenderer(&failingWriter{})
	g := testutil.MustParseGrid(t, "..", "..")

	assert.ErrorIs(t, r.Render(g), errWriteFailed)
	assert.ErrorIs(t, r.Frame(1), errWriteFailed)
	assert.ErrorIs(t, r.Banner(), errWriteFailed)
	assert.ErrorIs(t, r.Stopped(), errWriteFailed)
}

func TestIsTerminalOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f.Fd()))
}
