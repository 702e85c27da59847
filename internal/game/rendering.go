package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/mitchelldurbincs/lifeterm/internal/game/core"
)

// This file contains all terminal output for a run.

const (
	// ClearScreen erases the display and homes the cursor.
	ClearScreen = "\033[2J\033[1;1H"

	StartBanner = "Starting Game of Life..."
	StopBanner  = "System is stable. Stopping."
)

// Renderer writes generations and status lines to a terminal stream.
type Renderer struct {
	out    io.Writer
	banner lipgloss.Style
}

// NewRenderer returns a Renderer writing to w. Banner styling is resolved
// against w, so a writer that is not a terminal receives plain text.
func NewRenderer(w io.Writer) *Renderer {
	return newRenderer(w, lipgloss.NewRenderer(w))
}

// newRenderer styles banners with lr. On a colour-capable profile banners are
// bold; the Ascii profile leaves them as plain text.
func newRenderer(w io.Writer, lr *lipgloss.Renderer) *Renderer {
	return &Renderer{
		out:    w,
		banner: lr.NewStyle().Bold(true),
	}
}

// Render clears the screen and draws the grid, one row per line, followed by
// a blank line.
func (r *Renderer) Render(g *core.Grid) error {
	var sb strings.Builder
	sb.Grow(len(ClearScreen) + (g.W+1)*g.H + 1)

	sb.WriteString(ClearScreen)
	sb.WriteString(g.String())
	sb.WriteByte('\n')

	_, err := io.WriteString(r.out, sb.String())
	return err
}

// Frame prints the frame counter line.
func (r *Renderer) Frame(n int) error {
	_, err := fmt.Fprintf(r.out, "Frame: %d\n", n)
	return err
}

// Banner prints the startup line.
func (r *Renderer) Banner() error {
	return r.line(StartBanner)
}

// Stopped prints the termination line.
func (r *Renderer) Stopped() error {
	return r.line(StopBanner)
}

func (r *Renderer) line(msg string) error {
	_, err := fmt.Fprintln(r.out, r.banner.Render(msg))
	return err
}

// IsTerminal reports whether fd is an interactive terminal. Without one the
// clear sequence shows up as literal characters.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
