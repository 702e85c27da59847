package core

import (
	"fmt"
	"strings"
)

const (
	LiveGlyph = '#'
	DeadGlyph = '.'
)

// Grid is a fixed-size matrix of cell states stored in row-major order.
// Cells on the outermost rows and columns are always dead.
type Grid struct {
	W, H  int
	cells []bool // length = W*H
}

// NewGrid allocates an all-dead grid.
func NewGrid(height, width int) (*Grid, error) {
	if height < 2 || width < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, height, width)
	}
	return &Grid{W: width, H: height, cells: make([]bool, width*height)}, nil
}

// Initialize builds the starting generation. Each cell, visited in row-major
// order, advances the seed once and is live iff the new seed is even. The
// border is cleared afterwards regardless of what the seed produced there.
func Initialize(height, width int, seed uint64) (*Grid, error) {
	g, err := NewGrid(height, width)
	if err != nil {
		return nil, err
	}

	for i := range g.cells {
		seed = NextSeed(seed)
		g.cells[i] = seed%2 == 0
	}

	g.clearBorder()
	return g, nil
}

func (g *Grid) clearBorder() {
	for row := 0; row < g.H; row++ {
		g.cells[g.Idx(row, 0)] = false
		g.cells[g.Idx(row, g.W-1)] = false
	}
	for col := 0; col < g.W; col++ {
		g.cells[g.Idx(0, col)] = false
		g.cells[g.Idx(g.H-1, col)] = false
	}
}

func (g *Grid) Idx(row, col int) int { return row*g.W + col }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.H && col >= 0 && col < g.W
}

// IsBorder reports whether the cell sits on the permanently dead border.
func (g *Grid) IsBorder(row, col int) bool {
	return row == 0 || row == g.H-1 || col == 0 || col == g.W-1
}

// Alive returns the state of a cell. Out-of-range coordinates read as dead.
func (g *Grid) Alive(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[g.Idx(row, col)]
}

// Set changes the state of an interior cell. Writes to the border or outside
// the grid are rejected.
func (g *Grid) Set(row, col int, alive bool) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrMalformedGrid, row, col, g.H, g.W)
	}
	if alive && g.IsBorder(row, col) {
		return fmt.Errorf("%w: border cell (%d,%d) cannot be live", ErrMalformedGrid, row, col)
	}
	g.cells[g.Idx(row, col)] = alive
	return nil
}

// Population counts live cells.
func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.cells {
		if alive {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{W: g.W, H: g.H, cells: cells}
}

// Equal reports whether two grids have the same dimensions and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, alive := range g.cells {
		if other.cells[i] != alive {
			return false
		}
	}
	return true
}

// String renders the grid as rows of LiveGlyph/DeadGlyph, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			if g.cells[g.Idx(row, col)] {
				sb.WriteByte(LiveGlyph)
			} else {
				sb.WriteByte(DeadGlyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of LiveGlyph/DeadGlyph characters, the
// inverse of String. Rows must share one width and the border must be dead.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}

	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}

	for row, line := range rows {
		if len(line) != g.W {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrMalformedGrid, row, len(line), g.W)
		}
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case LiveGlyph:
				if err := g.Set(row, col, true); err != nil {
					return nil, err
				}
			case DeadGlyph:
			default:
				return nil, fmt.Errorf("%w: unexpected glyph %q at (%d,%d)", ErrMalformedGrid, line[col], row, col)
			}
		}
	}
	return g, nil
}
