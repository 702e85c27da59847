package core

// NextGeneration computes the successor of g under B3/S23. The input is not
// modified. Only interior cells are evaluated, so every neighbour lookup is in
// range and the border of the result stays dead.
func NextGeneration(g *Grid) *Grid {
	next := &Grid{W: g.W, H: g.H, cells: make([]bool, len(g.cells))}

	for row := 1; row < g.H-1; row++ {
		for col := 1; col < g.W-1; col++ {
			neighbours := CountNeighbours(g, row, col)
			alive := g.cells[g.Idx(row, col)]
			if (alive && (neighbours == 2 || neighbours == 3)) || (!alive && neighbours == 3) {
				next.cells[next.Idx(row, col)] = true
			}
		}
	}

	return next
}

// CountNeighbours counts live cells in the Moore neighbourhood of an interior
// cell.
func CountNeighbours(g *Grid, row, col int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			if g.cells[g.Idx(row+dy, col+dx)] {
				count++
			}
		}
	}
	return count
}
