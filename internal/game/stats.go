package game

import "github.com/mitchelldurbincs/lifeterm/internal/game/core"

// This file contains population statistics tracking for a run.

// RunStats summarises population changes over a run.
type RunStats struct {
	InitialPopulation int
	PeakPopulation    int
	FinalPopulation   int

	// Births and Deaths count cell changes across every computed transition,
	// including the final one that confirmed stability.
	Births int
	Deaths int
}

// resetStats starts tracking from the seeded generation.
func (e *Engine) resetStats() {
	pop := e.current.Population()
	e.stats = RunStats{
		InitialPopulation: pop,
		PeakPopulation:    pop,
		FinalPopulation:   pop,
	}
}

// updateStats folds one transition into the running totals.
func (e *Engine) updateStats(next *core.Grid) {
	births, deaths := countChanges(e.current, next)
	e.stats.Births += births
	e.stats.Deaths += deaths

	pop := next.Population()
	if pop > e.stats.PeakPopulation {
		e.stats.PeakPopulation = pop
	}
	e.stats.FinalPopulation = pop

	e.logger.Trace().
		Int("births", births).
		Int("deaths", deaths).
		Int("population", pop).
		Msg("Run stats updated")
}

// countChanges counts cells that came alive and cells that died between two
// generations of the same size.
func countChanges(from, to *core.Grid) (births, deaths int) {
	for row := 0; row < from.H; row++ {
		for col := 0; col < from.W; col++ {
			was, is := from.Alive(row, col), to.Alive(row, col)
			switch {
			case !was && is:
				births++
			case was && !is:
				deaths++
			}
		}
	}
	return births, deaths
}
