package core

import (
	"fmt"
	"time"
)

// Numerical Recipes LCG constants.
const (
	LCGMultiplier uint64 = 1664525
	LCGIncrement  uint64 = 1013904223
)

// NextSeed advances an LCG seed by one step. Overflow wraps modulo 2^64.
func NextSeed(seed uint64) uint64 {
	return seed*LCGMultiplier + LCGIncrement
}

// SeedFromTime returns the current wall-clock time as nanoseconds since the
// unix epoch.
func SeedFromTime() (uint64, error) {
	return SeedFromClock(time.Now)
}

// SeedFromClock is SeedFromTime with an injectable clock.
func SeedFromClock(now func() time.Time) (uint64, error) {
	t := now()
	nanos := t.UnixNano()
	if nanos < 0 {
		return 0, fmt.Errorf("%w: %s", ErrClockBeforeEpoch, t.Format(time.RFC3339))
	}
	return uint64(nanos), nil
}
