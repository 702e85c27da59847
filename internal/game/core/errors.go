package core

import "errors"

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be at least 2x2")
	ErrClockBeforeEpoch  = errors.New("system clock reads before the unix epoch")
	ErrMalformedGrid     = errors.New("malformed grid")
)
