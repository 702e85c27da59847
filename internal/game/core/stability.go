package core

// IsStable reports whether three consecutive generations are identical. With
// no previous generation there is nothing to compare and the answer is false.
// Oscillators with a period of two or more never satisfy this.
func IsStable(previous, current, next *Grid) bool {
	if previous == nil {
		return false
	}
	return previous.Equal(current) && previous.Equal(next)
}
