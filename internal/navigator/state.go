package navigator

import "fmt"

// NoFocus is the FocusedIndex value when no card is focused.
const NoFocus = -1

// State is the navigator's focus bookkeeping.
type State struct {
	FocusedIndex         int
	PreviousFocusedIndex int
	ActiveIndex          int // card the host considers open, NoFocus if none
	IsFocused            bool
}

// NewState returns the Unfocused state.
func NewState() State {
	return State{
		FocusedIndex:         NoFocus,
		PreviousFocusedIndex: NoFocus,
		ActiveIndex:          NoFocus,
	}
}

// String is used in debug logs.
func (s State) String() string {
	return fmt.Sprintf("focused=%d prev=%d active=%d isFocused=%v",
		s.FocusedIndex, s.PreviousFocusedIndex, s.ActiveIndex, s.IsFocused)
}

// ensureValidIndex clamps idx into [0, count-1]. With no cards it returns NoFocus.
func ensureValidIndex(idx, count int) int {
	if count <= 0 {
		return NoFocus
	}
	return max(0, min(count-1, idx))
}

// Direction is a single-step focus movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// ParseDirection maps a direction name to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	}
	return 0, false
}

// vertical reports whether d moves along the vertical axis.
func (d Direction) vertical() bool { return d == Up || d == Down }

// delta is the signed linear step for d.
func (d Direction) delta() int {
	if d == Up || d == Left {
		return -1
	}
	return 1
}
