package board

import "strings"

// Direction represents a move direction.
//
// Each direction is named by the rotation it collapses after, not by where
// tiles land. Up turns the grid clockwise once, which brings the bottom edge
// to the left, so tiles gather against the bottom edge. Down gathers them
// against the top edge. Left and Right do what they say.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in a stable order.
var Directions = [...]Direction{Left, Right, Up, Down}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a direction name (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, true
	case "right":
		return Right, true
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return 0, false
}

// turns returns the clockwise quarter turns that bring the given direction's
// edge to the left, and the turns that undo it.
func (d Direction) turns() (before, after int, ok bool) {
	switch d {
	case Left:
		return 0, 0, true
	case Right:
		return 2, 2, true
	case Up:
		return 1, 3, true
	case Down:
		return 3, 1, true
	}
	return 0, 0, false
}
