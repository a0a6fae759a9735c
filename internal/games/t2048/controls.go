package t2048

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

// DirectionForKey maps a key name to a direction. Terminal names ("up"),
// browser names ("ArrowUp") and WASD are accepted, case-insensitively.
// The up key picks board.Down, which gathers tiles at the top.
func (g *Game) DirectionForKey(key string) (board.Direction, bool) {
	var dir board.Direction
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "up", "arrowup", "w", "k":
		dir = board.Down
	case "down", "arrowdown", "s", "j":
		dir = board.Up
	case "left", "arrowleft", "a", "h":
		dir = board.Left
	case "right", "arrowright", "d", "l":
		dir = board.Right
	default:
		return 0, false
	}
	return g.vertical(dir), true
}

// DirectionForSwipe maps a swipe vector to a direction. Screen y grows
// downward, so a positive dy is a swipe down and picks board.Up. Swipes
// shorter than the threshold on both axes are ignored; equal magnitudes
// count as horizontal.
func (g *Game) DirectionForSwipe(dx, dy float64) (board.Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if math.Max(ax, ay) < g.opts.SwipeThreshold {
		return 0, false
	}
	if ax >= ay {
		if dx > 0 {
			return board.Right, true
		}
		return board.Left, true
	}
	if dy > 0 {
		return g.vertical(board.Up), true
	}
	return g.vertical(board.Down), true
}

func (g *Game) vertical(dir board.Direction) board.Direction {
	if !g.opts.InvertVertical {
		return dir
	}
	switch dir {
	case board.Up:
		return board.Down
	case board.Down:
		return board.Up
	}
	return dir
}

// ActionFor converts a direction to the action named after where its tiles
// land.
func ActionFor(dir board.Direction) core.Action {
	switch dir {
	case board.Up:
		return core.ActionDown
	case board.Down:
		return core.ActionUp
	case board.Left:
		return core.ActionLeft
	case board.Right:
		return core.ActionRight
	}
	return core.ActionNone
}
