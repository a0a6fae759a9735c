package core

// Action represents a semantic player intent, abstracted from physical key
// presses, mouse drags or network messages.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Slide tiles up
	ActionDown            // Slide tiles down
	ActionLeft            // Slide tiles left
	ActionRight           // Slide tiles right
	ActionUndo            // Undo the last move
	ActionRestart         // Start a new game
	ActionContinue        // Dismiss the milestone popup and keep playing
	ActionQuit            // Leave the game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionRestart:
		return "Restart"
	case ActionContinue:
		return "Continue"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action slides tiles.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}
