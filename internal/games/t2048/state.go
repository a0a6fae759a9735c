package t2048

import "github.com/vovakirdan/tui-2048/internal/games/t2048/board"

// Status represents the current game status.
type Status string

const (
	StatusPlaying     Status = "playing"
	StatusMilestone   Status = "milestone"
	StatusGameOver    Status = "game_over"
	StatusPausedSmall Status = "paused_small_window"
)

// State captures the observable game state for rendering, transport and
// determinism tests.
type State struct {
	Size      int        `json:"size"`
	Grid      board.Grid `json:"grid"`
	Score     int        `json:"score"`
	MaxTile   int        `json:"max_tile"`
	Moves     int        `json:"moves"`
	GameOver  bool       `json:"game_over"`
	Milestone int        `json:"milestone,omitempty"`
	Achieved  []int      `json:"achieved,omitempty"`
	CanUndo   bool       `json:"can_undo"`
	Status    Status     `json:"status"`
}

// State returns a snapshot of the game. The grid is a copy.
func (g *Game) State() State {
	status := StatusPlaying
	switch {
	case g.tooSmall:
		status = StatusPausedSmall
	case g.gameOver:
		status = StatusGameOver
	case g.popup != 0:
		status = StatusMilestone
	}

	var achieved []int
	for _, m := range g.opts.Milestones {
		if g.achieved[m] {
			achieved = append(achieved, m)
		}
	}

	return State{
		Size:      g.board.Size(),
		Grid:      g.board.Grid(),
		Score:     g.board.Score(),
		MaxTile:   g.board.MaxTile(),
		Moves:     g.board.Moves(),
		GameOver:  g.gameOver,
		Milestone: g.popup,
		Achieved:  achieved,
		CanUndo:   g.popup == 0 && g.board.CanUndo(),
		Status:    status,
	}
}
