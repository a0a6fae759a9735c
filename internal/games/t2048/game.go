// Package t2048 implements the 2048 game controller on top of the board
// engine: input mapping, game-over freezing, milestone popups and rendering.
package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

// DefaultSwipeThreshold is the minimum swipe distance in pixels.
const DefaultSwipeThreshold = 30.0

// Options configures a Game.
type Options struct {
	Size              int     // Board dimension
	Milestones        []int   // Ascending tile values that raise a popup
	InvertVertical    bool    // Swap up/down key and swipe mapping
	SwipeThreshold    float64 // Swipes shorter than this are ignored
	UndoRestoresScore bool    // Undo also rolls the score back

	// Source overrides the random source. When nil the game seeds its own
	// from RuntimeConfig.Seed.
	Source board.Source
}

// DefaultOptions returns the classic 4x4 setup.
func DefaultOptions() Options {
	return Options{
		Size:           board.DefaultSize,
		Milestones:     DefaultMilestones(),
		SwipeThreshold: DefaultSwipeThreshold,
	}
}

// MoveResult reports what a single input did.
type MoveResult struct {
	Moved     bool // The board changed and a tile was spawned
	Milestone int  // Milestone reached by this move, 0 if none
	GameOver  bool // The board is terminal after this input
}

// Game is a single 2048 session. It is not safe for concurrent use; every
// terminal, SSH session and websocket connection owns its own Game.
type Game struct {
	opts  Options
	rng   board.Source
	board *board.Board

	// Screen dimensions
	screenW int
	screenH int

	bestScore int

	// Game state flags
	gameOver bool
	tooSmall bool
	popup    int          // Milestone waiting to be acknowledged
	achieved map[int]bool // Milestones already shown this game
}

// New creates a game and deals the first board.
func New(opts Options, cfg core.RuntimeConfig) *Game {
	if opts.Size < 2 {
		opts.Size = board.DefaultSize
	}
	if opts.SwipeThreshold <= 0 {
		opts.SwipeThreshold = DefaultSwipeThreshold
	}
	if opts.Milestones == nil {
		opts.Milestones = DefaultMilestones()
	}
	g := &Game{opts: opts}
	g.Reset(cfg)
	return g
}

// ID returns the identifier used for screenshots and logs.
func (g *Game) ID() string {
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "2048"
}

// Options returns the options the game was built with.
func (g *Game) Options() Options {
	return g.opts
}

// Reset reseeds the game and starts over with a fresh board.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	switch {
	case g.opts.Source != nil:
		g.rng = g.opts.Source
	case cfg.Seed != 0:
		g.rng = rand.New(rand.NewSource(cfg.Seed))
	default:
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.Restart()
}

// Restart deals a new board from the current random stream. Achieved
// milestones, the popup and the game-over flag are cleared.
func (g *Game) Restart() {
	g.board = board.New(g.opts.Size,
		board.WithSource(g.rng),
		board.WithScoreRestore(g.opts.UndoRestoresScore),
	)
	g.gameOver = false
	g.popup = 0
	g.achieved = make(map[int]bool, len(g.opts.Milestones))
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// SetBestScore sets the best score shown in the HUD.
func (g *Game) SetBestScore(score int) {
	g.bestScore = score
}

// Move slides the board in dir. Input is ignored once the game is over,
// while a milestone popup is open and while the screen is too small.
func (g *Game) Move(dir board.Direction) MoveResult {
	if g.gameOver {
		return MoveResult{GameOver: true}
	}
	if g.popup != 0 || g.tooSmall {
		return MoveResult{}
	}
	if !g.board.Move(dir) {
		return MoveResult{}
	}

	res := MoveResult{Moved: true}
	if g.board.IsTerminal() {
		g.gameOver = true
		res.GameOver = true
	}
	if m, ok := NextMilestone(g.opts.Milestones, g.achieved, g.board.MaxTile()); ok {
		g.achieved[m] = true
		g.popup = m
		res.Milestone = m
	}
	return res
}

// Undo rolls the board back to its oldest undo snapshot. A successful undo
// re-evaluates the game-over flag, so undoing the losing move resumes play.
func (g *Game) Undo() bool {
	if g.popup != 0 || g.tooSmall {
		return false
	}
	if !g.board.Undo() {
		return false
	}
	g.gameOver = g.board.IsTerminal()
	return true
}

// Continue dismisses the milestone popup.
func (g *Game) Continue() {
	g.popup = 0
}

// Apply dispatches a semantic action. Actions are named after where tiles
// land, so ActionUp moves board.Down. Quit is left to the caller.
func (g *Game) Apply(a core.Action) MoveResult {
	switch a {
	case core.ActionUp:
		return g.Move(board.Down)
	case core.ActionDown:
		return g.Move(board.Up)
	case core.ActionLeft:
		return g.Move(board.Left)
	case core.ActionRight:
		return g.Move(board.Right)
	case core.ActionUndo:
		g.Undo()
	case core.ActionRestart:
		g.Restart()
	case core.ActionContinue:
		g.Continue()
	}
	return MoveResult{GameOver: g.gameOver}
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.board.Score()
}

// MaxTile returns the highest tile on the board.
func (g *Game) MaxTile() int {
	return g.board.MaxTile()
}

// Moves returns the number of effective moves, as rolled back by Undo.
func (g *Game) Moves() int {
	return g.board.Moves()
}

// IsOver reports whether play is frozen on a terminal board.
func (g *Game) IsOver() bool {
	return g.gameOver
}

// Popup returns the milestone awaiting acknowledgement, or 0.
func (g *Game) Popup() int {
	return g.popup
}

// checkScreenSize checks if the screen is large enough. A game without a
// screen (0x0, as on the websocket surface) is never paused.
func (g *Game) checkScreenSize() {
	if g.screenW == 0 && g.screenH == 0 {
		g.tooSmall = false
		return
	}
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}
