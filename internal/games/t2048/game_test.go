package t2048

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

// firstCellSource always spawns a 2 in the first empty cell.
type firstCellSource struct{}

func (firstCellSource) Intn(int) int     { return 0 }
func (firstCellSource) Float64() float64 { return 0.5 }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 12345}
}

func newTestGame(t *testing.T, grid board.Grid, mutate ...func(*Options)) *Game {
	t.Helper()
	opts := DefaultOptions()
	opts.Size = len(grid)
	opts.Source = firstCellSource{}
	for _, m := range mutate {
		m(&opts)
	}
	g := New(opts, testConfig())
	g.board = board.FromGrid(grid,
		board.WithSource(opts.Source),
		board.WithScoreRestore(opts.UndoRestoresScore),
	)
	return g
}

func emptyGrid(n int) board.Grid {
	return board.NewGrid(n)
}

func TestNewGame(t *testing.T) {
	g := New(DefaultOptions(), testConfig())

	st := g.State()
	assert.Equal(t, 4, st.Size)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, st.Moves)
	assert.Equal(t, StatusPlaying, st.Status)
	assert.False(t, st.GameOver)
	assert.False(t, st.CanUndo)

	tiles := 0
	for _, row := range st.Grid {
		for _, v := range row {
			if v != 0 {
				tiles++
				assert.Contains(t, []int{2, 4}, v)
			}
		}
	}
	assert.Equal(t, 2, tiles)
}

func TestNewGameFixesInvalidOptions(t *testing.T) {
	g := New(Options{}, testConfig())

	assert.Equal(t, board.DefaultSize, g.State().Size)
	assert.Equal(t, DefaultSwipeThreshold, g.Options().SwipeThreshold)
	assert.Equal(t, DefaultMilestones(), g.Options().Milestones)
}

func TestDeterministicGames(t *testing.T) {
	g1 := New(DefaultOptions(), testConfig())
	g2 := New(DefaultOptions(), testConfig())

	dirs := []board.Direction{board.Left, board.Up, board.Right, board.Down}
	for i := range 40 {
		g1.Move(dirs[i%len(dirs)])
		g2.Move(dirs[i%len(dirs)])
	}

	assert.Equal(t, g1.State(), g2.State())
}

func TestMoveCountsAndScores(t *testing.T) {
	grid := emptyGrid(4)
	grid[0] = []int{2, 2, 4, 4}
	g := newTestGame(t, grid)

	res := g.Move(board.Left)
	assert.Equal(t, MoveResult{Moved: true}, res)
	assert.Equal(t, 12, g.Score())
	assert.Equal(t, 1, g.Moves())
	assert.Equal(t, []int{4, 8, 2, 0}, []int(g.State().Grid[0]))

	res = g.Move(board.Left)
	assert.False(t, res.Moved)
	assert.Equal(t, 1, g.Moves())
}

func TestMoveWithoutChange(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0] = 2
	g := newTestGame(t, grid)

	res := g.Move(board.Left)
	assert.False(t, res.Moved)
	assert.Equal(t, 0, g.Moves())
	assert.Equal(t, grid, g.State().Grid)
}

func TestGameOverFreezesPlay(t *testing.T) {
	g := newTestGame(t, board.Grid{
		{2, 4},
		{0, 8},
	})

	res := g.Move(board.Left)
	require.True(t, res.Moved)
	require.True(t, res.GameOver)
	assert.Equal(t, board.Grid{{2, 4}, {8, 2}}, g.State().Grid)
	assert.Equal(t, StatusGameOver, g.State().Status)
	assert.True(t, g.IsOver())

	for _, dir := range board.Directions {
		res := g.Move(dir)
		assert.False(t, res.Moved, "move %s after game over", dir)
		assert.True(t, res.GameOver)
	}
	assert.Equal(t, board.Grid{{2, 4}, {8, 2}}, g.State().Grid)
}

func TestUndoAfterGameOverResumes(t *testing.T) {
	g := newTestGame(t, board.Grid{
		{2, 4},
		{0, 8},
	})

	require.True(t, g.Move(board.Left).GameOver)
	assert.True(t, g.State().CanUndo)

	require.True(t, g.Undo())
	assert.False(t, g.IsOver())
	assert.Equal(t, board.Grid{{2, 4}, {0, 8}}, g.State().Grid)
	assert.Equal(t, 0, g.Moves())

	assert.False(t, g.Undo(), "only one step of undo")
}

func TestUndoScorePolicy(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0], grid[0][1] = 2, 2

	t.Run("score kept", func(t *testing.T) {
		g := newTestGame(t, grid)
		require.True(t, g.Move(board.Left).Moved)
		require.True(t, g.Undo())
		assert.Equal(t, 4, g.Score())
		assert.Equal(t, grid, g.State().Grid)
	})

	t.Run("score restored", func(t *testing.T) {
		g := newTestGame(t, grid, func(o *Options) { o.UndoRestoresScore = true })
		require.True(t, g.Move(board.Left).Moved)
		require.True(t, g.Undo())
		assert.Equal(t, 0, g.Score())
	})
}

func TestMilestonePopup(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0], grid[0][1] = 1024, 1024
	g := newTestGame(t, grid)

	res := g.Move(board.Left)
	require.True(t, res.Moved)
	assert.Equal(t, 2048, res.Milestone)
	assert.Equal(t, 2048, g.Popup())
	assert.Equal(t, StatusMilestone, g.State().Status)
	assert.Equal(t, []int{2048}, g.State().Achieved)

	blocked := g.Move(board.Down)
	assert.False(t, blocked.Moved, "popup is modal")
	assert.False(t, g.Undo(), "undo is blocked while the popup is open")

	g.Continue()
	assert.Equal(t, 0, g.Popup())

	res = g.Move(board.Up)
	require.True(t, res.Moved)
	assert.Zero(t, res.Milestone, "2048 fires only once")
}

func TestMilestonesFireOnePerMove(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0], grid[0][1] = 2048, 2048
	g := newTestGame(t, grid)

	res := g.Move(board.Left)
	require.True(t, res.Moved)
	assert.Equal(t, 2048, res.Milestone, "lowest unachieved milestone first")
	g.Continue()

	res = g.Move(board.Up)
	require.True(t, res.Moved)
	assert.Equal(t, 4096, res.Milestone)
	g.Continue()

	res = g.Move(board.Down)
	require.True(t, res.Moved)
	assert.Zero(t, res.Milestone)
	assert.Equal(t, []int{2048, 4096}, g.State().Achieved)
}

func TestRestartClearsState(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0], grid[0][1] = 1024, 1024
	g := newTestGame(t, grid)

	require.Equal(t, 2048, g.Move(board.Left).Milestone)

	g.Apply(core.ActionRestart)
	st := g.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, st.Moves)
	assert.Equal(t, 0, st.Milestone)
	assert.Empty(t, st.Achieved)
	assert.False(t, st.GameOver)
	assert.Equal(t, StatusPlaying, st.Status)
}

func TestApply(t *testing.T) {
	grid := emptyGrid(4)
	grid[3][3] = 2
	g := newTestGame(t, grid)

	res := g.Apply(core.ActionLeft)
	require.True(t, res.Moved)
	assert.Equal(t, 2, g.State().Grid[3][0])

	g.Apply(core.ActionUndo)
	assert.Equal(t, grid, g.State().Grid)

	res = g.Apply(core.ActionQuit)
	assert.Equal(t, MoveResult{}, res)
}

func TestApplyVerticalActions(t *testing.T) {
	grid := emptyGrid(4)
	grid[1][2] = 2
	g := newTestGame(t, grid)

	require.True(t, g.Apply(core.ActionUp).Moved)
	assert.Equal(t, 2, g.State().Grid[0][2], "ActionUp gathers tiles at the top")

	require.True(t, g.Apply(core.ActionDown).Moved)
	assert.Equal(t, 2, g.State().Grid[3][2], "ActionDown gathers tiles at the bottom")
}

func TestSmallScreenPausesInput(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0], grid[0][1] = 2, 2
	g := newTestGame(t, grid)

	require.True(t, g.Move(board.Left).Moved)
	afterMove := g.State().Grid

	g.Resize(20, 8)
	require.Equal(t, StatusPausedSmall, g.State().Status)

	res := g.Move(board.Right)
	assert.False(t, res.Moved)
	assert.False(t, g.Undo(), "undo waits for a usable screen")
	assert.Equal(t, afterMove, g.State().Grid)
	assert.Equal(t, 1, g.Moves())

	g.Resize(80, 30)
	assert.True(t, g.Move(board.Right).Moved)
	assert.True(t, g.Undo())
}

func TestDirectionForKey(t *testing.T) {
	tests := []struct {
		key    string
		invert bool
		want   board.Direction
		ok     bool
	}{
		{"up", false, board.Down, true},
		{"ArrowUp", false, board.Down, true},
		{"W", false, board.Down, true},
		{"down", false, board.Up, true},
		{"s", false, board.Up, true},
		{"ArrowLeft", false, board.Left, true},
		{"a", false, board.Left, true},
		{"right", false, board.Right, true},
		{"D", false, board.Right, true},
		{"up", true, board.Up, true},
		{"ArrowDown", true, board.Down, true},
		{"left", true, board.Left, true},
		{"space", false, 0, false},
		{"", false, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			g := newTestGame(t, emptyGrid(4), func(o *Options) { o.InvertVertical = tc.invert })
			dir, ok := g.DirectionForKey(tc.key)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, dir)
			}
		})
	}
}

func TestDirectionForSwipe(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		invert bool
		want   board.Direction
		ok     bool
	}{
		{"too short", 10, 5, false, 0, false},
		{"just under threshold", 29.9, -29.9, false, 0, false},
		{"at threshold", 30, 0, false, board.Right, true},
		{"left", -40, 10, false, board.Left, true},
		{"tie goes horizontal", 40, 40, false, board.Right, true},
		{"negative tie", -40, -40, false, board.Left, true},
		{"down", 5, 50, false, board.Up, true},
		{"up", 5, -31, false, board.Down, true},
		{"inverted down", 0, 50, true, board.Down, true},
		{"inverted up", 0, -50, true, board.Up, true},
		{"inverted horizontal unchanged", -50, 0, true, board.Left, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(t, emptyGrid(4), func(o *Options) { o.InvertVertical = tc.invert })
			dir, ok := g.DirectionForSwipe(tc.dx, tc.dy)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, dir)
			}
		})
	}
}

func TestCustomSwipeThreshold(t *testing.T) {
	g := newTestGame(t, emptyGrid(4), func(o *Options) { o.SwipeThreshold = 1 })

	dir, ok := g.DirectionForSwipe(1, 0)
	require.True(t, ok)
	assert.Equal(t, board.Right, dir)
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, core.ActionDown, ActionFor(board.Up))
	assert.Equal(t, core.ActionUp, ActionFor(board.Down))
	assert.Equal(t, core.ActionLeft, ActionFor(board.Left))
	assert.Equal(t, core.ActionRight, ActionFor(board.Right))
	assert.Equal(t, core.ActionNone, ActionFor(board.Direction(42)))
}

func TestNextMilestone(t *testing.T) {
	ms := DefaultMilestones()

	tests := []struct {
		name     string
		achieved map[int]bool
		maxTile  int
		want     int
		ok       bool
	}{
		{"below first", nil, 1024, 0, false},
		{"first reached", nil, 2048, 2048, true},
		{"skipped ahead reports lowest", nil, 8192, 2048, true},
		{"next after achieved", map[int]bool{2048: true}, 8192, 4096, true},
		{"already achieved", map[int]bool{2048: true}, 2048, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextMilestone(ms, tc.achieved, tc.maxTile)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDefaultMilestonesIsACopy(t *testing.T) {
	ms := DefaultMilestones()
	ms[0] = 1
	assert.Equal(t, 2048, DefaultMilestones()[0])
}

func TestRender(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0], grid[0][1] = 1024, 1024
	g := newTestGame(t, grid)
	g.SetBestScore(9000)

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Best: 9000")
	assert.Contains(t, out, "1024")

	g.Move(board.Left)
	g.Render(screen)
	out = screen.String()
	assert.Contains(t, out, "You reached 2048!")
	assert.Contains(t, out, "C: Continue")
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, board.Grid{
		{2, 4},
		{0, 8},
	})
	g.Move(board.Left)

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, emptyGrid(4))
	g.Resize(20, 8)

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
	assert.Equal(t, StatusPausedSmall, g.State().Status)

	g.Resize(80, 30)
	assert.Equal(t, StatusPlaying, g.State().Status)

	g.Resize(0, 0)
	assert.Equal(t, StatusPlaying, g.State().Status, "headless games are never paused")
}

func TestRenderTileColors(t *testing.T) {
	grid := emptyGrid(4)
	grid[0][0] = 8
	g := newTestGame(t, grid)

	screen := core.NewScreen(80, 30)
	g.Render(screen)

	found := false
	for y, row := range strings.Split(screen.String(), "\n") {
		x := strings.Index(row, "8")
		if x < 0 || !strings.Contains(row, "│") {
			continue
		}
		cell := screen.GetCell(len([]rune(row[:x])), y)
		if cell.Rune == '8' {
			assert.Equal(t, core.TileColor(8), cell.Color)
			found = true
		}
	}
	assert.True(t, found, "tile 8 not rendered")
}
