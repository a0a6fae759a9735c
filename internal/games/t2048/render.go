package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 8 // Width of each cell (including left border); fits 131072
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

func (g *Game) boardExtent() (int, int) {
	n := g.opts.Size
	return n*cellWidth + 1, n*cellHeight + 1
}

func (g *Game) minScreenSize() (int, int) {
	boardW, boardH := g.boardExtent()
	return boardW + 2, hudHeight + 1 + boardH + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardExtent()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.board.Score()))

	best := max(g.bestScore, g.board.Score())
	bestStr := fmt.Sprintf("Best: %d", best)
	dst.DrawText(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr)

	info := fmt.Sprintf("Max tile: %d  Moves: %d", g.board.MaxTile(), g.board.Moves())
	dst.DrawTextColored(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderBoard draws the grid lines and tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	n := g.opts.Size
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	grid := g.board.Grid()
	for y, row := range grid {
		for x, val := range row {
			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1
			if val == 0 {
				dst.SetColored(cellX+(cellWidth-1)/2, cellY, '·', core.TileColor(0))
				continue
			}
			valStr := strconv.Itoa(val)
			padLeft := max(0, (cellWidth-1-len(valStr))/2)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, core.TileColor(val))
		}
	}
}

// renderOverlays draws the milestone popup or the game-over box.
func (g *Game) renderOverlays(dst *core.Screen, area core.Rect) {
	if g.popup != 0 {
		g.drawOverlay(dst, area, MilestoneMessage(g.popup), "C: Continue | N: New game")
		return
	}
	if g.gameOver {
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxTile())
		g.drawOverlay(dst, area, "GAME OVER", maxStr, "U: Undo | R: Restart")
	}
}

// drawOverlay draws a centered text box over area.
func (g *Game) drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(area, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	centerX, _ := box.Center()
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
