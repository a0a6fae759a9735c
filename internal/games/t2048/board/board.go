// Package board implements the 2048 board engine: grid state, move resolution,
// merge rules, random tile spawning, terminal detection and a one-step undo.
//
// The engine is synchronous and single-owner. It never rejects a move on a
// terminal board; freezing play is the caller's policy.
package board

import (
	"math/rand"
	"time"
)

const (
	// DefaultSize is the standard board dimension.
	DefaultSize = 4

	// Spawn4Probability is the chance a spawned tile is a 4 instead of a 2.
	Spawn4Probability = 0.1

	historyDepth = 2
)

// Source is the randomness the engine needs. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

type snapshot struct {
	grid  Grid
	score int
	moves int
}

// Board holds the grid, the score and the undo history.
type Board struct {
	size         int
	grid         Grid
	score        int
	moves        int
	history      []snapshot
	rng          Source
	restoreScore bool
}

// Option configures a Board.
type Option func(*Board)

// WithSource sets the random source used for tile spawning.
func WithSource(src Source) Option {
	return func(b *Board) {
		b.rng = src
	}
}

// WithScoreRestore makes Undo roll the score back along with the grid.
// Off by default: undo restores the grid only and the score never decreases.
func WithScoreRestore(enabled bool) Option {
	return func(b *Board) {
		b.restoreScore = enabled
	}
}

// New creates a size x size board with two random tiles placed.
func New(size int, opts ...Option) *Board {
	b := newBoard(NewGrid(size), opts)
	b.SpawnTile()
	b.SpawnTile()
	b.saveSnapshot()
	return b
}

// FromGrid creates a board around a copy of an existing square grid without
// spawning tiles. The grid becomes the initial snapshot.
func FromGrid(g Grid, opts ...Option) *Board {
	b := newBoard(g.Clone(), opts)
	b.saveSnapshot()
	return b
}

func newBoard(g Grid, opts []Option) *Board {
	b := &Board{
		size: len(g),
		grid: g,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return b
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// Score returns the accumulated merge score.
func (b *Board) Score() int {
	return b.score
}

// Moves returns the number of effective moves, rolled back by Undo.
func (b *Board) Moves() int {
	return b.moves
}

// Grid returns a copy of the current grid.
func (b *Board) Grid() Grid {
	return b.grid.Clone()
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (b *Board) EmptyCells() []Cell {
	var cells []Cell
	for i, row := range b.grid {
		for j, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: i, Col: j})
			}
		}
	}
	return cells
}

// SpawnTile places a 2 (90%) or a 4 (10%) on a uniformly chosen empty cell.
// Does nothing and returns false when the board is full.
func (b *Board) SpawnTile() (Cell, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, false
	}

	cell := empty[b.rng.Intn(len(empty))]
	value := 2
	if b.rng.Float64() < Spawn4Probability {
		value = 4
	}
	b.grid[cell.Row][cell.Col] = value
	return cell, true
}

// saveSnapshot records the current state in the history.
func (b *Board) saveSnapshot() {
	b.pushSnapshot(b.capture())
}

func (b *Board) capture() snapshot {
	return snapshot{grid: b.grid.Clone(), score: b.score, moves: b.moves}
}

// pushSnapshot appends s, evicting the oldest entry beyond historyDepth.
func (b *Board) pushSnapshot(s snapshot) {
	b.history = append(b.history, s)
	if len(b.history) > historyDepth {
		b.history = b.history[len(b.history)-historyDepth:]
	}
}

// CanUndo reports whether Undo would succeed.
func (b *Board) CanUndo() bool {
	return len(b.history) > 1
}

// Undo drops the newest history entry and restores the grid from the oldest
// one left. With two effective moves behind it that is the grid from before
// the earlier move. Returns false, leaving state untouched, when the history
// holds a single entry, so a second Undo without a move in between fails.
func (b *Board) Undo() bool {
	if !b.CanUndo() {
		return false
	}

	b.history = b.history[:len(b.history)-1]
	oldest := b.history[0]
	b.grid = oldest.grid.Clone()
	b.moves = oldest.moves
	if b.restoreScore {
		b.score = oldest.score
	}
	return true
}

// rotate replaces the grid with its clockwise rotation by quarterTurns.
func (b *Board) rotate(quarterTurns int) {
	if quarterTurns%4 == 0 {
		return
	}
	b.grid = RotateGrid(b.grid, quarterTurns)
}

// collapseLeft slides and merges every row toward the left edge.
// Returns true if any row changed.
func (b *Board) collapseLeft() bool {
	moved := false
	for i, row := range b.grid {
		newRow, gained := CollapseRow(row)
		for j := range row {
			if row[j] != newRow[j] {
				moved = true
				break
			}
		}
		b.score += gained
		b.grid[i] = newRow
	}
	return moved
}

// Move slides the board in the given direction and spawns one tile if
// anything moved. Returns whether the grid changed.
//
// Every direction reuses collapseLeft: the grid is rotated so the target
// edge faces left, collapsed, then rotated back.
func (b *Board) Move(dir Direction) bool {
	before, after, ok := dir.turns()
	if !ok {
		return false
	}

	pre := b.capture()

	b.rotate(before)
	moved := b.collapseLeft()
	b.rotate(after)

	// A move that changes nothing leaves the history alone.
	if !moved {
		return false
	}

	b.pushSnapshot(pre)
	b.moves++
	b.SpawnTile()
	return true
}

// IsTerminal reports whether no move can change the board: every cell is
// occupied and no two orthogonal neighbours are equal.
func (b *Board) IsTerminal() bool {
	n := b.size
	for i := range n {
		for j := range n {
			v := b.grid[i][j]
			if v == 0 {
				return false
			}
			if j < n-1 && b.grid[i][j+1] == v {
				return false
			}
			if i < n-1 && b.grid[i+1][j] == v {
				return false
			}
		}
	}
	return true
}

// MaxTile returns the highest tile value on the board, 0 if empty.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, row := range b.grid {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}
