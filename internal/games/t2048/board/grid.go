package board

import (
	"strconv"
	"strings"
)

// Grid is a square row-major matrix of tile values. Zero means empty.
type Grid [][]int

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

// NewGrid returns an empty size x size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]int, size)
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for i, row := range g {
		c[i] = append([]int(nil), row...)
	}
	return c
}

// Equal reports whether two grids hold the same values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for _, row := range g {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// String renders the grid as space-separated rows, mostly for test failures.
func (g Grid) String() string {
	var sb strings.Builder
	for i, row := range g {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// RotateGrid rotates a square grid 90 degrees clockwise quarterTurns times.
// Cell (i, j) moves to (j, n-1-i) on each turn. Negative turns are taken mod 4.
func RotateGrid(g Grid, quarterTurns int) Grid {
	n := len(g)
	out := g.Clone()
	for range ((quarterTurns % 4) + 4) % 4 {
		next := NewGrid(n)
		for i := range n {
			for j := range n {
				next[j][n-1-i] = out[i][j]
			}
		}
		out = next
	}
	return out
}

// CollapseRow slides a row toward index 0 and merges equal neighbours.
// Each tile merges at most once per call, so [2 2 2 2] becomes [4 4 0 0].
// Returns the new row and the score gained from merges.
func CollapseRow(row []int) ([]int, int) {
	compacted := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			compacted = append(compacted, v)
		}
	}

	result := make([]int, 0, len(row))
	score := 0
	for i := 0; i < len(compacted); {
		if i+1 < len(compacted) && compacted[i] == compacted[i+1] {
			merged := compacted[i] * 2
			result = append(result, merged)
			score += merged
			i += 2
			continue
		}
		result = append(result, compacted[i])
		i++
	}

	for len(result) < len(row) {
		result = append(result, 0)
	}
	return result, score
}
