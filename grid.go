package gridastar

import (
	"errors"
	"fmt"
)

// Cell is a grid coordinate. X is the column, Y the row.
type Cell struct {
	X, Y int
}

// CardinalMoves is the default movement model: the four axis-aligned
// neighbor offsets, no diagonals.
var CardinalMoves = []Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// DiagonalMoves extends CardinalMoves with the four diagonal offsets.
// Manhattan overestimates diagonal movement, so callers supplying this model
// should also supply an admissible heuristic such as Chebyshev.
var DiagonalMoves = []Cell{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Heuristic estimates the remaining cost from one cell to another. A* returns
// least-cost paths only for admissible heuristics, ones that never
// overestimate the true remaining cost.
type Heuristic func(from, to Cell) int

// Manhattan is the default heuristic, |dx| + |dy|. It is admissible for
// 4-way movement whenever every passable cell costs at least 1.
func Manhattan(from, to Cell) int {
	return abs(to.X-from.X) + abs(to.Y-from.Y)
}

// Chebyshev is max(|dx|, |dy|), admissible for 8-way movement.
func Chebyshev(from, to Cell) int {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grid is a rectangular field of terrain costs indexed (column, row):
// the first index of the backing slice selects the column. A zero cost marks
// an impassable cell; any positive cost is the price of entering that cell.
// A Grid is read-only after construction and safe for use by concurrent
// searches.
type Grid struct {
	cells  [][]int
	width  int
	height int
}

// NewGrid wraps cells as a search grid without copying; the caller keeps
// ownership and must not mutate the slice while searches run. All columns
// must share one height and every cost must be non-negative.
func NewGrid(cells [][]int) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, errors.New("grid needs at least one column and one row")
	}
	height := len(cells[0])
	for x, column := range cells {
		if len(column) != height {
			return nil, fmt.Errorf("column %d has height %d, want %d", x, len(column), height)
		}
		for y, cost := range column {
			if cost < 0 {
				return nil, fmt.Errorf("negative cost %d at (%d,%d)", cost, x, y)
			}
		}
	}
	return &Grid{cells: cells, width: len(cells), height: height}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Cost returns the terrain cost at c, which must be in bounds.
func (g *Grid) Cost(c Cell) int { return g.cells[c.X][c.Y] }

// Passable reports whether c is in bounds with a non-zero terrain cost.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.cells[c.X][c.Y] != 0
}

// neighbors appends the passable neighbors of c under the given movement
// model to dst and returns it.
func (g *Grid) neighbors(c Cell, moves []Cell, dst []Cell) []Cell {
	for _, d := range moves {
		n := Cell{c.X + d.X, c.Y + d.Y}
		if g.Passable(n) {
			dst = append(dst, n)
		}
	}
	return dst
}
