// Package maze parses text mazes into an immutable grid of walls and lists
// the moves available from any cell.
//
// Layout characters:
//
//	A      start
//	B      goal
//	space  open floor
//	other  wall
//
// Rows shorter than the widest row are open floor past their end.
package maze

import (
	"fmt"
	"strings"

	"github.com/coolavy/CS50AI/internal/apperror"
)

const (
	startMarker = 'A'
	goalMarker  = 'B'
	floorMarker = ' '
)

// Action names a compass step.
type Action string

const (
	Up    Action = "up"
	Down  Action = "down"
	Left  Action = "left"
	Right Action = "right"
)

// directions is the fixed neighbor order.
var directions = [4]struct {
	action     Action
	dRow, dCol int
}{
	{Up, -1, 0},
	{Down, 1, 0},
	{Left, 0, -1},
	{Right, 0, 1},
}

// Apply returns the cell one step from c in the action's direction.
// Unknown actions leave c unchanged.
func (a Action) Apply(c Cell) Cell {
	for _, d := range directions {
		if d.action == a {
			return Cell{Row: c.Row + d.dRow, Col: c.Col + d.dCol}
		}
	}

	return c
}

// Cell is a grid coordinate and the search state.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Neighbor is a legal move out of a cell.
type Neighbor struct {
	Action Action
	Cell   Cell
}

// Grid is a parsed maze. It is never modified after Parse.
type Grid struct {
	walls  [][]bool
	width  int
	height int
	start  Cell
	goal   Cell
}

// Parse builds a Grid from a text layout. It returns ErrMalformedLayout
// unless the text holds exactly one start and exactly one goal.
func Parse(layout string) (*Grid, error) {
	if n := strings.Count(layout, string(startMarker)); n != 1 {
		return nil, fmt.Errorf("%w: want exactly one start %q, found %d", apperror.ErrMalformedLayout, startMarker, n)
	}

	if n := strings.Count(layout, string(goalMarker)); n != 1 {
		return nil, fmt.Errorf("%w: want exactly one goal %q, found %d", apperror.ErrMalformedLayout, goalMarker, n)
	}

	lines := splitLines(layout)

	width := 0
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
		width = max(width, len(rows[i]))
	}

	g := &Grid{
		walls:  make([][]bool, len(rows)),
		width:  width,
		height: len(rows),
	}

	for r, row := range rows {
		g.walls[r] = make([]bool, width)
		for c, ch := range row {
			switch ch {
			case startMarker:
				g.start = Cell{Row: r, Col: c}
			case goalMarker:
				g.goal = Cell{Row: r, Col: c}
			case floorMarker:
			default:
				g.walls[r][c] = true
			}
		}
	}

	return g, nil
}

// splitLines splits on "\n" or "\r\n" and drops one trailing line break.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")

	return strings.Split(s, "\n")
}

func (that *Grid) Width() int { return that.width }
func (that *Grid) Height() int { return that.height }
func (that *Grid) Start() Cell { return that.start }
func (that *Grid) Goal() Cell { return that.goal }

// InBounds reports whether c lies inside the grid.
func (that *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < that.height && c.Col >= 0 && c.Col < that.width
}

// IsWall reports whether c is a wall. Cells outside the grid are walls.
func (that *Grid) IsWall(c Cell) bool {
	if !that.InBounds(c) {
		return true
	}

	return that.walls[c.Row][c.Col]
}

// Neighbors returns the in-bounds open cells around c in up, down, left,
// right order.
func (that *Grid) Neighbors(c Cell) []Neighbor {
	result := make([]Neighbor, 0, len(directions))
	for _, d := range directions {
		next := Cell{Row: c.Row + d.dRow, Col: c.Col + d.dCol}
		if that.IsWall(next) {
			continue
		}
		result = append(result, Neighbor{Action: d.action, Cell: next})
	}

	return result
}
