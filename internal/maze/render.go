package maze

import "strings"

const (
	wallGlyph = '#'
	pathGlyph = '*'
)

// Render draws the grid one line per row: '#' for walls, 'A' and 'B' for
// start and goal, '*' for cells on path and ' ' for open floor.
func Render(g *Grid, path []Cell) string {
	onPath := make(map[Cell]struct{}, len(path))
	for _, c := range path {
		onPath[c] = struct{}{}
	}

	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)

	for r := range g.height {
		for c := range g.width {
			cell := Cell{Row: r, Col: c}
			_, marked := onPath[cell]

			switch {
			case g.walls[r][c]:
				sb.WriteRune(wallGlyph)
			case cell == g.start:
				sb.WriteRune(startMarker)
			case cell == g.goal:
				sb.WriteRune(goalMarker)
			case marked:
				sb.WriteRune(pathGlyph)
			default:
				sb.WriteRune(floorMarker)
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
