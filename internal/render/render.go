// internal/render/render.go
//
// Text rendering for puzzles: the plain grid, the reveal view with matched
// cells highlighted, and the numbered match list. All user-facing
// coordinates are 1-indexed; the engine stays 0-indexed.

package render

import (
	"fmt"
	"strings"

	"github.com/hmfgame/hmf/internal/game"
)

// Grid renders a grid as space-separated rows.
func Grid(g game.Grid) string {
	lines := make([]string, 0, g.Rows())
	for _, row := range g {
		parts := make([]string, len(row))
		for i, b := range row {
			parts[i] = string(b)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// Highlighted renders the grid with every matched cell bracketed, e.g.
// "[F][U][C][K] F  U ". Unmatched cells are padded to the same width so
// columns stay aligned.
func Highlighted(g game.Grid, matches []game.Match) string {
	hot := make(map[game.Cell]bool)
	for _, m := range matches {
		for _, c := range m.Cells {
			hot[c] = true
		}
	}

	var b strings.Builder
	for r, row := range g {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c, letter := range row {
			if hot[game.Cell{Row: r, Col: c}] {
				b.WriteByte('[')
				b.WriteByte(letter)
				b.WriteByte(']')
			} else {
				b.WriteByte(' ')
				b.WriteByte(letter)
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// MatchList renders matches as numbered reveal lines:
//
//	#1: start=(row 1, col 1), dir=E, cells=[(1,1),(1,2),(1,3),(1,4)]
func MatchList(matches []game.Match) string {
	if len(matches) == 0 {
		return "No matches found."
	}
	lines := make([]string, 0, len(matches))
	for i, m := range matches {
		cells := make([]string, len(m.Cells))
		for j, c := range m.Cells {
			cells[j] = fmt.Sprintf("(%d,%d)", c.Row+1, c.Col+1)
		}
		lines = append(lines, fmt.Sprintf("#%d: start=(row %d, col %d), dir=%s, cells=[%s]",
			i+1, m.Start.Row+1, m.Start.Col+1, m.Direction, strings.Join(cells, ",")))
	}
	return strings.Join(lines, "\n")
}
