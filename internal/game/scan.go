// internal/game/scan.go
//
// Scanner for finished grids. Scan is a pure function of
// (grid, word, directions): the generator calls it to validate its own
// output, and handlers call it again for reveal display, so it must never
// mutate the grid or depend on anything outside its arguments.

package game

// Scan finds every occurrence of word in g along the given directions and
// returns them deduplicated, in the order each occurrence was first
// discovered by the row-major, canonical-direction-order walk. A nil dirs
// slice means all 8 directions.
//
// A forward read and the reverse-direction read of the same physical cells
// are one occurrence: the second discovery is dropped by canonical key.
func Scan(g Grid, word string, dirs []Direction) ([]Match, error) {
	if len(word) == 0 {
		return nil, ErrEmptyWord
	}
	if !g.rectangular() {
		return nil, ErrMalformedGrid
	}
	if dirs == nil {
		dirs, _ = ParseDirections(DirectionsAll)
	}

	seen := make(map[string]struct{})
	var out []Match
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			for _, d := range dirs {
				cells, ok := readWord(g, r, c, d, word)
				if !ok {
					continue
				}
				key := canonicalKey(cells)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, Match{
					Start:     Cell{Row: r, Col: c},
					Direction: d.String(),
					Cells:     cells,
				})
			}
		}
	}
	return out, nil
}

// readWord reads len(word) cells from (r, c) along d. Running off the grid
// is not an error, just not a match.
func readWord(g Grid, r, c int, d Direction, word string) ([]Cell, bool) {
	dr, dc := d.Delta()
	cells := make([]Cell, len(word))
	for i := 0; i < len(word); i++ {
		rr := r + dr*i
		cc := c + dc*i
		if rr < 0 || rr >= g.Rows() || cc < 0 || cc >= g.Cols() {
			return nil, false
		}
		if g[rr][cc] != word[i] {
			return nil, false
		}
		cells[i] = Cell{Row: rr, Col: cc}
	}
	return cells, true
}
