// internal/game/types.go
//
// Core type definitions for the word-search puzzle engine.
// Defines:
//   - Direction: closed enumeration of the 8 compass scan directions.
//   - Grid: the letter matrix a puzzle is played on.
//   - Cell / Match: coordinates and confirmed word occurrences.
//   - Spec: the resolved configuration for one generation run.
//   - Result: a finished grid plus its canonical match list.
//   - Distribution: filler letter policy (even or weighted).

package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TargetWord is the word hidden in every puzzle.
const TargetWord = "FUCK"

// Letters is the full puzzle alphabet. Every cell of a finished grid holds
// one of these.
const Letters = "FUCK"

// Direction identifies one of the 8 compass unit vectors a word can run
// along. The constant order is the canonical scan order; the scanner and
// generator both iterate directions in this order so results are stable.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionDeltas = [...][2]int{
	North:     {-1, 0},
	NorthEast: {-1, 1},
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
}

var directionLabels = [...]string{
	North:     "N",
	NorthEast: "NE",
	East:      "E",
	SouthEast: "SE",
	South:     "S",
	SouthWest: "SW",
	West:      "W",
	NorthWest: "NW",
}

// Delta returns the (row, col) unit step for the direction.
func (d Direction) Delta() (dr, dc int) {
	return directionDeltas[d][0], directionDeltas[d][1]
}

// String returns the compass label ("N", "NE", ...).
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionLabels) {
		return "?"
	}
	return directionLabels[d]
}

// Direction set modes accepted by Spec.Directions.
const (
	DirectionsAll        = "all"        // all 8 directions
	DirectionsHorizontal = "horizontal" // E, W
	DirectionsHorizVert  = "horiz_vert" // N, S, E, W
)

// ParseDirections maps a direction mode string to the ordered direction set
// it names. The returned slice preserves canonical scan order.
func ParseDirections(mode string) ([]Direction, error) {
	switch mode {
	case "", DirectionsAll:
		return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}, nil
	case DirectionsHorizontal:
		return []Direction{East, West}, nil
	case DirectionsHorizVert:
		return []Direction{North, East, South, West}, nil
	default:
		return nil, fmt.Errorf("game: unknown directions mode %q", mode)
	}
}

// Grid is a rows × cols letter matrix. A zero byte marks a cell not yet
// committed during generation; finished grids contain only Letters.
// Grids are square in practice but the scanner only requires rectangular.
type Grid [][]byte

// Rows returns the number of grid rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of grid columns (0 for an empty grid).
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// rectangular reports whether every row has the same length.
func (g Grid) rectangular() bool {
	for _, row := range g {
		if len(row) != len(g[0]) {
			return false
		}
	}
	return true
}

// Strings renders each row as a plain string, mainly for JSON payloads
// and tests.
func (g Grid) Strings() []string {
	out := make([]string, len(g))
	for i, row := range g {
		out[i] = string(row)
	}
	return out
}

// GridFromStrings builds a Grid from row strings. Convenience for tests and
// handlers; no validation beyond the byte copy.
func GridFromStrings(rows []string) Grid {
	g := make(Grid, len(rows))
	for i, r := range rows {
		g[i] = []byte(r)
	}
	return g
}

// Cell is a 0-indexed grid coordinate. User-facing layers render 1-indexed.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Match is one confirmed, deduplicated occurrence of the target word.
// Cells are ordered along the reading direction. Two raw matches over the
// same physical cells (forward and reverse reads) collapse to one Match.
type Match struct {
	Start     Cell   `json:"start"`
	Direction string `json:"direction"`
	Cells     []Cell `json:"cells"`
}

// canonicalKey is the direction-independent identity of a cell run: the
// lexicographically smaller of the forward and reversed coordinate lists.
// A word read E from one end and W from the other maps to the same key.
func canonicalKey(cells []Cell) string {
	fwd := joinCells(cells)
	rev := joinCellsReversed(cells)
	if rev < fwd {
		return rev
	}
	return fwd
}

func joinCells(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(strconv.Itoa(c.Row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Col))
		b.WriteByte(';')
	}
	return b.String()
}

func joinCellsReversed(cells []Cell) string {
	var b strings.Builder
	for i := len(cells) - 1; i >= 0; i-- {
		b.WriteString(strconv.Itoa(cells[i].Row))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(cells[i].Col))
		b.WriteByte(';')
	}
	return b.String()
}

// Distribution selects the filler letter policy for cells not covered by a
// placed word.
type Distribution string

const (
	// DistEven draws F, U, C, K with equal probability.
	DistEven Distribution = "even"
	// DistWeighted skews toward F and K (4:4:1:1), raising the density of
	// near-misses in the filler.
	DistWeighted Distribution = "weighted"
)

// Spec is the resolved configuration for one generation run. Exactly one of
// Exact (non-nil) or the [Min, Max] range decides the target count.
type Spec struct {
	Size         int          // grid is Size × Size
	Word         string       // defaults to TargetWord
	Directions   string       // DirectionsAll, DirectionsHorizontal, DirectionsHorizVert
	AllowOverlap bool         // whether placements may share cells
	Distribution Distribution // defaults to DistEven
	Seed         string       // required; all randomness derives from it
	Exact        *int         // exact occurrence count, if set
	Min, Max     int          // inclusive count range, used when Exact is nil
}

// withDefaults fills in Word and Distribution when the caller left them
// empty.
func (s Spec) withDefaults() Spec {
	if s.Word == "" {
		s.Word = TargetWord
	}
	if s.Distribution == "" {
		s.Distribution = DistEven
	}
	return s
}

// validate rejects configurations the engine cannot act on. These are
// caller/config errors, surfaced before any random draw happens.
func (s Spec) validate() error {
	if s.Size <= 0 {
		return fmt.Errorf("game: grid size must be positive, got %d", s.Size)
	}
	if s.Word == "" {
		return ErrEmptyWord
	}
	if s.Seed == "" {
		return errors.New("game: spec requires a seed")
	}
	if s.Distribution != DistEven && s.Distribution != DistWeighted {
		return fmt.Errorf("game: unknown distribution %q", s.Distribution)
	}
	if s.Exact != nil {
		if *s.Exact < 0 {
			return fmt.Errorf("game: exact count must be >= 0, got %d", *s.Exact)
		}
	} else {
		if s.Min < 0 || s.Max < s.Min {
			return fmt.Errorf("game: invalid count range [%d, %d]", s.Min, s.Max)
		}
	}
	return nil
}

// Result is a finished puzzle: the frozen grid, the canonical ordered match
// list, and the true occurrence count. Count always equals len(Matches).
type Result struct {
	Grid    Grid    `json:"grid"`
	Matches []Match `json:"matches"`
	Count   int     `json:"count"`
	Seed    string  `json:"seed"`
}
