package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmfgame/hmf/internal/game"
)

func TestGrid(t *testing.T) {
	g := game.GridFromStrings([]string{"FU", "CK"})
	assert.Equal(t, "F U\nC K", Grid(g))
}

func TestHighlighted(t *testing.T) {
	g := game.GridFromStrings([]string{
		"FUCK",
		"UUUU",
	})
	matches, err := game.Scan(g, game.TargetWord, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	out := Highlighted(g, matches)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[F][U][C][K]", lines[0])
	assert.Equal(t, " U  U  U  U ", lines[1])
}

func TestMatchListOneIndexed(t *testing.T) {
	g := game.GridFromStrings([]string{
		"FUCK",
		"UUUU",
	})
	matches, err := game.Scan(g, game.TargetWord, nil)
	require.NoError(t, err)

	out := MatchList(matches)
	assert.Equal(t, "#1: start=(row 1, col 1), dir=E, cells=[(1,1),(1,2),(1,3),(1,4)]", out)
}

func TestMatchListEmpty(t *testing.T) {
	assert.Equal(t, "No matches found.", MatchList(nil))
}
