package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestGenerateDeterministic(t *testing.T) {
	spec := Spec{Size: 8, Seed: "test123", Exact: intp(2)}

	a, err := Generate(spec)
	require.NoError(t, err)
	b, err := Generate(spec)
	require.NoError(t, err)

	assert.Equal(t, a.Grid, b.Grid)
	assert.Equal(t, a.Matches, b.Matches)
	assert.Equal(t, a.Count, b.Count)
}

func TestGenerateCountMatchesScan(t *testing.T) {
	for _, size := range []int{8, 10} {
		for count := 1; count <= 3; count++ {
			spec := Spec{
				Size:         size,
				Seed:         fmt.Sprintf("exact-%d-%d", size, count),
				Exact:        intp(count),
				AllowOverlap: true,
			}
			res, err := Generate(spec)
			require.NoError(t, err, "size %d count %d", size, count)
			assert.Equal(t, count, res.Count)
			assert.Len(t, res.Matches, count)

			matches, err := Scan(res.Grid, TargetWord, nil)
			require.NoError(t, err)
			assert.Len(t, matches, count, "independent rescan must agree")
		}
	}
}

func TestGenerateRangeBounds(t *testing.T) {
	counts := make(map[int]bool)
	for i := 0; i < 12; i++ {
		spec := Spec{
			Size:         10,
			Seed:         fmt.Sprintf("bounds-%d", i),
			Min:          1,
			Max:          4,
			AllowOverlap: true,
		}
		res, err := Generate(spec)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Count, 1)
		require.LessOrEqual(t, res.Count, 4)
		counts[res.Count] = true
	}
	assert.Greater(t, len(counts), 1, "sampled counts should vary across seeds")
}

func TestGenerateZeroCount(t *testing.T) {
	for i := 0; i < 3; i++ {
		spec := Spec{Size: 8, Seed: fmt.Sprintf("zero-%d", i), Exact: intp(0)}
		res, err := Generate(spec)
		require.NoError(t, err, "count 0 must never fail generation")
		assert.Equal(t, 0, res.Count)
		assert.Empty(t, res.Matches)

		matches, err := Scan(res.Grid, TargetWord, nil)
		require.NoError(t, err)
		assert.Empty(t, matches)
	}
}

func TestGenerateNoOverlapDisjoint(t *testing.T) {
	spec := Spec{Size: 10, Seed: "no-overlap", Exact: intp(2), AllowOverlap: false}
	res, err := Generate(spec)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)

	used := make(map[Cell]bool)
	for _, m := range res.Matches {
		for _, c := range m.Cells {
			assert.False(t, used[c], "cell %v shared between placements in no-overlap mode", c)
			used[c] = true
		}
	}
}

func TestGenerateCapacityError(t *testing.T) {
	// 20 disjoint 4-letter words need 80 cells; an 8x8 grid has 64.
	spec := Spec{Size: 8, Seed: "capacity", Exact: intp(20), AllowOverlap: false}
	_, err := Generate(spec)
	require.Error(t, err)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 8, capErr.Size)
	assert.Equal(t, 20, capErr.Requested)
	assert.False(t, capErr.AllowOverlap)
}

func TestGenerateGridTooSmallForWord(t *testing.T) {
	spec := Spec{Size: 3, Seed: "tiny", Exact: intp(1), AllowOverlap: true}
	_, err := Generate(spec)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
}

func TestGenerateConcreteScenario(t *testing.T) {
	spec := Spec{
		Size:         4,
		Word:         TargetWord,
		Directions:   DirectionsAll,
		AllowOverlap: true,
		Distribution: DistEven,
		Seed:         "t1",
		Exact:        intp(1),
	}
	res, err := Generate(spec)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	require.Len(t, res.Matches, 1)

	matches, err := Scan(res.Grid, TargetWord, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, res.Matches[0].Cells, matches[0].Cells)
}

func TestGenerateWeightedDistribution(t *testing.T) {
	spec := Spec{
		Size:         10,
		Seed:         "weighted",
		Exact:        intp(0),
		Distribution: DistWeighted,
	}
	res, err := Generate(spec)
	require.NoError(t, err)

	var fk, uc int
	for _, row := range res.Grid {
		for _, b := range row {
			switch b {
			case 'F', 'K':
				fk++
			case 'U', 'C':
				uc++
			default:
				t.Fatalf("unexpected letter %q in grid", b)
			}
		}
	}
	// 4:4:1:1 weighting puts ~80% of filler on F and K.
	assert.Greater(t, fk, uc)
}

func TestGenerateFilledGridHasNoUnsetCells(t *testing.T) {
	spec := Spec{Size: 8, Seed: "filled", Exact: intp(1), AllowOverlap: true}
	res, err := Generate(spec)
	require.NoError(t, err)
	for _, row := range res.Grid {
		for _, b := range row {
			assert.Contains(t, Letters, string(b))
		}
	}
}

func TestGenerateSpecValidation(t *testing.T) {
	cases := []struct {
		name string
		spec Spec
	}{
		{"zero size", Spec{Size: 0, Seed: "s", Exact: intp(1)}},
		{"missing seed", Spec{Size: 8, Exact: intp(1)}},
		{"negative exact", Spec{Size: 8, Seed: "s", Exact: intp(-1)}},
		{"inverted range", Spec{Size: 8, Seed: "s", Min: 3, Max: 1}},
		{"bad distribution", Spec{Size: 8, Seed: "s", Exact: intp(1), Distribution: "lumpy"}},
		{"bad directions", Spec{Size: 8, Seed: "s", Exact: intp(1), Directions: "sideways"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.spec)
			assert.Error(t, err)
		})
	}
}

func TestGenerateRestrictedDirections(t *testing.T) {
	for _, mode := range []string{DirectionsHorizontal, DirectionsHorizVert} {
		spec := Spec{
			Size:         10,
			Seed:         "dirs-" + mode,
			Exact:        intp(1),
			Directions:   mode,
			AllowOverlap: true,
		}
		res, err := Generate(spec)
		require.NoError(t, err, "mode %s", mode)
		assert.Equal(t, 1, res.Count)
	}
}

func TestErrorTaxonomyDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrRetryExhausted, ErrEmptyWord))

	capErr := &CapacityError{Size: 8, WordLen: 4, Requested: 20}
	invErr := &InvariantError{Want: 2, Got: 3}
	assert.NotEqual(t, capErr.Error(), invErr.Error())
	assert.Contains(t, capErr.Error(), "20")
	assert.Contains(t, invErr.Error(), "expected 2")
}
