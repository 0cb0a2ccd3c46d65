// internal/game/generate.go
//
// Deterministic grid generation. Generate is seed-driven end to end: one
// PRNG stream is created per call from Spec.Seed and threaded through count
// resolution, placement, and fill, in that fixed order. Identical specs
// produce byte-identical grids and match lists on any machine.
//
// Responsibilities:
//   - Resolve the target occurrence count (exact or sampled from a range).
//   - Fail fast on counts the grid cannot hold.
//   - Place words with a bounded per-word retry loop.
//   - Fill the remaining cells from the distribution policy.
//   - Validate the finished grid with the scanner before returning it.

package game

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

const (
	// placementAttempts caps the random samples tried for one word before
	// the whole generation aborts. As a grid fills up valid slots become
	// statistically rare; the cap is the engine's bounded-time guarantee.
	placementAttempts = 1000

	// buildAttempts caps full place-fill-validate rounds. Filler letters can
	// coincidentally spell extra occurrences; a round that scans to the
	// wrong count is discarded and rebuilt from the same stream. Rounds are
	// cheap, and a generous cap keeps exact counts reachable on larger
	// grids where filler false positives are common.
	buildAttempts = 100
)

// newRNG derives a PRNG stream from a seed string. The seed is hashed so any
// string works; the digest keys a PCG source, which is stable across
// platforms and Go releases.
func newRNG(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	hi := binary.BigEndian.Uint64(sum[:8])
	lo := binary.BigEndian.Uint64(sum[8:16])
	return rand.New(rand.NewPCG(hi, lo))
}

// Generate builds a puzzle grid whose true occurrence count equals the
// spec's resolved count. Deterministic for a fixed spec: same seed and
// parameters, same Result.
//
// Failure modes: *CapacityError when the requested count cannot fit,
// ErrRetryExhausted (wrapped) when placement stalls, *InvariantError
// (wrapped) when no build round scans to the resolved count.
func Generate(spec Spec) (*Result, error) {
	spec = spec.withDefaults()
	if err := spec.validate(); err != nil {
		return nil, err
	}
	dirs, err := ParseDirections(spec.Directions)
	if err != nil {
		return nil, err
	}

	rng := newRNG(spec.Seed)
	target := resolveCount(spec, rng)

	if err := checkCapacity(spec, target); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < buildAttempts; attempt++ {
		res, err := buildOnce(spec, dirs, target, rng)
		if err != nil {
			lastErr = err
			continue
		}
		return res, nil
	}
	return nil, fmt.Errorf("game: no valid grid after %d attempts (size %d, count %d, overlap %t): %w",
		buildAttempts, spec.Size, target, spec.AllowOverlap, lastErr)
}

// resolveCount turns the spec's count request into one concrete integer.
// Range sampling is the first draw on the stream, so it is part of the
// deterministic contract.
func resolveCount(spec Spec, rng *rand.Rand) int {
	if spec.Exact != nil {
		return *spec.Exact
	}
	return spec.Min + rng.IntN(spec.Max-spec.Min+1)
}

// checkCapacity rejects analytically unsatisfiable counts before any
// placement work. With overlap forbidden each word consumes len(word)
// cells, so the disjoint maximum is cells/len(word). Overlap-allowed
// capacity has no cheap closed form; those cases surface through retry
// exhaustion instead.
func checkCapacity(spec Spec, target int) error {
	if target == 0 {
		return nil
	}
	capErr := &CapacityError{
		Size:         spec.Size,
		WordLen:      len(spec.Word),
		Requested:    target,
		AllowOverlap: spec.AllowOverlap,
	}
	if spec.Size < len(spec.Word) {
		// No straight line of len(word) cells fits at all.
		return capErr
	}
	if !spec.AllowOverlap && target*len(spec.Word) > spec.Size*spec.Size {
		return capErr
	}
	return nil
}

// buildOnce runs one place → fill → validate round on a fresh grid, drawing
// from the shared stream. Word placements happen in word order, then fill
// proceeds in row-major order, keeping the draw sequence reproducible.
func buildOnce(spec Spec, dirs []Direction, target int, rng *rand.Rand) (*Result, error) {
	g := make(Grid, spec.Size)
	for i := range g {
		g[i] = make([]byte, spec.Size)
	}

	for i := 0; i < target; i++ {
		if !placeWord(g, spec, dirs, rng) {
			return nil, fmt.Errorf("game: placing word %d of %d: %w", i+1, target, ErrRetryExhausted)
		}
	}

	fillGrid(g, spec.Distribution, rng)

	matches, err := Scan(g, spec.Word, dirs)
	if err != nil {
		return nil, err
	}
	if len(matches) != target {
		return nil, &InvariantError{Want: target, Got: len(matches)}
	}
	return &Result{Grid: g, Matches: matches, Count: target, Seed: spec.Seed}, nil
}

// placeWord samples (start, direction) pairs until the word commits or the
// attempt cap runs out. A cell already committed by an earlier word rejects
// the sample unless overlap is allowed and the committed letter matches
// what this word needs there.
func placeWord(g Grid, spec Spec, dirs []Direction, rng *rand.Rand) bool {
	n := spec.Size
	word := spec.Word
	for attempt := 0; attempt < placementAttempts; attempt++ {
		r := rng.IntN(n)
		c := rng.IntN(n)
		d := dirs[rng.IntN(len(dirs))]
		dr, dc := d.Delta()

		endR := r + dr*(len(word)-1)
		endC := c + dc*(len(word)-1)
		if endR < 0 || endR >= n || endC < 0 || endC >= n {
			continue
		}

		ok := true
		for i := 0; i < len(word); i++ {
			cur := g[r+dr*i][c+dc*i]
			if cur != 0 && (!spec.AllowOverlap || cur != word[i]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		for i := 0; i < len(word); i++ {
			g[r+dr*i][c+dc*i] = word[i]
		}
		return true
	}
	return false
}

// fillGrid assigns every uncommitted cell a letter drawn from the
// distribution policy, in row-major order.
func fillGrid(g Grid, dist Distribution, rng *rand.Rand) {
	pool := Letters
	if dist == DistWeighted {
		// F:4 K:4 U:1 C:1 — F and K are the word's endpoints, so loading
		// the filler with them raises the false-positive density.
		pool = "FFFFKKKKUC"
	}
	for r := range g {
		for c := range g[r] {
			if g[r][c] == 0 {
				g[r][c] = pool[rng.IntN(len(pool))]
			}
		}
	}
}
