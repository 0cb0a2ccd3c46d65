// internal/game/errors.go
//
// Error taxonomy for the puzzle engine. Every failure mode is an explicit
// returned value; the engine never hands back a grid alongside an error.

package game

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWord rejects a zero-length target word before scanning.
	ErrEmptyWord = errors.New("game: empty target word")

	// ErrMalformedGrid rejects a non-rectangular grid before scanning.
	ErrMalformedGrid = errors.New("game: grid rows have unequal lengths")

	// ErrRetryExhausted means a single word placement found no valid slot
	// within the per-word attempt cap.
	ErrRetryExhausted = errors.New("game: word placement retries exhausted")
)

// CapacityError reports a requested count that the grid and constraints
// cannot hold. It carries the offending parameters so callers can render a
// corrective suggestion.
type CapacityError struct {
	Size         int
	WordLen      int
	Requested    int
	AllowOverlap bool
}

func (e *CapacityError) Error() string {
	overlap := "overlap allowed"
	if !e.AllowOverlap {
		overlap = "no overlap"
	}
	return fmt.Sprintf("game: cannot place %d words of length %d on a %dx%d grid (%s)",
		e.Requested, e.WordLen, e.Size, e.Size, overlap)
}

// InvariantError reports a post-generation validation mismatch between the
// resolved target count and what the scanner found. One attempt failing this
// way is expected with false-positive-prone filler; surviving all attempts
// without a valid grid surfaces the last one of these to the caller.
type InvariantError struct {
	Want, Got int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("game: scan found %d matches, expected %d", e.Got, e.Want)
}
