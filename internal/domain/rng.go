package domain

import (
	"errors"
	"hash/fnv"
	"math/rand"
)

// ErrEmptyInput is returned by Choice when the input slice has no elements.
var ErrEmptyInput = errors.New("cannot choose from empty input")

// RNG is a deterministic random source derived from a string seed. Two
// instances built from the same seed produce identical output sequences, which
// is what makes replays and server-side move auditing possible. Nothing in the
// engine or the bots may draw randomness from anywhere else.
type RNG struct {
	src *rand.Rand
}

// NewRNG builds a generator from a string seed via FNV-1a.
func NewRNG(seed string) *RNG {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	return &RNG{src: rand.New(rand.NewSource(int64(h.Sum64())))}
}

// Float64 returns the next float in [0,1).
func (r *RNG) Float64() float64 {
	return r.src.Float64()
}

// IntN returns an integer in the inclusive range [min,max].
func (r *RNG) IntN(min, max int) int {
	return min + int(r.Float64()*float64(max-min+1))
}

// Shuffle returns a uniformly random permutation of items without mutating the
// input. Fisher-Yates, walking from the end and swapping with an
// earlier-or-equal index.
func Shuffle[T any](r *RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Choice returns a uniformly selected element of items.
func Choice[T any](r *RNG, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyInput
	}
	return items[r.IntN(0, len(items)-1)], nil
}
