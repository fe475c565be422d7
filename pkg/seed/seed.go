// Package seed resolves the numeric seed that makes a generation reproducible.
package seed

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/voidshard/easel/pkg/structs"
)

const (
	// MaxRandom is the largest seed we generate ourselves (2^53 - 1). Compute servers accept
	// up to 2^64 - 1, user supplied seeds in that range are kept as given.
	MaxRandom uint64 = 1<<53 - 1
)

// Source says where a resolved seed came from.
type Source string

const (
	SourceUser   Source = "user"
	SourceRandom Source = "random"

	// SourceIgnored means a seed was supplied but could not be parsed; a random seed was used.
	SourceIgnored Source = "ignored"
)

// Resolution is the outcome of resolving a seed.
type Resolution struct {
	Seed   uint64
	Source Source

	// Original is the value that was supplied, if any.
	Original string

	// Flipped is set when a negative seed was coerced positive.
	Flipped bool
}

// Resolver turns an optional user seed into a canonical non-negative integer.
type Resolver struct {
	rng *rand.Rand
}

// New returns a Resolver backed by a randomly seeded generator.
func New() *Resolver {
	return &Resolver{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewWithSource returns a Resolver drawing random seeds from src (for deterministic tests).
func NewWithSource(src rand.Source) *Resolver {
	return &Resolver{rng: rand.New(src)}
}

// Random returns a new seed in [0, MaxRandom].
func (r *Resolver) Random() uint64 {
	return r.rng.Uint64N(MaxRandom + 1)
}

// Resolve applies the seed policy.
//
//   - random requested, or no seed: a new random seed
//   - a valid integer (possibly negative): its absolute value
//   - anything else: a new random seed, flagged SourceIgnored
func (r *Resolver) Resolve(in structs.InputValue, random bool) Resolution {
	if random || in.IsEmpty() {
		return Resolution{Seed: r.Random(), Source: SourceRandom, Original: in.Literal()}
	}
	original := in.Literal()
	value, negative, ok := Parse(original)
	if !ok {
		return Resolution{Seed: r.Random(), Source: SourceIgnored, Original: original}
	}
	return Resolution{Seed: value, Source: SourceUser, Original: original, Flipped: negative}
}

// Parse reads an integer seed from s returning its absolute value.
//
// Values up to 2^64-1 in magnitude are accepted, as are integral floats ("42.0").
func Parse(s string) (value uint64, negative bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, false
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, false, false
	}
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, negative && v != 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(uint64(f)) || f > float64(MaxRandom) {
		return 0, false, false
	}
	v := uint64(f)
	return v, negative && v != 0, true
}
