package saguaro

import (
	"math"
	"math/rand/v2"
)

// Rand is the random source every sampling point goes through. *rand.Rand
// from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SequenceRand replays a fixed list of values, cycling when exhausted. Used
// to make generation reproducible in tests and scripted replays.
type SequenceRand struct {
	Values []float64
	next   int
}

// Float64 returns the next value in the sequence. An empty sequence yields 0.
func (s *SequenceRand) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Drawn returns how many values have been consumed.
func (s *SequenceRand) Drawn() int {
	return s.next
}

// uniform samples a float in [min, max). An inverted range samples (max, min].
func uniform(r Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// uniformRange samples within rg.
func uniformRange(r Rand, rg Range) float64 {
	return uniform(r, rg.Min, rg.Max)
}

// intBetween samples an integer uniformly in [min, max] inclusive.
func intBetween(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + indexFrom(r.Float64(), max-min+1)
}

// indexFrom maps u in [0, 1) onto an index in [0, n).
func indexFrom(u float64, n int) int {
	i := int(math.Floor(u * float64(n)))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// gammaIndex picks an index in [0, n) from u^(1/skew). With skew > 1 the
// samples crowd toward 1, so the last indices are favored.
func gammaIndex(r Rand, n int, skew float64) int {
	return indexFrom(math.Pow(r.Float64(), 1/skew), n)
}
