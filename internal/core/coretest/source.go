// Package coretest provides scripted random sources for deterministic tests.
package coretest

import "fmt"

// Script replays queued draws. Once a queue is exhausted the matching
// fallback value is returned.
type Script struct {
	Floats []float64
	Ints   []int

	FallbackFloat float64
	FallbackInt   int

	FloatDraws int
	IntDraws   int
}

// Float64 pops the next queued float.
func (s *Script) Float64() float64 {
	s.FloatDraws++
	if len(s.Floats) == 0 {
		return s.FallbackFloat
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// IntN pops the next queued int. Values outside [0, n) panic.
func (s *Script) IntN(n int) int {
	s.IntDraws++
	v := s.FallbackInt
	if len(s.Ints) > 0 {
		v = s.Ints[0]
		s.Ints = s.Ints[1:]
	}
	if v < 0 || v >= n {
		panic(fmt.Sprintf("coretest: scripted int %d outside [0,%d)", v, n))
	}
	return v
}

// Never returns a script whose probability rolls always fail and whose
// choices always pick the first candidate.
func Never() *Script {
	return &Script{FallbackFloat: 0.999}
}

// Always returns a script whose probability rolls always succeed.
func Always() *Script {
	return &Script{FallbackFloat: 0}
}
