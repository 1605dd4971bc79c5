package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the shared pseudo-random source. IntN returns a uniform integer
// in [0, n); callers never pass n <= 0.
type Source interface {
	IntN(n int) int
}

// Seeded is a deterministic Source backed by a PCG generator.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded builds a Source that replays the same sequence for the same seed.
func NewSeeded(seed int64) *Seeded {
	s := uint64(seed)
	return &Seeded{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// IntN implements Source.
func (s *Seeded) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

// Scripted replays a fixed sequence of raw values. Each draw returns the next
// value reduced modulo n; once the script is exhausted the last value repeats.
// An empty script always draws zero.
type Scripted struct {
	mu     sync.Mutex
	values []int
	next   int
	draws  int
}

// NewScripted builds a Scripted source from the provided values.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: append([]int(nil), values...)}
}

// IntN implements Source.
func (s *Scripted) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	if n <= 0 || len(s.values) == 0 {
		return 0
	}
	idx := s.next
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	} else {
		s.next++
	}
	v := s.values[idx] % n
	if v < 0 {
		v += n
	}
	return v
}

// Draws reports how many values have been requested so far.
func (s *Scripted) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

// Zero is a Source that always draws zero.
type Zero struct{}

// IntN implements Source.
func (Zero) IntN(int) int { return 0 }

var (
	_ Source = (*Seeded)(nil)
	_ Source = (*Scripted)(nil)
	_ Source = Zero{}
)
