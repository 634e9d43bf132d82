// Package randsrc provides the seedable random source shared by use cases.
package randsrc

import (
	"math/rand/v2"
	"sync"
)

// Source is a PCG generator safe for concurrent use.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
