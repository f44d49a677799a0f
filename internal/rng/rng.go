// Package rng provides the simulator's seeded, deterministic PRNG (spec.md
// §4.E, §5): pair drawing must be reproducible given a run seed, and each
// data-parallel worker gets its own derived RNG state rather than sharing
// mutable global state with the rest of the run.
package rng

import (
	"math/rand"
	"sync"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Source wraps a *rand.Rand behind a mutex so it can be shared safely
// within one worker's goroutines (the driver itself is single-threaded,
// but adversary/diversity passes may fan out reads).
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New builds a Source seeded deterministically from seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

var (
	globalMu  sync.Mutex
	globalSrc *Source
)

// Seed establishes the process-wide RNG for the current run (spec.md §4.E
// "process-wide state with explicit seed(run) lifecycle"). Must be called
// before Global.
func Seed(run int64) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalSrc = New(run)
}

// Global returns the process-wide RNG established by the last Seed call.
// Panics if Seed has not been called, since an unseeded draw would make the
// run non-reproducible.
func Global() *Source {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSrc == nil {
		panic("rng: Seed must be called before Global")
	}
	return globalSrc
}

// Pair is an ordered (source, destination) draw for one scheduled payment.
type Pair struct {
	Src models.NodeID
	Dst models.NodeID
}

// DrawPairs samples up to numPairs distinct ordered pairs without
// replacement from nodes, excluding src == dst (spec.md §4.E pair
// drawing). Callers are expected to pass only the greatest SCC's node
// ids. Returns fewer than numPairs if the node set cannot supply that
// many distinct ordered pairs.
func DrawPairs(s *Source, nodes []models.NodeID, numPairs int) []Pair {
	n := len(nodes)
	if n < 2 || numPairs <= 0 {
		return nil
	}
	maxPairs := n * (n - 1)
	if numPairs > maxPairs {
		numPairs = maxPairs
	}

	seen := make(map[[2]int]struct{}, numPairs)
	pairs := make([]Pair, 0, numPairs)
	for len(pairs) < numPairs {
		i := s.Intn(n)
		j := s.Intn(n)
		if i == j {
			continue
		}
		key := [2]int{i, j}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pairs = append(pairs, Pair{Src: nodes[i], Dst: nodes[j]})
	}
	return pairs
}
