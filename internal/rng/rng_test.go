package rng

import (
	"testing"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

func nodeSet(n int) []models.NodeID {
	ids := make([]models.NodeID, n)
	for i := range ids {
		ids[i] = models.NodeID(rune('a' + i))
	}
	return ids
}

func TestDrawPairsDeterministic(t *testing.T) {
	nodes := nodeSet(6)
	a := DrawPairs(New(42), nodes, 10)
	b := DrawPairs(New(42), nodes, 10)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pair %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestDrawPairsNoSelfPairsOrDuplicates(t *testing.T) {
	nodes := nodeSet(5)
	pairs := DrawPairs(New(1), nodes, 15)
	seen := make(map[Pair]bool)
	for _, p := range pairs {
		if p.Src == p.Dst {
			t.Fatalf("self pair drawn: %v", p)
		}
		if seen[p] {
			t.Fatalf("duplicate pair drawn: %v", p)
		}
		seen[p] = true
	}
}

func TestDrawPairsCapsAtMax(t *testing.T) {
	nodes := nodeSet(3) // max distinct ordered pairs with src != dst: 6
	pairs := DrawPairs(New(7), nodes, 1000)
	if len(pairs) != 6 {
		t.Fatalf("expected capped at 6 pairs, got %d", len(pairs))
	}
}

func TestDrawPairsEmptyOnTooFewNodes(t *testing.T) {
	if pairs := DrawPairs(New(1), nodeSet(1), 5); pairs != nil {
		t.Fatalf("expected nil for a single node, got %v", pairs)
	}
}
